package model

import (
	"time"

	"gopkg.in/guregu/null.v3"
)

// Ticket represents one vehicle/parking detection record. The same shape is
// stored in both the ocr_ticket and omc_ticket tables; which table a given
// Ticket lives in is decided by the ticket-type token on the route, not by
// the record itself. Every field except ID and CreatedAt is nullable and
// freely overwritable.
//
// Fields:
//
//	ID             – primary key identifier, assigned by the database.
//	CameraID       – numeric id of the detecting camera.
//	ZoneName       – parking zone label (e.g. "A1").
//	CameraIP       – IP address of the camera.
//	ZoneRegion     – region the zone belongs to.
//	SpotNumber     – parking spot within the zone.
//	PlateNumber    – recognised licence plate.
//	PlateCode      – plate emirate/series code.
//	PlateCity      – plate city name.
//	Confidence     – recognition confidence, whole percent.
//	EntryTime      – vehicle entry timestamp.
//	ExitTime       – vehicle exit timestamp.
//	Status         – free-form label such as "open" or "pending".
//	ParkonicTripID – external correlation id.
//	ImageBase64    – inline image payload.
//	CropImagePath  – plate crop image, relative to the static root.
//	EntryImagePath – entry snapshot, relative to the static root.
//	ExitImagePath  – exit snapshot, relative to the static root.
//	ExitClipPath   – exit video clip, relative to the static root.
//	CreatedAt      – set once by the database at insert, never modified.
//	ProcessTimeIn  – entry-side processing timestamp.
//	ProcessTimeOut – exit-side processing timestamp.
type Ticket struct {
	ID             uint64      // id
	CameraID       null.Int    // camera_id
	ZoneName       null.String // zone_name
	CameraIP       null.String // camera_ip
	ZoneRegion     null.String // zone_region
	SpotNumber     null.Int    // spot_number
	PlateNumber    null.String // plate_number
	PlateCode      null.String // plate_code
	PlateCity      null.String // plate_city
	Confidence     null.Int    // confidence
	EntryTime      null.Time   // entry_time
	ExitTime       null.Time   // exit_time
	Status         null.String // status
	ParkonicTripID null.Int    // parkonic_trip_id
	ImageBase64    null.String // image_base64
	CropImagePath  null.String // crop_image_path
	EntryImagePath null.String // entry_image_path
	ExitImagePath  null.String // exit_image_path
	ExitClipPath   null.String // exit_clip_path
	CreatedAt      time.Time   // created_at
	ProcessTimeIn  null.Time   // process_time_in
	ProcessTimeOut null.Time   // process_time_out
}

// isoLayout renders timestamps the way the API serialises them: ISO-8601
// without a zone designator, fractional seconds only when present.
const isoLayout = "2006-01-02T15:04:05.999999"

// FormatTime renders a nullable timestamp as an ISO-8601 string, or ""
// when the value is null. Exposed for template rendering as well.
func FormatTime(t null.Time) string {
	if !t.Valid {
		return ""
	}
	return t.Time.UTC().Format(isoLayout)
}

// AsMap converts the ticket into a plain field-name to value mapping for
// JSON responses. Timestamp fields are rendered as ISO-8601 strings or
// null. The projection is pure: no derived fields, no side effects.
func (t *Ticket) AsMap() map[string]any {
	return map[string]any{
		"id":               t.ID,
		"camera_id":        t.CameraID,
		"zone_name":        t.ZoneName,
		"camera_ip":        t.CameraIP,
		"zone_region":      t.ZoneRegion,
		"spot_number":      t.SpotNumber,
		"plate_number":     t.PlateNumber,
		"plate_code":       t.PlateCode,
		"plate_city":       t.PlateCity,
		"confidence":       t.Confidence,
		"entry_time":       isoOrNil(t.EntryTime),
		"exit_time":        isoOrNil(t.ExitTime),
		"status":           t.Status,
		"parkonic_trip_id": t.ParkonicTripID,
		"image_base64":     t.ImageBase64,
		"crop_image_path":  t.CropImagePath,
		"entry_image_path": t.EntryImagePath,
		"exit_image_path":  t.ExitImagePath,
		"exit_clip_path":   t.ExitClipPath,
		"created_at":       t.CreatedAt.UTC().Format(isoLayout),
		"process_time_in":  isoOrNil(t.ProcessTimeIn),
		"process_time_out": isoOrNil(t.ProcessTimeOut),
	}
}

// isoOrNil renders a nullable timestamp for JSON: an ISO-8601 string when
// set, a JSON null otherwise.
func isoOrNil(t null.Time) any {
	if !t.Valid {
		return nil
	}
	return t.Time.UTC().Format(isoLayout)
}
