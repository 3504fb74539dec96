package model

import (
	"encoding/json"
	"net/url"
	"strconv"
	"strings"
	"time"

	"gopkg.in/guregu/null.v3"
)

// PayloadSource abstracts the two payload shapes a ticket can be populated
// from: an HTML form and a JSON object. The tri-state Lookup result is what
// makes merge-patch work: "key absent" must stay distinguishable from "key
// present with a null/empty value".
type PayloadSource interface {
	// Lookup reports the value for a field key. present is false when the
	// key did not occur in the payload at all; isNull is true when the key
	// occurred but carried an explicit null (or an empty form value).
	Lookup(key string) (value string, isNull bool, present bool)
}

// FormSource adapts url.Values (urlencoded or multipart form fields) to a
// PayloadSource. An empty form value counts as an explicit null: submitting
// a cleared input overwrites the stored field.
type FormSource struct {
	Values url.Values
}

// Lookup implements PayloadSource for form data.
func (f FormSource) Lookup(key string) (string, bool, bool) {
	if _, ok := f.Values[key]; !ok {
		return "", false, false
	}
	v := f.Values.Get(key)
	if v == "" {
		return "", true, true
	}
	return v, false, true
}

// JSONSource adapts a decoded JSON object to a PayloadSource. Keeping the
// values as raw messages preserves the absent-key vs. present-null
// distinction that a plain struct bind would lose.
type JSONSource struct {
	Fields map[string]json.RawMessage
}

// DecodeJSON builds a JSONSource from a JSON object body.
func DecodeJSON(body []byte) (JSONSource, error) {
	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(body, &fields); err != nil {
		return JSONSource{}, err
	}
	return JSONSource{Fields: fields}, nil
}

// Lookup implements PayloadSource for JSON objects. Quoted values are
// unquoted; numbers and other scalars are passed through as their literal
// text and coerced field by field.
func (j JSONSource) Lookup(key string) (string, bool, bool) {
	raw, ok := j.Fields[key]
	if !ok {
		return "", false, false
	}
	s := strings.TrimSpace(string(raw))
	if s == "null" {
		return "", true, true
	}
	var str string
	if err := json.Unmarshal(raw, &str); err == nil {
		return str, false, true
	}
	return s, false, true
}

// Populate merges a payload into a ticket. Fields absent from the payload
// keep their current values; present fields are overwritten with the coerced
// value, where invalid integers and unparseable timestamps coerce to null
// rather than raising an error. ID and CreatedAt are never touched.
func Populate(t *Ticket, src PayloadSource) {
	applyInt(src, "camera_id", &t.CameraID)
	applyString(src, "zone_name", &t.ZoneName)
	applyString(src, "camera_ip", &t.CameraIP)
	applyString(src, "zone_region", &t.ZoneRegion)
	applyInt(src, "spot_number", &t.SpotNumber)
	applyString(src, "plate_number", &t.PlateNumber)
	applyString(src, "plate_code", &t.PlateCode)
	applyString(src, "plate_city", &t.PlateCity)
	applyInt(src, "confidence", &t.Confidence)
	applyTime(src, "entry_time", &t.EntryTime)
	applyTime(src, "exit_time", &t.ExitTime)
	applyString(src, "status", &t.Status)
	applyInt(src, "parkonic_trip_id", &t.ParkonicTripID)
	applyString(src, "image_base64", &t.ImageBase64)
	applyString(src, "crop_image_path", &t.CropImagePath)
	applyString(src, "entry_image_path", &t.EntryImagePath)
	applyString(src, "exit_image_path", &t.ExitImagePath)
	applyString(src, "exit_clip_path", &t.ExitClipPath)
	applyTime(src, "process_time_in", &t.ProcessTimeIn)
	applyTime(src, "process_time_out", &t.ProcessTimeOut)
}

func applyString(src PayloadSource, key string, dst *null.String) {
	v, isNull, present := src.Lookup(key)
	if !present {
		return
	}
	if isNull {
		*dst = null.String{}
		return
	}
	*dst = null.StringFrom(v)
}

func applyInt(src PayloadSource, key string, dst *null.Int) {
	v, isNull, present := src.Lookup(key)
	if !present {
		return
	}
	if isNull {
		*dst = null.Int{}
		return
	}
	*dst = ParseInt(v)
}

func applyTime(src PayloadSource, key string, dst *null.Time) {
	v, isNull, present := src.Lookup(key)
	if !present {
		return
	}
	if isNull {
		*dst = null.Time{}
		return
	}
	*dst = ParseTime(v)
}

// ParseInt coerces a string to a nullable integer. Empty or non-numeric
// input yields null; no error is ever raised.
func ParseInt(s string) null.Int {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return null.Int{}
	}
	return null.IntFrom(n)
}

// timeLayouts are the accepted ISO-8601-like shapes, most specific first.
// The minute-precision layout covers HTML datetime-local inputs.
var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTime coerces an ISO-8601-like string to a nullable timestamp. Any
// unparseable or empty value yields null; no error is ever raised.
func ParseTime(s string) null.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return null.Time{}
	}
	for _, layout := range timeLayouts {
		if ts, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return null.TimeFrom(ts)
		}
	}
	return null.Time{}
}
