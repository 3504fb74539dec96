// Package repository contains data access logic separated from HTTP handlers.
// A single TicketRepo serves both ticket tables: the two schemas are
// duplicates, so every query is parameterized by the table name resolved
// from the ticket-type token. Table names only ever come from
// model.ResolveType, which limits them to the two known tables.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/parkonic/ticket-portal/internal/model"
)

// ErrTicketNotFound is returned when a ticket id cannot be found in the
// selected table. Handlers translate it into an HTTP 404.
var ErrTicketNotFound = errors.New("ticket not found")

// ticketCols is the full column list shared by every SELECT, in struct
// field order.
const ticketCols = "id, camera_id, zone_name, camera_ip, zone_region, spot_number, " +
	"plate_number, plate_code, plate_city, confidence, entry_time, exit_time, status, " +
	"parkonic_trip_id, image_base64, crop_image_path, entry_image_path, exit_image_path, " +
	"exit_clip_path, created_at, process_time_in, process_time_out"

// TicketRepo encapsulates all database queries related to tickets. It
// depends on a sql.DB connection which should be configured elsewhere.
type TicketRepo struct {
	db *sql.DB // db is the underlying database connection pool
}

// NewTicketRepo constructs a TicketRepo with the provided DB handle. This
// function allows dependency injection of the database in tests and at
// startup. There is no initialization logic beyond assigning the field.
func NewTicketRepo(db *sql.DB) *TicketRepo {
	return &TicketRepo{db: db}
}

// scanTicket reads one row into a Ticket. Works for both tables since the
// column lists are identical.
func scanTicket(row interface{ Scan(...any) error }) (*model.Ticket, error) {
	t := new(model.Ticket)
	err := row.Scan(
		&t.ID, &t.CameraID, &t.ZoneName, &t.CameraIP, &t.ZoneRegion, &t.SpotNumber,
		&t.PlateNumber, &t.PlateCode, &t.PlateCity, &t.Confidence, &t.EntryTime,
		&t.ExitTime, &t.Status, &t.ParkonicTripID, &t.ImageBase64, &t.CropImagePath,
		&t.EntryImagePath, &t.ExitImagePath, &t.ExitClipPath, &t.CreatedAt,
		&t.ProcessTimeIn, &t.ProcessTimeOut,
	)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// List returns all tickets in the table, newest first. Ties on created_at
// are broken by id so the ordering is deterministic. There is deliberately
// no pagination or filtering: the listing contract is a full-table scan.
func (r *TicketRepo) List(ctx context.Context, table string) ([]*model.Ticket, error) {
	q := fmt.Sprintf("SELECT %s FROM `%s` ORDER BY created_at DESC, id DESC", ticketCols, table)
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Ticket
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID fetches a ticket by its ID. It returns ErrTicketNotFound if no
// row is found.
func (r *TicketRepo) GetByID(ctx context.Context, table string, id uint64) (*model.Ticket, error) {
	q := fmt.Sprintf("SELECT %s FROM `%s` WHERE id = ?", ticketCols, table)
	t, err := scanTicket(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTicketNotFound
		}
		return nil, err
	}
	return t, nil
}

// Create inserts a new ticket into the table. On success the ticket's ID
// field is populated with the auto-generated value and a follow-up SELECT
// refreshes the record so callers receive the database-assigned created_at.
func (r *TicketRepo) Create(ctx context.Context, table string, t *model.Ticket) error {
	q := fmt.Sprintf("INSERT INTO `%s` (camera_id, zone_name, camera_ip, zone_region, "+
		"spot_number, plate_number, plate_code, plate_city, confidence, entry_time, "+
		"exit_time, status, parkonic_trip_id, image_base64, crop_image_path, "+
		"entry_image_path, exit_image_path, exit_clip_path, process_time_in, process_time_out) "+
		"VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)", table)
	res, err := r.db.ExecContext(ctx, q,
		t.CameraID, t.ZoneName, t.CameraIP, t.ZoneRegion, t.SpotNumber,
		t.PlateNumber, t.PlateCode, t.PlateCity, t.Confidence, t.EntryTime,
		t.ExitTime, t.Status, t.ParkonicTripID, t.ImageBase64, t.CropImagePath,
		t.EntryImagePath, t.ExitImagePath, t.ExitClipPath, t.ProcessTimeIn, t.ProcessTimeOut,
	)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	t.ID = uint64(id)

	fresh, err := r.GetByID(ctx, table, t.ID)
	if err != nil {
		return err
	}
	*t = *fresh
	return nil
}

// Update overwrites every mutable column of an existing ticket. Merge-patch
// semantics are applied before this call by the populate layer; the
// repository always writes the full record. created_at is never part of the
// UPDATE so the insert-time value stays stable.
func (r *TicketRepo) Update(ctx context.Context, table string, t *model.Ticket) error {
	q := fmt.Sprintf("UPDATE `%s` SET camera_id = ?, zone_name = ?, camera_ip = ?, "+
		"zone_region = ?, spot_number = ?, plate_number = ?, plate_code = ?, plate_city = ?, "+
		"confidence = ?, entry_time = ?, exit_time = ?, status = ?, parkonic_trip_id = ?, "+
		"image_base64 = ?, crop_image_path = ?, entry_image_path = ?, exit_image_path = ?, "+
		"exit_clip_path = ?, process_time_in = ?, process_time_out = ? WHERE id = ?", table)
	res, err := r.db.ExecContext(ctx, q,
		t.CameraID, t.ZoneName, t.CameraIP, t.ZoneRegion, t.SpotNumber,
		t.PlateNumber, t.PlateCode, t.PlateCity, t.Confidence, t.EntryTime,
		t.ExitTime, t.Status, t.ParkonicTripID, t.ImageBase64, t.CropImagePath,
		t.EntryImagePath, t.ExitImagePath, t.ExitClipPath, t.ProcessTimeIn,
		t.ProcessTimeOut, t.ID,
	)
	if err != nil {
		return err
	}
	// RowsAffected is zero both for a missing id and for a no-op update, so
	// existence is checked by the handler's preceding GetByID.
	if _, err := res.RowsAffected(); err != nil {
		return err
	}
	return nil
}

// Delete removes a ticket by id. ErrTicketNotFound is returned when no row
// was deleted. The delete is hard: no tombstone, no cascading effects.
func (r *TicketRepo) Delete(ctx context.Context, table string, id uint64) error {
	q := fmt.Sprintf("DELETE FROM `%s` WHERE id = ?", table)
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrTicketNotFound
	}
	return nil
}

// Count returns the number of rows in the table. Used by the one-time
// seeding step to decide whether a sample record is needed.
func (r *TicketRepo) Count(ctx context.Context, table string) (int64, error) {
	q := fmt.Sprintf("SELECT COUNT(*) FROM `%s`", table)
	var n int64
	if err := r.db.QueryRowContext(ctx, q).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
