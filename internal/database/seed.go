package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"gopkg.in/guregu/null.v3"

	"github.com/parkonic/ticket-portal/internal/model"
	"github.com/parkonic/ticket-portal/internal/repository"
)

// Seed inserts one sample ticket per table, but only when that table is
// currently empty. It runs exactly once at startup, after Migrate; once a
// table has any row the step is a no-op on every later restart.
func Seed(ctx context.Context, db *sql.DB) error {
	repo := repository.NewTicketRepo(db)

	samples := map[string]*model.Ticket{
		"ocr_ticket": {
			CameraID:      null.IntFrom(101),
			ZoneName:      null.StringFrom("A1"),
			CameraIP:      null.StringFrom("192.168.0.10"),
			ZoneRegion:    null.StringFrom("North"),
			SpotNumber:    null.IntFrom(12),
			PlateNumber:   null.StringFrom("ABC123"),
			PlateCode:     null.StringFrom("DXB"),
			PlateCity:     null.StringFrom("Dubai"),
			Confidence:    null.IntFrom(92),
			EntryTime:     null.TimeFrom(time.Now().UTC()),
			Status:        null.StringFrom("open"),
			CropImagePath: null.StringFrom("/tmp/crop.jpg"),
		},
		"omc_ticket": {
			CameraID:       null.IntFrom(201),
			ZoneName:       null.StringFrom("B2"),
			CameraIP:       null.StringFrom("192.168.0.11"),
			ZoneRegion:     null.StringFrom("South"),
			SpotNumber:     null.IntFrom(5),
			PlateNumber:    null.StringFrom("XYZ789"),
			PlateCode:      null.StringFrom("AUH"),
			PlateCity:      null.StringFrom("Abu Dhabi"),
			Confidence:     null.IntFrom(87),
			EntryTime:      null.TimeFrom(time.Now().UTC()),
			Status:         null.StringFrom("pending"),
			EntryImagePath: null.StringFrom("/tmp/entry.jpg"),
		},
	}

	for _, table := range TicketTables {
		n, err := repo.Count(ctx, table)
		if err != nil {
			return fmt.Errorf("count %s: %w", table, err)
		}
		if n > 0 {
			continue
		}
		if err := repo.Create(ctx, table, samples[table]); err != nil {
			return fmt.Errorf("seed %s: %w", table, err)
		}
		log.Printf("seeded %s with sample ticket #%d", table, samples[table].ID)
	}
	return nil
}
