package queue

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatEventLine(t *testing.T) {
	line := FormatEventLine(TicketEvent{
		Action:      "created",
		TicketType:  "OCR",
		TicketID:    3,
		PlateNumber: "ABC123",
		Status:      "open",
		OccurredAt:  "2024-03-01T09:00:00Z",
	})
	assert.Equal(t, "2024-03-01T09:00:00Z OCR ticket #3 created plate=ABC123 status=open", line)
}

func TestFormatEventLineOmitsEmptyFields(t *testing.T) {
	line := FormatEventLine(TicketEvent{
		Action:     "deleted",
		TicketType: "OMC",
		TicketID:   9,
		OccurredAt: "2024-03-01T09:00:00Z",
	})
	assert.Equal(t, "2024-03-01T09:00:00Z OMC ticket #9 deleted", line)
}
