// Package queue defines message payloads exchanged over the message broker.
package queue

// TicketEvent is published after a ticket is created, updated or deleted.
// It carries enough information for downstream consumers to log or trigger
// follow-up processing without querying the primary database.
type TicketEvent struct {
	Action      string `json:"action"` // "created", "updated" or "deleted"
	TicketType  string `json:"ticket_type"`
	TicketID    uint64 `json:"ticket_id"`
	PlateNumber string `json:"plate_number,omitempty"`
	Status      string `json:"status,omitempty"`
	OccurredAt  string `json:"occurred_at"`
}
