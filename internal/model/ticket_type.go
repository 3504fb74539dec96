package model

import (
	"errors"
	"strings"
)

// ErrUnknownTicketType is returned when a route carries a ticket-type token
// other than "ocr" or "omc". Handlers translate it into an HTTP 404.
var ErrUnknownTicketType = errors.New("unknown ticket type")

// ticketTables maps a normalised ticket-type token to its table name. The
// two tables are schema duplicates; the token is the only discriminator.
var ticketTables = map[string]string{
	"ocr": "ocr_ticket",
	"omc": "omc_ticket",
}

// ResolveType validates a ticket-type token from the URL path and returns
// the table that stores records of that type. Matching is case-insensitive
// and strict: anything outside {ocr, omc} is ErrUnknownTicketType.
func ResolveType(token string) (string, error) {
	table, ok := ticketTables[strings.ToLower(token)]
	if !ok {
		return "", ErrUnknownTicketType
	}
	return table, nil
}

// TypeLabel returns the display label for a ticket-type token ("OCR" or
// "OMC"). Callers must have validated the token via ResolveType first.
func TypeLabel(token string) string {
	if strings.EqualFold(token, "ocr") {
		return "OCR"
	}
	return "OMC"
}
