// Package handler contains the HTTP handlers for the ticket portal: the
// browser-facing HTML routes and the parallel JSON API. Both speak to the
// store through the TicketStore interface so tests can substitute a mock.
package handler

import (
	"context"
	"io"
	"log"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/parkonic/ticket-portal/internal/flash"
	"github.com/parkonic/ticket-portal/internal/model"
	"github.com/parkonic/ticket-portal/internal/queue"
	"github.com/parkonic/ticket-portal/internal/storage"
)

// TicketStore is the persistence surface the handlers depend on. It is
// implemented by repository.TicketRepo; the table argument is the table
// name resolved from the ticket-type token.
type TicketStore interface {
	List(ctx context.Context, table string) ([]*model.Ticket, error)
	GetByID(ctx context.Context, table string, id uint64) (*model.Ticket, error)
	Create(ctx context.Context, table string, t *model.Ticket) error
	Update(ctx context.Context, table string, t *model.Ticket) error
	Delete(ctx context.Context, table string, id uint64) error
}

// TicketHandler serves every ticket route. Publish may be nil to disable
// event emission (it is wired to the RabbitMQ publisher in main).
type TicketHandler struct {
	Store   TicketStore
	Saver   *storage.Saver
	Flashes *flash.Store
	Publish func(ctx context.Context, ev queue.TicketEvent) error
}

// resolveType reads the :type route parameter and maps it onto a table
// name. An unknown token is the not-found condition for every route.
func resolveType(c echo.Context) (token, table string, err error) {
	token = c.Param("type")
	table, err = model.ResolveType(token)
	return token, table, err
}

// payloadSource builds the populate source for the current request: JSON
// bodies become a key-presence-aware JSONSource, everything else is read as
// form data (urlencoded or multipart).
func payloadSource(c echo.Context) (model.PayloadSource, error) {
	ctype := c.Request().Header.Get(echo.HeaderContentType)
	if strings.HasPrefix(ctype, echo.MIMEApplicationJSON) {
		body, err := io.ReadAll(c.Request().Body)
		if err != nil {
			return nil, err
		}
		return model.DecodeJSON(body)
	}
	values, err := c.FormParams()
	if err != nil {
		return nil, err
	}
	return model.FormSource{Values: values}, nil
}

// applyUploads saves any uploaded image files and writes their relative
// paths into the ticket. Uploads run after Populate so a stored file always
// wins over a textual path supplied for the same field.
func (h *TicketHandler) applyUploads(c echo.Context, token string, t *model.Ticket) error {
	for category := range storage.Categories {
		fh, err := c.FormFile(category + "_image")
		if err != nil {
			continue // field absent or the request is not multipart
		}
		rel, err := h.Saver.Save(token, category, fh)
		if err != nil {
			return err
		}
		switch category {
		case "entry":
			t.EntryImagePath.SetValid(rel)
		case "exit":
			t.ExitImagePath.SetValid(rel)
		case "crop":
			t.CropImagePath.SetValid(rel)
		}
	}
	return nil
}

// emitEvent publishes a ticket lifecycle event best-effort. Publish
// failures are already logged by the publisher; they never affect the
// response.
func (h *TicketHandler) emitEvent(c echo.Context, action, token string, t *model.Ticket) {
	if h.Publish == nil {
		return
	}
	ev := queue.TicketEvent{
		Action:     action,
		TicketType: model.TypeLabel(token),
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	}
	if t != nil {
		ev.TicketID = t.ID
		ev.PlateNumber = t.PlateNumber.ValueOrZero()
		ev.Status = t.Status.ValueOrZero()
	}
	if err := h.Publish(c.Request().Context(), ev); err != nil {
		log.Printf("ticket event %s/%s dropped: %v", token, action, err)
	}
}
