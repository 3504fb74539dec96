package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/parkonic/ticket-portal/internal/model"
	"github.com/parkonic/ticket-portal/internal/repository"
)

// APIListTickets handles GET /api/:type/tickets and returns every ticket of
// the type as a JSON array, newest first.
func (h *TicketHandler) APIListTickets(c echo.Context) error {
	_, table, err := resolveType(c)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "unknown ticket type"})
	}
	tickets, err := h.Store.List(c.Request().Context(), table)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	out := make([]map[string]any, 0, len(tickets))
	for _, t := range tickets {
		out = append(out, t.AsMap())
	}
	return c.JSON(http.StatusOK, out)
}

// APICreateTicket handles POST /api/:type/tickets. The body may be JSON or
// form data (multipart uploads included); malformed integer or timestamp
// values coerce silently to null.
func (h *TicketHandler) APICreateTicket(c echo.Context) error {
	token, table, err := resolveType(c)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "unknown ticket type"})
	}
	src, err := payloadSource(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	t := new(model.Ticket)
	model.Populate(t, src)
	if err := h.applyUploads(c, token, t); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not store upload"})
	}
	if err := h.Store.Create(c.Request().Context(), table, t); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create ticket"})
	}
	h.emitEvent(c, "created", token, t)
	return c.JSON(http.StatusCreated, t.AsMap())
}

// APIGetTicket handles GET /api/:type/tickets/:id.
func (h *TicketHandler) APIGetTicket(c echo.Context) error {
	_, table, err := resolveType(c)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "unknown ticket type"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	t, err := h.Store.GetByID(c.Request().Context(), table, id)
	if err != nil {
		if errors.Is(err, repository.ErrTicketNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "ticket not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, t.AsMap())
}

// APIUpdateTicket handles PUT /api/:type/tickets/:id with merge-patch
// semantics: a key absent from the payload keeps its stored value, a key
// present with an explicit null clears the field.
func (h *TicketHandler) APIUpdateTicket(c echo.Context) error {
	token, table, err := resolveType(c)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "unknown ticket type"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	t, err := h.Store.GetByID(c.Request().Context(), table, id)
	if err != nil {
		if errors.Is(err, repository.ErrTicketNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "ticket not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	src, err := payloadSource(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	model.Populate(t, src)
	if err := h.applyUploads(c, token, t); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not store upload"})
	}
	if err := h.Store.Update(c.Request().Context(), table, t); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	h.emitEvent(c, "updated", token, t)
	return c.JSON(http.StatusOK, t.AsMap())
}

// APIDeleteTicket handles DELETE /api/:type/tickets/:id and answers 204 on
// success.
func (h *TicketHandler) APIDeleteTicket(c echo.Context) error {
	token, table, err := resolveType(c)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "unknown ticket type"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.Store.Delete(c.Request().Context(), table, id); err != nil {
		if errors.Is(err, repository.ErrTicketNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "ticket not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	h.emitEvent(c, "deleted", token, &model.Ticket{ID: id})
	return c.NoContent(http.StatusNoContent)
}
