package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/parkonic/ticket-portal/internal/model"
	"github.com/parkonic/ticket-portal/internal/repository"
)

// Home handles GET / and redirects to the OCR ticket list.
func (h *TicketHandler) Home(c echo.Context) error {
	return c.Redirect(http.StatusFound, "/ocr/tickets")
}

// listURL builds the list-page path for a ticket-type token.
func listURL(token string) string {
	return fmt.Sprintf("/%s/tickets", token)
}

// pageData assembles the template context shared by every HTML page.
func (h *TicketHandler) pageData(c echo.Context, token string) map[string]any {
	return map[string]any{
		"TicketType": token,
		"Label":      model.TypeLabel(token),
		"Flashes":    h.Flashes.Pop(c),
	}
}

// ListTickets handles GET /:type/tickets and renders the ticket table,
// newest first.
func (h *TicketHandler) ListTickets(c echo.Context) error {
	token, table, err := resolveType(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound)
	}
	tickets, err := h.Store.List(c.Request().Context(), table)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "db error")
	}
	data := h.pageData(c, token)
	data["Tickets"] = tickets
	return c.Render(http.StatusOK, "tickets.html", data)
}

// NewTicket handles GET and POST /:type/tickets/new: the empty form on GET,
// record creation plus redirect to the list on POST.
func (h *TicketHandler) NewTicket(c echo.Context) error {
	token, table, err := resolveType(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound)
	}
	if c.Request().Method == http.MethodGet {
		data := h.pageData(c, token)
		data["Ticket"] = (*model.Ticket)(nil)
		return c.Render(http.StatusOK, "ticket_form.html", data)
	}

	src, err := payloadSource(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form data")
	}
	t := new(model.Ticket)
	model.Populate(t, src)
	if err := h.applyUploads(c, token, t); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "could not store upload")
	}
	if err := h.Store.Create(c.Request().Context(), table, t); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "could not create ticket")
	}
	h.emitEvent(c, "created", token, t)
	h.Flashes.Add(c, "success", fmt.Sprintf("%s ticket created", model.TypeLabel(token)))
	return c.Redirect(http.StatusSeeOther, listURL(token))
}

// EditTicket handles GET and POST /:type/tickets/:id/edit: the pre-filled
// form on GET, a merge-patch update plus redirect on POST.
func (h *TicketHandler) EditTicket(c echo.Context) error {
	token, table, err := resolveType(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound)
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound)
	}
	t, err := h.Store.GetByID(c.Request().Context(), table, id)
	if err != nil {
		if errors.Is(err, repository.ErrTicketNotFound) {
			return echo.NewHTTPError(http.StatusNotFound)
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if c.Request().Method == http.MethodGet {
		data := h.pageData(c, token)
		data["Ticket"] = t
		return c.Render(http.StatusOK, "ticket_form.html", data)
	}

	src, err := payloadSource(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form data")
	}
	model.Populate(t, src)
	if err := h.applyUploads(c, token, t); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "could not store upload")
	}
	if err := h.Store.Update(c.Request().Context(), table, t); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "update failed")
	}
	h.emitEvent(c, "updated", token, t)
	h.Flashes.Add(c, "success", fmt.Sprintf("%s ticket updated", model.TypeLabel(token)))
	return c.Redirect(http.StatusSeeOther, listURL(token))
}

// DeleteTicket handles POST /:type/tickets/:id/delete and redirects back to
// the list.
func (h *TicketHandler) DeleteTicket(c echo.Context) error {
	token, table, err := resolveType(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound)
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound)
	}
	if err := h.Store.Delete(c.Request().Context(), table, id); err != nil {
		if errors.Is(err, repository.ErrTicketNotFound) {
			return echo.NewHTTPError(http.StatusNotFound)
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "delete failed")
	}
	h.emitEvent(c, "deleted", token, &model.Ticket{ID: id})
	h.Flashes.Add(c, "info", fmt.Sprintf("%s ticket deleted", model.TypeLabel(token)))
	return c.Redirect(http.StatusSeeOther, listURL(token))
}
