// Package router defines how HTTP routes are registered for the portal.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/parkonic/ticket-portal/internal/handler"
)

// RegisterRoutes wires every route onto the provided Echo instance: the
// health check, static asset serving, the browser-facing HTML pages and
// the parallel JSON API. The :type segment is resolved inside each handler
// so unknown ticket types surface as 404s.
func RegisterRoutes(e *echo.Echo, h *handler.TicketHandler, staticDir string) {
	// Health check for load balancers and monitoring.
	e.GET("/healthz", handler.Health)

	// Uploaded images are served straight from the static root.
	e.Static("/static", staticDir)

	// HTML routes. The root redirects to the OCR list.
	e.GET("/", h.Home)
	e.GET("/:type/tickets", h.ListTickets)
	e.GET("/:type/tickets/new", h.NewTicket)
	e.POST("/:type/tickets/new", h.NewTicket)
	e.GET("/:type/tickets/:id/edit", h.EditTicket)
	e.POST("/:type/tickets/:id/edit", h.EditTicket)
	e.POST("/:type/tickets/:id/delete", h.DeleteTicket)

	// JSON API mirrors the HTML operations one to one.
	api := e.Group("/api")
	api.GET("/:type/tickets", h.APIListTickets)
	api.POST("/:type/tickets", h.APICreateTicket)
	api.GET("/:type/tickets/:id", h.APIGetTicket)
	api.PUT("/:type/tickets/:id", h.APIUpdateTicket)
	api.DELETE("/:type/tickets/:id", h.APIDeleteTicket)
}
