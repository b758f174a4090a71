package agenda

import (
	"github.com/labstack/echo/v4"

	"github.com/mariachisn/agenda-web/internal/middleware"
)

// RegisterRoutes sets up the agenda page, its events feed, and the HTMX
// endpoints driving the toolbar and detail panel. Everything requires the
// backend session cookie; its validation is the backend's job.
func RegisterRoutes(e *echo.Echo, h *Handler, sessionCookie string) {
	g := e.Group("/agenda", middleware.RequireCredential(sessionCookie))

	g.GET("", h.Page)
	g.GET("/events", h.Events)
	g.POST("/navigate", h.Navigate)
	g.POST("/view", h.ChangeView)
	g.POST("/panel", h.OpenPanel)
	g.POST("/panel/close", h.ClosePanel)
}
