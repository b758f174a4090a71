package reports

import (
	"github.com/labstack/echo/v4"

	"github.com/mariachisn/agenda-web/internal/middleware"
)

// RegisterRoutes sets up the reports plugin's routes. Everything requires
// the backend's session cookie; the backend rejects the actual data calls
// if the credential is stale.
func RegisterRoutes(e *echo.Echo, h *Handler, sessionCookie string) {
	g := e.Group("/reports", middleware.RequireCredential(sessionCookie))
	g.GET("", h.Page)
	g.GET("/download", h.Download)
}
