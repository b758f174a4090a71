package auth

import "github.com/labstack/echo/v4"

// RegisterRoutes sets up the auth plugin's routes.
func RegisterRoutes(e *echo.Echo, h *Handler) {
	e.GET("/login", h.LoginPage)
}
