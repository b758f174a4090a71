package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RequireCredential returns middleware that gates a route group on the
// presence of the backend's session cookie. The front-end never validates
// the credential — that is the backend's job on every proxied call — it
// only sends cookie-less visitors to the login page instead of letting
// them load pages whose data requests would all fail.
func RequireCredential(cookieName string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if ck, err := c.Cookie(cookieName); err == nil && ck.Value != "" {
				return next(c)
			}
			return handleUnauthenticated(c)
		}
	}
}

// handleUnauthenticated returns the appropriate response for requests
// without a session cookie: redirect for browsers, 401 JSON for data
// requests, HX-Redirect for HTMX.
func handleUnauthenticated(c echo.Context) error {
	if WantsJSON(c) {
		return c.JSON(http.StatusUnauthorized, map[string]string{
			"error":   "unauthorized",
			"message": "authentication required",
		})
	}

	if IsHTMX(c) {
		c.Response().Header().Set("HX-Redirect", "/login")
		return c.NoContent(http.StatusNoContent)
	}

	return c.Redirect(http.StatusSeeOther, "/login")
}
