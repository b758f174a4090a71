// Package auth serves the login page. Authentication itself is delegated:
// credentials go to the reservation backend through the /api pass-through
// and come back as its session cookie. This plugin never sees a password.
package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mariachisn/agenda-web/internal/middleware"
	"github.com/mariachisn/agenda-web/internal/templates/pages"
)

// Handler processes HTTP requests for the auth plugin.
type Handler struct{}

// NewHandler creates a new auth Handler.
func NewHandler() *Handler {
	return &Handler{}
}

// LoginPage renders the credential form.
// GET /login
func (h *Handler) LoginPage(c echo.Context) error {
	return middleware.Render(c, http.StatusOK, pages.Login())
}
