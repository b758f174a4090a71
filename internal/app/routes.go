package app

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/mariachisn/agenda-web/internal/middleware"
	"github.com/mariachisn/agenda-web/internal/plugins/agenda"
	"github.com/mariachisn/agenda-web/internal/plugins/auth"
	"github.com/mariachisn/agenda-web/internal/plugins/reports"
	"github.com/mariachisn/agenda-web/internal/templates/layouts"
	"github.com/mariachisn/agenda-web/internal/templates/pages"
)

// RegisterRoutes sets up all application routes: the public pages, the
// agenda and reports plugins, and the credentialed API pass-through.
//
// This is the single place where all routes are aggregated.
func (a *App) RegisterRoutes() {
	e := a.Echo
	sessionCookie := a.Config.API.SessionCookie

	// Copy per-request data into the template context so layouts can render
	// the navigation without importing plugin types.
	middleware.LayoutInjector = func(c echo.Context, ctx context.Context) context.Context {
		ctx = layouts.WithActivePath(ctx, c.Request().URL.Path)
		loggedIn := false
		if ck, err := c.Cookie(sessionCookie); err == nil && ck.Value != "" {
			loggedIn = true
		}
		return layouts.WithLoggedIn(ctx, loggedIn)
	}

	// --- Public routes ---

	// Landing page.
	e.GET("/", func(c echo.Context) error {
		return middleware.Render(c, http.StatusOK, pages.Landing())
	})

	// Health check endpoint for container health monitoring.
	e.GET("/healthz", a.health)

	// Login page (the credentials themselves go to the backend through the
	// API pass-through below).
	auth.RegisterRoutes(e, auth.NewHandler())

	// --- Agenda plugin ---
	adapter := agenda.NewAdapter(a.Backend)
	stateRepo := agenda.NewStateRepository(a.Redis, a.Config.State.TTL)
	stateSvc := agenda.NewStateService(stateRepo)
	agenda.RegisterRoutes(e, agenda.NewHandler(adapter, stateSvc), sessionCookie)

	// --- Reports plugin ---
	reports.RegisterRoutes(e, reports.NewHandler(adapter), sessionCookie)

	// --- Remaining page entry points ---
	// Shells whose data calls ride the API pass-through.
	authed := e.Group("", middleware.RequireCredential(sessionCookie))
	authed.GET("/control-panel", func(c echo.Context) error {
		return middleware.Render(c, http.StatusOK, pages.ControlPanel())
	})
	authed.GET("/registro-evento", func(c echo.Context) error {
		return middleware.Render(c, http.StatusOK, pages.RegistroEvento())
	})

	// --- API pass-through ---
	a.registerAPIProxy()
}

// registerAPIProxy forwards /api/* to the backend unchanged, cookies in
// both directions included, so page scripts call the API same-origin and
// the backend keeps owning authentication. The backend's auth endpoints
// get a per-IP rate limit in front to slow brute-force attempts.
func (a *App) registerAPIProxy() {
	target, err := url.Parse(a.Config.API.BaseURL)
	if err != nil {
		// Config.Load validated the URL; this cannot happen at runtime.
		panic(err)
	}

	proxy := echomw.Proxy(echomw.NewRoundRobinBalancer([]*echomw.ProxyTarget{
		{URL: target},
	}))

	authAPI := a.Echo.Group("/api/auth")
	authAPI.Use(middleware.RateLimit(10, time.Minute), proxy)

	api := a.Echo.Group("/api")
	api.Use(proxy)
}

// health reports liveness: the server answers and its state store is
// reachable. The reservation backend is deliberately not probed here; its
// outages surface per-request and must not mark this process unhealthy.
func (a *App) health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()

	if err := a.Redis.Ping(ctx).Err(); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status": "degraded",
			"state":  "unreachable",
		})
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
