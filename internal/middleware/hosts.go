package middleware

import (
	"net"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/mariachisn/agenda-web/internal/apperror"
)

// AllowedHosts returns middleware that rejects requests whose Host header
// is not in the configured list, mirroring the hosts the deployment's
// proxy is supposed to expose. An empty list allows everything, which is
// the development default.
func AllowedHosts(hosts []string) echo.MiddlewareFunc {
	allowed := make(map[string]bool, len(hosts))
	for _, h := range hosts {
		allowed[strings.ToLower(h)] = true
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if len(allowed) == 0 {
				return next(c)
			}

			host := strings.ToLower(c.Request().Host)
			// Strip the port; the list names hosts, not host:port pairs.
			if h, _, err := net.SplitHostPort(host); err == nil {
				host = h
			}

			if !allowed[host] {
				return apperror.NewBadRequest("unknown host")
			}
			return next(c)
		}
	}
}
