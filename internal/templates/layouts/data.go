// data.go provides typed context helpers for passing layout data from
// handlers/middleware to Templ templates. This avoids importing plugin
// types in the layouts package — only simple types are stored.
//
// Data flow: Handler/Middleware → Echo Context → LayoutInjector → Go Context → Templ
package layouts

import "context"

// ctxKey is a private type for context keys to prevent collisions.
type ctxKey string

const (
	keyActivePath ctxKey = "layout_active_path"
	keyLoggedIn   ctxKey = "layout_logged_in"
)

// WithActivePath stores the current request path for nav highlighting.
func WithActivePath(ctx context.Context, path string) context.Context {
	return context.WithValue(ctx, keyActivePath, path)
}

// ActivePath returns the current request path for nav highlighting.
func ActivePath(ctx context.Context) string {
	path, _ := ctx.Value(keyActivePath).(string)
	return path
}

// WithLoggedIn marks whether the request carried the backend's session
// cookie. Presence only; the backend validates the credential itself.
func WithLoggedIn(ctx context.Context, loggedIn bool) context.Context {
	return context.WithValue(ctx, keyLoggedIn, loggedIn)
}

// LoggedIn reports whether the request carried the session cookie.
func LoggedIn(ctx context.Context) bool {
	loggedIn, _ := ctx.Value(keyLoggedIn).(bool)
	return loggedIn
}
