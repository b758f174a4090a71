package agenda

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/mariachisn/agenda-web/internal/apperror"
	"github.com/mariachisn/agenda-web/internal/middleware"
)

// visitorCookie identifies a browser for UI state storage only. It is not
// a credential; the backend's session cookie handles authentication.
const visitorCookie = "agenda_uid"

// Handler processes HTTP requests for the agenda plugin.
type Handler struct {
	adapter *Adapter
	state   StateService
}

// NewHandler creates a new agenda Handler.
func NewHandler(adapter *Adapter, state StateService) *Handler {
	return &Handler{adapter: adapter, state: state}
}

// visitorID returns the visitor's state id, minting and setting the cookie
// on first contact.
func (h *Handler) visitorID(c echo.Context) string {
	if ck, err := c.Cookie(visitorCookie); err == nil && ck.Value != "" {
		return ck.Value
	}
	id := uuid.NewString()
	c.SetCookie(&http.Cookie{
		Name:     visitorCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

// Page renders the agenda page.
// GET /agenda
func (h *Handler) Page(c echo.Context) error {
	st, err := h.state.Get(c.Request().Context(), h.visitorID(c))
	if err != nil {
		return err
	}
	return middleware.Render(c, http.StatusOK, AgendaPage(st))
}

// Events returns calendar events for the widget's requested visible range.
// GET /agenda/events?start=...&end=...
//
// The fetch generation is snapshotted before the upstream calls; if the
// visitor navigated while the fetch was in flight, the stale result is
// dropped with 204 so it can never replace newer data.
func (h *Handler) Events(c echo.Context) error {
	r, err := parseRange(c.QueryParam("start"), c.QueryParam("end"))
	if err != nil {
		return apperror.NewBadRequest("invalid start/end range")
	}

	ctx := c.Request().Context()
	visitor := h.visitorID(c)

	before, err := h.state.Get(ctx, visitor)
	if err != nil {
		return err
	}

	events, err := h.adapter.EventsForRange(ctx, r, c.Request().Cookies())
	if err != nil {
		return err
	}

	after, err := h.state.Get(ctx, visitor)
	if err != nil {
		return err
	}
	if after.Generation != before.Generation {
		return c.NoContent(http.StatusNoContent)
	}

	if events == nil {
		events = []CalendarEvent{}
	}
	return c.JSON(http.StatusOK, events)
}

// Navigate moves the calendar one step back or forward, or to today.
// POST /agenda/navigate (dir=prev|next|today)
func (h *Handler) Navigate(c echo.Context) error {
	dir := param(c, "dir")
	if dir != DirPrev && dir != DirNext && dir != DirToday {
		return apperror.NewBadRequest("unknown navigation direction")
	}

	st, err := h.state.Apply(c.Request().Context(), h.visitorID(c), func(s *State) {
		s.Navigate(dir, time.Now())
	})
	if err != nil {
		return err
	}
	applyTrigger(c, st)
	return middleware.Render(c, http.StatusOK, ControlsFragment(st))
}

// ChangeView switches between day, week, month and year views.
// POST /agenda/view (view=day|week|month|year)
func (h *Handler) ChangeView(c echo.Context) error {
	view, ok := ParseView(param(c, "view"))
	if !ok {
		return apperror.NewBadRequest("unknown view")
	}

	st, err := h.state.Apply(c.Request().Context(), h.visitorID(c), func(s *State) {
		s.ChangeView(view)
	})
	if err != nil {
		return err
	}
	applyTrigger(c, st)
	return middleware.Render(c, http.StatusOK, ControlsFragment(st))
}

// OpenPanel handles an event click: day view at the clicked date plus the
// detail panel.
// POST /agenda/panel (date=YYYY-MM-DD, total=N)
func (h *Handler) OpenPanel(c echo.Context) error {
	date, err := time.Parse("2006-01-02", param(c, "date"))
	if err != nil {
		return apperror.NewBadRequest("invalid panel date")
	}
	total, err := strconv.Atoi(param(c, "total"))
	if err != nil || total < 0 {
		return apperror.NewBadRequest("invalid reservation total")
	}

	st, err := h.state.Apply(c.Request().Context(), h.visitorID(c), func(s *State) {
		s.OpenPanel(date, total)
	})
	if err != nil {
		return err
	}
	applyTrigger(c, st)
	return middleware.Render(c, http.StatusOK, ControlsFragment(st))
}

// ClosePanel hides the detail panel, keeping its last content.
// POST /agenda/panel/close
func (h *Handler) ClosePanel(c echo.Context) error {
	st, err := h.state.Apply(c.Request().Context(), h.visitorID(c), func(s *State) {
		s.ClosePanel()
	})
	if err != nil {
		return err
	}
	return middleware.Render(c, http.StatusOK, ControlsFragment(st))
}

// applyTrigger tells the page, via an HTMX trigger event, to point the
// widget at the state's view and date. The widget refetches on its own
// when the visible range changes.
func applyTrigger(c echo.Context, st State) {
	payload, err := json.Marshal(map[string]any{
		"agenda:apply": map[string]string{
			"view": string(st.View),
			"date": st.Current.Format("2006-01-02"),
		},
	})
	if err != nil {
		return
	}
	c.Response().Header().Set("HX-Trigger", string(payload))
}

// param reads a value from the form body or, failing that, the query string.
func param(c echo.Context, name string) string {
	if v := c.FormValue(name); v != "" {
		return v
	}
	return c.QueryParam(name)
}

// parseRange parses the widget's start/end query values, which arrive as
// RFC 3339 timestamps or plain dates depending on the event source.
func parseRange(start, end string) (DateRange, error) {
	s, err := parseWidgetTime(start)
	if err != nil {
		return DateRange{}, err
	}
	e, err := parseWidgetTime(end)
	if err != nil {
		return DateRange{}, err
	}
	return DateRange{Start: s, End: e}, nil
}

func parseWidgetTime(v string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", v)
}
