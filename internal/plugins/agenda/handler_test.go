package agenda

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mariachisn/agenda-web/internal/backend"
)

// mockStateService implements StateService with func fields.
type mockStateService struct {
	getFunc   func(visitorID string) (State, error)
	applyFunc func(visitorID string, mutate func(*State)) (State, error)
}

func (m *mockStateService) Get(ctx context.Context, visitorID string) (State, error) {
	return m.getFunc(visitorID)
}

func (m *mockStateService) Apply(ctx context.Context, visitorID string, mutate func(*State)) (State, error) {
	return m.applyFunc(visitorID, mutate)
}

func steadyState(st State) *mockStateService {
	return &mockStateService{
		getFunc: func(string) (State, error) { return st, nil },
		applyFunc: func(_ string, mutate func(*State)) (State, error) {
			mutate(&st)
			return st, nil
		},
	}
}

func eventsRequest(t *testing.T, h *Handler, start, end string) (*httptest.ResponseRecorder, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/agenda/events?start="+start+"&end="+end, nil)
	rec := httptest.NewRecorder()
	return rec, h.Events(e.NewContext(req, rec))
}

func TestEventsReturnsJSON(t *testing.T) {
	fetcher := &mockFetcher{
		statsFunc: func(filter backend.Filter, year, month int) ([]backend.StatRecord, error) {
			return []backend.StatRecord{record("15", 3)}, nil
		},
	}
	h := NewHandler(NewAdapter(fetcher), steadyState(NewState(date(2025, time.June, 1))))

	rec, err := eventsRequest(t, h, "2025-06-01", "2025-06-07")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var events []CalendarEvent
	if err := json.Unmarshal(rec.Body.Bytes(), &events); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if len(events) != 1 || events[0].ID != "stat-2025-06-15" {
		t.Fatalf("unexpected events payload: %+v", events)
	}
}

func TestEventsEmptyIsArray(t *testing.T) {
	fetcher := &mockFetcher{
		statsFunc: func(filter backend.Filter, year, month int) ([]backend.StatRecord, error) {
			return nil, nil
		},
	}
	h := NewHandler(NewAdapter(fetcher), steadyState(NewState(time.Now())))

	rec, err := eventsRequest(t, h, "2025-06-01", "2025-06-07")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if body := strings.TrimSpace(rec.Body.String()); body != "[]" {
		t.Fatalf("empty result must encode as [], got %q", body)
	}
}

func TestEventsAcceptsWidgetTimestamps(t *testing.T) {
	fetcher := &mockFetcher{
		statsFunc: func(filter backend.Filter, year, month int) ([]backend.StatRecord, error) {
			return nil, nil
		},
	}
	h := NewHandler(NewAdapter(fetcher), steadyState(NewState(time.Now())))

	// The widget sends RFC 3339 timestamps with zone offsets.
	_, err := eventsRequest(t, h, "2025-06-01T00%3A00%3A00-06%3A00", "2025-06-08T00%3A00%3A00-06%3A00")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestEventsRejectsBadRange(t *testing.T) {
	h := NewHandler(NewAdapter(&mockFetcher{}), steadyState(NewState(time.Now())))

	_, err := eventsRequest(t, h, "junk", "2025-06-07")
	assertAppError(t, err, http.StatusBadRequest)
}

func TestEventsDropsStaleResponse(t *testing.T) {
	fetcher := &mockFetcher{
		statsFunc: func(filter backend.Filter, year, month int) ([]backend.StatRecord, error) {
			return []backend.StatRecord{record("15", 3)}, nil
		},
	}

	// The generation moves between the pre-fetch and post-fetch snapshots,
	// as if the visitor navigated while the fetch was in flight.
	var gets atomic.Int64
	svc := &mockStateService{
		getFunc: func(string) (State, error) {
			st := NewState(date(2025, time.June, 1))
			st.Generation = gets.Add(1)
			return st, nil
		},
	}
	h := NewHandler(NewAdapter(fetcher), svc)

	rec, err := eventsRequest(t, h, "2025-06-01", "2025-06-07")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("stale fetch status = %d, want 204", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Fatal("stale fetch must carry no payload")
	}
}

func postRequest(t *testing.T, h func(echo.Context) error, path string, form string) (*httptest.ResponseRecorder, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	return rec, h(e.NewContext(req, rec))
}

func TestNavigateEmitsApplyTrigger(t *testing.T) {
	h := NewHandler(NewAdapter(&mockFetcher{}), steadyState(NewState(date(2025, time.June, 11))))

	rec, err := postRequest(t, h.Navigate, "/agenda/navigate", "dir=next")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	trigger := rec.Header().Get("HX-Trigger")
	if trigger == "" {
		t.Fatal("expected an HX-Trigger header")
	}
	var payload map[string]struct {
		View string `json:"view"`
		Date string `json:"date"`
	}
	if err := json.Unmarshal([]byte(trigger), &payload); err != nil {
		t.Fatalf("trigger is not JSON: %v", err)
	}
	apply, ok := payload["agenda:apply"]
	if !ok {
		t.Fatalf("missing agenda:apply event in %q", trigger)
	}
	if apply.View != string(ViewWeek) || apply.Date != "2025-06-18" {
		t.Fatalf("apply payload = %+v, want week view one week ahead", apply)
	}
}

func TestNavigateRejectsUnknownDirection(t *testing.T) {
	h := NewHandler(NewAdapter(&mockFetcher{}), steadyState(NewState(time.Now())))

	_, err := postRequest(t, h.Navigate, "/agenda/navigate", "dir=sideways")
	assertAppError(t, err, http.StatusBadRequest)
}

func TestChangeViewRejectsUnknownView(t *testing.T) {
	h := NewHandler(NewAdapter(&mockFetcher{}), steadyState(NewState(time.Now())))

	_, err := postRequest(t, h.ChangeView, "/agenda/view", "view=decade")
	assertAppError(t, err, http.StatusBadRequest)
}

func TestOpenPanelValidatesInput(t *testing.T) {
	h := NewHandler(NewAdapter(&mockFetcher{}), steadyState(NewState(time.Now())))

	if _, err := postRequest(t, h.OpenPanel, "/agenda/panel", "date=notadate&total=3"); err == nil {
		t.Error("expected error for bad date")
	}
	if _, err := postRequest(t, h.OpenPanel, "/agenda/panel", "date=2025-06-15&total=-1"); err == nil {
		t.Error("expected error for negative total")
	}
}

func TestVisitorCookieMinted(t *testing.T) {
	fetcher := &mockFetcher{
		statsFunc: func(filter backend.Filter, year, month int) ([]backend.StatRecord, error) {
			return nil, nil
		},
	}
	h := NewHandler(NewAdapter(fetcher), steadyState(NewState(time.Now())))

	rec, err := eventsRequest(t, h, "2025-06-01", "2025-06-07")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var minted bool
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == visitorCookie && ck.Value != "" {
			minted = true
		}
	}
	if !minted {
		t.Error("first contact must set the visitor cookie")
	}
}
