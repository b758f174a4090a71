package backend

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mariachisn/agenda-web/internal/apperror"
	"github.com/mariachisn/agenda-web/internal/config"
)

func newTestClient(baseURL string) *Client {
	return NewClient(config.APIConfig{BaseURL: baseURL, Timeout: 2 * time.Second})
}

func TestStats_MonthRequestParams(t *testing.T) {
	var gotPath string
	var gotQuery map[string]string
	var gotCookie string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = map[string]string{
			"filterType": r.URL.Query().Get("filterType"),
			"year":       r.URL.Query().Get("year"),
			"month":      r.URL.Query().Get("month"),
		}
		if ck, err := r.Cookie("session"); err == nil {
			gotCookie = ck.Value
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"label": "15", "total_events": 3}]`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	cookies := []*http.Cookie{{Name: "session", Value: "abc123"}}
	records, err := c.Stats(context.Background(), FilterMonth, 2025, 6, cookies)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotPath != "/api/reservations/stats/calendar" {
		t.Errorf("expected stats path under /api, got %s", gotPath)
	}
	if gotQuery["filterType"] != "month" || gotQuery["year"] != "2025" || gotQuery["month"] != "6" {
		t.Errorf("unexpected query params: %v", gotQuery)
	}
	if gotCookie != "abc123" {
		t.Errorf("expected session cookie forwarded, got %q", gotCookie)
	}

	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0].Label != "15" || records[0].TotalEvents != 3 {
		t.Errorf("unexpected record: %+v", records[0])
	}
}

func TestStats_YearOmitsMonth(t *testing.T) {
	var hasMonth bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hasMonth = r.URL.Query().Has("month")
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	if _, err := c.Stats(context.Background(), FilterYear, 2025, 6, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hasMonth {
		t.Error("year request must not include a month parameter")
	}
}

func TestStats_NumericLabel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"label": 7, "total_events": 1}]`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	records, err := c.Stats(context.Background(), FilterMonth, 2025, 6, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	day, err := records[0].Label.Day()
	if err != nil {
		t.Fatalf("unexpected label parse error: %v", err)
	}
	if day != 7 {
		t.Errorf("expected day 7, got %d", day)
	}
}

func TestStats_LegacyShape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"label": "3", "total_events": 0, "nombre_reserva": "Boda García",
			"fecha_inicio": "2025-06-03", "fecha_fin": "2025-06-03"}]`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	records, err := c.Stats(context.Background(), FilterMonth, 2025, 6, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if records[0].NombreReserva != "Boda García" {
		t.Errorf("expected legacy name decoded, got %q", records[0].NombreReserva)
	}
}

func TestStats_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	_, err := c.Stats(context.Background(), FilterMonth, 2025, 6, nil)
	assertAppError(t, err, http.StatusBadGateway)
}

func TestStats_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	_, err := c.Stats(context.Background(), FilterMonth, 2025, 6, nil)
	assertAppError(t, err, http.StatusUnauthorized)
}

func TestStats_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // Nothing listening anymore.

	c := newTestClient(srv.URL)
	_, err := c.Stats(context.Background(), FilterMonth, 2025, 6, nil)
	assertAppError(t, err, http.StatusBadGateway)
}

func TestStats_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"not": "a list"}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	_, err := c.Stats(context.Background(), FilterMonth, 2025, 6, nil)
	assertAppError(t, err, http.StatusBadGateway)
}

// assertAppError checks that err is an *apperror.AppError with the expected code.
func assertAppError(t *testing.T, err error, expectedCode int) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with code %d, got nil", expectedCode)
	}
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *apperror.AppError, got %T: %v", err, err)
	}
	if appErr.Code != expectedCode {
		t.Errorf("expected status %d, got %d (message: %s)", expectedCode, appErr.Code, appErr.Message)
	}
}
