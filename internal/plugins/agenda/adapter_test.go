package agenda

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/mariachisn/agenda-web/internal/apperror"
	"github.com/mariachisn/agenda-web/internal/backend"
)

// mockFetcher records every stats request and answers from a func field.
// The mutex matters: year ranges fan out across goroutines.
type mockFetcher struct {
	mu    sync.Mutex
	calls []fetchCall

	statsFunc func(filter backend.Filter, year, month int) ([]backend.StatRecord, error)
}

type fetchCall struct {
	filter backend.Filter
	year   int
	month  int
}

func (m *mockFetcher) Stats(ctx context.Context, filter backend.Filter, year, month int, cookies []*http.Cookie) ([]backend.StatRecord, error) {
	m.mu.Lock()
	m.calls = append(m.calls, fetchCall{filter: filter, year: year, month: month})
	m.mu.Unlock()
	return m.statsFunc(filter, year, month)
}

func (m *mockFetcher) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func record(label string, total int) backend.StatRecord {
	return backend.StatRecord{Label: backend.DayLabel(label), TotalEvents: total}
}

func TestEventsForRange_YearSpanIssuesTwelveRequests(t *testing.T) {
	fetcher := &mockFetcher{
		statsFunc: func(filter backend.Filter, year, month int) ([]backend.StatRecord, error) {
			return nil, nil
		},
	}
	adapter := NewAdapter(fetcher)

	// Full calendar year: well over the 100-day granularity threshold.
	r := DateRange{Start: date(2025, time.January, 1), End: date(2025, time.December, 31)}

	_, err := adapter.EventsForRange(context.Background(), r, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := fetcher.callCount(); got != 12 {
		t.Fatalf("expected 12 requests, got %d", got)
	}
	seen := make(map[int]bool)
	for _, call := range fetcher.calls {
		if call.year != 2025 {
			t.Errorf("expected year 2025, got %d", call.year)
		}
		if seen[call.month] {
			t.Errorf("month %d requested twice", call.month)
		}
		seen[call.month] = true
	}
	for m := 1; m <= 12; m++ {
		if !seen[m] {
			t.Errorf("month %d never requested", m)
		}
	}
}

func TestEventsForRange_ShortSpanIssuesOneRequest(t *testing.T) {
	fetcher := &mockFetcher{
		statsFunc: func(filter backend.Filter, year, month int) ([]backend.StatRecord, error) {
			return nil, nil
		},
	}
	adapter := NewAdapter(fetcher)

	// One week in June: month granularity for the midpoint's month.
	r := DateRange{Start: date(2025, time.June, 1), End: date(2025, time.June, 7)}

	_, err := adapter.EventsForRange(context.Background(), r, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := fetcher.callCount(); got != 1 {
		t.Fatalf("expected 1 request, got %d", got)
	}
	call := fetcher.calls[0]
	if call.filter != backend.FilterMonth || call.year != 2025 || call.month != 6 {
		t.Fatalf("expected month request for 2025-06, got %+v", call)
	}
}

func TestEventsForRange_MapsRecordToEvent(t *testing.T) {
	fetcher := &mockFetcher{
		statsFunc: func(filter backend.Filter, year, month int) ([]backend.StatRecord, error) {
			return []backend.StatRecord{record("15", 3)}, nil
		},
	}
	adapter := NewAdapter(fetcher)

	r := DateRange{Start: date(2025, time.June, 1), End: date(2025, time.June, 7)}
	events, err := adapter.EventsForRange(context.Background(), r, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}

	ev := events[0]
	if ev.ID != "stat-2025-06-15" {
		t.Errorf("id = %q, want stat-2025-06-15", ev.ID)
	}
	if ev.Title != "3 reserva(s)" {
		t.Errorf("title = %q, want 3 reserva(s)", ev.Title)
	}
	if ev.Start != "2025-06-15" {
		t.Errorf("start = %q, want 2025-06-15", ev.Start)
	}
	if !ev.AllDay {
		t.Error("expected an all-day event")
	}
	if ev.ExtendedProps.Total != 3 {
		t.Errorf("total = %d, want 3", ev.ExtendedProps.Total)
	}
}

func TestEventsForRange_PartialYearFailureIsIsolated(t *testing.T) {
	fetcher := &mockFetcher{
		statsFunc: func(filter backend.Filter, year, month int) ([]backend.StatRecord, error) {
			if month == 3 {
				return nil, errors.New("backend down")
			}
			return []backend.StatRecord{record("1", 1)}, nil
		},
	}
	adapter := NewAdapter(fetcher)

	r := DateRange{Start: date(2025, time.January, 1), End: date(2025, time.December, 31)}
	events, err := adapter.EventsForRange(context.Background(), r, nil)
	if err != nil {
		t.Fatalf("one failing month must not fail the year: %v", err)
	}

	if len(events) != 11 {
		t.Fatalf("expected 11 events (March empty), got %d", len(events))
	}
	for _, ev := range events {
		if ev.Start == "2025-03-01" {
			t.Error("failed month must contribute no events")
		}
	}
}

func TestEventsForRange_AllMonthsFailingYieldsEmptyYear(t *testing.T) {
	fetcher := &mockFetcher{
		statsFunc: func(filter backend.Filter, year, month int) ([]backend.StatRecord, error) {
			return nil, errors.New("backend down")
		},
	}
	adapter := NewAdapter(fetcher)

	r := DateRange{Start: date(2025, time.January, 1), End: date(2025, time.December, 31)}
	events, err := adapter.EventsForRange(context.Background(), r, nil)
	if err != nil {
		t.Fatalf("year aggregation never errors: %v", err)
	}
	if len(events) != 0 {
		t.Fatalf("expected no events, got %d", len(events))
	}
}

func TestEventsForRange_MonthFailureSurfaces(t *testing.T) {
	fetcher := &mockFetcher{
		statsFunc: func(filter backend.Filter, year, month int) ([]backend.StatRecord, error) {
			return nil, apperror.NewUpstream(errors.New("refused"))
		},
	}
	adapter := NewAdapter(fetcher)

	r := DateRange{Start: date(2025, time.June, 1), End: date(2025, time.June, 7)}
	_, err := adapter.EventsForRange(context.Background(), r, nil)
	assertAppError(t, err, 502)
}

func TestEventsForRange_DuplicateDaysMerge(t *testing.T) {
	fetcher := &mockFetcher{
		statsFunc: func(filter backend.Filter, year, month int) ([]backend.StatRecord, error) {
			return []backend.StatRecord{record("15", 2), record("15", 3)}, nil
		},
	}
	adapter := NewAdapter(fetcher)

	r := DateRange{Start: date(2025, time.June, 1), End: date(2025, time.June, 7)}
	events, err := adapter.EventsForRange(context.Background(), r, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected duplicate days to merge into 1 event, got %d", len(events))
	}
	if events[0].ExtendedProps.Total != 5 {
		t.Errorf("merged total = %d, want 5", events[0].ExtendedProps.Total)
	}
	if events[0].Title != "5 reserva(s)" {
		t.Errorf("merged title = %q, want 5 reserva(s)", events[0].Title)
	}
}

func TestEventsForRange_EventIDsUnique(t *testing.T) {
	fetcher := &mockFetcher{
		statsFunc: func(filter backend.Filter, year, month int) ([]backend.StatRecord, error) {
			return []backend.StatRecord{record("1", 1), record("2", 1), record("15", 4)}, nil
		},
	}
	adapter := NewAdapter(fetcher)

	r := DateRange{Start: date(2025, time.January, 1), End: date(2025, time.December, 31)}
	events, err := adapter.EventsForRange(context.Background(), r, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 36 {
		t.Fatalf("expected 36 events (3 per month), got %d", len(events))
	}

	seen := make(map[string]bool)
	for _, ev := range events {
		if seen[ev.ID] {
			t.Errorf("duplicate event id %s", ev.ID)
		}
		seen[ev.ID] = true

		// Start strings must round-trip to real dates.
		if _, err := time.Parse("2006-01-02", ev.Start); err != nil {
			t.Errorf("start %q does not parse: %v", ev.Start, err)
		}
	}
}

func TestEventsForRange_SkipsInvalidDayLabels(t *testing.T) {
	fetcher := &mockFetcher{
		statsFunc: func(filter backend.Filter, year, month int) ([]backend.StatRecord, error) {
			return []backend.StatRecord{
				record("15", 1),
				record("31", 1), // June has 30 days
				record("abc", 1),
				record("0", 1),
			}, nil
		},
	}
	adapter := NewAdapter(fetcher)

	r := DateRange{Start: date(2025, time.June, 1), End: date(2025, time.June, 7)}
	events, err := adapter.EventsForRange(context.Background(), r, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected only the valid day to survive, got %d events", len(events))
	}
	if events[0].Start != "2025-06-15" {
		t.Errorf("surviving event start = %q, want 2025-06-15", events[0].Start)
	}
}

func TestEventsForRange_LegacyTitleFallback(t *testing.T) {
	fetcher := &mockFetcher{
		statsFunc: func(filter backend.Filter, year, month int) ([]backend.StatRecord, error) {
			return []backend.StatRecord{{
				Label:         backend.DayLabel("15"),
				NombreReserva: "<b>Boda García</b>",
			}}, nil
		},
	}
	adapter := NewAdapter(fetcher)

	r := DateRange{Start: date(2025, time.June, 1), End: date(2025, time.June, 7)}
	events, err := adapter.EventsForRange(context.Background(), r, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].Title != "Boda García" {
		t.Errorf("title = %q, want sanitized legacy name", events[0].Title)
	}
}

func TestDateRangeGranularity(t *testing.T) {
	tests := []struct {
		name string
		days int
		want Granularity
	}{
		{"week", 7, GranularityMonth},
		{"month", 31, GranularityMonth},
		{"at threshold", 100, GranularityMonth},
		{"just above threshold", 101, GranularityYear},
		{"year", 365, GranularityYear},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start := date(2025, time.January, 1)
			r := DateRange{Start: start, End: start.AddDate(0, 0, tt.days)}
			if got := r.Granularity(); got != tt.want {
				t.Errorf("%d days: granularity = %v, want %v", tt.days, got, tt.want)
			}
		})
	}
}

func TestDateRangeMidpoint(t *testing.T) {
	r := DateRange{Start: date(2025, time.June, 1), End: date(2025, time.June, 30)}
	mid := r.Midpoint()
	if mid.Year() != 2025 || mid.Month() != time.June {
		t.Fatalf("midpoint = %v, want mid-June 2025", mid)
	}
}

// assertAppError fails unless err is an AppError with the given HTTP code.
func assertAppError(t *testing.T, err error, code int) {
	t.Helper()
	if err == nil {
		t.Fatal("expected an error, got nil")
	}
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected AppError, got %T: %v", err, err)
	}
	if appErr.Code != code {
		t.Fatalf("expected code %d, got %d (%s)", code, appErr.Code, appErr.Message)
	}
}
