package agenda

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/mariachisn/agenda-web/internal/backend"
	"github.com/mariachisn/agenda-web/internal/sanitize"
)

// StatsFetcher is the slice of the backend client the adapter depends on.
type StatsFetcher interface {
	Stats(ctx context.Context, filter backend.Filter, year, month int, cookies []*http.Cookie) ([]backend.StatRecord, error)
}

// Adapter translates the widget's visible range into stats requests and
// reshapes the responses into calendar events. All data is request-scoped:
// fetched per range change, handed to the widget, and discarded.
type Adapter struct {
	fetcher StatsFetcher
}

// NewAdapter creates an Adapter backed by the given stats fetcher.
func NewAdapter(fetcher StatsFetcher) *Adapter {
	return &Adapter{fetcher: fetcher}
}

// monthStats is one month's records tagged with their source month.
type monthStats struct {
	month   int
	records []backend.StatRecord
}

// EventsForRange produces the events for a requested visible range.
//
// Spans over 100 days are a year view: twelve per-month requests for the
// midpoint's year, issued in parallel, where any single month's failure
// yields an empty month instead of aborting the rest. Shorter spans issue
// one request for the midpoint's year and month; its failure is returned
// to the caller so the widget renders its failure state.
func (a *Adapter) EventsForRange(ctx context.Context, r DateRange, cookies []*http.Cookie) ([]CalendarEvent, error) {
	mid := r.Midpoint()

	if r.Granularity() == GranularityYear {
		return a.yearEvents(ctx, mid.Year(), cookies), nil
	}

	records, err := a.fetcher.Stats(ctx, backend.FilterMonth, mid.Year(), int(mid.Month()), cookies)
	if err != nil {
		return nil, err
	}
	return buildEvents(mid.Year(), []monthStats{{month: int(mid.Month()), records: records}}), nil
}

// yearEvents fetches all twelve months of a year in parallel and merges the
// results in month order. Completion order does not matter; all twelve are
// awaited jointly.
func (a *Adapter) yearEvents(ctx context.Context, year int, cookies []*http.Cookie) []CalendarEvent {
	results := make([][]backend.StatRecord, 12)

	var wg sync.WaitGroup
	for m := 1; m <= 12; m++ {
		wg.Add(1)
		go func(m int) {
			defer wg.Done()
			records, err := a.fetcher.Stats(ctx, backend.FilterMonth, year, m, cookies)
			if err != nil {
				// One month failing must not abort the others; its days
				// simply render empty.
				slog.Warn("month stats fetch failed",
					slog.Int("year", year),
					slog.Int("month", m),
					slog.Any("error", err),
				)
				return
			}
			results[m-1] = records
		}(m)
	}
	wg.Wait()

	merged := make([]monthStats, 0, 12)
	for i, records := range results {
		merged = append(merged, monthStats{month: i + 1, records: records})
	}
	return buildEvents(year, merged)
}

// buildEvents maps tagged stat records to calendar events. Records whose
// day label does not name a real day of their month are skipped; records
// landing on the same date are merged so event ids stay unique.
func buildEvents(year int, months []monthStats) []CalendarEvent {
	var events []CalendarEvent
	index := make(map[string]int)

	for _, ms := range months {
		for _, rec := range ms.records {
			day, err := rec.Label.Day()
			if err != nil {
				slog.Warn("skipping stat with unparseable day label",
					slog.String("label", string(rec.Label)))
				continue
			}
			if !validDay(year, ms.month, day) {
				slog.Warn("skipping stat with out-of-range day",
					slog.Int("year", year),
					slog.Int("month", ms.month),
					slog.Int("day", day),
				)
				continue
			}

			start := fmt.Sprintf("%04d-%02d-%02d", year, ms.month, day)
			if i, ok := index[start]; ok {
				events[i].ExtendedProps.Total += rec.TotalEvents
				events[i].Title = countTitle(events[i].ExtendedProps.Total)
				continue
			}

			index[start] = len(events)
			events = append(events, CalendarEvent{
				ID:              "stat-" + start,
				Title:           eventTitle(rec),
				Start:           start,
				AllDay:          true,
				BackgroundColor: eventColor,
				ExtendedProps:   EventProps{Total: rec.TotalEvents},
			})
		}
	}
	return events
}

// validDay reports whether day names a real day of year/month (no
// normalization: June 31 is invalid, not July 1).
func validDay(year, month, day int) bool {
	if day < 1 {
		return false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return t.Day() == day && int(t.Month()) == month
}

// eventTitle builds the display string for a record. The aggregate count is
// the contract; the legacy single-event name is a fallback for older
// backends that sent per-event rows without totals.
func eventTitle(rec backend.StatRecord) string {
	if rec.TotalEvents == 0 && rec.NombreReserva != "" {
		return sanitize.Text(rec.NombreReserva)
	}
	return countTitle(rec.TotalEvents)
}

// countTitle formats a reservation count for display.
func countTitle(total int) string {
	return fmt.Sprintf("%d reserva(s)", total)
}
