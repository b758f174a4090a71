package reports

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/mariachisn/agenda-web/internal/plugins/agenda"
)

func sampleRows() []DayStat {
	return []DayStat{
		{Date: "2025-06-15", Total: 3},
		{Date: "2025-06-20", Total: 1},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	WriteCSV(&buf, sampleRows())

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d lines", len(lines))
	}
	if lines[0] != "Fecha,Reservaciones" {
		t.Errorf("header = %q", lines[0])
	}
	if lines[1] != "2025-06-15,3" {
		t.Errorf("first row = %q", lines[1])
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, sampleRows()); err != nil {
		t.Fatalf("write: %v", err)
	}

	var rows []DayStat
	if err := json.Unmarshal(buf.Bytes(), &rows); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if len(rows) != 2 || rows[0].Total != 3 {
		t.Fatalf("unexpected rows: %+v", rows)
	}
}

func TestWriteICS(t *testing.T) {
	var buf bytes.Buffer
	WriteICS(&buf, "2025-06", sampleRows())
	body := buf.String()

	required := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//Mariachi San Nicolas//Agenda//ES",
		"X-WR-CALNAME:Reservaciones 2025-06",
		"BEGIN:VEVENT",
		"UID:stat-2025-06-15@agenda.mariachisn",
		"DTSTART;VALUE=DATE:20250615",
		"DTEND;VALUE=DATE:20250616",
		"SUMMARY:3 reserva(s)",
		"END:VEVENT",
		"END:VCALENDAR",
	}
	for _, field := range required {
		if !strings.Contains(body, field) {
			t.Errorf("ICS output missing %q", field)
		}
	}
}

func TestWriteICSSkipsBadDates(t *testing.T) {
	var buf bytes.Buffer
	WriteICS(&buf, "2025", []DayStat{{Date: "not-a-date", Total: 1}})

	if strings.Contains(buf.String(), "BEGIN:VEVENT") {
		t.Error("unparseable dates must be skipped")
	}
}

// mockSource implements EventSource with a func field.
type mockSource struct {
	eventsFunc func(r agenda.DateRange) ([]agenda.CalendarEvent, error)
}

func (m *mockSource) EventsForRange(ctx context.Context, r agenda.DateRange, cookies []*http.Cookie) ([]agenda.CalendarEvent, error) {
	return m.eventsFunc(r)
}

func download(t *testing.T, h *Handler, query string) (*httptest.ResponseRecorder, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/reports/download?"+query, nil)
	rec := httptest.NewRecorder()
	return rec, h.Download(e.NewContext(req, rec))
}

func TestDownloadCSVForMonth(t *testing.T) {
	source := &mockSource{
		eventsFunc: func(r agenda.DateRange) ([]agenda.CalendarEvent, error) {
			// A month request must stay under the year-granularity threshold.
			if r.Granularity() != agenda.GranularityMonth {
				t.Errorf("expected month granularity for a month download")
			}
			return []agenda.CalendarEvent{{
				Start:         "2025-06-15",
				ExtendedProps: agenda.EventProps{Total: 3},
			}}, nil
		},
	}
	h := NewHandler(source)

	rec, err := download(t, h, "year=2025&month=6&format=csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get(echo.HeaderContentType); !strings.Contains(ct, "text/csv") {
		t.Errorf("content type = %q", ct)
	}
	if cd := rec.Header().Get(echo.HeaderContentDisposition); !strings.Contains(cd, "reservaciones_2025-06.csv") {
		t.Errorf("content disposition = %q", cd)
	}
	if !strings.Contains(rec.Body.String(), "2025-06-15,3") {
		t.Errorf("body missing row: %q", rec.Body.String())
	}
}

func TestDownloadYearUsesYearRange(t *testing.T) {
	source := &mockSource{
		eventsFunc: func(r agenda.DateRange) ([]agenda.CalendarEvent, error) {
			if r.Granularity() != agenda.GranularityYear {
				t.Errorf("expected year granularity for a whole-year download")
			}
			return nil, nil
		},
	}
	h := NewHandler(source)

	rec, err := download(t, h, "year=2025&format=json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cd := rec.Header().Get(echo.HeaderContentDisposition); !strings.Contains(cd, "reservaciones_2025.json") {
		t.Errorf("content disposition = %q", cd)
	}
}

func TestDownloadValidatesParams(t *testing.T) {
	// Rejected requests must never reach the backend; for a whole-year
	// download that would be twelve wasted upstream calls.
	source := &mockSource{
		eventsFunc: func(r agenda.DateRange) ([]agenda.CalendarEvent, error) {
			t.Error("invalid params must not trigger a fetch")
			return nil, nil
		},
	}
	h := NewHandler(source)

	if _, err := download(t, h, "year=abc&format=csv"); err == nil {
		t.Error("expected error for bad year")
	}
	if _, err := download(t, h, "year=2025&month=13&format=csv"); err == nil {
		t.Error("expected error for bad month")
	}
	if _, err := download(t, h, "year=2025&format=xml"); err == nil {
		t.Error("expected error for unknown format")
	}
	if _, err := download(t, h, "year=2025&format="); err == nil {
		t.Error("expected error for missing format")
	}
}

func TestStatsFromEventsSortsByDate(t *testing.T) {
	rows := statsFromEvents([]agenda.CalendarEvent{
		{Start: "2025-06-20", ExtendedProps: agenda.EventProps{Total: 1}},
		{Start: "2025-06-15", ExtendedProps: agenda.EventProps{Total: 3}},
	})
	if rows[0].Date != "2025-06-15" || rows[1].Date != "2025-06-20" {
		t.Fatalf("rows not sorted: %+v", rows)
	}
}
