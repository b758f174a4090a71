// Package reports turns fetched reservation statistics into downloadable
// files. Pure reshaping of the agenda adapter's output; nothing is stored.
package reports

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/mariachisn/agenda-web/internal/plugins/agenda"
)

// icsProductID identifies this generator in exported calendars.
const icsProductID = "-//Mariachi San Nicolas//Agenda//ES"

// DayStat is one exported row: a date and its reservation count.
type DayStat struct {
	Date  string `json:"date"`
	Total int    `json:"total"`
}

// statsFromEvents flattens calendar events into export rows, sorted by date.
func statsFromEvents(events []agenda.CalendarEvent) []DayStat {
	rows := make([]DayStat, 0, len(events))
	for _, ev := range events {
		rows = append(rows, DayStat{Date: ev.Start, Total: ev.ExtendedProps.Total})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Date < rows[j].Date })
	return rows
}

// WriteCSV writes rows as CSV with a Spanish header line.
func WriteCSV(w io.Writer, rows []DayStat) {
	fmt.Fprintln(w, "Fecha,Reservaciones")
	for _, row := range rows {
		fmt.Fprintf(w, "%s,%d\n", row.Date, row.Total)
	}
}

// WriteJSON writes rows as an indented JSON array.
func WriteJSON(w io.Writer, rows []DayStat) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}

// WriteICS writes rows as an iCalendar file with one all-day event per day
// carrying that day's reservation count. Rows with unparseable dates are
// skipped.
func WriteICS(w io.Writer, label string, rows []DayStat) {
	fmt.Fprintln(w, "BEGIN:VCALENDAR")
	fmt.Fprintln(w, "VERSION:2.0")
	fmt.Fprintf(w, "PRODID:%s\n", icsProductID)
	fmt.Fprintf(w, "X-WR-CALNAME:Reservaciones %s\n", label)
	fmt.Fprintln(w, "CALSCALE:GREGORIAN")

	stamp := time.Now().UTC().Format("20060102T150405Z")
	for _, row := range rows {
		date, err := time.Parse("2006-01-02", row.Date)
		if err != nil {
			continue
		}
		fmt.Fprintln(w, "BEGIN:VEVENT")
		fmt.Fprintf(w, "UID:stat-%s@agenda.mariachisn\n", row.Date)
		fmt.Fprintf(w, "DTSTAMP:%s\n", stamp)
		fmt.Fprintf(w, "DTSTART;VALUE=DATE:%s\n", date.Format("20060102"))
		fmt.Fprintf(w, "DTEND;VALUE=DATE:%s\n", date.AddDate(0, 0, 1).Format("20060102"))
		fmt.Fprintf(w, "SUMMARY:%d reserva(s)\n", row.Total)
		fmt.Fprintln(w, "END:VEVENT")
	}

	fmt.Fprintln(w, "END:VCALENDAR")
}
