// Package agenda renders the reservation calendar. It adapts the backend's
// aggregate statistics into the calendar widget's event shape, owns the
// visitor's UI state (active view, current date, detail panel), and serves
// the agenda page plus the HTMX fragments that drive its toolbar and panel.
package agenda

import (
	"time"
)

// yearSpanDays is the visible-range span above which the widget is showing
// a year view and statistics are aggregated from twelve per-month requests.
const yearSpanDays = 100

// eventColor is the widget styling for reservation-count events.
const eventColor = "#0d6efd"

// Granularity is the aggregation level derived from a requested range.
type Granularity string

const (
	// GranularityMonth is day-level detail for one month.
	GranularityMonth Granularity = "month"
	// GranularityYear is month-level detail for one year, queried as
	// twelve per-month calls.
	GranularityYear Granularity = "year"
)

// DateRange is the visible window the calendar widget requested events for.
// Supplied externally on every range change; never persisted.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Days returns the range span in days.
func (r DateRange) Days() float64 {
	return r.End.Sub(r.Start).Hours() / 24
}

// Midpoint returns the average of the range's start and end instants,
// used to pick the representative year and month for the stats query.
func (r DateRange) Midpoint() time.Time {
	mid := (r.Start.UnixMilli() + r.End.UnixMilli()) / 2
	return time.UnixMilli(mid).UTC()
}

// Granularity derives the aggregation level from the range span.
func (r DateRange) Granularity() Granularity {
	if r.Days() > yearSpanDays {
		return GranularityYear
	}
	return GranularityMonth
}

// CalendarEvent is the widget-facing event shape. ID is derived from the
// start date so repeated fetches never produce colliding cells.
type CalendarEvent struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	Start           string     `json:"start"`
	End             string     `json:"end,omitempty"`
	AllDay          bool       `json:"allDay"`
	BackgroundColor string     `json:"backgroundColor,omitempty"`
	ExtendedProps   EventProps `json:"extendedProps"`
}

// EventProps carries extra event data the detail panel needs.
type EventProps struct {
	Total int `json:"total"`
}
