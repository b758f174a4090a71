package agenda

import (
	"fmt"
	"strconv"
	"time"
	"unicode"
)

// ViewType is a calendar widget view, stored as the widget's own view name.
type ViewType string

const (
	// ViewDay is the single-day time grid.
	ViewDay ViewType = "timeGridDay"
	// ViewWeek is the weekly time grid, the initial view.
	ViewWeek ViewType = "timeGridWeek"
	// ViewMonth is the monthly day grid.
	ViewMonth ViewType = "dayGridMonth"
	// ViewYear is the twelve-month overview.
	ViewYear ViewType = "multiMonthYear"
)

// ParseView maps a toolbar button name to its widget view.
func ParseView(s string) (ViewType, bool) {
	switch s {
	case "day":
		return ViewDay, true
	case "week":
		return ViewWeek, true
	case "month":
		return ViewMonth, true
	case "year":
		return ViewYear, true
	}
	return "", false
}

// Button returns the toolbar button name for this view.
func (v ViewType) Button() string {
	switch v {
	case ViewDay:
		return "day"
	case ViewWeek:
		return "week"
	case ViewMonth:
		return "month"
	case ViewYear:
		return "year"
	}
	return ""
}

// IsYear reports whether this is a year-level view, which changes both the
// title format and the events granularity.
func (v ViewType) IsYear() bool {
	return v == ViewYear
}

// Navigation directions accepted by State.Navigate.
const (
	DirPrev  = "prev"
	DirNext  = "next"
	DirToday = "today"
)

// PanelContent is what the detail panel shows for a clicked day.
type PanelContent struct {
	Date  time.Time `json:"date"`
	Total int       `json:"total"`
}

// Summary formats the reservation count line.
func (p PanelContent) Summary() string {
	return fmt.Sprintf("%d reserva(s)", p.Total)
}

// LongDate formats the clicked date the way the panel displays it:
// "miércoles, 11 de junio de 2025".
func (p PanelContent) LongDate() string {
	return fmt.Sprintf("%s, %d de %s de %d",
		spanishWeekdays[p.Date.Weekday()],
		p.Date.Day(),
		spanishMonths[p.Date.Month()-1],
		p.Date.Year(),
	)
}

// Panel is the detail panel's state. Closing hides the panel but keeps the
// last content until the next open, so reopening is cheap and idempotent.
type Panel struct {
	Visible bool          `json:"visible"`
	Content *PanelContent `json:"content,omitempty"`
}

// State is the explicit UI state object for one visitor: the active view,
// the current date, the detail panel, and a fetch generation. It is the
// single owner of what used to be scattered widget/DOM state; the widget is
// driven from it, never the other way around.
type State struct {
	View       ViewType  `json:"view"`
	Current    time.Time `json:"current"`
	Panel      Panel     `json:"panel"`
	Generation int64     `json:"generation"`
}

// NewState returns the initial state: weekly view at the given instant.
func NewState(now time.Time) State {
	return State{View: ViewWeek, Current: now}
}

// Navigate moves the current date by one view-sized step, or back to now
// for DirToday. Bumps the fetch generation so in-flight event fetches for
// the old window are discarded.
func (s *State) Navigate(dir string, now time.Time) {
	step := 1
	if dir == DirPrev {
		step = -1
	}

	switch {
	case dir == DirToday:
		s.Current = now
	case s.View == ViewDay:
		s.Current = s.Current.AddDate(0, 0, step)
	case s.View == ViewWeek:
		s.Current = s.Current.AddDate(0, 0, 7*step)
	case s.View == ViewMonth:
		s.Current = s.Current.AddDate(0, step, 0)
	case s.View == ViewYear:
		s.Current = s.Current.AddDate(step, 0, 0)
	}
	s.Generation++
}

// ChangeView switches the active view. The single-active-button invariant
// holds by construction: ActiveButton derives from this one field.
func (s *State) ChangeView(v ViewType) {
	s.View = v
	s.Generation++
}

// OpenPanel records an event click: switch to the day view at the clicked
// date and show the panel. Repeated clicks simply replace the content.
func (s *State) OpenPanel(date time.Time, total int) {
	s.View = ViewDay
	s.Current = date
	s.Panel = Panel{
		Visible: true,
		Content: &PanelContent{Date: date, Total: total},
	}
	s.Generation++
}

// ClosePanel hides the panel without destroying its last content. No
// generation bump: closing changes nothing the widget fetches.
func (s *State) ClosePanel() {
	s.Panel.Visible = false
}

// ActiveButton returns the toolbar button that must be highlighted.
func (s State) ActiveButton() string {
	return s.View.Button()
}

// Title formats the current-date label: the year alone for year-level
// views, a capitalized Spanish "Month Year" otherwise.
func (s State) Title() string {
	if s.View.IsYear() {
		return strconv.Itoa(s.Current.Year())
	}
	return capitalize(spanishMonths[s.Current.Month()-1]) + " " + strconv.Itoa(s.Current.Year())
}

// spanishMonths is indexed by time.Month - 1.
var spanishMonths = [12]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

// spanishWeekdays is indexed by time.Weekday (Sunday = 0).
var spanishWeekdays = [7]string{
	"domingo", "lunes", "martes", "miércoles", "jueves", "viernes", "sábado",
}

// capitalize upper-cases the first rune, matching the widget locale's
// title casing ("Junio 2025").
func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
