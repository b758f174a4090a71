package reports

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mariachisn/agenda-web/internal/apperror"
	"github.com/mariachisn/agenda-web/internal/middleware"
	"github.com/mariachisn/agenda-web/internal/plugins/agenda"
)

// EventSource is the slice of the agenda adapter the reports plugin uses.
type EventSource interface {
	EventsForRange(ctx context.Context, r agenda.DateRange, cookies []*http.Cookie) ([]agenda.CalendarEvent, error)
}

// Handler processes HTTP requests for the reports plugin.
type Handler struct {
	source EventSource
}

// NewHandler creates a new reports Handler.
func NewHandler(source EventSource) *Handler {
	return &Handler{source: source}
}

// Page renders the report generation page.
// GET /reports
func (h *Handler) Page(c echo.Context) error {
	return middleware.Render(c, http.StatusOK, ReportsPage(time.Now().Year()))
}

// Download streams the requested period's statistics in the requested
// format.
// GET /reports/download?year=YYYY&month=M&format=csv|json|ics
//
// A year without a month exports the whole year; the underlying fetch then
// runs the same twelve-month aggregation the agenda uses, so a single
// month's backend failure leaves a gap instead of failing the download.
func (h *Handler) Download(c echo.Context) error {
	// Validate everything before touching the backend: a bad format must
	// not cost an upstream fetch.
	format := c.QueryParam("format")
	switch format {
	case "csv", "json", "ics":
	default:
		return apperror.NewBadRequest("unknown format: use csv, json or ics")
	}

	year, err := strconv.Atoi(c.QueryParam("year"))
	if err != nil || year < 1 {
		return apperror.NewBadRequest("invalid year")
	}

	var (
		r     agenda.DateRange
		label string
	)
	if mv := c.QueryParam("month"); mv != "" {
		month, err := strconv.Atoi(mv)
		if err != nil || month < 1 || month > 12 {
			return apperror.NewBadRequest("invalid month")
		}
		start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
		r = agenda.DateRange{Start: start, End: start.AddDate(0, 1, 0)}
		label = fmt.Sprintf("%04d-%02d", year, month)
	} else {
		start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
		r = agenda.DateRange{Start: start, End: start.AddDate(1, 0, 0)}
		label = fmt.Sprintf("%04d", year)
	}

	events, err := h.source.EventsForRange(c.Request().Context(), r, c.Request().Cookies())
	if err != nil {
		return err
	}
	rows := statsFromEvents(events)

	filename := "reservaciones_" + label
	switch format {
	case "csv":
		c.Response().Header().Set(echo.HeaderContentType, "text/csv; charset=utf-8")
		c.Response().Header().Set(echo.HeaderContentDisposition, attachment(filename+".csv"))
		c.Response().WriteHeader(http.StatusOK)
		WriteCSV(c.Response().Writer, rows)
		return nil
	case "json":
		c.Response().Header().Set(echo.HeaderContentType, echo.MIMEApplicationJSONCharsetUTF8)
		c.Response().Header().Set(echo.HeaderContentDisposition, attachment(filename+".json"))
		c.Response().WriteHeader(http.StatusOK)
		return WriteJSON(c.Response().Writer, rows)
	case "ics":
		c.Response().Header().Set(echo.HeaderContentType, "text/calendar; charset=utf-8")
		c.Response().Header().Set(echo.HeaderContentDisposition, attachment(filename+".ics"))
		c.Response().WriteHeader(http.StatusOK)
		WriteICS(c.Response().Writer, label, rows)
		return nil
	default:
		return apperror.NewBadRequest("unknown format: use csv, json or ics")
	}
}

func attachment(filename string) string {
	return fmt.Sprintf("attachment; filename=%s", filename)
}
