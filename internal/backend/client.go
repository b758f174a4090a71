// Package backend is the HTTP client for the reservation API. All outbound
// calls share one configured client: base URL from config, a fixed request
// timeout, and the originating browser's cookies attached so the backend
// can authenticate the visitor. No retries, no circuit breaking; a failed
// call surfaces its error to the caller unchanged.
package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/mariachisn/agenda-web/internal/apperror"
	"github.com/mariachisn/agenda-web/internal/config"
)

// Filter selects the aggregation level of a stats request.
type Filter string

const (
	// FilterMonth requests per-day aggregates for one month.
	FilterMonth Filter = "month"
	// FilterYear requests per-month aggregates for one year.
	FilterYear Filter = "year"
)

// DayLabel is a record's day-of-month key. The backend has sent it both as
// a JSON string and as a number over time, so decoding accepts either.
type DayLabel string

// UnmarshalJSON accepts both `"15"` and `15`.
func (l *DayLabel) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*l = DayLabel(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err == nil {
		*l = DayLabel(n.String())
		return nil
	}
	return fmt.Errorf("label is neither string nor number: %s", b)
}

// Day parses the label as a day-of-month number.
func (l DayLabel) Day() (int, error) {
	d, err := strconv.Atoi(strings.TrimSpace(string(l)))
	if err != nil {
		return 0, fmt.Errorf("parsing day label %q: %w", string(l), err)
	}
	return d, nil
}

// StatRecord is one aggregate entry of a stats response: the reservation
// count for a day (month filter) or a month (year filter). The legacy
// per-event fields are still decoded for older backend versions; the
// aggregate label/total_events pair is the contract.
type StatRecord struct {
	Label       DayLabel `json:"label"`
	TotalEvents int      `json:"total_events"`

	// Legacy single-event fields (older response shape). Used only as a
	// display fallback when the aggregate count is absent.
	NombreReserva string `json:"nombre_reserva,omitempty"`
	FechaInicio   string `json:"fecha_inicio,omitempty"`
	FechaFin      string `json:"fecha_fin,omitempty"`
}

// Client is the shared reservation API client.
type Client struct {
	httpc   *http.Client
	baseURL string
}

// NewClient creates a Client from config. All endpoints live under
// <BaseURL>/api/; the timeout applies to every request.
func NewClient(cfg config.APIConfig) *Client {
	return &Client{
		httpc:   &http.Client{Timeout: cfg.Timeout},
		baseURL: strings.TrimRight(cfg.BaseURL, "/") + "/api",
	}
}

// Stats fetches aggregate reservation statistics. month is required when
// filter is FilterMonth and ignored otherwise. The given cookies are
// forwarded so the backend sees the visitor's credentials.
func (c *Client) Stats(ctx context.Context, filter Filter, year, month int, cookies []*http.Cookie) ([]StatRecord, error) {
	q := url.Values{}
	q.Set("filterType", string(filter))
	q.Set("year", strconv.Itoa(year))
	if filter == FilterMonth {
		q.Set("month", strconv.Itoa(month))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/reservations/stats/calendar?"+q.Encode(), nil)
	if err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("building stats request: %w", err))
	}
	req.Header.Set("Accept", "application/json")
	for _, ck := range cookies {
		req.AddCookie(ck)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, apperror.NewUpstream(fmt.Errorf("stats request: %w", err))
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, apperror.NewUnauthorized("Your session has expired. Please log in again.")
	case resp.StatusCode != http.StatusOK:
		return nil, apperror.NewUpstream(fmt.Errorf("stats request returned %s", resp.Status))
	}

	var records []StatRecord
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, apperror.NewUpstream(fmt.Errorf("decoding stats response: %w", err))
	}
	return records, nil
}
