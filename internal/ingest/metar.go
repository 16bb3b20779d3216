package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/ainohq/aino/internal/domain"
)

const defaultMetarBaseURL = "https://aviationweather.gov/api/data"

// metarResponse mirrors the JSON from /api/data/metar?ids=...&format=json.
// visib arrives as either a number or a string like "10+".
type metarResponse struct {
	ICAOId     string      `json:"icaoId"`
	ReportTime string      `json:"reportTime"`
	Temp       float64     `json:"temp"`
	Dewp       float64     `json:"dewp"`
	Wdir       json.Number `json:"wdir"`
	Wspd       float64     `json:"wspd"`
	Wgst       float64     `json:"wgst"`
	Visib      any         `json:"visib"`
	Altim      float64     `json:"altim"`
	RawOb      string      `json:"rawOb"`
	FltCat     string      `json:"fltCat"`
}

type MetarOption func(*MetarClient)

func WithMetarBaseURL(u string) MetarOption {
	return func(c *MetarClient) { c.baseURL = u }
}

func WithMetarHTTPClient(hc *http.Client) MetarOption {
	return func(c *MetarClient) { c.httpClient = hc }
}

// MetarClient fetches METAR observations from aviationweather.gov.
type MetarClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewMetarClient(opts ...MetarOption) *MetarClient {
	c := &MetarClient{
		baseURL:    defaultMetarBaseURL,
		httpClient: newPooledClient(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch retrieves current observations for the given stations.
func (c *MetarClient) Fetch(ctx context.Context, stations []string) ([]domain.WeatherReport, error) {
	if len(stations) == 0 {
		return nil, nil
	}

	u := fmt.Sprintf("%s/metar?ids=%s&format=json", c.baseURL, url.QueryEscape(strings.Join(stations, ",")))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("creating metar request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching metar: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, statusError("metar", resp.StatusCode)
	}

	var raw []metarResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decoding metar response: %w", err)
	}

	reports := make([]domain.WeatherReport, 0, len(raw))
	for _, m := range raw {
		reports = append(reports, toWeatherReport(m))
	}
	return reports, nil
}

// FetchWithRetry fetches with exponential backoff on failure.
func (c *MetarClient) FetchWithRetry(ctx context.Context, stations []string) ([]domain.WeatherReport, error) {
	return retry(ctx, func(ctx context.Context) ([]domain.WeatherReport, error) {
		return c.Fetch(ctx, stations)
	})
}

func toWeatherReport(m metarResponse) domain.WeatherReport {
	r := domain.WeatherReport{
		Station:         m.ICAOId,
		TempC:           m.Temp,
		DewpointC:       m.Dewp,
		WindSpeedKt:     int(m.Wspd),
		WindGustKt:      int(m.Wgst),
		VisibilityMiles: parseVisibility(m.Visib),
		AltimeterHpa:    m.Altim,
		Category:        domain.FlightCategory(m.FltCat),
		RawText:         m.RawOb,
	}
	if wdir, err := m.Wdir.Int64(); err == nil {
		r.WindDirDeg = int(wdir)
	}
	if t, err := time.Parse("2006-01-02T15:04:05.000Z", m.ReportTime); err == nil {
		r.ObservedAt = t
	} else if t, err := time.Parse(time.RFC3339, m.ReportTime); err == nil {
		r.ObservedAt = t
	}
	return r
}

// parseVisibility handles both numeric and "10+"-style string forms.
func parseVisibility(v any) float64 {
	switch vis := v.(type) {
	case float64:
		return vis
	case string:
		trimmed := strings.TrimSuffix(strings.TrimSpace(vis), "+")
		if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
			return f
		}
	}
	return 0
}
