package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/ainohq/aino/internal/domain"
)

const (
	defaultNASBaseURL = "https://nasstatus.faa.gov/api"

	// nasMinSpacing keeps repeat fetches of the public feed at least this
	// far apart even if several callers share one client.
	nasMinSpacing = 2 * time.Second
)

// nasStatus mirrors one airport event in the NAS status feed.
type nasStatus struct {
	Airport   string `json:"airport"`
	Type      string `json:"type"`   // "Ground Stop", "Ground Delay", "Departure Delay", "Arrival Delay", "Closure"
	Reason    string `json:"reason"`
	AvgDelay  string `json:"avgDelay"` // "45 minutes", may be empty
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"` // may be empty for open-ended events
}

type nasResponse struct {
	Statuses []nasStatus `json:"statuses"`
}

type NASOption func(*NASClient)

func WithNASBaseURL(u string) NASOption {
	return func(c *NASClient) { c.baseURL = u }
}

func WithNASHTTPClient(hc *http.Client) NASOption {
	return func(c *NASClient) { c.httpClient = hc }
}

// NASClient fetches FAA National Airspace System status events.
type NASClient struct {
	baseURL    string
	httpClient *http.Client
	limiter    *RateLimiter
}

func NewNASClient(opts ...NASOption) *NASClient {
	c := &NASClient{
		baseURL:    defaultNASBaseURL,
		httpClient: newPooledClient(),
		limiter:    NewRateLimiter(nasMinSpacing),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch retrieves all current NAS events as normalized advisories.
func (c *NASClient) Fetch(ctx context.Context) ([]domain.Advisory, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	u := fmt.Sprintf("%s/airport-status-information", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("creating nas request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching nas status: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, statusError("nas", resp.StatusCode)
	}

	var raw nasResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decoding nas response: %w", err)
	}

	advisories := make([]domain.Advisory, 0, len(raw.Statuses))
	for _, s := range raw.Statuses {
		advisories = append(advisories, toAdvisory(s))
	}
	return advisories, nil
}

// FetchWithRetry fetches with exponential backoff on failure.
func (c *NASClient) FetchWithRetry(ctx context.Context) ([]domain.Advisory, error) {
	return retry(ctx, func(ctx context.Context) ([]domain.Advisory, error) {
		return c.Fetch(ctx)
	})
}

func toAdvisory(s nasStatus) domain.Advisory {
	kind, severity := classifyEvent(s.Type)
	a := domain.Advisory{
		Source:          domain.AdvisorySourceNAS,
		Airport:         s.Airport,
		Kind:            kind,
		Severity:        severity,
		AvgDelayMinutes: parseDelayMinutes(s.AvgDelay),
		Reason:          s.Reason,
	}
	if t, err := time.Parse(time.RFC3339, s.StartTime); err == nil {
		a.ActiveFrom = t
	}
	if s.EndTime != "" {
		if t, err := time.Parse(time.RFC3339, s.EndTime); err == nil {
			a.ActiveUntil = &t
		}
	}
	return a
}

func classifyEvent(eventType string) (domain.AdvisoryKind, domain.AdvisorySeverity) {
	switch strings.ToLower(strings.TrimSpace(eventType)) {
	case "ground stop":
		return domain.AdvisoryGroundStop, domain.SeverityCritical
	case "ground delay":
		return domain.AdvisoryGroundDelay, domain.SeverityWarning
	case "closure":
		return domain.AdvisoryClosure, domain.SeverityCritical
	case "departure delay":
		return domain.AdvisoryDepartureDelay, domain.SeverityAdvisory
	case "arrival delay":
		return domain.AdvisoryArrivalDelay, domain.SeverityAdvisory
	default:
		return domain.AdvisoryWeather, domain.SeverityInfo
	}
}

// parseDelayMinutes extracts the leading number from strings like
// "45 minutes" or "1 hour and 15 minutes" (hours are converted).
func parseDelayMinutes(s string) int {
	fields := strings.Fields(strings.ToLower(s))
	total := 0
	for i := 0; i < len(fields)-1; i++ {
		n, err := strconv.Atoi(fields[i])
		if err != nil {
			continue
		}
		unit := fields[i+1]
		switch {
		case strings.HasPrefix(unit, "hour"):
			total += n * 60
		case strings.HasPrefix(unit, "minute"):
			total += n
		}
	}
	return total
}
