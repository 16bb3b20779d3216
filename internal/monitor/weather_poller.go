// Package monitor runs the background pollers that keep weather and NAS
// status fresh. Pollers are context-cancelled goroutine loops; there are no
// detached daemon threads.
package monitor

import (
	"context"
	"sync"
	"time"

	"github.com/ainohq/aino/internal/domain"
	"github.com/ainohq/aino/internal/metrics"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// WeatherFetcher is the upstream METAR client.
type WeatherFetcher interface {
	FetchWithRetry(ctx context.Context, stations []string) ([]domain.WeatherReport, error)
}

// WeatherStore is the redis write-through target.
type WeatherStore interface {
	SetWeather(ctx context.Context, report *domain.WeatherReport) error
}

// AdvisoryRecorder receives weather-degradation advisories.
type AdvisoryRecorder interface {
	RecordAdvisory(ctx context.Context, advisory *domain.Advisory) error
}

type WeatherPollerConfig struct {
	Stations     []string
	PollInterval time.Duration
	GustAlertKt  int
}

// WeatherPoller fetches METARs on a ticker, writes them through to the cache
// and raises weather advisories when conditions degrade.
type WeatherPoller struct {
	fetcher  WeatherFetcher
	store    WeatherStore
	recorder AdvisoryRecorder
	config   WeatherPollerConfig
	logger   *zap.Logger

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
}

func NewWeatherPoller(fetcher WeatherFetcher, store WeatherStore, recorder AdvisoryRecorder, cfg WeatherPollerConfig, logger *zap.Logger) *WeatherPoller {
	return &WeatherPoller{
		fetcher:  fetcher,
		store:    store,
		recorder: recorder,
		config:   cfg,
		logger:   logger,
	}
}

// Start begins polling. Non-blocking; returns false if already running.
func (p *WeatherPoller) Start(ctx context.Context) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.running {
		return false
	}
	p.running = true

	ctx, p.cancel = context.WithCancel(ctx)
	go p.run(ctx)
	return true
}

func (p *WeatherPoller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		p.cancel()
	}
	p.running = false
}

func (p *WeatherPoller) IsRunning() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.running
}

func (p *WeatherPoller) run(ctx context.Context) {
	ticker := time.NewTicker(p.config.PollInterval)
	defer ticker.Stop()

	p.PollOnce(ctx)
	for {
		select {
		case <-ctx.Done():
			p.mu.Lock()
			p.running = false
			p.mu.Unlock()
			return
		case <-ticker.C:
			p.PollOnce(ctx)
		}
	}
}

// PollOnce runs a single fetch cycle. Exported for the worker's tests.
func (p *WeatherPoller) PollOnce(ctx context.Context) {
	start := time.Now()
	reports, err := p.fetcher.FetchWithRetry(ctx, p.config.Stations)
	metrics.UpstreamRequestDuration.WithLabelValues("metar").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues("metar", "error").Inc()
		p.logger.Error("weather poll failed", zap.Error(err))
		return
	}
	metrics.UpstreamRequestsTotal.WithLabelValues("metar", "ok").Inc()

	for i := range reports {
		report := &reports[i]
		if err := p.store.SetWeather(ctx, report); err != nil {
			p.logger.Warn("weather cache write failed", zap.String("station", report.Station), zap.Error(err))
		}
		if advisory := p.degradationAdvisory(report); advisory != nil {
			if err := p.recorder.RecordAdvisory(ctx, advisory); err != nil {
				p.logger.Warn("failed to record weather advisory",
					zap.String("station", report.Station), zap.Error(err))
			}
		}
	}
	p.logger.Debug("weather poll complete", zap.Int("stations", len(reports)))
}

// degradationAdvisory returns an advisory when the station is IFR/LIFR or
// gusting past the alert threshold, nil otherwise.
func (p *WeatherPoller) degradationAdvisory(report *domain.WeatherReport) *domain.Advisory {
	severity := domain.AdvisorySeverity("")
	reason := ""

	switch report.Category {
	case domain.CategoryLIFR:
		severity, reason = domain.SeverityCritical, "LIFR conditions"
	case domain.CategoryIFR:
		severity, reason = domain.SeverityWarning, "IFR conditions"
	}
	if p.config.GustAlertKt > 0 && report.WindGustKt >= p.config.GustAlertKt {
		if severity == "" {
			severity = domain.SeverityWarning
		}
		if reason != "" {
			reason += ", "
		}
		reason += "strong gusts"
	}
	if severity == "" {
		return nil
	}

	return &domain.Advisory{
		ID:         uuid.NewString(),
		Source:     domain.AdvisorySourceMETAR,
		Airport:    report.Station,
		Kind:       domain.AdvisoryWeather,
		Severity:   severity,
		Reason:     reason,
		ActiveFrom: report.ObservedAt.Truncate(time.Hour),
	}
}
