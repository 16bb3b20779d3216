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

// NASFetcher is the upstream FAA NAS status client.
type NASFetcher interface {
	FetchWithRetry(ctx context.Context) ([]domain.Advisory, error)
}

// NASPoller polls the FAA NAS status feed and records each advisory; the
// repository upsert dedupes re-observations of the same event.
type NASPoller struct {
	fetcher      NASFetcher
	recorder     AdvisoryRecorder
	pollInterval time.Duration
	logger       *zap.Logger

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
}

func NewNASPoller(fetcher NASFetcher, recorder AdvisoryRecorder, pollInterval time.Duration, logger *zap.Logger) *NASPoller {
	return &NASPoller{
		fetcher:      fetcher,
		recorder:     recorder,
		pollInterval: pollInterval,
		logger:       logger,
	}
}

func (p *NASPoller) Start(ctx context.Context) bool {
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

func (p *NASPoller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		p.cancel()
	}
	p.running = false
}

func (p *NASPoller) IsRunning() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.running
}

func (p *NASPoller) run(ctx context.Context) {
	ticker := time.NewTicker(p.pollInterval)
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

// PollOnce runs a single fetch cycle.
func (p *NASPoller) PollOnce(ctx context.Context) {
	start := time.Now()
	advisories, err := p.fetcher.FetchWithRetry(ctx)
	metrics.UpstreamRequestDuration.WithLabelValues("nas").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues("nas", "error").Inc()
		p.logger.Error("nas poll failed", zap.Error(err))
		return
	}
	metrics.UpstreamRequestsTotal.WithLabelValues("nas", "ok").Inc()

	for i := range advisories {
		advisory := advisories[i]
		if advisory.ID == "" {
			advisory.ID = uuid.NewString()
		}
		if err := p.recorder.RecordAdvisory(ctx, &advisory); err != nil {
			p.logger.Warn("failed to record nas advisory",
				zap.String("airport", advisory.Airport),
				zap.String("kind", string(advisory.Kind)),
				zap.Error(err))
		}
	}
	p.logger.Debug("nas poll complete", zap.Int("advisories", len(advisories)))
}
