package alerts

import (
	"context"
	"fmt"
	"time"

	"github.com/ainohq/aino/internal/domain"
	"github.com/ainohq/aino/internal/kafka"
	"github.com/ainohq/aino/internal/metrics"
	"github.com/ainohq/aino/internal/repository"
	"go.uber.org/zap"
)

type AlertUseCase interface {
	RecordAdvisory(ctx context.Context, advisory *domain.Advisory) error
	ActiveAdvisories(ctx context.Context, airport string) ([]domain.Advisory, error)
	ResolveAdvisory(ctx context.Context, id string) error
	OTPStats(ctx context.Context, airport string, window time.Duration) (*domain.OTPStats, error)
}

type Producer interface {
	PublishWithRetry(ctx context.Context, topic, key string, payload interface{}, maxRetries int) error
}

type AlertService struct {
	advisories repository.AdvisoryRepository
	flights    repository.FlightRepository
	producer   Producer
	logger     *zap.Logger

	advisoryTopic string
	alertTopic    string
	retries       int
}

type Option func(*AlertService)

func WithTopics(advisoryTopic, alertTopic string) Option {
	return func(s *AlertService) {
		s.advisoryTopic = advisoryTopic
		s.alertTopic = alertTopic
	}
}

func NewAlertService(
	advisories repository.AdvisoryRepository,
	flights repository.FlightRepository,
	producer Producer,
	logger *zap.Logger,
	opts ...Option,
) *AlertService {
	s := &AlertService{
		advisories: advisories,
		flights:    flights,
		producer:   producer,
		logger:     logger,
		retries:    3,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RecordAdvisory upserts the advisory and publishes the observation to the
// advisory topic. Alerting happens downstream, when the worker consumes the
// event, so every producer of advisories gets the same evaluation.
func (s *AlertService) RecordAdvisory(ctx context.Context, advisory *domain.Advisory) error {
	created, err := s.advisories.Upsert(ctx, advisory)
	if err != nil {
		return fmt.Errorf("upsert advisory: %w", err)
	}
	metrics.AdvisoriesObserved.WithLabelValues(string(advisory.Kind), fmt.Sprint(created)).Inc()

	if s.producer != nil && s.advisoryTopic != "" {
		event := kafka.NewAdvisoryEvent(advisory, created)
		if err := s.producer.PublishWithRetry(ctx, s.advisoryTopic, advisory.ID, event, s.retries); err != nil {
			s.logger.Warn("failed to publish advisory event",
				zap.String("advisory_id", advisory.ID), zap.Error(err))
		}
	}
	return nil
}

// HandleAdvisoryEvent evaluates a consumed advisory observation and raises an
// alert for newly created WARNING-or-worse advisories.
func (s *AlertService) HandleAdvisoryEvent(ctx context.Context, event kafka.AdvisoryEvent) error {
	if event.Type != kafka.EventAdvisoryCreated {
		return nil
	}
	if !severityAtLeastWarning(domain.AdvisorySeverity(event.Severity)) {
		return nil
	}
	if s.producer == nil || s.alertTopic == "" {
		return nil
	}

	alert := kafka.AlertEvent{
		Type:       "alert_raised",
		Airport:    event.Airport,
		AdvisoryID: event.AdvisoryID,
		Severity:   event.Severity,
		Detail:     fmt.Sprintf("%s: %s", event.Kind, event.Reason),
	}
	if err := s.producer.PublishWithRetry(ctx, s.alertTopic, event.AdvisoryID, alert, s.retries); err != nil {
		return fmt.Errorf("publish alert: %w", err)
	}
	metrics.AlertsPublished.WithLabelValues(alert.Type).Inc()
	return nil
}

func (s *AlertService) ActiveAdvisories(ctx context.Context, airport string) ([]domain.Advisory, error) {
	return s.advisories.ListActive(ctx, airport, time.Now().UTC())
}

// ResolveAdvisory closes an open-ended advisory as of now.
func (s *AlertService) ResolveAdvisory(ctx context.Context, id string) error {
	return s.advisories.Resolve(ctx, id, time.Now().UTC())
}

// OTPStats computes on-time performance for a trailing window ending now.
func (s *AlertService) OTPStats(ctx context.Context, airport string, window time.Duration) (*domain.OTPStats, error) {
	end := time.Now().UTC()
	return s.OTPStatsRange(ctx, airport, end.Add(-window), end)
}

// OTPStatsRange computes on-time performance over an explicit interval.
func (s *AlertService) OTPStatsRange(ctx context.Context, airport string, start, end time.Time) (*domain.OTPStats, error) {
	agg, err := s.flights.DelayAggregates(ctx, airport, start, end)
	if err != nil {
		return nil, fmt.Errorf("delay aggregates: %w", err)
	}

	stats := &domain.OTPStats{
		Airport:         airport,
		WindowStart:     start,
		WindowEnd:       end,
		TotalFlights:    agg.TotalFlights,
		OnTimeFlights:   agg.OnTimeFlights,
		AvgDelayMinutes: agg.AvgDelayMinutes,
		MaxDelayMinutes: agg.MaxDelayMinutes,
		WorstAirline:    agg.WorstAirline,
	}
	if agg.TotalFlights > 0 {
		stats.OnTimePercent = 100 * float64(agg.OnTimeFlights) / float64(agg.TotalFlights)
	}
	return stats, nil
}

func severityAtLeastWarning(sev domain.AdvisorySeverity) bool {
	return sev == domain.SeverityWarning || sev == domain.SeverityCritical
}

var _ AlertUseCase = (*AlertService)(nil)
