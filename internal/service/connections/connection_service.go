package connections

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ainohq/aino/internal/connection"
	"github.com/ainohq/aino/internal/domain"
	"github.com/ainohq/aino/internal/kafka"
	"github.com/ainohq/aino/internal/metrics"
	"github.com/ainohq/aino/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ConnectionUseCase interface {
	Assess(ctx context.Context, arrivalID, departureID int64) (*domain.Assessment, error)
	AssessBatch(ctx context.Context, pairs []FlightPair) (*BatchResult, error)
	GetAssessment(ctx context.Context, id string) (*domain.Assessment, error)
	ListAtRisk(ctx context.Context, airport string, minRisk domain.RiskLevel) ([]domain.Assessment, error)
	ExpireStale(ctx context.Context) (int64, error)
}

// WeatherProvider supplies the current observation for the airport; a nil
// report simply zeroes the weather features.
type WeatherProvider interface {
	Current(ctx context.Context, station string) (*domain.WeatherReport, error)
}

type Producer interface {
	PublishWithRetry(ctx context.Context, topic, key string, payload interface{}, maxRetries int) error
}

type FlightPair struct {
	ArrivalID   int64 `json:"arrival_flight_id"`
	DepartureID int64 `json:"departure_flight_id"`
}

// BatchResult carries the assessments that succeeded and per-pair failures.
type BatchResult struct {
	Assessments []domain.Assessment
	Failures    []BatchFailure
}

type BatchFailure struct {
	Pair FlightPair
	Err  error
}

type ConnectionService struct {
	flights     repository.FlightRepository
	assessments repository.AssessmentRepository
	weather     WeatherProvider
	producer    Producer
	model       *connection.Model
	logger      *zap.Logger

	alertTopic    string
	alertRetries  int
	assessmentTTL time.Duration
	batchWorkers  int
}

type Option func(*ConnectionService)

func WithAlertTopic(topic string) Option {
	return func(s *ConnectionService) { s.alertTopic = topic }
}

func WithBatchWorkers(n int) Option {
	return func(s *ConnectionService) {
		if n > 0 {
			s.batchWorkers = n
		}
	}
}

func NewConnectionService(
	flights repository.FlightRepository,
	assessments repository.AssessmentRepository,
	weather WeatherProvider,
	producer Producer,
	assessmentTTL time.Duration,
	logger *zap.Logger,
	opts ...Option,
) *ConnectionService {
	s := &ConnectionService{
		flights:       flights,
		assessments:   assessments,
		weather:       weather,
		producer:      producer,
		model:         connection.NewModel(),
		logger:        logger,
		alertRetries:  3,
		assessmentTTL: assessmentTTL,
		batchWorkers:  4,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Assess loads both flights, scores the connection and persists the result.
// An assessment at HIGH or worse raises a connection_at_risk alert.
func (s *ConnectionService) Assess(ctx context.Context, arrivalID, departureID int64) (*domain.Assessment, error) {
	start := time.Now()
	defer func() { metrics.AssessmentDuration.Observe(time.Since(start).Seconds()) }()

	arr, err := s.flights.GetByID(ctx, arrivalID)
	if err != nil {
		return nil, fmt.Errorf("load arrival %d: %w", arrivalID, err)
	}
	dep, err := s.flights.GetByID(ctx, departureID)
	if err != nil {
		return nil, fmt.Errorf("load departure %d: %w", departureID, err)
	}

	conn, err := connection.Pair(arr, dep)
	if err != nil {
		return nil, err
	}

	var wx *domain.WeatherReport
	if s.weather != nil {
		wx, err = s.weather.Current(ctx, conn.Arrival.Airport)
		if err != nil {
			// Weather features are optional; score without them rather than
			// failing the assessment on an upstream outage.
			s.logger.Warn("weather unavailable for assessment",
				zap.String("airport", conn.Arrival.Airport), zap.Error(err))
			wx = nil
		}
	}

	fv := connection.Features(&conn, wx)
	prob := s.model.Score(fv)

	assessment := &domain.Assessment{
		ID:                 uuid.NewString(),
		ArrivalFlightID:    arr.ID,
		DepartureFlightID:  dep.ID,
		Airport:            conn.Arrival.Airport,
		ConnectionMinutes:  conn.ConnectionMinutes,
		BufferMinutes:      conn.BufferMinutes,
		SuccessProbability: prob,
		RiskLevel:          connection.Classify(prob, conn.BufferMinutes),
		RiskFactors:        fv.RiskFactors(),
		ModelVersion:       connection.ModelVersion,
		AssessedAt:         time.Now().UTC(),
	}
	assessment.ExpiresAt = assessment.AssessedAt.Add(s.assessmentTTL)

	if err := s.assessments.Create(ctx, assessment); err != nil {
		return nil, fmt.Errorf("persist assessment: %w", err)
	}
	metrics.AssessmentsTotal.WithLabelValues(string(assessment.RiskLevel)).Inc()

	if assessment.RiskLevel.AtLeast(domain.RiskLevelHigh) {
		s.publishAlert(ctx, assessment)
	}
	return assessment, nil
}

// AssessBatch runs assessments in parallel under a worker-pool semaphore.
// Failures don't abort the batch; they're collected per pair.
func (s *ConnectionService) AssessBatch(ctx context.Context, pairs []FlightPair) (*BatchResult, error) {
	result := &BatchResult{}

	sem := make(chan struct{}, s.batchWorkers)
	var wg sync.WaitGroup
	var mu sync.Mutex

	for _, pair := range pairs {
		select {
		case <-ctx.Done():
			wg.Wait()
			return nil, ctx.Err()
		case sem <- struct{}{}:
		}
		// The slot may have been granted in the same instant the context was
		// canceled; in-flight assessments must finish before we return.
		if err := ctx.Err(); err != nil {
			<-sem
			wg.Wait()
			return nil, err
		}

		wg.Add(1)
		go func(p FlightPair) {
			defer wg.Done()
			defer func() { <-sem }()

			a, err := s.Assess(ctx, p.ArrivalID, p.DepartureID)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				result.Failures = append(result.Failures, BatchFailure{Pair: p, Err: err})
				return
			}
			result.Assessments = append(result.Assessments, *a)
		}(pair)
	}

	wg.Wait()
	return result, nil
}

func (s *ConnectionService) GetAssessment(ctx context.Context, id string) (*domain.Assessment, error) {
	return s.assessments.GetByID(ctx, id)
}

func (s *ConnectionService) ListAtRisk(ctx context.Context, airport string, minRisk domain.RiskLevel) ([]domain.Assessment, error) {
	return s.assessments.ListAtRisk(ctx, airport, minRisk)
}

// ExpireStale removes assessments past their expiry, worker-sweep style.
func (s *ConnectionService) ExpireStale(ctx context.Context) (int64, error) {
	removed, err := s.assessments.ExpireBefore(ctx, time.Now().UTC())
	if err != nil {
		return 0, err
	}
	if removed > 0 {
		metrics.AssessmentsExpired.Add(float64(removed))
	}
	return removed, nil
}

func (s *ConnectionService) publishAlert(ctx context.Context, a *domain.Assessment) {
	if s.producer == nil || s.alertTopic == "" {
		return
	}
	event := kafka.AlertEvent{
		Type:               "connection_at_risk",
		Airport:            a.Airport,
		AssessmentID:       a.ID,
		RiskLevel:          string(a.RiskLevel),
		SuccessProbability: a.SuccessProbability,
		BufferMinutes:      a.BufferMinutes,
	}
	if err := s.producer.PublishWithRetry(ctx, s.alertTopic, a.ID, event, s.alertRetries); err != nil {
		s.logger.Warn("failed to publish connection_at_risk alert",
			zap.String("assessment_id", a.ID), zap.Error(err))
		return
	}
	metrics.AlertsPublished.WithLabelValues(event.Type).Inc()
}

var _ ConnectionUseCase = (*ConnectionService)(nil)
