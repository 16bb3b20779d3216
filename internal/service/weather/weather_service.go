package weather

import (
	"context"
	"time"

	"github.com/ainohq/aino/internal/domain"
	"go.uber.org/zap"
)

type WeatherUseCase interface {
	Current(ctx context.Context, station string) (*domain.WeatherReport, error)
}

// Fetcher is the upstream METAR client.
type Fetcher interface {
	FetchWithRetry(ctx context.Context, stations []string) ([]domain.WeatherReport, error)
}

// Cache is the subset of the redis cache the service needs.
type Cache interface {
	GetWeather(ctx context.Context, station string) (*domain.WeatherReport, error)
	SetWeather(ctx context.Context, report *domain.WeatherReport) error
	AcquireFetchLock(ctx context.Context, station string, ttl time.Duration) (bool, error)
	ReleaseFetchLock(ctx context.Context, station string) error
}

const fetchLockTTL = 20 * time.Second

type WeatherService struct {
	fetcher Fetcher
	cache   Cache
	logger  *zap.Logger
}

func NewWeatherService(fetcher Fetcher, cache Cache, logger *zap.Logger) *WeatherService {
	return &WeatherService{fetcher: fetcher, cache: cache, logger: logger}
}

// Current returns the station's observation, cache-aside. Redis failures are
// logged and treated as a miss; they never fail the request. Upstream
// failures propagate.
func (s *WeatherService) Current(ctx context.Context, station string) (*domain.WeatherReport, error) {
	if s.cache != nil {
		cached, err := s.cache.GetWeather(ctx, station)
		if err != nil {
			s.logger.Warn("weather cache read failed", zap.String("station", station), zap.Error(err))
		} else if cached != nil {
			return cached, nil
		}

		// Hold the fetch lock so concurrent misses don't all hit the upstream.
		// If someone else holds it, go upstream anyway rather than block.
		if ok, err := s.cache.AcquireFetchLock(ctx, station, fetchLockTTL); err == nil && ok {
			defer func() { _ = s.cache.ReleaseFetchLock(ctx, station) }()
		}
	}

	reports, err := s.fetcher.FetchWithRetry(ctx, []string{station})
	if err != nil {
		return nil, err
	}
	if len(reports) == 0 {
		return nil, nil
	}

	report := &reports[0]
	if s.cache != nil {
		if err := s.cache.SetWeather(ctx, report); err != nil {
			s.logger.Warn("weather cache write failed", zap.String("station", station), zap.Error(err))
		}
	}
	return report, nil
}

var _ WeatherUseCase = (*WeatherService)(nil)
