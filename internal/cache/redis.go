package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ainohq/aino/config"
	"github.com/ainohq/aino/internal/domain"
	"github.com/redis/go-redis/v9"
)

type RedisCache struct {
	client     *redis.Client
	weatherTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, weatherTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:     redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		weatherTTL: weatherTTL,
	}
}

// GetWeather returns the cached report for a station, or nil on miss.
func (c *RedisCache) GetWeather(ctx context.Context, station string) (*domain.WeatherReport, error) {
	data, err := c.client.Get(ctx, weatherKey(station)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var report domain.WeatherReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

func (c *RedisCache) SetWeather(ctx context.Context, report *domain.WeatherReport) error {
	payload, err := json.Marshal(report)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, weatherKey(report.Station), payload, c.weatherTTL).Err()
}

// GetSchedule returns the cached flight list for an airport, or nil on miss.
func (c *RedisCache) GetSchedule(ctx context.Context, airport string) ([]domain.Flight, error) {
	data, err := c.client.Get(ctx, scheduleKey(airport)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var flights []domain.Flight
	if err := json.Unmarshal(data, &flights); err != nil {
		return nil, err
	}
	return flights, nil
}

func (c *RedisCache) SetSchedule(ctx context.Context, airport string, flights []domain.Flight, ttl time.Duration) error {
	payload, err := json.Marshal(flights)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, scheduleKey(airport), payload, ttl).Err()
}

// AcquireFetchLock takes a short-lived lock so only one poller hits the
// upstream for a station at a time.
func (c *RedisCache) AcquireFetchLock(ctx context.Context, station string, ttl time.Duration) (bool, error) {
	return c.client.SetNX(ctx, fetchLockKey(station), "locked", ttl).Result()
}

func (c *RedisCache) ReleaseFetchLock(ctx context.Context, station string) error {
	return c.client.Del(ctx, fetchLockKey(station)).Err()
}

func weatherKey(station string) string {
	return fmt.Sprintf("cache:weather:%s", station)
}

func scheduleKey(airport string) string {
	return fmt.Sprintf("cache:schedule:%s", airport)
}

func fetchLockKey(station string) string {
	return fmt.Sprintf("lock:weather:%s", station)
}
