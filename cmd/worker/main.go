package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ainohq/aino/config"
	"github.com/ainohq/aino/internal/cache"
	"github.com/ainohq/aino/internal/ingest"
	"github.com/ainohq/aino/internal/kafka"
	"github.com/ainohq/aino/internal/monitor"
	"github.com/ainohq/aino/internal/repository"
	"github.com/ainohq/aino/internal/service/alerts"
	"github.com/ainohq/aino/internal/service/connections"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		logger.Fatal("connect postgres", zap.Error(err))
	}
	defer pool.Close()

	redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Monitor.WeatherCacheSeconds)*time.Second)
	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	flightRepo := repository.NewFlightRepository(pool)
	assessmentRepo := repository.NewAssessmentRepository(pool)
	advisoryRepo := repository.NewAdvisoryRepository(pool)

	alertService := alerts.NewAlertService(
		advisoryRepo,
		flightRepo,
		producer,
		logger,
		alerts.WithTopics(cfg.Kafka.AdvisoryTopic, cfg.Kafka.AlertTopic),
	)
	connectionService := connections.NewConnectionService(
		flightRepo,
		assessmentRepo,
		nil,
		producer,
		time.Duration(cfg.Connections.AssessmentTTLMinutes)*time.Minute,
		logger,
		connections.WithAlertTopic(cfg.Kafka.AlertTopic),
	)

	weatherPoller := monitor.NewWeatherPoller(
		ingest.NewMetarClient(),
		redisCache,
		alertService,
		monitor.WeatherPollerConfig{
			Stations:     cfg.Monitor.Stations,
			PollInterval: time.Duration(cfg.Monitor.WeatherPollSeconds) * time.Second,
			GustAlertKt:  cfg.Monitor.GustAlertKt,
		},
		logger,
	)
	nasPoller := monitor.NewNASPoller(
		ingest.NewNASClient(),
		alertService,
		time.Duration(cfg.Monitor.NASPollSeconds)*time.Second,
		logger,
	)

	weatherPoller.Start(ctx)
	defer weatherPoller.Stop()
	nasPoller.Start(ctx)
	defer nasPoller.Stop()

	// Alerts are raised off the consumed advisory stream, so every producer
	// of advisories (pollers, API, other workers) gets the same evaluation.
	consumer := kafka.NewAdvisoryConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.AdvisoryTopic, logger)
	defer consumer.Close()

	go func() {
		if err := consumer.Run(ctx, alertService.HandleAdvisoryEvent); err != nil && ctx.Err() == nil {
			logger.Error("advisory consumer stopped", zap.Error(err))
		}
	}()

	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", promhttp.Handler())
	metricsSrv := &http.Server{Addr: cfg.Worker.MetricsAddr, Handler: metricsMux}
	go func() {
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server", zap.Error(err))
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown metrics server", zap.Error(err))
		}
	}()

	sweepTicker := time.NewTicker(time.Duration(cfg.Worker.ExpirationSweepMinutes) * time.Minute)
	defer sweepTicker.Stop()

	logger.Info("worker started",
		zap.Strings("stations", cfg.Monitor.Stations),
		zap.String("airport", cfg.Connections.Airport))

	for {
		select {
		case <-sweepTicker.C:
			removed, err := connectionService.ExpireStale(ctx)
			if err != nil {
				logger.Error("expire assessments", zap.Error(err))
				continue
			}
			if removed > 0 {
				logger.Info("expired stale assessments", zap.Int64("count", removed))
			}
		case <-ctx.Done():
			logger.Info("shutting down")
			return
		}
	}
}
