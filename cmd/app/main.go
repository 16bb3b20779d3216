package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ainohq/aino/api"
	"github.com/ainohq/aino/config"
	"github.com/ainohq/aino/internal/bootstrap"
	"github.com/ainohq/aino/internal/cache"
	"github.com/ainohq/aino/internal/ingest"
	"github.com/ainohq/aino/internal/kafka"
	"github.com/ainohq/aino/internal/repository"
	"github.com/ainohq/aino/internal/service/alerts"
	"github.com/ainohq/aino/internal/service/connections"
	"github.com/ainohq/aino/internal/service/reports"
	"github.com/ainohq/aino/internal/service/weather"
	"github.com/jackc/pgx/v5/pgxpool"
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

	if err := repository.Migrate(logger, cfg.Database.URL(), cfg.Database.MigrationsDir); err != nil {
		logger.Fatal("run migrations", zap.Error(err))
	}

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

	metarClient := ingest.NewMetarClient()

	weatherService := weather.NewWeatherService(metarClient, redisCache, logger)
	connectionService := connections.NewConnectionService(
		flightRepo,
		assessmentRepo,
		weatherService,
		producer,
		time.Duration(cfg.Connections.AssessmentTTLMinutes)*time.Minute,
		logger,
		connections.WithAlertTopic(cfg.Kafka.AlertTopic),
		connections.WithBatchWorkers(cfg.Connections.BatchWorkers),
	)
	alertService := alerts.NewAlertService(
		advisoryRepo,
		flightRepo,
		producer,
		logger,
		alerts.WithTopics(cfg.Kafka.AdvisoryTopic, cfg.Kafka.AlertTopic),
	)
	reportService := reports.NewReportService(weatherService, alertService, connectionService, flightRepo, logger)

	handlers := bootstrap.Handlers{
		Flights:     api.NewFlightHandler(flightRepo, redisCache),
		Connections: api.NewConnectionHandler(connectionService),
		Weather:     api.NewWeatherHandler(weatherService),
		Alerts:      api.NewAlertHandler(alertService),
		Reports:     api.NewReportHandler(reportService),
	}

	if err := bootstrap.Run(ctx, cfg, handlers, logger); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}
