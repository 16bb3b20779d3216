package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	HTTP        HTTPConfig        `yaml:"http" validate:"required"`
	Database    DatabaseConfig    `yaml:"database" validate:"required"`
	Redis       RedisConfig       `yaml:"redis"`
	Kafka       KafkaConfig       `yaml:"kafka"`
	Monitor     MonitorConfig     `yaml:"monitor"`
	Connections ConnectionsConfig `yaml:"connections"`
	Worker      WorkerConfig      `yaml:"worker"`
}

type HTTPConfig struct {
	Address string `yaml:"address" validate:"required"`
}

type DatabaseConfig struct {
	Host          string `yaml:"host" validate:"required"`
	Port          int    `yaml:"port" validate:"required"`
	User          string `yaml:"user" validate:"required"`
	Password      string `yaml:"password"`
	Name          string `yaml:"name" validate:"required"`
	SSLMode       string `yaml:"ssl_mode"`
	MigrationsDir string `yaml:"migrations_dir"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s", d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

// URL is the DSN form golang-migrate expects.
func (d DatabaseConfig) URL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s", d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode)
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type KafkaConfig struct {
	Brokers        []string `yaml:"brokers"`
	AdvisoryTopic  string   `yaml:"advisory_topic"`
	AlertTopic     string   `yaml:"alert_topic"`
	GroupID        string   `yaml:"group_id"`
	PublishRetries int      `yaml:"publish_retries"`
}

type MonitorConfig struct {
	Stations            []string `yaml:"stations"`
	WeatherPollSeconds  int      `yaml:"weather_poll_seconds"`
	NASPollSeconds      int      `yaml:"nas_poll_seconds"`
	GustAlertKt         int      `yaml:"gust_alert_kt"`
	WeatherCacheSeconds int      `yaml:"weather_cache_seconds"`
}

type ConnectionsConfig struct {
	Airport              string `yaml:"airport"`
	AssessmentTTLMinutes int    `yaml:"assessment_ttl_minutes"`
	BatchWorkers         int    `yaml:"batch_workers"`
}

type WorkerConfig struct {
	ExpirationSweepMinutes int    `yaml:"expiration_sweep_minutes"`
	MetricsAddr            string `yaml:"metrics_addr"`
}

// Load reads the YAML config at path. A .env file in the working directory is
// applied first so the yaml can be kept free of secrets in development.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyDefaults()
	if pw := os.Getenv("AINO_DB_PASSWORD"); pw != "" {
		cfg.Database.Password = pw
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Database.MigrationsDir == "" {
		c.Database.MigrationsDir = "migrations"
	}
	if c.Kafka.PublishRetries == 0 {
		c.Kafka.PublishRetries = 3
	}
	if c.Monitor.WeatherPollSeconds == 0 {
		c.Monitor.WeatherPollSeconds = 300
	}
	if c.Monitor.NASPollSeconds == 0 {
		c.Monitor.NASPollSeconds = 120
	}
	if c.Monitor.GustAlertKt == 0 {
		c.Monitor.GustAlertKt = 35
	}
	if c.Monitor.WeatherCacheSeconds == 0 {
		c.Monitor.WeatherCacheSeconds = 300
	}
	if c.Connections.Airport == "" {
		c.Connections.Airport = "EGLL"
	}
	if c.Connections.AssessmentTTLMinutes == 0 {
		c.Connections.AssessmentTTLMinutes = 120
	}
	if c.Connections.BatchWorkers == 0 {
		c.Connections.BatchWorkers = 4
	}
	if c.Worker.ExpirationSweepMinutes == 0 {
		c.Worker.ExpirationSweepMinutes = 10
	}
	if c.Worker.MetricsAddr == "" {
		c.Worker.MetricsAddr = ":9090"
	}
}
