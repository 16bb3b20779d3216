package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

const minimalYAML = `
http:
  address: ":8080"
database:
  host: localhost
  port: 5432
  user: aino
  password: secret
  name: aino
`

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalYAML))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTP.Address)
	assert.Equal(t, "localhost", cfg.Database.Host)

	// defaults
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, "migrations", cfg.Database.MigrationsDir)
	assert.Equal(t, 3, cfg.Kafka.PublishRetries)
	assert.Equal(t, 300, cfg.Monitor.WeatherPollSeconds)
	assert.Equal(t, 120, cfg.Monitor.NASPollSeconds)
	assert.Equal(t, 35, cfg.Monitor.GustAlertKt)
	assert.Equal(t, "EGLL", cfg.Connections.Airport)
	assert.Equal(t, 120, cfg.Connections.AssessmentTTLMinutes)
	assert.Equal(t, 4, cfg.Connections.BatchWorkers)
	assert.Equal(t, 10, cfg.Worker.ExpirationSweepMinutes)
	assert.Equal(t, ":9090", cfg.Worker.MetricsAddr)
}

func TestLoad_PasswordFromEnv(t *testing.T) {
	t.Setenv("AINO_DB_PASSWORD", "from-env")

	cfg, err := Load(writeConfig(t, minimalYAML))
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Database.Password)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_InvalidConfig(t *testing.T) {
	// database block missing entirely
	_, err := Load(writeConfig(t, "http:\n  address: \":8080\"\n"))
	assert.Error(t, err)
}

func TestDatabaseConfig_DSN(t *testing.T) {
	db := DatabaseConfig{Host: "db", Port: 5432, User: "aino", Password: "pw", Name: "aino", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=aino password=pw dbname=aino sslmode=disable", db.DSN())
	assert.Equal(t, "postgres://aino:pw@db:5432/aino?sslmode=disable", db.URL())
}
