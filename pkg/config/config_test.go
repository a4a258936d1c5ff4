package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"
)

func newFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	BindFlags(flags)
	require.NoError(t, flags.Parse(args))
	return flags
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(newFlags(t))
	require.NoError(t, err)

	assert.Equal(t, ServiceName, cfg.ServiceName)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "catalog-events", cfg.Kafka.Topic)
	assert.False(t, cfg.Kafka.Enabled())
	assert.Equal(t, 24, cfg.JWT.ExpirationHours)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("APP_ENV", "production")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_MAX_OPEN_CONNS", "5")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092")
	t.Setenv("JWT_SIGNING_KEY", "s3cret")

	cfg, err := Load(newFlags(t))
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "production", cfg.Server.Env)
	assert.Equal(t, "db.internal", cfg.DB.Host)
	assert.Equal(t, 5, cfg.DB.MaxOpenConns)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.True(t, cfg.Kafka.Enabled())
	assert.Equal(t, "s3cret", cfg.JWT.SigningKey)
}

func TestPortFlagWins(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")

	cfg, err := Load(newFlags(t, "--port", "7070"))
	require.NoError(t, err)
	assert.Equal(t, "7070", cfg.Server.Port)
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
db:
  name: catalog
kafka:
  brokers: ["broker:9092"]
  topic: store-changes
`), 0o600))

	cfg, err := Load(newFlags(t, "--config", path))
	require.NoError(t, err)

	assert.Equal(t, "catalog", cfg.DB.DBName)
	assert.Equal(t, []string{"broker:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "store-changes", cfg.Kafka.Topic)
}

func TestMissingConfigFile(t *testing.T) {
	_, err := Load(newFlags(t, "--config", filepath.Join(t.TempDir(), "nope.yaml")))
	assert.Error(t, err)
}

func TestDBConfigURLs(t *testing.T) {
	c := DBConfig{Host: "h", Port: "5432", User: "u", Password: "p@ss", DBName: "d", SSLMode: "disable"}

	assert.Equal(t, "host=h port=5432 user=u password=p@ss dbname=d sslmode=disable", c.GetDSN())
	assert.Equal(t, "pgx5://u:p%40ss@h:5432/d?sslmode=disable", c.GetURL())
	assert.Equal(t, logger.Info, c.GormLogLevel())

	c.LogLevel = "silent"
	assert.Equal(t, logger.Silent, c.GormLogLevel())
}
