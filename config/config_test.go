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
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
http:
  address: ":8000"
database:
  host: localhost
  port: 5432
  user: airport
  password: secret
  name: airport
kafka:
  brokers: ["localhost:9092"]
  orders_topic: orders
auth:
  jwt_secret: s3cr3t
orders:
  page_size: 20
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, ":8000", cfg.HTTP.Address)
	assert.Equal(t, ":9090", cfg.GRPC.Address)
	assert.Equal(t, "host=localhost port=5432 user=airport password=secret dbname=airport sslmode=disable", cfg.Database.DSN())
	assert.Equal(t, []string{"localhost:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, 2000, cfg.Kafka.PublishTimeoutMS)
	assert.Equal(t, 20, cfg.Orders.PageSize)
	assert.Equal(t, 100, cfg.Orders.MaxPageSize)
	assert.Equal(t, 30, cfg.Auth.AccessTTLMinutes)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadConfig_EnvOverridesSecrets(t *testing.T) {
	path := writeConfig(t, "auth:\n  jwt_secret: from-file\n")
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("DATABASE_PASSWORD", "db-env")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Auth.JWTSecret)
	assert.Equal(t, "db-env", cfg.Database.Password)
}

func TestLoadConfig_RequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	path := writeConfig(t, "http:\n  address: \":8000\"\n")

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
