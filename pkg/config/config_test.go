package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	os.Unsetenv("DB_NAME")
	os.Unsetenv("SERVER_PORT")

	cfg, err := Load()
	assert.NoError(t, err)

	assert.Equal(t, "venue_explorer", cfg.Database.Database)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.False(t, cfg.OTEL.Enabled)
}

func TestLoad_Overrides(t *testing.T) {
	os.Setenv("DB_HOST", "db.internal")
	os.Setenv("DB_PORT", "5433")
	os.Setenv("REDIS_PORT", "6380")
	defer func() {
		os.Unsetenv("DB_HOST")
		os.Unsetenv("DB_PORT")
		os.Unsetenv("REDIS_PORT")
	}()

	cfg, err := Load()
	assert.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 5433, cfg.Database.Port)
	assert.Equal(t, "localhost:6380", cfg.Redis.RedisAddr())
}

func TestDatabaseDSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host: "localhost", Port: 5432, User: "postgres",
		Password: "secret", Database: "venue_explorer", SSLMode: "disable",
	}
	assert.Equal(t,
		"host=localhost port=5432 user=postgres password=secret dbname=venue_explorer sslmode=disable",
		cfg.DatabaseDSN(),
	)
}
