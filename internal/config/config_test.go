package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsAndEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("JWT_ACCESS_SECRET", "topsecret")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "topsecret", cfg.JWT.AccessSecret)
	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 30*time.Minute, cfg.JWT.AccessTTL)
	assert.Equal(t, "imgbb", cfg.Image.Provider)
	assert.Equal(t, 5, cfg.Outbox.MaxRetry)
}

func TestGetDSN(t *testing.T) {
	c := DatabaseConfig{Host: "h", Port: "3306", User: "u", Password: "p", Name: "m42hub"}
	assert.Equal(t, "u:p@tcp(h:3306)/m42hub?charset=utf8mb4&parseTime=True&loc=Local", c.GetDSN())
}
