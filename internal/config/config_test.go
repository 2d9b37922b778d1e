package config_test

import (
	"testing"
	"time"

	"kayoemoeda/internal/config"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestDefaults(t *testing.T) {
	v := viper.New()
	config.Defaults(v)
	cfg := config.FromViper(v)

	assert.Equal(t, ":8080", cfg.AppPort)
	assert.Equal(t, "postgres", cfg.DatabaseDriver)
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	assert.Equal(t, time.Hour, cfg.ResetTokenTTL)
	assert.False(t, cfg.RabbitMQEnabled)
	assert.Equal(t, int64(1), cfg.SnowflakeNode)
	assert.Equal(t, 10, cfg.LoginRateLimit)
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("APP_PORT", ":9090")
	t.Setenv("DATABASE_DRIVER", "sqlite")
	t.Setenv("JWT_TTL", "2h")
	t.Setenv("RABBITMQ_ENABLED", "true")

	cfg := config.Load()

	assert.Equal(t, ":9090", cfg.AppPort)
	assert.Equal(t, "sqlite", cfg.DatabaseDriver)
	assert.Equal(t, 2*time.Hour, cfg.JWTTTL)
	assert.True(t, cfg.RabbitMQEnabled)
}
