package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, k := range []string{"DB_DSN", "APP_PORT", "JWT_SECRET", "TOKEN_TTL", "REDIS_ADDR", "KAFKA_BROKER", "KAFKA_TOPIC", "CORS_ORIGINS"} {
		t.Setenv(k, "")
	}

	cfg := FromEnv()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, devSecret, cfg.JWTSecret)
	assert.Equal(t, 7*24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, "medistore.events", cfg.KafkaTopic)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Empty(t, cfg.RedisAddr)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("DB_DSN", "postgres://localhost/medistore")
	t.Setenv("APP_PORT", "3001")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("TOKEN_TTL", "1h")
	t.Setenv("CORS_ORIGINS", "http://a.test, http://b.test,")

	cfg := FromEnv()

	assert.Equal(t, "postgres://localhost/medistore", cfg.DatabaseDSN)
	assert.Equal(t, "3001", cfg.Port)
	assert.Equal(t, "s3cret", cfg.JWTSecret)
	assert.Equal(t, time.Hour, cfg.TokenTTL)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins)
}

func TestFromEnvBadTTL(t *testing.T) {
	t.Setenv("TOKEN_TTL", "forever")
	assert.Equal(t, 7*24*time.Hour, FromEnv().TokenTTL)
}
