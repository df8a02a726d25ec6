// Package config reads settings from .env files and the environment.
package config

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const devSecret = "dev_fallback_secret"

// Config is everything the server needs at startup.
type Config struct {
	DatabaseDSN string
	Port        string
	GinMode     string

	JWTSecret string
	TokenTTL  time.Duration

	// Optional integrations; empty disables them.
	RedisAddr   string
	KafkaBroker string
	KafkaTopic  string

	CORSOrigins []string
}

// Load reads .env from the working directory and its parents (the server is
// often started from cmd/server) and then the environment.
func Load() Config {
	_ = godotenv.Overload(".env", "../.env", "../../.env")
	return FromEnv()
}

// FromEnv builds a Config from the current environment only.
func FromEnv() Config {
	cfg := Config{
		DatabaseDSN: os.Getenv("DB_DSN"),
		Port:        getEnv("APP_PORT", "8080"),
		GinMode:     os.Getenv("GIN_MODE"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		TokenTTL:    7 * 24 * time.Hour,
		RedisAddr:   os.Getenv("REDIS_ADDR"),
		KafkaBroker: os.Getenv("KAFKA_BROKER"),
		KafkaTopic:  getEnv("KAFKA_TOPIC", "medistore.events"),
		CORSOrigins: splitList(getEnv("CORS_ORIGINS", "*")),
	}
	if cfg.JWTSecret == "" {
		log.Println("WARN: JWT_SECRET is empty, using development secret")
		cfg.JWTSecret = devSecret
	}
	if v := os.Getenv("TOKEN_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			log.Printf("WARN: ignoring TOKEN_TTL=%q", v)
		} else {
			cfg.TokenTTL = d
		}
	}
	return cfg
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
