// Package config loads the process configuration from the environment once
// at startup. Secrets have no silent fallbacks: a missing SECRET_KEY is a
// startup failure everywhere except explicit development mode.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/goplanner/goplanner/internal/security"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env      string
	Port     string
	DBPath   string
	Timezone string

	SecretKey string
	TokenTTL  time.Duration
	OTPTTL    time.Duration

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	MailFrom     string
	SupportInbox string

	ItineraryServiceURL string
	MetricsAddr         string
	CORSAllowedOrigins  string

	AuthRatePerMinute int
	AuthRateBurst     int
}

// Load reads the configuration from the environment. It returns an error,
// rather than a placeholder default, when a production-required secret is
// absent.
func Load() (*Config, error) {
	cfg := &Config{
		Env:      getEnv("GOPLANNER_ENV", EnvProduction),
		Port:     getEnv("PORT", "8080"),
		DBPath:   getEnv("DB_PATH", filepath.Join("data", "goplanner.db")),
		Timezone: getEnv("TZ", "UTC"),

		SecretKey: os.Getenv("SECRET_KEY"),

		SMTPHost:     os.Getenv("SMTP_HOST"),
		SMTPUsername: os.Getenv("SMTP_USERNAME"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		MailFrom:     getEnv("MAIL_FROM", "noreply@goplanner.local"),
		SupportInbox: os.Getenv("SUPPORT_INBOX"),

		ItineraryServiceURL: os.Getenv("ITINERARY_SERVICE_URL"),
		MetricsAddr:         os.Getenv("METRICS_ADDR"),
		CORSAllowedOrigins:  getEnv("CORS_ALLOWED_ORIGINS", "*"),
	}

	var err error
	if cfg.TokenTTL, err = getDuration("TOKEN_TTL", 7*24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.OTPTTL, err = getDuration("OTP_TTL", 10*time.Minute); err != nil {
		return nil, err
	}
	if cfg.SMTPPort, err = getInt("SMTP_PORT", 587); err != nil {
		return nil, err
	}
	if cfg.AuthRatePerMinute, err = getInt("AUTH_RATE_PER_MINUTE", 30); err != nil {
		return nil, err
	}
	if cfg.AuthRateBurst, err = getInt("AUTH_RATE_BURST", 10); err != nil {
		return nil, err
	}

	if cfg.SecretKey == "" {
		if cfg.Env != EnvDevelopment {
			return nil, fmt.Errorf("SECRET_KEY is required when GOPLANNER_ENV=%s", cfg.Env)
		}
		generated, err := security.RandomString(48, "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789")
		if err != nil {
			return nil, fmt.Errorf("generate development secret: %w", err)
		}
		cfg.SecretKey = generated
	}

	return cfg, nil
}

func (cfg *Config) IsDevelopment() bool {
	return cfg.Env == EnvDevelopment
}

func getEnv(key string, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	value, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return value, nil
}

func getInt(key string, fallback int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return value, nil
}
