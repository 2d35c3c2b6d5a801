package config

import (
	"testing"
	"time"
)

func TestLoadRequiresSecretInProduction(t *testing.T) {
	t.Setenv("GOPLANNER_ENV", "production")
	t.Setenv("SECRET_KEY", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected a startup failure without SECRET_KEY")
	}
}

func TestLoadGeneratesDevelopmentSecret(t *testing.T) {
	t.Setenv("GOPLANNER_ENV", "development")
	t.Setenv("SECRET_KEY", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !cfg.IsDevelopment() {
		t.Fatal("expected development mode")
	}
	if len(cfg.SecretKey) < 32 {
		t.Fatalf("expected a generated secret, got %q", cfg.SecretKey)
	}
}

func TestLoadDefaultsAndOverrides(t *testing.T) {
	t.Setenv("GOPLANNER_ENV", "production")
	t.Setenv("SECRET_KEY", "unit-test-secret")
	t.Setenv("PORT", "")
	t.Setenv("TOKEN_TTL", "")
	t.Setenv("OTP_TTL", "5m")
	t.Setenv("SMTP_PORT", "2525")
	t.Setenv("AUTH_RATE_PER_MINUTE", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "8080" {
		t.Fatalf("expected default port, got %q", cfg.Port)
	}
	if cfg.TokenTTL != 7*24*time.Hour {
		t.Fatalf("expected default token ttl, got %v", cfg.TokenTTL)
	}
	if cfg.OTPTTL != 5*time.Minute {
		t.Fatalf("expected overridden otp ttl, got %v", cfg.OTPTTL)
	}
	if cfg.SMTPPort != 2525 {
		t.Fatalf("expected overridden smtp port, got %d", cfg.SMTPPort)
	}
	if cfg.AuthRatePerMinute != 30 {
		t.Fatalf("expected default auth rate, got %d", cfg.AuthRatePerMinute)
	}
}

func TestLoadRejectsMalformedValues(t *testing.T) {
	t.Setenv("GOPLANNER_ENV", "development")
	t.Setenv("SECRET_KEY", "unit-test-secret")

	t.Setenv("TOKEN_TTL", "soon")
	if _, err := Load(); err == nil {
		t.Fatal("expected an error for a malformed TOKEN_TTL")
	}
	t.Setenv("TOKEN_TTL", "")

	t.Setenv("SMTP_PORT", "not-a-port")
	if _, err := Load(); err == nil {
		t.Fatal("expected an error for a malformed SMTP_PORT")
	}
}
