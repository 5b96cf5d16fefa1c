package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultAccessTTL       = "15m"
	defaultRefreshTTL      = "24h"
	defaultActivateTTL     = "30m"
	defaultCookieDays      = "1"
	defaultClientURL       = "http://localhost:3000"
	defaultAccessSecret    = "change-me-access-secret"
	defaultRefreshSecret   = "change-me-refresh-secret"
	defaultActivateSecret  = "change-me-activate-secret"
	defaultResetTokenTTL   = "10m"
	defaultSMTPPort        = "587"
	defaultMailFromAddress = "Memorize API <noreply@memorize.dev>"
)

type Config struct {
	AppEnv      string
	Port        string
	DatabaseURL string
	ClientURL   string

	AccessTokenSecret   string
	AccessTokenTTL      time.Duration
	RefreshTokenSecret  string
	RefreshTokenTTL     time.Duration
	ActivateTokenSecret string
	ActivateTokenTTL    time.Duration

	// Reset tokens are random values with only a hash persisted; the TTL
	// bounds the hash's validity window.
	ResetTokenTTL time.Duration

	// CookieTokenTTLDays sizes the refresh-token cookie lifetime.
	CookieTokenTTLDays int

	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string
	MailFrom string
}

func (c *Config) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.AppEnv))
	return env == "prod" || env == "production" || env == "release"
}

func (c *Config) CookieMaxAge() int {
	return c.CookieTokenTTLDays * 24 * 60 * 60
}

func Load() (*Config, error) {
	cfg := &Config{}

	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.Port = strings.TrimSpace(getEnv("PORT", "8080"))
	cfg.DatabaseURL = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	cfg.ClientURL = strings.TrimSpace(getEnv("CLIENT_URL", defaultClientURL))

	cfg.AccessTokenSecret = strings.TrimSpace(getEnv("ACCESS_TOKEN_SECRET", defaultAccessSecret))
	cfg.RefreshTokenSecret = strings.TrimSpace(getEnv("REFRESH_TOKEN_SECRET", defaultRefreshSecret))
	cfg.ActivateTokenSecret = strings.TrimSpace(getEnv("ACTIVE_TOKEN_SECRET", defaultActivateSecret))

	var err error
	if cfg.AccessTokenTTL, err = parseDurationEnv("ACCESS_TOKEN_TTL", defaultAccessTTL); err != nil {
		return nil, err
	}
	if cfg.RefreshTokenTTL, err = parseDurationEnv("REFRESH_TOKEN_TTL", defaultRefreshTTL); err != nil {
		return nil, err
	}
	if cfg.ActivateTokenTTL, err = parseDurationEnv("ACTIVE_TOKEN_TTL", defaultActivateTTL); err != nil {
		return nil, err
	}
	if cfg.ResetTokenTTL, err = parseDurationEnv("RESET_TOKEN_TTL", defaultResetTokenTTL); err != nil {
		return nil, err
	}

	days := strings.TrimSpace(getEnv("COOKIE_TOKEN_TTL", defaultCookieDays))
	cfg.CookieTokenTTLDays, err = strconv.Atoi(days)
	if err != nil {
		return nil, fmt.Errorf("invalid COOKIE_TOKEN_TTL value %q: %w", days, err)
	}

	cfg.SMTPHost = strings.TrimSpace(os.Getenv("SMTP_HOST"))
	port := strings.TrimSpace(getEnv("SMTP_PORT", defaultSMTPPort))
	cfg.SMTPPort, err = strconv.Atoi(port)
	if err != nil {
		return nil, fmt.Errorf("invalid SMTP_PORT value %q: %w", port, err)
	}
	cfg.SMTPUser = strings.TrimSpace(os.Getenv("SMTP_USER"))
	cfg.SMTPPass = strings.TrimSpace(os.Getenv("SMTP_PASS"))
	cfg.MailFrom = strings.TrimSpace(getEnv("MAIL_FROM", defaultMailFromAddress))

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func validateConfig(cfg *Config) error {
	if cfg.AccessTokenTTL <= 0 || cfg.RefreshTokenTTL <= 0 || cfg.ActivateTokenTTL <= 0 {
		return fmt.Errorf("token TTLs must be > 0")
	}
	if cfg.ResetTokenTTL <= 0 {
		return fmt.Errorf("RESET_TOKEN_TTL must be > 0")
	}
	if cfg.CookieTokenTTLDays <= 0 {
		return fmt.Errorf("COOKIE_TOKEN_TTL must be > 0")
	}

	if cfg.IsProduction() {
		if isEmptyOrDefault(cfg.AccessTokenSecret, defaultAccessSecret) {
			return fmt.Errorf("in prod ACCESS_TOKEN_SECRET must be set and not default")
		}
		if isEmptyOrDefault(cfg.RefreshTokenSecret, defaultRefreshSecret) {
			return fmt.Errorf("in prod REFRESH_TOKEN_SECRET must be set and not default")
		}
		if isEmptyOrDefault(cfg.ActivateTokenSecret, defaultActivateSecret) {
			return fmt.Errorf("in prod ACTIVE_TOKEN_SECRET must be set and not default")
		}
		if cfg.DatabaseURL == "" {
			return fmt.Errorf("in prod DATABASE_URL must be set")
		}
	}

	return nil
}

func isEmptyOrDefault(v, def string) bool {
	trimmed := strings.TrimSpace(v)
	return trimmed == "" || trimmed == def
}

func parseDurationEnv(name, fallback string) (time.Duration, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
