package config

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultClientSessionTTL = "168h" // 7 days
	defaultAdminSessionTTL  = "24h"
	defaultResetTokenTTL    = "1h"
	defaultCookieSecure     = "false"
	defaultCookieSameSite   = "Lax"
	defaultResetSecret      = "change-me-reset-secret"
)

type Config struct {
	AppEnv           string
	ListenAddr       string
	DatabaseURL      string
	ClientSessionTTL time.Duration
	AdminSessionTTL  time.Duration
	ResetTokenTTL    time.Duration
	ResetTokenSecret string
	CookieSecure     bool
	CookieSameSite   string
	CookieDomain     string
}

// Load reads configuration from the environment, with a .env bootstrap for
// local development. Prod-like environments refuse default secrets and
// insecure cookies.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println(".env not found, using environment variables")
	}

	cfg := &Config{}

	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.ListenAddr = getEnv("LISTEN_ADDR", ":8080")
	cfg.DatabaseURL = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	var err error
	cfg.ClientSessionTTL, err = parseDurationEnv("CLIENT_SESSION_TTL", defaultClientSessionTTL)
	if err != nil {
		return nil, err
	}
	cfg.AdminSessionTTL, err = parseDurationEnv("ADMIN_SESSION_TTL", defaultAdminSessionTTL)
	if err != nil {
		return nil, err
	}
	cfg.ResetTokenTTL, err = parseDurationEnv("RESET_TOKEN_TTL", defaultResetTokenTTL)
	if err != nil {
		return nil, err
	}

	cfg.ResetTokenSecret = strings.TrimSpace(getEnv("RESET_TOKEN_SECRET", defaultResetSecret))
	cfg.CookieSecure = parseBoolEnv("COOKIE_SECURE", defaultCookieSecure)
	cfg.CookieSameSite = strings.TrimSpace(getEnv("COOKIE_SAMESITE", defaultCookieSameSite))
	cfg.CookieDomain = strings.TrimSpace(os.Getenv("COOKIE_DOMAIN"))

	if err := validate(cfg); err != nil {
		return nil, err
	}

	log.Printf("config loaded: env=%s cookieSecure=%t sameSite=%s", cfg.AppEnv, cfg.CookieSecure, cfg.CookieSameSite)
	return cfg, nil
}

func (c *Config) IsProd() bool {
	return c.AppEnv == "prod" || c.AppEnv == "production" || c.AppEnv == "release"
}

// SameSite maps the configured COOKIE_SAMESITE value to its http constant.
func (c *Config) SameSite() http.SameSite {
	switch strings.ToLower(c.CookieSameSite) {
	case "none":
		return http.SameSiteNoneMode
	case "strict":
		return http.SameSiteStrictMode
	default:
		return http.SameSiteLaxMode
	}
}

func validate(cfg *Config) error {
	if cfg.ClientSessionTTL <= 0 {
		return fmt.Errorf("CLIENT_SESSION_TTL must be > 0")
	}
	if cfg.AdminSessionTTL <= 0 {
		return fmt.Errorf("ADMIN_SESSION_TTL must be > 0")
	}
	if cfg.ResetTokenTTL <= 0 {
		return fmt.Errorf("RESET_TOKEN_TTL must be > 0")
	}
	sameSite := strings.ToLower(cfg.CookieSameSite)
	if sameSite != "lax" && sameSite != "none" && sameSite != "strict" {
		return fmt.Errorf("COOKIE_SAMESITE must be one of: Lax, None, Strict")
	}
	if sameSite == "none" && !cfg.CookieSecure {
		return fmt.Errorf("COOKIE_SECURE must be true when COOKIE_SAMESITE=None")
	}
	if cfg.IsProd() {
		if cfg.ResetTokenSecret == "" || cfg.ResetTokenSecret == defaultResetSecret {
			return fmt.Errorf("in prod RESET_TOKEN_SECRET must be set and not default")
		}
		if !cfg.CookieSecure {
			return fmt.Errorf("in prod COOKIE_SECURE must be true")
		}
	}
	return nil
}

func parseDurationEnv(name, fallback string) (time.Duration, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}

func parseBoolEnv(name, fallback string) bool {
	value := strings.ToLower(strings.TrimSpace(getEnv(name, fallback)))
	return value == "1" || value == "true" || value == "yes" || value == "on"
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
