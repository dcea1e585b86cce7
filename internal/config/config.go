package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultPort            = "8080"
	defaultBackendURL      = "http://localhost:8081/api"
	defaultBackendTimeout  = "15s"
	defaultDatabaseURL     = "rentalhub.db"
	defaultJWTSecret       = "change-me-jwt-secret"
	defaultJWTTTL          = "24h"
	defaultLandlordTTL     = "10m"
	defaultRateLimit       = 20.0
	defaultRateBurst       = 40
	defaultPushTTL         = 3600
	defaultPushWorkers     = 2
	defaultRetentionDays   = 90
	defaultCleanupSchedule = "@daily"
	defaultVAPIDSubject    = "mailto:admin@rentalhub.local"
)

// Config is the full runtime configuration. YAML supplies defaults, the environment wins.
type Config struct {
	AppEnv   string         `yaml:"app_env"`
	Server   ServerConfig   `yaml:"server"`
	Backend  BackendConfig  `yaml:"backend"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	Push     PushConfig     `yaml:"push"`
	Cleanup  CleanupConfig  `yaml:"cleanup"`
	Internal InternalConfig `yaml:"internal"`
}

type ServerConfig struct {
	Port            string   `yaml:"port"`
	AllowedOrigins  []string `yaml:"allowed_origins"`
	RateLimitPerSec float64  `yaml:"rate_limit_per_sec"`
	RateLimitBurst  int      `yaml:"rate_limit_burst"`
}

type BackendConfig struct {
	URL              string        `yaml:"url"`
	TimeoutRaw       string        `yaml:"timeout"`
	Timeout          time.Duration `yaml:"-"`
	LandlordCacheRaw string        `yaml:"landlord_cache_ttl"`
	LandlordCacheTTL time.Duration `yaml:"-"`
}

type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

type AuthConfig struct {
	JWTSecret string        `yaml:"jwt_secret"`
	TTLRaw    string        `yaml:"jwt_ttl"`
	TTL       time.Duration `yaml:"-"`
}

// PushConfig holds the VAPID keys for web push notifications.
type PushConfig struct {
	PublicKey  string `yaml:"vapid_public_key"`
	PrivateKey string `yaml:"vapid_private_key"`
	Subject    string `yaml:"subject"`
	TTL        int    `yaml:"ttl"`
	Workers    int    `yaml:"workers"`
}

func (p PushConfig) Enabled() bool {
	return p.PublicKey != "" && p.PrivateKey != ""
}

// InternalConfig guards the service-to-service endpoints. An empty token disables them.
type InternalConfig struct {
	Token      string   `yaml:"token"`
	AllowedIPs []string `yaml:"allowed_ips"`
}

type CleanupConfig struct {
	RetentionDays int    `yaml:"retention_days"`
	Schedule      string `yaml:"schedule"`
}

// Load reads the optional YAML file at path, then applies environment overrides and defaults.
// A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		if err := readFile(path, cfg); err != nil {
			return nil, err
		}
	}

	cfg.AppEnv = strings.ToLower(strings.TrimSpace(getEnv("APP_ENV", firstNonEmpty(cfg.AppEnv, "dev"))))

	cfg.Server.Port = getEnv("PORT", firstNonEmpty(cfg.Server.Port, defaultPort))
	if extra := os.Getenv("CORS_ALLOWED_ORIGINS"); extra != "" {
		for _, o := range strings.Split(extra, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.Server.AllowedOrigins = append(cfg.Server.AllowedOrigins, o)
			}
		}
	}

	var err error
	if cfg.Server.RateLimitPerSec, err = parseFloatEnv("RATE_LIMIT_PER_SEC", cfg.Server.RateLimitPerSec, defaultRateLimit); err != nil {
		return nil, err
	}
	if cfg.Server.RateLimitBurst, err = parseIntEnv("RATE_LIMIT_BURST", cfg.Server.RateLimitBurst, defaultRateBurst); err != nil {
		return nil, err
	}

	cfg.Backend.URL = strings.TrimRight(getEnv("BACKEND_URL", firstNonEmpty(cfg.Backend.URL, defaultBackendURL)), "/")
	if cfg.Backend.Timeout, err = parseDurationEnv("BACKEND_TIMEOUT", firstNonEmpty(cfg.Backend.TimeoutRaw, defaultBackendTimeout)); err != nil {
		return nil, err
	}
	if cfg.Backend.LandlordCacheTTL, err = parseDurationEnv("LANDLORD_CACHE_TTL", firstNonEmpty(cfg.Backend.LandlordCacheRaw, defaultLandlordTTL)); err != nil {
		return nil, err
	}

	cfg.Database.DSN = getEnv("DATABASE_URL", firstNonEmpty(cfg.Database.DSN, defaultDatabaseURL))

	cfg.Auth.JWTSecret = strings.TrimSpace(getEnv("JWT_SECRET", firstNonEmpty(cfg.Auth.JWTSecret, defaultJWTSecret)))
	if cfg.Auth.TTL, err = parseDurationEnv("JWT_TTL", firstNonEmpty(cfg.Auth.TTLRaw, defaultJWTTTL)); err != nil {
		return nil, err
	}

	cfg.Push.PublicKey = getEnv("VAPID_PUBLIC_KEY", cfg.Push.PublicKey)
	cfg.Push.PrivateKey = getEnv("VAPID_PRIVATE_KEY", cfg.Push.PrivateKey)
	cfg.Push.Subject = getEnv("VAPID_SUBJECT", firstNonEmpty(cfg.Push.Subject, defaultVAPIDSubject))
	if cfg.Push.TTL, err = parseIntEnv("PUSH_TTL", cfg.Push.TTL, defaultPushTTL); err != nil {
		return nil, err
	}
	if cfg.Push.Workers, err = parseIntEnv("PUSH_WORKERS", cfg.Push.Workers, defaultPushWorkers); err != nil {
		return nil, err
	}

	if cfg.Cleanup.RetentionDays, err = parseIntEnv("NOTIFICATION_RETENTION_DAYS", cfg.Cleanup.RetentionDays, defaultRetentionDays); err != nil {
		return nil, err
	}
	cfg.Cleanup.Schedule = getEnv("CLEANUP_SCHEDULE", firstNonEmpty(cfg.Cleanup.Schedule, defaultCleanupSchedule))

	cfg.Internal.Token = strings.TrimSpace(getEnv("INTERNAL_TOKEN", cfg.Internal.Token))
	if ips := os.Getenv("INTERNAL_ALLOWED_IPS"); ips != "" {
		cfg.Internal.AllowedIPs = nil
		for _, ip := range strings.Split(ips, ",") {
			if ip = strings.TrimSpace(ip); ip != "" {
				cfg.Internal.AllowedIPs = append(cfg.Internal.AllowedIPs, ip)
			}
		}
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	log.Printf("config loaded: env=%s port=%s backend=%s push_enabled=%t", cfg.AppEnv, cfg.Server.Port, cfg.Backend.URL, cfg.Push.Enabled())
	return cfg, nil
}

func readFile(path string, cfg *Config) error {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	defer f.Close()

	if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func validateConfig(cfg *Config) error {
	if cfg.Backend.Timeout <= 0 {
		return fmt.Errorf("BACKEND_TIMEOUT must be > 0")
	}
	if cfg.Auth.TTL <= 0 {
		return fmt.Errorf("JWT_TTL must be > 0")
	}
	if cfg.Push.Workers <= 0 {
		return fmt.Errorf("PUSH_WORKERS must be > 0")
	}
	if cfg.Cleanup.RetentionDays <= 0 {
		return fmt.Errorf("NOTIFICATION_RETENTION_DAYS must be > 0")
	}

	if isProdLike(cfg.AppEnv) {
		if isEmptyOrDefault(cfg.Auth.JWTSecret, defaultJWTSecret) {
			return fmt.Errorf("in prod/release JWT_SECRET must be set and not default")
		}
		if !strings.HasPrefix(cfg.Backend.URL, "https://") {
			return fmt.Errorf("in prod/release BACKEND_URL must use https")
		}
	}

	return nil
}

func IsProdLike(env string) bool {
	return isProdLike(env)
}

func isProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
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

func parseIntEnv(name string, current, fallback int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		if current > 0 {
			return current, nil
		}
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, raw, err)
	}
	return v, nil
}

func parseFloatEnv(name string, current, fallback float64) (float64, error) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		if current > 0 {
			return current, nil
		}
		return fallback, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, raw, err)
	}
	return v, nil
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
