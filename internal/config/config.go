package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

const (
	defaultHost           = "0.0.0.0"
	defaultPort           = "8007"
	defaultS3Region       = "us-east-1"
	defaultCleanupCron    = "0 2 * * *"
	defaultCleanupDays    = "30"
	defaultCleanupBatch   = "100"
	defaultCleanupEnabled = "true"
)

type Config struct {
	Server      ServerConfig
	DatabaseURL string
	JWTSecret   string
	Limits      FileLimits
	Cleanup     CleanupConfig
}

type ServerConfig struct {
	Host string
	Port int
}

// FileLimits holds the per-category upload size caps, in bytes.
type FileLimits struct {
	Avatar      int64
	Post        int64
	Reply       int64
	SectionIcon int64
}

type CleanupConfig struct {
	Enabled       bool
	CronSpec      string
	ThresholdDays int
	BatchSize     int
}

func Load() (*Config, error) {
	cfg := &Config{}

	cfg.Server.Host = strings.TrimSpace(getEnv("SERVER_HOST", defaultHost))
	port, err := parseIntEnv("SERVER_PORT", defaultPort)
	if err != nil {
		return nil, err
	}
	cfg.Server.Port = int(port)

	cfg.DatabaseURL = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	cfg.JWTSecret = strings.TrimSpace(os.Getenv("JWT_SECRET"))

	if cfg.Limits.Avatar, err = parseIntEnv("MAX_FILE_SIZE_AVATAR", "2097152"); err != nil {
		return nil, err
	}
	if cfg.Limits.Post, err = parseIntEnv("MAX_FILE_SIZE_POST", "5242880"); err != nil {
		return nil, err
	}
	if cfg.Limits.Reply, err = parseIntEnv("MAX_FILE_SIZE_REPLY", "5242880"); err != nil {
		return nil, err
	}
	if cfg.Limits.SectionIcon, err = parseIntEnv("MAX_FILE_SIZE_SECTION_ICON", "512000"); err != nil {
		return nil, err
	}

	cfg.Cleanup.Enabled = parseBoolEnv("CLEANUP_ENABLED", defaultCleanupEnabled)
	cfg.Cleanup.CronSpec = strings.TrimSpace(getEnv("CLEANUP_CRON", defaultCleanupCron))
	days, err := parseIntEnv("CLEANUP_DAYS_THRESHOLD", defaultCleanupDays)
	if err != nil {
		return nil, err
	}
	cfg.Cleanup.ThresholdDays = int(days)
	batch, err := parseIntEnv("CLEANUP_BATCH_SIZE", defaultCleanupBatch)
	if err != nil {
		return nil, err
	}
	cfg.Cleanup.BatchSize = int(batch)

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("SERVER_PORT must be a valid port")
	}
	if cfg.Cleanup.ThresholdDays <= 0 {
		return fmt.Errorf("CLEANUP_DAYS_THRESHOLD must be > 0")
	}
	if cfg.Cleanup.BatchSize <= 0 {
		return fmt.Errorf("CLEANUP_BATCH_SIZE must be > 0")
	}
	if cfg.Limits.Avatar <= 0 || cfg.Limits.Post <= 0 || cfg.Limits.Reply <= 0 || cfg.Limits.SectionIcon <= 0 {
		return fmt.Errorf("file size limits must be > 0")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseIntEnv(key, fallback string) (int64, error) {
	raw := getEnv(key, fallback)
	v, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number, got %q", key, raw)
	}
	return v, nil
}

func parseBoolEnv(key, fallback string) bool {
	raw := strings.TrimSpace(strings.ToLower(getEnv(key, fallback)))
	return raw == "true" || raw == "1"
}
