package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultPort            = "7900"
	defaultMaxPayloadBytes = 4 << 20
	defaultCaptureTTL      = 7 * 24 * time.Hour
	defaultCheckInterval   = time.Minute
)

type Config struct {
	Env             string
	Port            string
	RedisURL        string
	MaxPayloadBytes int64
	CaptureTTL      time.Duration
	CheckInterval   time.Duration
	WebhookURL      string
}

func (c Config) Development() bool {
	return c.Env == "development"
}

func LoadConfig() (Config, error) {
	env := os.Getenv("ENV")
	if env == "" {
		env = "development"
	}
	if env == "development" {
		// .env is optional; real environment variables still win.
		if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("loading .env: %w", err)
		}
	}

	cfg := Config{
		Env:             env,
		Port:            os.Getenv("PORT"),
		RedisURL:        os.Getenv("REDIS_URL"),
		MaxPayloadBytes: defaultMaxPayloadBytes,
		CaptureTTL:      defaultCaptureTTL,
		CheckInterval:   defaultCheckInterval,
		WebhookURL:      os.Getenv("WEBHOOK_URL"),
	}
	if cfg.Port == "" {
		cfg.Port = defaultPort
	}
	if cfg.RedisURL == "" {
		return Config{}, errors.New("REDIS_URL must be set")
	}

	if v := os.Getenv("MAX_PAYLOAD_BYTES"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n <= 0 {
			return Config{}, fmt.Errorf("MAX_PAYLOAD_BYTES must be a positive integer, got %q", v)
		}
		cfg.MaxPayloadBytes = n
	}

	var err error
	if cfg.CaptureTTL, err = duration("CAPTURE_TTL", cfg.CaptureTTL); err != nil {
		return Config{}, err
	}
	if cfg.CheckInterval, err = duration("CHECK_INTERVAL", cfg.CheckInterval); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func duration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%s must be a positive duration, got %q", key, v)
	}
	return d, nil
}
