package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rgehrsitz/nestegg/internal/domain"
	"gopkg.in/yaml.v3"
)

// ServerConfig configures the HTTP service
type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	LogLevel        string        `yaml:"log_level"`
	LogFormat       string        `yaml:"log_format"`
	Simulations     int           `yaml:"simulations"`
	Workers         int           `yaml:"workers"`
	CalcTimeout     time.Duration `yaml:"calc_timeout"`
	RateLimit       int           `yaml:"rate_limit"`
	RateWindow      time.Duration `yaml:"rate_window"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// DefaultServerConfig returns the built-in server settings
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Addr:            ":8080",
		LogLevel:        "info",
		LogFormat:       "json",
		Simulations:     1000,
		Workers:         0,
		CalcTimeout:     10 * time.Second,
		RateLimit:       60,
		RateWindow:      time.Minute,
		ReadTimeout:     10 * time.Second,
		WriteTimeout:    30 * time.Second,
		IdleTimeout:     60 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}
}

// LoadServerConfig builds a ServerConfig from defaults, an optional YAML file
// and NESTEGG_* environment variables (a .env file is loaded when present).
func LoadServerConfig(path string) (*ServerConfig, error) {
	cfg := DefaultServerConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read server config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse server config %s: %w", path, err)
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *ServerConfig) applyEnv() error {
	c.Addr = getEnv("NESTEGG_ADDR", c.Addr)
	c.LogLevel = getEnv("NESTEGG_LOG_LEVEL", c.LogLevel)
	c.LogFormat = getEnv("NESTEGG_LOG_FORMAT", c.LogFormat)

	var err error
	if c.Simulations, err = getEnvInt("NESTEGG_SIMULATIONS", c.Simulations); err != nil {
		return err
	}
	if c.Workers, err = getEnvInt("NESTEGG_WORKERS", c.Workers); err != nil {
		return err
	}
	if c.RateLimit, err = getEnvInt("NESTEGG_RATE_LIMIT", c.RateLimit); err != nil {
		return err
	}
	if c.CalcTimeout, err = getEnvDuration("NESTEGG_CALC_TIMEOUT", c.CalcTimeout); err != nil {
		return err
	}
	if c.RateWindow, err = getEnvDuration("NESTEGG_RATE_WINDOW", c.RateWindow); err != nil {
		return err
	}
	return nil
}

// Validate checks the server settings for usable values
func (c *ServerConfig) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("addr is required")
	}
	if c.Simulations < 1 || c.Simulations > domain.MaxSimulations {
		return fmt.Errorf("simulations must be between 1 and %d, got %d", domain.MaxSimulations, c.Simulations)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must be non-negative, got %d", c.Workers)
	}
	if c.CalcTimeout <= 0 {
		return fmt.Errorf("calc_timeout must be positive")
	}
	if c.RateLimit < 0 {
		return fmt.Errorf("rate_limit must be non-negative, got %d", c.RateLimit)
	}
	if c.RateLimit > 0 && c.RateWindow <= 0 {
		return fmt.Errorf("rate_window must be positive when rate_limit is set")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
