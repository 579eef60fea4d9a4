// Package config reads settings from the environment and an optional .env
// file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/faizmokh/sugarlog/internal/files"
	"github.com/faizmokh/sugarlog/internal/logging"
)

// Environment variables read by Load.
const (
	EnvDataFile      = "DATA_FILE"
	EnvLogLevel      = "LOG_LEVEL"
	EnvVisionURL     = "VISION_API_URL"
	EnvVisionKey     = "VISION_API_KEY"
	EnvVisionModel   = "VISION_MODEL"
	EnvVisionTimeout = "VISION_TIMEOUT"

	DefaultEnvFile       = ".env"
	DefaultVisionModel   = "gpt-4o"
	DefaultVisionTimeout = 30 * time.Second
)

// Config holds every setting the commands need.
type Config struct {
	// Home is the data directory. Empty means files.ResolveBasePath decides.
	Home     string
	DataFile string
	LogLevel string
	Vision   Vision
}

// Vision configures the food identification endpoint.
type Vision struct {
	URL     string
	APIKey  string
	Model   string
	Timeout time.Duration
}

// Enabled reports whether an endpoint was configured.
func (v Vision) Enabled() bool {
	return v.URL != ""
}

// Load reads envFile (when it exists) into the process environment without
// overriding variables already set, then builds a Config from the environment.
func Load(envFile string) (Config, error) {
	if envFile == "" {
		envFile = DefaultEnvFile
	}
	if _, err := os.Stat(envFile); err == nil {
		if err := godotenv.Load(envFile); err != nil {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("stat %s: %w", envFile, err)
	}

	cfg := Config{
		Home:     env(files.HomeEnv, ""),
		DataFile: env(EnvDataFile, files.DefaultDataFile),
		LogLevel: env(EnvLogLevel, logging.DefaultLevel),
		Vision: Vision{
			URL:     env(EnvVisionURL, ""),
			APIKey:  env(EnvVisionKey, ""),
			Model:   env(EnvVisionModel, DefaultVisionModel),
			Timeout: DefaultVisionTimeout,
		},
	}

	if raw := env(EnvVisionTimeout, ""); raw != "" {
		timeout, err := time.ParseDuration(raw)
		if err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", EnvVisionTimeout, err)
		}
		cfg.Vision.Timeout = timeout
	}
	return cfg, nil
}

// Validate reports the first inconsistent setting.
func (c Config) Validate() error {
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.Vision.Timeout <= 0 {
		return fmt.Errorf("%s must be positive", EnvVisionTimeout)
	}
	if c.Vision.URL != "" && c.Vision.APIKey == "" {
		return fmt.Errorf("%s is set but %s is missing", EnvVisionURL, EnvVisionKey)
	}
	if c.Vision.APIKey != "" && c.Vision.URL == "" {
		return fmt.Errorf("%s is set but %s is missing", EnvVisionKey, EnvVisionURL)
	}
	return nil
}

func env(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		if value = strings.TrimSpace(value); value != "" {
			return value
		}
	}
	return fallback
}
