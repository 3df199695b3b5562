package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables read by Defaults.
const (
	EnvLogLevel   = "FORGE_LOG_LEVEL"
	EnvLogFormat  = "FORGE_LOG_FORMAT"
	EnvXcodeBuild = "FORGE_XCODEBUILD"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	// Path is the directory holding the workspace or project manifest.
	Path string

	LogFormat       string
	LogLevel        string
	HealthcheckPort int
	// XcodeBuild is the toolchain executable.
	XcodeBuild string
}

// Defaults returns the default configuration for dir, overridden by the
// environment. A .env file in dir is loaded first; variables already set in
// the process environment take precedence over it.
func Defaults(dir string) Config {
	_ = godotenv.Load(filepath.Join(dir, ".env"))

	return Config{
		Path:       dir,
		LogLevel:   firstNonEmpty(os.Getenv(EnvLogLevel), "info"),
		LogFormat:  firstNonEmpty(os.Getenv(EnvLogFormat), "text"),
		XcodeBuild: firstNonEmpty(os.Getenv(EnvXcodeBuild), "xcodebuild"),
	}
}

// NewConfig validates cfg and returns a copy with its path made absolute.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.Path == "" {
		return nil, errors.New("Path is a required configuration field and cannot be empty")
	}
	abs, err := filepath.Abs(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("invalid path %q: %w", cfg.Path, err)
	}
	cfg.Path = abs

	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", cfg.LogLevel)
	}

	cfg.LogFormat = strings.ToLower(strings.TrimSpace(cfg.LogFormat))
	switch cfg.LogFormat {
	case "text", "logfmt", "json":
	default:
		return nil, fmt.Errorf("invalid log format %q: must be one of text, logfmt, json", cfg.LogFormat)
	}

	if cfg.HealthcheckPort < 0 || cfg.HealthcheckPort > 65535 {
		return nil, fmt.Errorf("invalid healthcheck port %d", cfg.HealthcheckPort)
	}
	if cfg.XcodeBuild == "" {
		cfg.XcodeBuild = "xcodebuild"
	}
	return &cfg, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
