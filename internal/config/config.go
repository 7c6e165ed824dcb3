// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package config handles application configuration loading from environment
// variables, optionally seeded from a .env file. It provides a centralized
// Config struct used by the server and the CLI.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"topictree/internal/ai"
)

// defaultDBPassword is rejected in production.
const defaultDBPassword = "changeme"

// Config holds all application configuration values loaded from the environment.
type Config struct {
	// Server settings
	Host string
	Port string
	Env  string // "development", "production", "testing"

	// Logging
	LogLevel  string // "debug", "info", "warn", "error"; empty picks by Env
	LogFormat string // "text" or "json"

	// PostgreSQL connection
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// Valkey (Redis-compatible cache) for job snapshots and rendered outlines.
	// When unreachable, the server tracks jobs in process memory.
	ValkeyHost     string
	ValkeyPort     string
	ValkeyPassword string

	// AI provider settings
	AIProvider     string // "openai", "gemini", "claude", "mistral"
	OpenAIKey      string
	OpenAIModel    string
	OpenAIBaseURL  string
	GeminiKey      string
	GeminiModel    string
	GeminiBaseURL  string
	ClaudeKey      string
	ClaudeModel    string
	ClaudeBaseURL  string
	MistralKey     string
	MistralModel   string
	MistralBaseURL string

	// S3 export of finished trees. Export is off unless endpoint and
	// credentials are set.
	S3Endpoint  string
	S3Region    string
	S3AccessKey string
	S3SecretKey string
	S3Bucket    string
	S3Prefix    string

	// Generation defaults
	GenMode          string
	GenMaxAttempts   int
	GenBaseDelay     time.Duration
	GenMaxDelay      time.Duration
	GenTemperature   float64
	GenMaxTokens     int
	GenMaxConcurrent int
	GenBuildTimeout  time.Duration

	// Rate limit of the generation endpoint, per client IP.
	RateLimitRequests int
	RateLimitWindow   time.Duration
}

// Load reads configuration from environment variables, applying defaults
// for development where appropriate. Variables from the given .env files
// (".env" when none is named) are applied first without overriding the
// process environment; a missing file is not an error. Returns an error if
// a value does not parse or critical values are missing in production mode.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}

	p := &parser{}
	cfg := &Config{
		Host: envOrDefault("APP_HOST", "0.0.0.0"),
		Port: envOrDefault("APP_PORT", "8080"),
		Env:  envOrDefault("APP_ENV", "development"),

		LogLevel:  strings.ToLower(os.Getenv("LOG_LEVEL")),
		LogFormat: strings.ToLower(envOrDefault("LOG_FORMAT", "text")),

		DBHost:     envOrDefault("POSTGRES_HOST", "localhost"),
		DBPort:     envOrDefault("POSTGRES_PORT", "5432"),
		DBUser:     envOrDefault("POSTGRES_USER", "topictree"),
		DBPassword: envOrDefault("POSTGRES_PASSWORD", defaultDBPassword),
		DBName:     envOrDefault("POSTGRES_DB", "topictree"),

		ValkeyHost:     envOrDefault("VALKEY_HOST", "localhost"),
		ValkeyPort:     envOrDefault("VALKEY_PORT", "6379"),
		ValkeyPassword: os.Getenv("VALKEY_PASSWORD"),

		AIProvider:     envOrDefault("AI_PROVIDER", "openai"),
		OpenAIKey:      os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:    envOrDefault("OPENAI_MODEL", "gpt-4o-mini"),
		OpenAIBaseURL:  envOrDefault("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		GeminiKey:      os.Getenv("GEMINI_API_KEY"),
		GeminiModel:    envOrDefault("GEMINI_MODEL", "gemini-2.5-flash"),
		GeminiBaseURL:  envOrDefault("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com"),
		ClaudeKey:      os.Getenv("CLAUDE_API_KEY"),
		ClaudeModel:    envOrDefault("CLAUDE_MODEL", "claude-sonnet-4-6"),
		ClaudeBaseURL:  envOrDefault("CLAUDE_BASE_URL", "https://api.anthropic.com"),
		MistralKey:     os.Getenv("MISTRAL_API_KEY"),
		MistralModel:   envOrDefault("MISTRAL_MODEL", "mistral-large-latest"),
		MistralBaseURL: envOrDefault("MISTRAL_BASE_URL", "https://api.mistral.ai/v1"),

		S3Endpoint:  os.Getenv("S3_ENDPOINT"),
		S3Region:    envOrDefault("S3_REGION", "fsn1"),
		S3AccessKey: os.Getenv("S3_ACCESS_KEY"),
		S3SecretKey: os.Getenv("S3_SECRET_KEY"),
		S3Bucket:    envOrDefault("S3_BUCKET", "topictree-exports"),
		S3Prefix:    envOrDefault("S3_PREFIX", "trees"),

		GenMode:          envOrDefault("GEN_MODE", "iterative"),
		GenMaxAttempts:   p.intVar("GEN_MAX_ATTEMPTS", 5),
		GenBaseDelay:     p.durationVar("GEN_BASE_DELAY", time.Second),
		GenMaxDelay:      p.durationVar("GEN_MAX_DELAY", 60*time.Second),
		GenTemperature:   p.floatVar("GEN_TEMPERATURE", 0.7),
		GenMaxTokens:     p.intVar("GEN_MAX_TOKENS", 2000),
		GenMaxConcurrent: p.intVar("GEN_MAX_CONCURRENT", 4),
		GenBuildTimeout:  p.durationVar("GEN_BUILD_TIMEOUT", 30*time.Minute),

		RateLimitRequests: p.intVar("RATE_LIMIT_REQUESTS", 10),
		RateLimitWindow:   p.durationVar("RATE_LIMIT_WINDOW", time.Minute),
	}
	if p.err != nil {
		return nil, p.err
	}

	if cfg.GenMaxAttempts < 1 {
		return nil, fmt.Errorf("GEN_MAX_ATTEMPTS must be at least 1, got %d", cfg.GenMaxAttempts)
	}
	if cfg.GenMode != "single" && cfg.GenMode != "iterative" {
		return nil, fmt.Errorf("GEN_MODE must be single or iterative, got %q", cfg.GenMode)
	}

	if cfg.Env == "production" {
		if cfg.DBPassword == defaultDBPassword {
			return nil, fmt.Errorf("POSTGRES_PASSWORD must be set in production")
		}
	}

	return cfg, nil
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName,
	)
}

// Addr returns the server listen address (host:port).
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// IsDev returns true if the application is running in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// ExportEnabled reports whether S3 export is configured.
func (c *Config) ExportEnabled() bool {
	return c.S3Endpoint != "" && c.S3AccessKey != "" && c.S3SecretKey != ""
}

// ProviderConfigs returns the per-provider settings for the AI registry.
func (c *Config) ProviderConfigs() map[string]ai.ProviderConfig {
	return map[string]ai.ProviderConfig{
		"openai":  {APIKey: c.OpenAIKey, Model: c.OpenAIModel, BaseURL: c.OpenAIBaseURL},
		"gemini":  {APIKey: c.GeminiKey, Model: c.GeminiModel, BaseURL: c.GeminiBaseURL},
		"claude":  {APIKey: c.ClaudeKey, Model: c.ClaudeModel, BaseURL: c.ClaudeBaseURL},
		"mistral": {APIKey: c.MistralKey, Model: c.MistralModel, BaseURL: c.MistralBaseURL},
	}
}

// SlogLevel maps LogLevel to a slog level. Unset means debug in development
// and info elsewhere.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	if c.IsDev() {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

// NewLogger builds the process logger: text by default, JSON when
// LogFormat is "json".
func (c *Config) NewLogger() *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.SlogLevel()}
	if c.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

// envOrDefault reads an environment variable, returning a fallback if unset or empty.
func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// parser reads typed variables and keeps the first parse error.
type parser struct {
	err error
}

func (p *parser) intVar(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		p.fail(key, v, err)
		return fallback
	}
	return n
}

func (p *parser) floatVar(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		p.fail(key, v, err)
		return fallback
	}
	return f
}

func (p *parser) durationVar(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		p.fail(key, v, err)
		return fallback
	}
	return d
}

func (p *parser) fail(key, value string, err error) {
	if p.err == nil {
		p.err = fmt.Errorf("invalid %s=%q: %w", key, value, err)
	}
}
