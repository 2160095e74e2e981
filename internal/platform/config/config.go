// Package config loads application configuration from environment variables.
// All variables use the LEARNLOOP_ prefix.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds all application configuration.
type Config struct {
	Server      ServerConfig
	Database    DatabaseConfig
	Cache       CacheConfig
	AI          AIConfig
	Generation  GenerationConfig
	Log         LogConfig
	PresetsPath string
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port int
	Host string
}

// DatabaseConfig holds PostgreSQL connection settings. An empty URL means
// the server runs on in-memory stores.
type DatabaseConfig struct {
	URL      string
	MaxConns int
	MinConns int
}

// CacheConfig holds Redis/Dragonfly connection settings. An empty URL
// disables the plan cache.
type CacheConfig struct {
	URL        string
	TTLMinutes int
}

// AIConfig holds configuration for all AI providers.
type AIConfig struct {
	Enabled    bool
	OpenAI     OpenAIConfig
	DeepSeek   DeepSeekConfig
	OpenRouter OpenRouterConfig
}

// OpenAIConfig holds OpenAI provider settings.
type OpenAIConfig struct {
	APIKey string
}

// DeepSeekConfig holds DeepSeek provider settings (OpenAI-compatible).
type DeepSeekConfig struct {
	APIKey string
}

// OpenRouterConfig holds OpenRouter provider settings.
type OpenRouterConfig struct {
	APIKey string
}

// GenerationConfig holds the outbound AI call policy.
type GenerationConfig struct {
	TimeoutSeconds int
	Retries        int
	BackoffSeconds int
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string
	Format string
}

// Load reads configuration from environment variables with LEARNLOOP_ prefix.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port: envInt("LEARNLOOP_SERVER_PORT", 8080),
			Host: envStr("LEARNLOOP_SERVER_HOST", "0.0.0.0"),
		},
		Database: DatabaseConfig{
			URL:      envStr("LEARNLOOP_DATABASE_URL", ""),
			MaxConns: envInt("LEARNLOOP_DATABASE_MAX_CONNS", 25),
			MinConns: envInt("LEARNLOOP_DATABASE_MIN_CONNS", 5),
		},
		Cache: CacheConfig{
			URL:        envStr("LEARNLOOP_CACHE_URL", ""),
			TTLMinutes: envInt("LEARNLOOP_CACHE_TTL_MINUTES", 10),
		},
		AI: AIConfig{
			Enabled: envBool("LEARNLOOP_AI_ENABLED", true),
			OpenAI: OpenAIConfig{
				APIKey: envStr("LEARNLOOP_AI_OPENAI_API_KEY", ""),
			},
			DeepSeek: DeepSeekConfig{
				APIKey: envStr("LEARNLOOP_AI_DEEPSEEK_API_KEY", ""),
			},
			OpenRouter: OpenRouterConfig{
				APIKey: envStr("LEARNLOOP_AI_OPENROUTER_API_KEY", ""),
			},
		},
		Generation: GenerationConfig{
			TimeoutSeconds: envInt("LEARNLOOP_GENERATION_TIMEOUT_SECONDS", 45),
			Retries:        envInt("LEARNLOOP_GENERATION_RETRIES", 2),
			BackoffSeconds: envInt("LEARNLOOP_GENERATION_BACKOFF_SECONDS", 2),
		},
		Log: LogConfig{
			Level:  envStr("LEARNLOOP_LOG_LEVEL", "info"),
			Format: envStr("LEARNLOOP_LOG_FORMAT", "json"),
		},
		PresetsPath: envStr("LEARNLOOP_PRESETS_PATH", ""),
	}

	return cfg, nil
}

// Validate checks that configuration values are coherent.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("LEARNLOOP_SERVER_PORT out of range: %d", c.Server.Port)
	}
	if c.Generation.TimeoutSeconds <= 0 {
		return fmt.Errorf("LEARNLOOP_GENERATION_TIMEOUT_SECONDS must be positive, got %d", c.Generation.TimeoutSeconds)
	}
	if c.Generation.Retries < 0 {
		return fmt.Errorf("LEARNLOOP_GENERATION_RETRIES must be non-negative, got %d", c.Generation.Retries)
	}
	return nil
}

// HasAIProvider returns true if AI is enabled and at least one provider
// key is configured.
func (c *Config) HasAIProvider() bool {
	if !c.AI.Enabled {
		return false
	}
	return c.AI.OpenAI.APIKey != "" ||
		c.AI.DeepSeek.APIKey != "" ||
		c.AI.OpenRouter.APIKey != ""
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		return strings.EqualFold(v, "true") || v == "1"
	}
	return fallback
}
