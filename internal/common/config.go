// Package common provides shared utilities for Advisor
package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds all configuration for Advisor
type Config struct {
	Environment   string              `toml:"environment"`
	Server        ServerConfig        `toml:"server"`
	Storage       StorageConfig       `toml:"storage"`
	Clients       ClientsConfig       `toml:"clients"`
	Auth          AuthConfig          `toml:"auth"`
	Conversations ConversationsConfig `toml:"conversations"`
	Logging       LoggingConfig       `toml:"logging"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// StorageConfig holds the BadgerHold data directory.
type StorageConfig struct {
	Path string `toml:"path"`
}

// ClientsConfig holds API client configurations
type ClientsConfig struct {
	EODHD EODHDConfig `toml:"eodhd"`
	AI    AIConfig    `toml:"ai"`
}

// EODHDConfig holds EODHD API configuration
type EODHDConfig struct {
	BaseURL   string `toml:"base_url"`
	APIKey    string `toml:"api_key"`
	RateLimit int    `toml:"rate_limit"`
	Timeout   string `toml:"timeout"`
	Workers   int    `toml:"workers"` // max concurrent price lookups during enrichment
}

// GetTimeout parses and returns the timeout duration
func (c *EODHDConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

// AIConfig selects an LLM provider per endpoint and holds provider credentials.
// Provider values are "OPENAI" or "GEMINI" (case-insensitive).
type AIConfig struct {
	AnalysisProvider        string       `toml:"analysis_provider"`
	RecommendationsProvider string       `toml:"recommendations_provider"`
	ChatProvider            string       `toml:"chat_provider"`
	Debug                   bool         `toml:"debug"`
	OpenAI                  OpenAIConfig `toml:"openai"`
	Gemini                  GeminiConfig `toml:"gemini"`
}

// OpenAIConfig holds OpenAI API configuration
type OpenAIConfig struct {
	APIKey               string `toml:"api_key"`
	Model                string `toml:"model"`
	RecommendationsModel string `toml:"recommendations_model"`
}

// GeminiConfig holds Gemini API configuration
type GeminiConfig struct {
	APIKey               string `toml:"api_key"`
	Model                string `toml:"model"`
	RecommendationsModel string `toml:"recommendations_model"`
}

// AuthConfig holds API authentication configuration.
// ServiceKey is the global key every request must present in the
// Authorization header. Requests are denied when it is unset.
type AuthConfig struct {
	ServiceKey string `toml:"service_key"`
}

// ConversationsConfig controls conversation retention.
type ConversationsConfig struct {
	Retention     string `toml:"retention"`      // duration string, default "720h" (30 days)
	PruneSchedule string `toml:"prune_schedule"` // cron spec, default "@hourly"
}

// GetRetention parses and returns the retention duration.
func (c *ConversationsConfig) GetRetention() time.Duration {
	d, err := time.ParseDuration(c.Retention)
	if err != nil {
		return 720 * time.Hour
	}
	return d
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string `toml:"level"`
}

// NewDefaultConfig returns a Config with sensible defaults
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Storage: StorageConfig{
			Path: "data/advisor",
		},
		Clients: ClientsConfig{
			EODHD: EODHDConfig{
				BaseURL:   "https://eodhd.com/api",
				RateLimit: 10,
				Timeout:   "30s",
				Workers:   10,
			},
			AI: AIConfig{
				AnalysisProvider:        "OPENAI",
				RecommendationsProvider: "OPENAI",
				ChatProvider:            "OPENAI",
				OpenAI: OpenAIConfig{
					Model: "gpt-4o",
				},
				Gemini: GeminiConfig{
					Model: "gemini-2.0-flash",
				},
			},
		},
		Conversations: ConversationsConfig{
			Retention:     "720h",
			PruneSchedule: "@hourly",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// LoadConfig loads configuration from files with environment overrides
func LoadConfig(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	// Load and merge each config file in order (later files override earlier)
	for _, path := range paths {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue // Skip missing files
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("ADVISOR_ENV"); env != "" {
		config.Environment = env
	}

	if host := os.Getenv("ADVISOR_HOST"); host != "" {
		config.Server.Host = host
	}

	if port := os.Getenv("ADVISOR_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}

	if level := os.Getenv("ADVISOR_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}

	if path := os.Getenv("ADVISOR_DATA_PATH"); path != "" {
		config.Storage.Path = path
	}

	if key := os.Getenv("AUTH_API_KEY"); key != "" {
		config.Auth.ServiceKey = key
	}

	if key := os.Getenv("EODHD_API_KEY"); key != "" {
		config.Clients.EODHD.APIKey = key
	}

	// Provider selection mirrors the legacy deployment variables.
	if v := os.Getenv("ANALYSIS_MODEL"); v != "" {
		config.Clients.AI.AnalysisProvider = v
	}
	if v := os.Getenv("RECOMMENDATIONS_MODEL"); v != "" {
		config.Clients.AI.RecommendationsProvider = v
	}
	if v := os.Getenv("CHAT_MODEL"); v != "" {
		config.Clients.AI.ChatProvider = v
	}
	if v := os.Getenv("AI_DEBUG"); v != "" {
		config.Clients.AI.Debug = strings.EqualFold(v, "true")
	}

	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		config.Clients.AI.OpenAI.APIKey = v
	}
	if v := os.Getenv("OPENAI_MODEL"); v != "" {
		config.Clients.AI.OpenAI.Model = v
	}
	if v := os.Getenv("OPENAI_RECOMMENDATIONS_MODEL"); v != "" {
		config.Clients.AI.OpenAI.RecommendationsModel = v
	}

	for _, name := range []string{"GEMINI_API_KEY", "GOOGLE_API_KEY"} {
		if v := os.Getenv(name); v != "" {
			config.Clients.AI.Gemini.APIKey = v
			break
		}
	}
	if v := os.Getenv("GEMINI_MODEL"); v != "" {
		config.Clients.AI.Gemini.Model = v
	}
	if v := os.Getenv("GEMINI_RECOMMENDATIONS_MODEL"); v != "" {
		config.Clients.AI.Gemini.RecommendationsModel = v
	}
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.Environment))
	return env == "production" || env == "prod"
}
