// Package config provides configuration loading and validation for the
// pipeline and its serving surface.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Defaults applied when neither the config file nor the environment sets a value.
const (
	DefaultSearchPath    = "/search"
	DefaultRankPath      = "/search-rank"
	DefaultLLMModel      = "llama-3.2-3b-instruct"
	DefaultSearchTimeout = 15 * time.Second
	DefaultLLMTimeout    = 30 * time.Second
	DefaultMaxPromptSize = 2 << 20 // payloads above this are truncated before prompting
	DefaultPort          = 8080
)

// Config holds all tunables. All fields are optional in the file; missing
// values fall back to environment variables and then to defaults.
type Config struct {
	// Endpoints
	BaseURL     string `json:"base_url,omitempty" validate:"omitempty,url"`       // search/upload/ws base
	SearchPath  string `json:"search_path,omitempty"`                             // relative search path
	RankPath    string `json:"rank_path,omitempty"`                               // relative ranked-search path
	LLMEndpoint string `json:"llm_endpoint,omitempty" validate:"omitempty,url"`   // chat-completions URL
	LLMModel    string `json:"llm_model,omitempty"`                               // model name
	LLMProvider string `json:"llm_provider,omitempty" validate:"omitempty,oneof=chat gemini"`
	APIKey      string `json:"api_key,omitempty"` // bearer token for the LLM endpoint, or Gemini key

	// Budgets
	SearchTimeoutSeconds int `json:"search_timeout_seconds,omitempty" validate:"gte=0"`
	LLMTimeoutSeconds    int `json:"llm_timeout_seconds,omitempty" validate:"gte=0"`
	MaxPromptBytes       int `json:"max_prompt_bytes,omitempty" validate:"gte=0"`

	// Serving
	Port int `json:"port,omitempty" validate:"gte=0,lte=65535"`

	// Notifications
	NotificationsURL string `json:"notifications_url,omitempty"` // ws endpoint, derived from BaseURL when empty

	// Logging
	LogLevel string `json:"log_level,omitempty" validate:"omitempty,oneof=debug info warn error"`
	LogJSON  bool   `json:"log_json,omitempty"`
}

// Load reads configuration from a JSON file.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	return &cfg, nil
}

// FromEnv builds a Config from environment variables. godotenv loading
// happens in main, so .env files are already visible here.
func FromEnv() *Config {
	cfg := &Config{
		BaseURL:          os.Getenv("BASE_URL"),
		LLMEndpoint:      os.Getenv("LLM_ENDPOINT"),
		LLMModel:         os.Getenv("LLM_MODEL"),
		LLMProvider:      os.Getenv("LLM_PROVIDER"),
		APIKey:           os.Getenv("LLM_API_KEY"),
		NotificationsURL: os.Getenv("NOTIFICATIONS_URL"),
		LogLevel:         os.Getenv("LOG_LEVEL"),
	}
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Port = port
		}
	}
	if v := os.Getenv("LOG_JSON"); v == "1" || strings.EqualFold(v, "true") {
		cfg.LogJSON = true
	}
	return cfg
}

// Merge returns a new Config with empty fields filled from defaults.
// File values win over env values; both win over built-in defaults.
func (c *Config) Merge(defaults *Config) *Config {
	result := *c
	if defaults != nil {
		if result.BaseURL == "" {
			result.BaseURL = defaults.BaseURL
		}
		if result.SearchPath == "" {
			result.SearchPath = defaults.SearchPath
		}
		if result.RankPath == "" {
			result.RankPath = defaults.RankPath
		}
		if result.LLMEndpoint == "" {
			result.LLMEndpoint = defaults.LLMEndpoint
		}
		if result.LLMModel == "" {
			result.LLMModel = defaults.LLMModel
		}
		if result.LLMProvider == "" {
			result.LLMProvider = defaults.LLMProvider
		}
		if result.APIKey == "" {
			result.APIKey = defaults.APIKey
		}
		if result.NotificationsURL == "" {
			result.NotificationsURL = defaults.NotificationsURL
		}
		if result.LogLevel == "" {
			result.LogLevel = defaults.LogLevel
		}
		if !result.LogJSON {
			result.LogJSON = defaults.LogJSON
		}
		if result.SearchTimeoutSeconds == 0 {
			result.SearchTimeoutSeconds = defaults.SearchTimeoutSeconds
		}
		if result.LLMTimeoutSeconds == 0 {
			result.LLMTimeoutSeconds = defaults.LLMTimeoutSeconds
		}
		if result.MaxPromptBytes == 0 {
			result.MaxPromptBytes = defaults.MaxPromptBytes
		}
		if result.Port == 0 {
			result.Port = defaults.Port
		}
	}

	if result.SearchPath == "" {
		result.SearchPath = DefaultSearchPath
	}
	if result.RankPath == "" {
		result.RankPath = DefaultRankPath
	}
	if result.LLMModel == "" {
		result.LLMModel = DefaultLLMModel
	}
	if result.LLMProvider == "" {
		result.LLMProvider = "chat"
	}
	if result.MaxPromptBytes == 0 {
		result.MaxPromptBytes = DefaultMaxPromptSize
	}
	if result.Port == 0 {
		result.Port = DefaultPort
	}
	if result.LogLevel == "" {
		result.LogLevel = "info"
	}
	return &result
}

// Validate checks the configuration with struct tags plus cross-field rules.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	if c.LLMProvider == "gemini" && c.APIKey == "" {
		return fmt.Errorf("config error: gemini provider requires an api_key")
	}
	return nil
}

// SearchTimeout returns the search stage budget.
func (c *Config) SearchTimeout() time.Duration {
	if c.SearchTimeoutSeconds > 0 {
		return time.Duration(c.SearchTimeoutSeconds) * time.Second
	}
	return DefaultSearchTimeout
}

// LLMTimeout returns the LLM stage budget.
func (c *Config) LLMTimeout() time.Duration {
	if c.LLMTimeoutSeconds > 0 {
		return time.Duration(c.LLMTimeoutSeconds) * time.Second
	}
	return DefaultLLMTimeout
}

// WebSocketURL returns the notification stream URL, deriving it from BaseURL
// when not set explicitly.
func (c *Config) WebSocketURL() string {
	if c.NotificationsURL != "" {
		return c.NotificationsURL
	}
	if c.BaseURL == "" {
		return ""
	}
	ws := strings.Replace(c.BaseURL, "https://", "wss://", 1)
	ws = strings.Replace(ws, "http://", "ws://", 1)
	return strings.TrimSuffix(ws, "/") + "/ws/notification"
}
