package main

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/anandv/hrms-dashboard/internal/config"
	"github.com/anandv/hrms-dashboard/internal/llm"
	"github.com/anandv/hrms-dashboard/internal/observability"
)

// loadConfig merges an optional config file over environment values and
// built-in defaults, then validates the result.
func loadConfig(path string) (*config.Config, error) {
	cfg := config.FromEnv()
	if path != "" {
		fileCfg, err := config.Load(path)
		if err != nil {
			return nil, fmt.Errorf("loading config %s: %w", path, err)
		}
		cfg = fileCfg.Merge(cfg)
	} else {
		cfg = cfg.Merge(nil)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLLMClient builds the configured LLM client, or returns nil when no
// endpoint is configured so callers degrade to the deterministic fallback.
func newLLMClient(ctx context.Context, cfg *config.Config, log *logrus.Logger) (llm.Client, error) {
	if cfg.LLMProvider != "gemini" && cfg.LLMEndpoint == "" {
		log.Warn("no LLM endpoint configured, layouts come from the fallback path")
		return nil, nil
	}
	client, err := llm.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("creating LLM client: %w", err)
	}
	log.WithField("model", client.Model()).Info("LLM client ready")
	return client, nil
}

func newLogger(cfg *config.Config) *logrus.Logger {
	return observability.NewLogger(cfg.LogLevel, cfg.LogJSON)
}
