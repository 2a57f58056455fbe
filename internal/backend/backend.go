// Package backend adapts hosted language models to one narrow call: generate text
// from a prompt, expecting the text to parse as JSON.
package backend

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Provider names accepted by New.
const (
	ProviderGemini    = "gemini"
	ProviderAnthropic = "anthropic"
	ProviderOpenAI    = "openai"
	ProviderNone      = "none"
)

const defaultMaxTokens = 2048

var (
	// ErrUnavailable means no backend could be configured. Callers degrade instead of failing.
	ErrUnavailable = errors.New("reasoning backend unavailable")
	// ErrEmptyResponse means the backend answered without any text.
	ErrEmptyResponse = errors.New("reasoning backend returned no text")
)

// Generator is the reasoning backend contract.
type Generator interface {
	Name() string
	GenerateStructured(ctx context.Context, prompt string) (string, error)
}

// Config selects and configures a provider.
type Config struct {
	Provider  string
	APIKey    string
	Model     string
	BaseURL   string
	MaxTokens int
}

// New builds the configured Generator. It returns ErrUnavailable when the provider is
// disabled or no credential is supplied.
func New(ctx context.Context, cfg Config, logger *zap.Logger) (Generator, error) {
	if logger == nil {
		logger = zap.L()
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = defaultMaxTokens
	}

	provider := strings.ToLower(strings.TrimSpace(cfg.Provider))
	if provider == "" {
		provider = ProviderGemini
	}
	if provider == ProviderNone {
		return nil, ErrUnavailable
	}
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("backend: %s api key not set: %w", provider, ErrUnavailable)
	}

	switch provider {
	case ProviderGemini:
		return NewGemini(ctx, cfg, logger)
	case ProviderAnthropic:
		return NewAnthropic(cfg, logger), nil
	case ProviderOpenAI:
		return NewOpenAI(cfg, logger), nil
	default:
		return nil, fmt.Errorf("backend: unknown provider %q: %w", cfg.Provider, ErrUnavailable)
	}
}
