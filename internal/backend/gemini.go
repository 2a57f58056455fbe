package backend

import (
	"context"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

const defaultGeminiModel = "gemini-1.5-flash"

// Gemini calls the Gemini API through the genai client.
type Gemini struct {
	client    *genai.Client
	model     string
	maxTokens int32
	logger    *zap.Logger
}

// NewGemini creates a client authenticated with the configured API key. A non-empty
// BaseURL replaces the public endpoint.
func NewGemini(ctx context.Context, cfg Config, logger *zap.Logger) (*Gemini, error) {
	cc := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions.BaseURL = cfg.BaseURL
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, eris.Wrap(err, "gemini: create client")
	}

	model := strings.TrimPrefix(cfg.Model, "models/")
	if model == "" {
		model = defaultGeminiModel
	}

	return &Gemini{
		client:    client,
		model:     model,
		maxTokens: int32(cfg.MaxTokens),
		logger:    logger.Named("gemini"),
	}, nil
}

func (g *Gemini) Name() string { return ProviderGemini }

func (g *Gemini) GenerateStructured(ctx context.Context, prompt string) (string, error) {
	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		MaxOutputTokens:  g.maxTokens,
	}

	start := time.Now()
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), config)
	if err != nil {
		g.logger.Error("generate content failed", zap.String("model", g.model), zap.Duration("elapsed", time.Since(start)), zap.Error(err))
		return "", eris.Wrap(err, "gemini: generate content")
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyResponse
	}

	g.logger.Debug("generate content completed", zap.String("model", g.model), zap.Duration("elapsed", time.Since(start)))
	return text, nil
}
