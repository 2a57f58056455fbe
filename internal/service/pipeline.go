package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/d-kavinraja/caprae-ai-readiness-leadgen-challenge/internal/backend"
	"github.com/d-kavinraja/caprae-ai-readiness-leadgen-challenge/internal/config"
	"github.com/d-kavinraja/caprae-ai-readiness-leadgen-challenge/internal/extract"
	"github.com/d-kavinraja/caprae-ai-readiness-leadgen-challenge/internal/fetcher"
	"github.com/d-kavinraja/caprae-ai-readiness-leadgen-challenge/internal/metrics"
	"github.com/d-kavinraja/caprae-ai-readiness-leadgen-challenge/internal/service/scoring"
)

// BuildAnalyzer wires the whole pipeline from configuration. A missing backend
// credential is not an error: the analyzer then runs in degraded mode.
func BuildAnalyzer(ctx context.Context, cfg *config.Config, m *metrics.Metrics, logger *zap.Logger) (*Analyzer, error) {
	if logger == nil {
		logger = zap.L()
	}

	gen, err := backend.New(ctx, backend.Config{
		Provider:  cfg.Backend.Provider,
		APIKey:    cfg.Backend.APIKey,
		Model:     cfg.Backend.Model,
		BaseURL:   cfg.Backend.BaseURL,
		MaxTokens: int(cfg.Backend.MaxTokens),
	}, logger)
	switch {
	case errors.Is(err, backend.ErrUnavailable):
		logger.Warn("reasoning backend disabled, leads will not be scored", zap.Error(err))
		gen = nil
	case err != nil:
		return nil, err
	default:
		logger.Info("reasoning backend configured", zap.String("backend", gen.Name()))
	}

	scoringOpts := []scoring.Option{
		scoring.WithTimeout(cfg.Backend.Timeout),
		scoring.WithMetrics(m),
		scoring.WithLogger(logger),
	}

	return NewAnalyzer(
		fetcher.New(fetcher.Config{
			Timeout:   cfg.Fetch.Timeout,
			UserAgent: cfg.Fetch.UserAgent,
			MaxBytes:  cfg.Fetch.MaxBytes,
		}),
		extract.New(cfg.Fetch.PhoneRegion, extract.WithLogger(logger)),
		scoring.NewScorer(gen, scoringOpts...),
		scoring.NewInsightGenerator(gen, scoringOpts...),
		WithAnalyzerMetrics(m),
		WithAnalyzerLogger(logger),
	), nil
}
