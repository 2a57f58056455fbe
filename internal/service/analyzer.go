package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/d-kavinraja/caprae-ai-readiness-leadgen-challenge/internal/entity"
	"github.com/d-kavinraja/caprae-ai-readiness-leadgen-challenge/internal/extract"
	"github.com/d-kavinraja/caprae-ai-readiness-leadgen-challenge/internal/fetcher"
	"github.com/d-kavinraja/caprae-ai-readiness-leadgen-challenge/internal/markup"
	"github.com/d-kavinraja/caprae-ai-readiness-leadgen-challenge/internal/metrics"
	"github.com/d-kavinraja/caprae-ai-readiness-leadgen-challenge/internal/service/scoring"
)

// Analysis outcomes recorded in metrics.
const (
	OutcomeScored        = "scored"
	OutcomeDegraded      = "degraded"
	OutcomeFetchFailed   = "fetch_failed"
	OutcomeScoringFailed = "scoring_failed"
)

// PageFetcher retrieves raw markup. *fetcher.Fetcher satisfies it.
type PageFetcher interface {
	Fetch(ctx context.Context, target string) (*fetcher.Page, error)
}

// AnalyzeOptions tunes a single analysis.
type AnalyzeOptions struct {
	SkipInsights bool
}

// AnalysisResult is the request-scoped outcome of one analysis.
type AnalysisResult struct {
	Profile  entity.CompanyProfile `json:"profile"`
	Score    *entity.LeadScore     `json:"lead_score,omitempty"`
	Insights *entity.Insights      `json:"insights,omitempty"`
	Degraded bool                  `json:"degraded"`
}

// Analyzer drives fetch, normalization, extraction, assembly, scoring and insights for one URL.
// It holds no per-request state and is safe for concurrent use.
type Analyzer struct {
	fetcher   PageFetcher
	extractor *extract.Extractor
	scorer    *scoring.Scorer
	insights  *scoring.InsightGenerator
	metrics   *metrics.Metrics
	logger    *zap.Logger
}

// AnalyzerOption configures optional dependencies.
type AnalyzerOption func(*Analyzer)

// WithAnalyzerMetrics records pipeline outcomes.
func WithAnalyzerMetrics(m *metrics.Metrics) AnalyzerOption {
	return func(a *Analyzer) { a.metrics = m }
}

// WithAnalyzerLogger overrides the global logger.
func WithAnalyzerLogger(l *zap.Logger) AnalyzerOption {
	return func(a *Analyzer) {
		if l != nil {
			a.logger = l
		}
	}
}

// NewAnalyzer wires the pipeline stages.
func NewAnalyzer(f PageFetcher, ex *extract.Extractor, sc *scoring.Scorer, ig *scoring.InsightGenerator, opts ...AnalyzerOption) *Analyzer {
	a := &Analyzer{
		fetcher:   f,
		extractor: ex,
		scorer:    sc,
		insights:  ig,
		logger:    zap.L(),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.logger = a.logger.Named("analyzer")
	return a
}

// Analyze runs the whole pipeline for target. A *fetcher.FetchError aborts before
// scoring; the returned result then carries only the failed profile. Scoring errors
// are returned alongside the assembled profile.
func (a *Analyzer) Analyze(ctx context.Context, target string, opts AnalyzeOptions) (AnalysisResult, error) {
	start := time.Now()
	defer func() { a.metrics.ObserveAnalysis(time.Since(start)) }()

	page, err := a.fetcher.Fetch(ctx, target)
	a.metrics.ObserveFetch(time.Since(start))
	if err != nil {
		website := target
		var fetchErr *fetcher.FetchError
		if errors.As(err, &fetchErr) && fetchErr.URL != "" {
			website = fetchErr.URL
		}
		a.metrics.IncAnalysis(OutcomeFetchFailed)
		a.logger.Info("fetch failed", zap.String("url", website), zap.Error(err))
		return AnalysisResult{Profile: FailedProfile(website, err)}, err
	}

	doc, err := markup.Parse(page.Body, page.ContentType, page.URL)
	if err != nil {
		fetchErr := &fetcher.FetchError{URL: page.URL, Cause: err}
		a.metrics.IncAnalysis(OutcomeFetchFailed)
		return AnalysisResult{Profile: FailedProfile(page.URL, fetchErr)}, fetchErr
	}

	signals, err := a.extractor.Run(ctx, doc)
	if err != nil {
		return AnalysisResult{Profile: FailedProfile(page.URL, err)}, err
	}
	profile := AssembleProfile(page.URL, signals)

	score, err := a.scorer.Score(ctx, profile)
	if err != nil {
		a.metrics.IncAnalysis(OutcomeScoringFailed)
		a.logger.Warn("scoring failed", zap.String("url", page.URL), zap.Error(err))
		return AnalysisResult{Profile: profile}, err
	}

	result := AnalysisResult{
		Profile:  profile,
		Score:    &score,
		Degraded: !a.scorer.Available(),
	}
	if !opts.SkipInsights && !result.Degraded {
		result.Insights = a.insights.Generate(ctx, profile)
	}

	outcome := OutcomeScored
	if result.Degraded {
		outcome = OutcomeDegraded
	}
	a.metrics.IncAnalysis(outcome)
	a.logger.Info("analysis completed",
		zap.String("url", page.URL),
		zap.String("industry", profile.Industry),
		zap.Int("lead_score", score.Score),
		zap.String("priority", score.Priority),
		zap.Bool("insights", result.Insights != nil),
		zap.Duration("elapsed", time.Since(start)))

	return result, nil
}
