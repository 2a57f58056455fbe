// Package scoring turns a company profile into a banded lead score through a
// reasoning backend, and generates the optional outreach advisory.
package scoring

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/d-kavinraja/caprae-ai-readiness-leadgen-challenge/internal/backend"
	"github.com/d-kavinraja/caprae-ai-readiness-leadgen-challenge/internal/entity"
	"github.com/d-kavinraja/caprae-ai-readiness-leadgen-challenge/internal/metrics"
)

const (
	DefaultTimeout = 30 * time.Second

	DegradedRationale = "Reasoning model unavailable; the lead was not scored."
	DegradedApproach  = "Manual review required."

	kindScore    = "score"
	kindInsights = "insights"
	maxRawLength = 512
)

// DegradedScore is the well-formed result returned when no backend is configured.
func DegradedScore() entity.LeadScore {
	return entity.LeadScore{
		Score:               0,
		Breakdown:           map[string]string{},
		Rationale:           DegradedRationale,
		Priority:            entity.PriorityLow,
		RiskLevel:           entity.RiskHigh,
		RecommendedApproach: DegradedApproach,
	}
}

// Scorer is the scoring orchestrator. A nil Generator yields degraded scores.
type Scorer struct {
	gen     backend.Generator
	timeout time.Duration
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// Option configures a Scorer or an InsightGenerator.
type Option func(*options)

type options struct {
	timeout time.Duration
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// WithTimeout bounds each backend call.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.timeout = d
		}
	}
}

// WithMetrics records backend calls and repairs.
func WithMetrics(m *metrics.Metrics) Option {
	return func(o *options) { o.metrics = m }
}

// WithLogger overrides the global logger.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{timeout: DefaultTimeout, logger: zap.L()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// NewScorer wires a scorer around gen, which may be nil.
func NewScorer(gen backend.Generator, opts ...Option) *Scorer {
	o := buildOptions(opts)
	return &Scorer{gen: gen, timeout: o.timeout, metrics: o.metrics, logger: o.logger.Named("scoring")}
}

// Available reports whether a backend is configured.
func (s *Scorer) Available() bool {
	return s != nil && s.gen != nil
}

// Score evaluates a populated profile. Backend failures are returned as *BackendError
// and unreadable responses as *ParseError; no score is fabricated in either case.
func (s *Scorer) Score(ctx context.Context, profile entity.CompanyProfile) (entity.LeadScore, error) {
	if profile.Failed() {
		return entity.LeadScore{}, ErrProfileNotScorable
	}
	if !s.Available() {
		s.logger.Warn("reasoning backend unavailable, returning degraded score", zap.String("website", profile.Website))
		return DegradedScore(), nil
	}

	name := s.gen.Name()
	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	raw, err := s.gen.GenerateStructured(callCtx, BuildScoringPrompt(profile))
	if err != nil {
		s.metrics.IncBackendCall(name, kindScore, "error")
		return entity.LeadScore{}, &BackendError{Backend: name, Kind: kindScore, Cause: err}
	}

	score, repairs, err := ParseLeadScore(raw)
	if err != nil {
		s.metrics.IncBackendCall(name, kindScore, "parse_error")
		return entity.LeadScore{}, &ParseError{Backend: name, Kind: kindScore, Raw: truncate(raw), Cause: err}
	}
	s.metrics.IncBackendCall(name, kindScore, "ok")

	if len(repairs) > 0 {
		s.metrics.IncRepairs(repairs)
		s.logger.Warn("score response degraded",
			zap.String("backend", name),
			zap.String("website", profile.Website),
			zap.Error(&ValidationDegraded{Repairs: repairs}))
	}
	return score, nil
}

func truncate(s string) string {
	if len(s) <= maxRawLength {
		return s
	}
	return s[:maxRawLength] + "..."
}
