package scoring

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/d-kavinraja/caprae-ai-readiness-leadgen-challenge/internal/backend"
	"github.com/d-kavinraja/caprae-ai-readiness-leadgen-challenge/internal/entity"
	"github.com/d-kavinraja/caprae-ai-readiness-leadgen-challenge/internal/metrics"
)

// InsightGenerator requests the optional advisory. It never returns an error:
// every failure yields nil insights.
type InsightGenerator struct {
	gen     backend.Generator
	timeout time.Duration
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// NewInsightGenerator wires a generator around gen, which may be nil.
func NewInsightGenerator(gen backend.Generator, opts ...Option) *InsightGenerator {
	o := buildOptions(opts)
	return &InsightGenerator{gen: gen, timeout: o.timeout, metrics: o.metrics, logger: o.logger.Named("insights")}
}

// Eligible reports whether the profile has both a contact channel and a resolved industry.
func Eligible(p entity.CompanyProfile) bool {
	return !p.Failed() && p.HasContactChannel() && p.Industry != "" && p.Industry != entity.Unknown
}

// Generate returns insights for eligible profiles, or nil.
func (g *InsightGenerator) Generate(ctx context.Context, profile entity.CompanyProfile) *entity.Insights {
	if g == nil || g.gen == nil || !Eligible(profile) {
		return nil
	}

	name := g.gen.Name()
	callCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	raw, err := g.gen.GenerateStructured(callCtx, BuildInsightsPrompt(profile))
	if err != nil {
		g.metrics.IncBackendCall(name, kindInsights, "error")
		g.logger.Warn("insight generation failed", zap.String("backend", name), zap.Error(err))
		return nil
	}

	insights, repairs, err := ParseInsights(raw)
	if err != nil {
		g.metrics.IncBackendCall(name, kindInsights, "parse_error")
		g.logger.Warn("insight response unreadable",
			zap.String("backend", name),
			zap.Error(&ParseError{Backend: name, Kind: kindInsights, Raw: truncate(raw), Cause: err}))
		return nil
	}
	g.metrics.IncBackendCall(name, kindInsights, "ok")

	if len(repairs) > 0 {
		g.metrics.IncRepairs(repairs)
		g.logger.Debug("insight response degraded", zap.Strings("repairs", repairs))
	}
	return &insights
}
