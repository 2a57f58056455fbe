package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/d-kavinraja/caprae-ai-readiness-leadgen-challenge/internal/backend"
	"github.com/d-kavinraja/caprae-ai-readiness-leadgen-challenge/internal/config"
	"github.com/d-kavinraja/caprae-ai-readiness-leadgen-challenge/internal/entity"
	"github.com/d-kavinraja/caprae-ai-readiness-leadgen-challenge/internal/extract"
	"github.com/d-kavinraja/caprae-ai-readiness-leadgen-challenge/internal/fetcher"
	"github.com/d-kavinraja/caprae-ai-readiness-leadgen-challenge/internal/metrics"
	"github.com/d-kavinraja/caprae-ai-readiness-leadgen-challenge/internal/service/scoring"
)

const acmePage = `<html><head><title>Acme | Home</title>
<meta name="description" content="Rockets as a service"></head>
<body><p>We are a Series A SaaS startup, team of 45.</p>
<p>Reach us at contact@acme.io or +1 415-555-0100</p>
<a href="https://www.linkedin.com/company/acme">LinkedIn</a>
</body></html>`

const scoreJSON = `{"lead_score": 82, "score_breakdown": {"Business Maturity": "16/20"},
"rationale": "Funded SaaS with reachable contacts", "recommended_approach": "Email the founders"}`

const insightsJSON = `{"insights": "Strong fit", "industry_trends": "SaaS consolidation", "outreach_strategy": "Founder-led email"}`

// scriptedGenerator answers prompts in order.
type scriptedGenerator struct {
	mu        sync.Mutex
	responses []string
	err       error
	calls     int
}

func (g *scriptedGenerator) Name() string { return "scripted" }

func (g *scriptedGenerator) GenerateStructured(ctx context.Context, prompt string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls++
	if g.err != nil {
		return "", g.err
	}
	if len(g.responses) == 0 {
		return "", errors.New("no scripted response left")
	}
	out := g.responses[0]
	g.responses = g.responses[1:]
	return out, nil
}

func newTestAnalyzer(gen *scriptedGenerator, m *metrics.Metrics) *Analyzer {
	logger := zap.NewNop()
	var g backend.Generator
	if gen != nil {
		g = gen
	}
	return NewAnalyzer(
		fetcher.New(fetcher.Config{Timeout: 2 * time.Second}),
		extract.New("US", extract.WithLogger(logger)),
		scoring.NewScorer(g, scoring.WithLogger(logger), scoring.WithMetrics(m)),
		scoring.NewInsightGenerator(g, scoring.WithLogger(logger), scoring.WithMetrics(m)),
		WithAnalyzerLogger(logger),
		WithAnalyzerMetrics(m),
	)
}

func serveHTML(t *testing.T, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestAnalyzer_ScoresAndGeneratesInsights(t *testing.T) {
	srv := serveHTML(t, acmePage)
	m := metrics.New(prometheus.NewRegistry())
	gen := &scriptedGenerator{responses: []string{scoreJSON, insightsJSON}}

	result, err := newTestAnalyzer(gen, m).Analyze(context.Background(), srv.URL, AnalyzeOptions{})
	require.NoError(t, err)

	p := result.Profile
	assert.Equal(t, "Acme", p.Name)
	assert.Equal(t, "Rockets as a service", p.Description)
	assert.Equal(t, "SaaS", p.Industry)
	assert.Equal(t, "Series A", p.FundingStage)
	assert.Equal(t, "45", p.TeamSize)
	assert.Equal(t, []string{"contact@acme.io"}, p.Emails)
	assert.Equal(t, []string{"+14155550100"}, p.Phones)
	assert.Contains(t, p.SocialLinks, "LinkedIn")

	require.NotNil(t, result.Score)
	assert.Equal(t, 82, result.Score.Score)
	assert.Equal(t, entity.PriorityHigh, result.Score.Priority)
	assert.Equal(t, entity.RiskLow, result.Score.RiskLevel)
	assert.False(t, result.Degraded)

	require.NotNil(t, result.Insights)
	assert.Equal(t, "Founder-led email", result.Insights.OutreachStrategy)
	assert.Equal(t, 2, gen.calls)
	assert.Equal(t, float64(1), testutil.ToFloat64(m.AnalysesTotal.WithLabelValues(OutcomeScored)))
}

func TestAnalyzer_SkipInsights(t *testing.T) {
	srv := serveHTML(t, acmePage)
	gen := &scriptedGenerator{responses: []string{scoreJSON, insightsJSON}}

	result, err := newTestAnalyzer(gen, nil).Analyze(context.Background(), srv.URL, AnalyzeOptions{SkipInsights: true})
	require.NoError(t, err)
	assert.NotNil(t, result.Score)
	assert.Nil(t, result.Insights)
	assert.Equal(t, 1, gen.calls)
}

func TestAnalyzer_FetchFailureSkipsScoring(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	m := metrics.New(prometheus.NewRegistry())
	gen := &scriptedGenerator{responses: []string{scoreJSON}}
	result, err := newTestAnalyzer(gen, m).Analyze(context.Background(), srv.URL, AnalyzeOptions{})

	var fetchErr *fetcher.FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, http.StatusNotFound, fetchErr.StatusCode)
	assert.True(t, result.Profile.Failed())
	assert.Nil(t, result.Score)
	assert.Equal(t, 0, gen.calls)
	assert.Equal(t, float64(1), testutil.ToFloat64(m.AnalysesTotal.WithLabelValues(OutcomeFetchFailed)))
}

func TestAnalyzer_InvalidURLIsFetchError(t *testing.T) {
	result, err := newTestAnalyzer(nil, nil).Analyze(context.Background(), "ftp://acme.io", AnalyzeOptions{})

	var fetchErr *fetcher.FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, "ftp://acme.io", result.Profile.Website)
	assert.NotEmpty(t, result.Profile.FetchError)
}

func TestAnalyzer_DegradedWithoutBackend(t *testing.T) {
	srv := serveHTML(t, acmePage)

	result, err := newTestAnalyzer(nil, nil).Analyze(context.Background(), srv.URL, AnalyzeOptions{})
	require.NoError(t, err)
	assert.True(t, result.Degraded)
	require.NotNil(t, result.Score)
	assert.Equal(t, scoring.DegradedRationale, result.Score.Rationale)
	assert.Nil(t, result.Insights)
	assert.Equal(t, "Acme", result.Profile.Name)
}

func TestAnalyzer_BackendErrorKeepsProfile(t *testing.T) {
	srv := serveHTML(t, acmePage)
	gen := &scriptedGenerator{err: errors.New("quota exceeded")}

	result, err := newTestAnalyzer(gen, nil).Analyze(context.Background(), srv.URL, AnalyzeOptions{})

	var backendErr *scoring.BackendError
	require.ErrorAs(t, err, &backendErr)
	assert.Nil(t, result.Score)
	assert.Equal(t, "SaaS", result.Profile.Industry)
	assert.False(t, result.Profile.Failed())
}

func TestAnalyzer_UnparseableScoreIsParseError(t *testing.T) {
	srv := serveHTML(t, acmePage)
	gen := &scriptedGenerator{responses: []string{"I think this lead is great!"}}

	_, err := newTestAnalyzer(gen, nil).Analyze(context.Background(), srv.URL, AnalyzeOptions{})

	var parseErr *scoring.ParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestBuildAnalyzer_DegradesWithoutCredential(t *testing.T) {
	cfg := &config.Config{
		Fetch:   config.FetchConfig{Timeout: time.Second, PhoneRegion: "US"},
		Backend: config.BackendConfig{Provider: "anthropic", Timeout: time.Second},
	}
	a, err := BuildAnalyzer(context.Background(), cfg, nil, zap.NewNop())
	require.NoError(t, err)

	srv := serveHTML(t, acmePage)
	result, err := a.Analyze(context.Background(), srv.URL, AnalyzeOptions{})
	require.NoError(t, err)
	assert.True(t, result.Degraded)
}

func TestAnalyzer_FetchTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	gen := &scriptedGenerator{responses: []string{scoreJSON}}
	logger := zap.NewNop()
	a := NewAnalyzer(
		fetcher.New(fetcher.Config{Timeout: 100 * time.Millisecond}),
		extract.New("US"),
		scoring.NewScorer(gen, scoring.WithLogger(logger)),
		scoring.NewInsightGenerator(gen, scoring.WithLogger(logger)),
		WithAnalyzerLogger(logger),
	)

	result, err := a.Analyze(context.Background(), srv.URL, AnalyzeOptions{})

	var fetchErr *fetcher.FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.True(t, fetchErr.Timeout)
	assert.Nil(t, result.Score)
	assert.Equal(t, 0, gen.calls)
}
