package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors for the analysis pipeline. A nil *Metrics
// is valid and records nothing.
type Metrics struct {
	AnalysesTotal     *prometheus.CounterVec
	FetchDuration     prometheus.Histogram
	BackendCallsTotal *prometheus.CounterVec
	ScoreRepairsTotal *prometheus.CounterVec
	AnalysisDuration  prometheus.Histogram
}

// New registers the collectors with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		AnalysesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "leadintel_analyses_total",
			Help: "Analyses processed, by outcome.",
		}, []string{"outcome"}), // scored, degraded, fetch_failed, scoring_failed
		FetchDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "leadintel_fetch_duration_seconds",
			Help:    "Time spent fetching target pages.",
			Buckets: prometheus.DefBuckets,
		}),
		BackendCallsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "leadintel_backend_calls_total",
			Help: "Reasoning backend calls, by backend, call kind and outcome.",
		}, []string{"backend", "kind", "outcome"}),
		ScoreRepairsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "leadintel_score_repairs_total",
			Help: "Field-level repairs applied to backend responses.",
		}, []string{"repair"}),
		AnalysisDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "leadintel_analysis_duration_seconds",
			Help:    "End-to-end analysis latency.",
			Buckets: []float64{0.5, 1, 2, 5, 10, 20, 30, 60},
		}),
	}
}

// IncAnalysis counts one finished analysis under its outcome label.
func (m *Metrics) IncAnalysis(outcome string) {
	if m == nil {
		return
	}
	m.AnalysesTotal.WithLabelValues(outcome).Inc()
}

// ObserveFetch records how long a page fetch took.
func (m *Metrics) ObserveFetch(d time.Duration) {
	if m == nil {
		return
	}
	m.FetchDuration.Observe(d.Seconds())
}

// ObserveAnalysis records the end-to-end duration of one analysis.
func (m *Metrics) ObserveAnalysis(d time.Duration) {
	if m == nil {
		return
	}
	m.AnalysisDuration.Observe(d.Seconds())
}

// IncBackendCall counts one reasoning backend call. kind is "score" or "insights".
func (m *Metrics) IncBackendCall(backend, kind, outcome string) {
	if m == nil {
		return
	}
	m.BackendCallsTotal.WithLabelValues(backend, kind, outcome).Inc()
}

// IncRepairs counts each repair applied to a scoring response.
func (m *Metrics) IncRepairs(repairs []string) {
	if m == nil {
		return
	}
	for _, r := range repairs {
		m.ScoreRepairsTotal.WithLabelValues(r).Inc()
	}
}
