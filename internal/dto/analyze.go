package dto

// AnalyzeRequest is the payload accepted by POST /analyze.
type AnalyzeRequest struct {
	URL          string `json:"url"`
	SkipInsights bool   `json:"skip_insights,omitempty"`
}

// FetchFailure describes a page that could not be retrieved.
type FetchFailure struct {
	URL        string `json:"url"`
	StatusCode int    `json:"status_code,omitempty"`
	Timeout    bool   `json:"timeout,omitempty"`
	Cause      string `json:"cause"`
}

// BackendFailure names the reasoning backend that failed to score a profile.
type BackendFailure struct {
	Backend string `json:"backend"`
	Cause   string `json:"cause"`
	Profile any    `json:"profile,omitempty"`
}
