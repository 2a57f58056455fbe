package entity

// Priority bands derived from the lead score.
const (
	PriorityHigh   = "High"
	PriorityMedium = "Medium"
	PriorityLow    = "Low"
)

// Risk bands derived from the lead score.
const (
	RiskLow    = "Low"
	RiskMedium = "Medium"
	RiskHigh   = "High"
)

// LeadScore is the validated outcome of scoring one CompanyProfile.
type LeadScore struct {
	Score               int               `json:"lead_score"`
	Breakdown           map[string]string `json:"score_breakdown"`
	Rationale           string            `json:"rationale"`
	Priority            string            `json:"priority"`
	RiskLevel           string            `json:"risk_level"`
	RecommendedApproach string            `json:"recommended_approach"`
}

// Insights holds the optional advisory generated for profiles with usable contact signal.
type Insights struct {
	Insights         string `json:"insights"`
	IndustryTrends   string `json:"industry_trends"`
	OutreachStrategy string `json:"outreach_strategy"`
}
