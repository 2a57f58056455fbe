package entity

import (
	"time"

	"github.com/google/uuid"
)

// Analysis is a stored analysis result owned by a caller identity.
type Analysis struct {
	ID        uuid.UUID      `json:"id"`
	Owner     string         `json:"owner"`
	Website   string         `json:"website"`
	Profile   CompanyProfile `json:"profile"`
	Score     *LeadScore     `json:"lead_score,omitempty"`
	Insights  *Insights      `json:"insights,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}
