package scoring

import (
	"math"

	"github.com/d-kavinraja/caprae-ai-readiness-leadgen-challenge/internal/entity"
)

// ClampScore rounds v and bounds it to [0,100].
func ClampScore(v float64) int {
	if math.IsNaN(v) {
		return 0
	}
	r := math.Round(v)
	switch {
	case r < 0:
		return 0
	case r > 100:
		return 100
	default:
		return int(r)
	}
}

// PriorityFor derives the priority band from a clamped score.
func PriorityFor(score int) string {
	switch {
	case score > 75:
		return entity.PriorityHigh
	case score > 50:
		return entity.PriorityMedium
	default:
		return entity.PriorityLow
	}
}

// RiskFor derives the risk band from a clamped score. Thresholds are independent of PriorityFor.
func RiskFor(score int) string {
	switch {
	case score > 70:
		return entity.RiskLow
	case score > 45:
		return entity.RiskMedium
	default:
		return entity.RiskHigh
	}
}
