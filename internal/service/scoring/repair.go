package scoring

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/d-kavinraja/caprae-ai-readiness-leadgen-challenge/internal/entity"
)

// Fallback strings used when the backend omits a narrative field.
const (
	FallbackRationale        = "No detailed rationale provided by the model."
	FallbackApproach         = "Generic outreach recommended."
	FallbackInsights         = "No additional insights provided."
	FallbackIndustryTrends   = "No industry trends available."
	FallbackOutreachStrategy = "Generic phone outreach recommended."
)

// Repair names reported through ValidationDegraded and metrics.
const (
	RepairScoreClamped        = "lead_score_clamped"
	RepairScoreRounded        = "lead_score_rounded"
	RepairScoreCoerced        = "lead_score_coerced"
	RepairRationaleMissing    = "rationale_missing"
	RepairApproachMissing     = "approach_missing"
	RepairBreakdownMissing    = "breakdown_missing"
	RepairBreakdownIncomplete = "breakdown_incomplete"
	RepairUnknownCriterion    = "breakdown_unknown_criterion"
	RepairPriorityOverridden  = "priority_overridden"
	RepairRiskOverridden      = "risk_overridden"
	RepairInsightsMissing     = "insights_missing"
	RepairTrendsMissing       = "industry_trends_missing"
	RepairStrategyMissing     = "outreach_strategy_missing"
)

var leadingNumber = regexp.MustCompile(`-?\d+(?:\.\d+)?`)

// StripFences removes markdown code fences and returns the first complete JSON object in
// the text, ignoring prose around it.
func StripFences(text string) string {
	s := strings.TrimSpace(text)
	if strings.HasPrefix(s, "```") {
		if nl := strings.IndexByte(s, '\n'); nl >= 0 {
			s = s[nl+1:]
		} else {
			s = strings.TrimPrefix(s, "```")
		}
		s = strings.TrimSpace(s)
		s = strings.TrimSuffix(s, "```")
		s = strings.TrimSpace(s)
	}
	for start := strings.IndexByte(s, '{'); start >= 0; {
		if obj, ok := balancedObject(s[start:]); ok && json.Valid([]byte(obj)) {
			return obj
		}
		next := strings.IndexByte(s[start+1:], '{')
		if next < 0 {
			break
		}
		start += next + 1
	}
	if start, end := strings.IndexByte(s, '{'), strings.LastIndexByte(s, '}'); start >= 0 && end > start {
		s = s[start : end+1]
	}
	return s
}

// balancedObject returns the object opening at s[0], skipping braces inside strings.
func balancedObject(s string) (string, bool) {
	depth := 0
	inString, escaped := false, false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if escaped {
			escaped = false
			continue
		}
		if inString {
			switch c {
			case '\\':
				escaped = true
			case '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[:i+1], true
			}
		}
	}
	return "", false
}

type scoreResponse struct {
	LeadScore           json.RawMessage            `json:"lead_score"`
	ScoreBreakdown      map[string]json.RawMessage `json:"score_breakdown"`
	Rationale           json.RawMessage            `json:"rationale"`
	Priority            json.RawMessage            `json:"priority"`
	RecommendedApproach json.RawMessage            `json:"recommended_approach"`
	RiskLevel           json.RawMessage            `json:"risk_level"`
}

// ParseLeadScore validates and repairs a scoring response. Bands are always derived
// from the clamped score. The returned slice names every repair applied.
func ParseLeadScore(text string) (entity.LeadScore, []string, error) {
	var resp scoreResponse
	if err := decodeObject(text, &resp); err != nil {
		return entity.LeadScore{}, nil, err
	}

	var repairs []string
	value, coerced, err := scoreValue(resp.LeadScore)
	if err != nil {
		return entity.LeadScore{}, nil, err
	}
	if coerced {
		repairs = append(repairs, RepairScoreCoerced)
	}
	if value != math.Trunc(value) {
		repairs = append(repairs, RepairScoreRounded)
	}
	score := ClampScore(value)
	if value < 0 || value > 100 {
		repairs = append(repairs, RepairScoreClamped)
	}

	out := entity.LeadScore{
		Score:     score,
		Breakdown: make(map[string]string, len(Rubric)),
		Priority:  PriorityFor(score),
		RiskLevel: RiskFor(score),
	}

	if len(resp.ScoreBreakdown) == 0 {
		repairs = append(repairs, RepairBreakdownMissing)
	}
	unknown := false
	for key, raw := range resp.ScoreBreakdown {
		name, ok := CanonicalCriterion(key)
		if !ok {
			unknown = true
			continue
		}
		if text, ok := flexibleString(raw); ok {
			out.Breakdown[name] = text
		}
	}
	if unknown {
		repairs = append(repairs, RepairUnknownCriterion)
	}
	if len(resp.ScoreBreakdown) > 0 && len(out.Breakdown) < len(Rubric) {
		repairs = append(repairs, RepairBreakdownIncomplete)
	}

	if text, ok := flexibleString(resp.Rationale); ok {
		out.Rationale = text
	} else {
		out.Rationale = FallbackRationale
		repairs = append(repairs, RepairRationaleMissing)
	}
	if text, ok := flexibleString(resp.RecommendedApproach); ok {
		out.RecommendedApproach = text
	} else {
		out.RecommendedApproach = FallbackApproach
		repairs = append(repairs, RepairApproachMissing)
	}

	if claimed, ok := flexibleString(resp.Priority); ok && !strings.EqualFold(claimed, out.Priority) {
		repairs = append(repairs, RepairPriorityOverridden)
	}
	if claimed, ok := flexibleString(resp.RiskLevel); ok && !strings.EqualFold(claimed, out.RiskLevel) {
		repairs = append(repairs, RepairRiskOverridden)
	}

	return out, repairs, nil
}

type insightsResponse struct {
	Insights         json.RawMessage `json:"insights"`
	IndustryTrends   json.RawMessage `json:"industry_trends"`
	OutreachStrategy json.RawMessage `json:"outreach_strategy"`
}

// ParseInsights reads an advisory response, filling fallbacks for missing fields.
func ParseInsights(text string) (entity.Insights, []string, error) {
	var resp insightsResponse
	if err := decodeObject(text, &resp); err != nil {
		return entity.Insights{}, nil, err
	}

	var repairs []string
	pick := func(raw json.RawMessage, fallback, repair string) string {
		if text, ok := flexibleString(raw); ok {
			return text
		}
		repairs = append(repairs, repair)
		return fallback
	}

	out := entity.Insights{
		Insights:         pick(resp.Insights, FallbackInsights, RepairInsightsMissing),
		IndustryTrends:   pick(resp.IndustryTrends, FallbackIndustryTrends, RepairTrendsMissing),
		OutreachStrategy: pick(resp.OutreachStrategy, FallbackOutreachStrategy, RepairStrategyMissing),
	}
	return out, repairs, nil
}

func decodeObject(text string, dst any) error {
	cleaned := StripFences(text)
	if cleaned == "" {
		return eris.New("scoring: empty response")
	}
	if !strings.HasPrefix(cleaned, "{") {
		return eris.New("scoring: response is not a JSON object")
	}
	if err := json.Unmarshal([]byte(cleaned), dst); err != nil {
		return eris.Wrap(err, "scoring: decode response")
	}
	return nil
}

// scoreValue accepts numbers and numeric strings such as "85" or "85/100".
func scoreValue(raw json.RawMessage) (float64, bool, error) {
	v, ok := decodeAny(raw)
	if !ok {
		return 0, false, eris.New("scoring: lead_score missing")
	}
	switch t := v.(type) {
	case json.Number:
		f, err := t.Float64()
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return 0, false, eris.Wrap(err, "scoring: lead_score not numeric")
		}
		return f, false, nil
	case string:
		m := leadingNumber.FindString(t)
		if m == "" {
			return 0, false, eris.Errorf("scoring: lead_score %q not numeric", t)
		}
		// Out-of-range values come back as ±Inf and are clamped by the caller.
		f, err := strconv.ParseFloat(m, 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return 0, false, eris.Wrap(err, "scoring: lead_score not numeric")
		}
		return f, true, nil
	default:
		return 0, false, eris.Errorf("scoring: lead_score has unsupported type %T", v)
	}
}

// flexibleString renders strings, numbers and {score, justification} objects as text.
func flexibleString(raw json.RawMessage) (string, bool) {
	v, ok := decodeAny(raw)
	if !ok {
		return "", false
	}
	switch t := v.(type) {
	case string:
		s := strings.TrimSpace(t)
		return s, s != ""
	case json.Number:
		return t.String(), true
	case bool:
		return strconv.FormatBool(t), true
	case map[string]any:
		return objectText(t)
	default:
		return "", false
	}
}

func objectText(m map[string]any) (string, bool) {
	var score, note string
	for _, k := range []string{"score", "sub_score", "points"} {
		if v, ok := m[k]; ok && v != nil {
			score = strings.TrimSpace(fmt.Sprint(v))
			break
		}
	}
	for _, k := range []string{"justification", "reason", "rationale", "comment"} {
		if v, ok := m[k].(string); ok && strings.TrimSpace(v) != "" {
			note = strings.TrimSpace(v)
			break
		}
	}
	switch {
	case score != "" && note != "":
		return score + " - " + note, true
	case score != "":
		return score, true
	case note != "":
		return note, true
	default:
		return "", false
	}
}

func decodeAny(raw json.RawMessage) (any, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, false
	}
	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, false
	}
	return v, true
}
