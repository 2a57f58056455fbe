package scoring

import (
	"fmt"
	"sort"
	"strings"

	"github.com/d-kavinraja/caprae-ai-readiness-leadgen-challenge/internal/entity"
)

// BuildScoringPrompt serializes a profile together with the weighted rubric and the
// strict response contract.
func BuildScoringPrompt(p entity.CompanyProfile) string {
	var b strings.Builder
	b.WriteString("You are a B2B sales analyst. Evaluate the company below as a sales lead.\n\n")
	b.WriteString("COMPANY PROFILE\n")
	writeProfile(&b, p)

	b.WriteString("\nSCORING RUBRIC (weights sum to 100%)\n")
	for i, c := range Rubric {
		fmt.Fprintf(&b, "%d. %s (%d%%): %s\n", i+1, c.Name, c.Weight, c.Focus)
	}

	b.WriteString("\nRESPONSE FORMAT\n")
	b.WriteString("Respond with one strict JSON object and nothing else: no markdown, no code fences, no commentary.\n")
	b.WriteString("The object must contain exactly these keys:\n")
	b.WriteString(`- "lead_score": integer from 0 to 100` + "\n")
	b.WriteString(`- "score_breakdown": object with one entry per rubric criterion, keyed by criterion name, each value a string starting with the sub-score (for example "16/20 - established team")` + "\n")
	b.WriteString(`- "rationale": string explaining the overall score` + "\n")
	b.WriteString(`- "priority": one of "High", "Medium", "Low"` + "\n")
	b.WriteString(`- "recommended_approach": string with a concrete outreach approach` + "\n")
	b.WriteString(`- "risk_level": one of "Low", "Medium", "High"` + "\n")
	return b.String()
}

// BuildInsightsPrompt asks for a short advisory on industry trends and outreach.
func BuildInsightsPrompt(p entity.CompanyProfile) string {
	var b strings.Builder
	b.WriteString("You are a B2B sales strategist. Give practical advice for approaching the company below.\n\n")
	b.WriteString("COMPANY PROFILE\n")
	writeProfile(&b, p)

	b.WriteString("\nRESPONSE FORMAT\n")
	b.WriteString("Respond with one strict JSON object and nothing else: no markdown, no code fences, no commentary.\n")
	b.WriteString(`Keys: "insights" (what stands out about this company), "industry_trends" (current trends in its industry), "outreach_strategy" (how to open the conversation using the available contact channels).` + "\n")
	return b.String()
}

func writeProfile(b *strings.Builder, p entity.CompanyProfile) {
	fmt.Fprintf(b, "Name: %s\n", p.Name)
	fmt.Fprintf(b, "Website: %s\n", p.Website)
	fmt.Fprintf(b, "Description: %s\n", p.Description)
	fmt.Fprintf(b, "Industry: %s\n", p.Industry)
	fmt.Fprintf(b, "Team size: %s\n", p.TeamSize)
	fmt.Fprintf(b, "Funding stage: %s\n", p.FundingStage)
	fmt.Fprintf(b, "Technologies: %s\n", listOrNone(p.Technologies))
	fmt.Fprintf(b, "Contact emails: %s\n", listOrNone(p.Emails))
	fmt.Fprintf(b, "Phone numbers: %s\n", listOrNone(p.Phones))

	platforms := make([]string, 0, len(p.SocialLinks))
	for platform := range p.SocialLinks {
		platforms = append(platforms, platform)
	}
	sort.Strings(platforms)
	links := make([]string, 0, len(platforms))
	for _, platform := range platforms {
		links = append(links, platform+" ("+p.SocialLinks[platform]+")")
	}
	fmt.Fprintf(b, "Social presence: %s\n", listOrNone(links))
}

func listOrNone(values []string) string {
	if len(values) == 0 {
		return "none detected"
	}
	return strings.Join(values, ", ")
}
