package extract

import (
	"regexp"
	"strings"

	"github.com/d-kavinraja/caprae-ai-readiness-leadgen-challenge/internal/entity"
)

// Category is one label of an ordered taxonomy with the keywords that select it.
type Category struct {
	Label    string
	Keywords []string
}

// Taxonomy classifies text by the first category, in declaration order, with any
// whole-word keyword match. Order is the tie-break and must not be re-sorted.
type Taxonomy struct {
	categories []Category
	patterns   []*regexp.Regexp
}

// NewTaxonomy compiles one case-insensitive word-boundary pattern per category.
func NewTaxonomy(categories []Category) *Taxonomy {
	t := &Taxonomy{categories: categories, patterns: make([]*regexp.Regexp, len(categories))}
	for i, c := range categories {
		quoted := make([]string, 0, len(c.Keywords))
		for _, kw := range c.Keywords {
			quoted = append(quoted, regexp.QuoteMeta(strings.ToLower(kw)))
		}
		t.patterns[i] = regexp.MustCompile(`(?i)\b(?:` + strings.Join(quoted, "|") + `)\b`)
	}
	return t
}

// Classify returns the first matching label or entity.Unknown.
func (t *Taxonomy) Classify(text string) string {
	if text == "" {
		return entity.Unknown
	}
	for i, p := range t.patterns {
		if p.MatchString(text) {
			return t.categories[i].Label
		}
	}
	return entity.Unknown
}

var industries = NewTaxonomy([]Category{
	{Label: "Education", Keywords: []string{"education", "college", "university", "edtech", "school", "academic", "institute", "learning"}},
	{Label: "SaaS", Keywords: []string{"software as a service", "saas", "cloud solution"}},
	{Label: "FinTech", Keywords: []string{"financial technology", "payments", "banking"}},
	{Label: "Healthcare", Keywords: []string{"health tech", "medical", "patient care", "biotech", "hospital"}},
	{Label: "E-commerce", Keywords: []string{"online retail", "e-commerce", "marketplace"}},
	{Label: "AI/ML", Keywords: []string{"artificial intelligence", "machine learning", "data science"}},
	{Label: "Marketing", Keywords: []string{"digital marketing", "seo", "advertising agency"}},
})

var fundingStages = NewTaxonomy([]Category{
	{Label: "Seed/Pre-Seed", Keywords: []string{"seed round", "pre-seed", "angel investment"}},
	{Label: "Series A", Keywords: []string{"series a"}},
	{Label: "Series B", Keywords: []string{"series b"}},
	{Label: "Series C+", Keywords: []string{"series c", "series d"}},
	{Label: "Venture Capital", Keywords: []string{"venture capital", "backed by vc"}},
	{Label: "Acquired", Keywords: []string{"acquired by", "acquisition"}},
	{Label: "Bootstrapped", Keywords: []string{"bootstrapped", "self-funded"}},
})

// Industry classifies the flattened text against the industry taxonomy.
func Industry(text string) string {
	return industries.Classify(text)
}

// FundingStage classifies the flattened text against the funding-stage taxonomy.
func FundingStage(text string) string {
	return fundingStages.Classify(text)
}
