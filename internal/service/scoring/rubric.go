package scoring

import "strings"

// Criterion is one weighted dimension of the scoring rubric.
type Criterion struct {
	Name   string
	Weight int
	Focus  string
}

// Rubric weights sum to 100.
var Rubric = []Criterion{
	{Name: "Business Maturity", Weight: 20, Focus: "company age signals, funding stage, team size, professionalism of the site"},
	{Name: "Growth Potential", Weight: 20, Focus: "industry momentum, funding trajectory, hiring and expansion cues"},
	{Name: "Technology Fit", Weight: 15, Focus: "modern stack, analytics and marketing tooling, commerce or SaaS platforms"},
	{Name: "Market Position", Weight: 15, Focus: "clarity of offering, niche versus crowded market, differentiation"},
	{Name: "Contact Availability", Weight: 10, Focus: "reachable emails and phone numbers"},
	{Name: "Content Quality", Weight: 10, Focus: "quality of description and messaging"},
	{Name: "Social Proof", Weight: 10, Focus: "presence on professional and social networks"},
}

var criterionAliases = map[string]string{
	"technologystackfit":       "Technology Fit",
	"techfit":                  "Technology Fit",
	"contactinfoavailability":  "Contact Availability",
	"contactinformation":       "Contact Availability",
	"websitecontentquality":    "Content Quality",
	"websiteandcontentquality": "Content Quality",
}

var criterionIndex = func() map[string]string {
	idx := make(map[string]string, len(Rubric)+len(criterionAliases))
	for _, c := range Rubric {
		idx[criterionKey(c.Name)] = c.Name
	}
	for alias, name := range criterionAliases {
		idx[alias] = name
	}
	return idx
}()

// CanonicalCriterion maps a backend-supplied key such as "technology_stack_fit" to
// its rubric name.
func CanonicalCriterion(key string) (string, bool) {
	name, ok := criterionIndex[criterionKey(key)]
	return name, ok
}

func criterionKey(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
