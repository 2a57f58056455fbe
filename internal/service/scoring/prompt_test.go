package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildScoringPrompt_ListsContactValues(t *testing.T) {
	prompt := BuildScoringPrompt(sampleProfile())

	assert.Contains(t, prompt, "Contact emails: contact@acme.io\n")
	assert.Contains(t, prompt, "Phone numbers: +14155550100\n")
	assert.Contains(t, prompt, "Social presence: LinkedIn (https://linkedin.com/company/acme)\n")
	assert.NotContains(t, prompt, "1 found")
}

func TestBuildInsightsPrompt_ListsContactValues(t *testing.T) {
	p := sampleProfile()
	p.Emails = append(p.Emails, "sales@acme.io")
	p.SocialLinks["Twitter"] = "https://twitter.com/acme"

	prompt := BuildInsightsPrompt(p)

	assert.Contains(t, prompt, "Contact emails: contact@acme.io, sales@acme.io\n")
	assert.Contains(t, prompt, "Phone numbers: +14155550100\n")
	assert.Contains(t, prompt, "Social presence: LinkedIn (https://linkedin.com/company/acme), Twitter (https://twitter.com/acme)\n")
}

func TestBuildScoringPrompt_NoContacts(t *testing.T) {
	p := sampleProfile()
	p.Emails = nil
	p.Phones = nil
	p.SocialLinks = nil

	prompt := BuildScoringPrompt(p)

	assert.Contains(t, prompt, "Contact emails: none detected\n")
	assert.Contains(t, prompt, "Phone numbers: none detected\n")
	assert.Contains(t, prompt, "Social presence: none detected\n")
}
