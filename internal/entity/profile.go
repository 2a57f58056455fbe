package entity

// Defaults used when an extractor finds no signal.
const (
	Unknown            = "Unknown"
	NoDescriptionFound = "No description found."
)

// CompanyProfile is the canonical record extracted from one company website.
type CompanyProfile struct {
	Website      string            `json:"website"`
	Name         string            `json:"name"`
	Description  string            `json:"description"`
	Industry     string            `json:"industry"`
	Emails       []string          `json:"contact_emails"`
	Phones       []string          `json:"phone_numbers"`
	SocialLinks  map[string]string `json:"social_links"`
	Technologies []string          `json:"technologies"`
	TeamSize     string            `json:"team_size"`
	FundingStage string            `json:"funding_stage"`
	FetchError   string            `json:"fetch_error,omitempty"`
}

// Failed reports whether the profile carries a fetch failure instead of extracted signals.
func (p CompanyProfile) Failed() bool {
	return p.FetchError != ""
}

// HasContactChannel reports whether at least one email or phone number was found.
func (p CompanyProfile) HasContactChannel() bool {
	return len(p.Emails) > 0 || len(p.Phones) > 0
}
