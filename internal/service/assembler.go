package service

import (
	"net/url"

	"github.com/d-kavinraja/caprae-ai-readiness-leadgen-challenge/internal/entity"
	"github.com/d-kavinraja/caprae-ai-readiness-leadgen-challenge/internal/extract"
)

// AssembleProfile merges extractor output into a CompanyProfile. Assembly is total:
// every field ends up with a real value or its explicit default.
func AssembleProfile(website string, s extract.Signals) entity.CompanyProfile {
	p := entity.CompanyProfile{
		Website:      website,
		Name:         s.Name,
		Description:  s.Description,
		Industry:     orUnknown(s.Industry),
		Emails:       capped(s.Emails, extract.MaxEmails),
		Phones:       capped(s.Phones, extract.MaxPhones),
		SocialLinks:  s.SocialLinks,
		Technologies: capped(s.Technologies, -1),
		TeamSize:     orUnknown(s.TeamSize),
		FundingStage: orUnknown(s.FundingStage),
	}

	if p.Name == "" || p.Name == entity.Unknown {
		if u, err := url.Parse(website); err == nil {
			if name := extract.NameFromHost(u.Hostname()); name != "" {
				p.Name = name
			}
		}
	}
	p.Name = orUnknown(p.Name)
	if p.Description == "" {
		p.Description = entity.NoDescriptionFound
	}
	if p.SocialLinks == nil {
		p.SocialLinks = map[string]string{}
	}
	return p
}

// FailedProfile short-circuits assembly for a fetch failure: only the website and
// the error are carried.
func FailedProfile(website string, err error) entity.CompanyProfile {
	msg := "unknown fetch failure"
	if err != nil {
		msg = err.Error()
	}
	return entity.CompanyProfile{Website: website, FetchError: msg}
}

func orUnknown(v string) string {
	if v == "" {
		return entity.Unknown
	}
	return v
}

func capped(values []string, limit int) []string {
	if values == nil {
		return []string{}
	}
	if limit >= 0 && len(values) > limit {
		return append([]string(nil), values[:limit]...)
	}
	return values
}
