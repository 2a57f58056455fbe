package extract

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/d-kavinraja/caprae-ai-readiness-leadgen-challenge/internal/entity"
	"github.com/d-kavinraja/caprae-ai-readiness-leadgen-challenge/internal/markup"
)

var teamSizePattern = regexp.MustCompile(`(?i)(?:team of|employees|members|we are|we have)\s*([\d,]+(?:\s*to\s*|-)?[\d,]+?)\b`)

// SocialLinks records, per platform, the first anchor href in document order whose
// href contains one of the platform's domain tokens. Entries are never overwritten.
func SocialLinks(doc *markup.Document) map[string]string {
	links := make(map[string]string)
	if doc == nil || doc.Tree == nil {
		return links
	}
	doc.Tree.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href := strings.TrimSpace(s.AttrOr("href", ""))
		if href == "" {
			return
		}
		lower := strings.ToLower(href)
		for _, p := range socialPlatforms {
			if _, taken := links[p.Label]; taken {
				continue
			}
			for _, token := range p.Tokens {
				if strings.Contains(lower, token) {
					links[p.Label] = cleanSocialHref(href)
					break
				}
			}
		}
	})
	return links
}

// cleanSocialHref drops utm_* tracking parameters and gives protocol-relative
// hrefs an https scheme. Unparseable hrefs are kept as found.
func cleanSocialHref(href string) string {
	if strings.HasPrefix(href, "//") {
		href = "https:" + href
	}
	u, err := url.Parse(href)
	if err != nil || u.RawQuery == "" {
		return href
	}
	query := u.Query()
	changed := false
	for key := range query {
		if strings.HasPrefix(strings.ToLower(key), "utm_") {
			query.Del(key)
			changed = true
		}
	}
	if !changed {
		return href
	}
	u.RawQuery = query.Encode()
	return u.String()
}

// Technologies reports catalog entries with any signature present in the raw markup,
// in catalog order.
func Technologies(doc *markup.Document) []string {
	found := make([]string, 0)
	if doc == nil || doc.Markup == "" {
		return found
	}
	seen := make(map[string]struct{})
	for _, sig := range technologies {
		if _, dup := seen[sig.Label]; dup {
			continue
		}
		for _, needle := range sig.Needle {
			if strings.Contains(doc.Markup, needle) {
				seen[sig.Label] = struct{}{}
				found = append(found, sig.Label)
				break
			}
		}
	}
	return found
}

// TeamSize prefers an explicit headcount phrase over the coarse tier keywords.
func TeamSize(text string) string {
	if m := teamSizePattern.FindStringSubmatch(text); len(m) > 1 {
		if size := strings.Trim(m[1], ", "); size != "" {
			return size
		}
	}
	for _, tier := range teamTiers {
		for _, kw := range tier.Keywords {
			if strings.Contains(text, kw) {
				return tier.Label
			}
		}
	}
	return entity.Unknown
}
