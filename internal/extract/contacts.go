package extract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/nyaruka/phonenumbers"
	"golang.org/x/net/idna"

	"github.com/d-kavinraja/caprae-ai-readiness-leadgen-challenge/internal/markup"
)

const (
	MaxEmails = 5
	MaxPhones = 3

	minPhoneDigits = 8
	maxPhoneDigits = 15

	DefaultPhoneRegion = "US"
)

var (
	emailPattern = regexp.MustCompile(`(?i)\b[a-z0-9._%+-]+@[a-z0-9.-]+\.[a-z]{2,}\b`)
	phonePattern = regexp.MustCompile(`(\+?\d{1,3}[-.\s]?)?\(?\d{2,4}\)?[-.\s]?\d{3,5}[-.\s]?\d{3,5}`)
	idnaProfile  = idna.Lookup
)

// asset extensions that look like TLDs in retina image names such as logo@2x.png.
var assetSuffixes = []string{".png", ".jpg", ".jpeg", ".gif", ".svg", ".webp"}

// Emails collects unique addresses from visible text, then mailto: anchors, capped at MaxEmails.
func Emails(doc *markup.Document) []string {
	out := make([]string, 0, MaxEmails)
	if doc == nil {
		return out
	}

	seen := make(map[string]struct{})
	add := func(candidate string) bool {
		email, ok := cleanEmail(candidate)
		if !ok {
			return true
		}
		if _, dup := seen[email]; dup {
			return true
		}
		seen[email] = struct{}{}
		out = append(out, email)
		return len(out) < MaxEmails
	}

	for _, match := range emailPattern.FindAllString(doc.Text, -1) {
		if !add(match) {
			return out
		}
	}

	if doc.Tree == nil {
		return out
	}
	doc.Tree.Find("a[href]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		href := strings.TrimSpace(s.AttrOr("href", ""))
		if len(href) < len("mailto:") || !strings.EqualFold(href[:len("mailto:")], "mailto:") {
			return true
		}
		address, _, _ := strings.Cut(href[len("mailto:"):], "?")
		match := emailPattern.FindString(address)
		if match == "" {
			return true
		}
		return add(match)
	})
	return out
}

func cleanEmail(raw string) (string, bool) {
	email := strings.Trim(strings.ToLower(strings.TrimSpace(raw)), ".")
	local, domain, ok := strings.Cut(email, "@")
	if !ok || local == "" || domain == "" {
		return "", false
	}
	for _, suffix := range assetSuffixes {
		if strings.HasSuffix(domain, suffix) {
			return "", false
		}
	}
	ascii, err := idnaProfile.ToASCII(domain)
	if err != nil || ascii == "" {
		return "", false
	}
	return local + "@" + ascii, true
}

// Phones collects loosely formatted numbers whose digit count is within [8,15],
// normalised to E.164 for the given region when possible, capped at MaxPhones.
func Phones(doc *markup.Document, region string) []string {
	out := make([]string, 0, MaxPhones)
	if doc == nil {
		return out
	}
	region = strings.ToUpper(strings.TrimSpace(region))
	if region == "" {
		region = DefaultPhoneRegion
	}

	candidates := phonePattern.FindAllString(doc.Text, -1)
	if doc.Tree != nil {
		doc.Tree.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
			href := strings.TrimSpace(s.AttrOr("href", ""))
			if len(href) > len("tel:") && strings.EqualFold(href[:len("tel:")], "tel:") {
				candidates = append(candidates, href[len("tel:"):])
			}
		})
	}

	seen := make(map[string]struct{})
	for _, candidate := range candidates {
		if !plausibleDigits(candidate) {
			continue
		}
		phone := normalizePhone(candidate, region)
		if _, dup := seen[phone]; dup {
			continue
		}
		seen[phone] = struct{}{}
		out = append(out, phone)
		if len(out) == MaxPhones {
			break
		}
	}
	return out
}

func normalizePhone(raw, region string) string {
	trimmed := strings.TrimSpace(raw)
	num, err := phonenumbers.Parse(trimmed, region)
	if err != nil || !phonenumbers.IsPossibleNumber(num) {
		return trimmed
	}
	formatted := phonenumbers.Format(num, phonenumbers.E164)
	if !plausibleDigits(formatted) {
		return trimmed
	}
	return formatted
}

func plausibleDigits(value string) bool {
	n := countDigits(value)
	return n >= minPhoneDigits && n <= maxPhoneDigits
}

func countDigits(value string) int {
	n := 0
	for _, r := range value {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}
