package extract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/d-kavinraja/caprae-ai-readiness-leadgen-challenge/internal/entity"
	"github.com/d-kavinraja/caprae-ai-readiness-leadgen-challenge/internal/markup"
)

var titleSuffix = regexp.MustCompile(`\s+[|\x{2013}\x{2014}-]\s+.*$`)

// Name picks og:site_name, then <title>, then a title-cased hostname label.
func Name(doc *markup.Document) string {
	if doc == nil {
		return entity.Unknown
	}
	if doc.Tree != nil {
		if og := cleanTitle(doc.Tree.Find(`meta[property="og:site_name"]`).First().AttrOr("content", "")); og != "" {
			return og
		}
		if title := cleanTitle(doc.Tree.Find("title").First().Text()); title != "" {
			return title
		}
	}
	if name := NameFromHost(doc.Hostname()); name != "" {
		return name
	}
	return entity.Unknown
}

// NameFromHost derives a display name from the first DNS label, ignoring "www.".
func NameFromHost(host string) string {
	host = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(host)), "www.")
	label, _, _ := strings.Cut(host, ".")
	if label == "" {
		return ""
	}
	return cases.Title(language.English).String(label)
}

func cleanTitle(raw string) string {
	collapsed := strings.Join(strings.Fields(raw), " ")
	return strings.TrimSpace(titleSuffix.ReplaceAllString(collapsed, ""))
}

// Description returns the trimmed meta description or the fixed sentinel.
func Description(doc *markup.Document) string {
	if doc == nil || doc.Tree == nil {
		return entity.NoDescriptionFound
	}
	var found string
	doc.Tree.Find("meta[name]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if !strings.EqualFold(strings.TrimSpace(s.AttrOr("name", "")), "description") {
			return true
		}
		found = strings.Join(strings.Fields(s.AttrOr("content", "")), " ")
		return found == ""
	})
	if found == "" {
		return entity.NoDescriptionFound
	}
	return found
}
