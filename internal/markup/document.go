// Package markup turns raw page bytes into the two views consumed by extractors:
// a queryable goquery tree and a flattened, lower-cased visible-text string.
package markup

import (
	"bytes"
	"io"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rotisserie/eris"
	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"
)

// Document is the normalized form of one fetched page. It is read-only once built.
type Document struct {
	URL    *url.URL
	Tree   *goquery.Document
	Text   string
	Markup string
}

var invisible = map[string]struct{}{
	"script":   {},
	"style":    {},
	"noscript": {},
	"template": {},
	"head":     {},
}

// Parse decodes raw using the declared content type, builds a tree tolerant of
// malformed markup and derives the text views. Scripts are never executed and no
// external resource is followed.
func Parse(raw []byte, contentType, pageURL string) (*Document, error) {
	decoded := decode(raw, contentType)

	root, err := html.Parse(bytes.NewReader(decoded))
	if err != nil {
		return nil, eris.Wrap(err, "markup: parse html")
	}

	doc := &Document{
		Tree:   goquery.NewDocumentFromNode(root),
		Text:   visibleText(root),
		Markup: strings.ToLower(string(decoded)),
	}
	if u, err := url.Parse(strings.TrimSpace(pageURL)); err == nil && u.Host != "" {
		doc.URL = u
		doc.Tree.Url = u
	}
	return doc, nil
}

// ParseString is a convenience for already-decoded UTF-8 markup.
func ParseString(markup, pageURL string) (*Document, error) {
	return Parse([]byte(markup), "text/html; charset=utf-8", pageURL)
}

// Hostname returns the lower-cased host of the source URL, or "".
func (d *Document) Hostname() string {
	if d == nil || d.URL == nil {
		return ""
	}
	return strings.ToLower(d.URL.Hostname())
}

func decode(raw []byte, contentType string) []byte {
	reader, err := charset.NewReader(bytes.NewReader(raw), contentType)
	if err != nil {
		return raw
	}
	decoded, err := io.ReadAll(reader)
	if err != nil {
		return raw
	}
	return decoded
}

func visibleText(root *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if _, skip := invisible[n.Data]; skip {
				return
			}
		}
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			b.WriteByte(' ')
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)

	return strings.ToLower(strings.Join(strings.Fields(b.String()), " "))
}
