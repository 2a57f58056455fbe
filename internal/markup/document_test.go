package markup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_MalformedMarkup(t *testing.T) {
	doc, err := ParseString(`<html><head><title>Acme</title><body><p>We build <b>Rockets<div>and more`, "https://acme.io")
	require.NoError(t, err)

	assert.Equal(t, "we build rockets and more", doc.Text)
	assert.Equal(t, "Acme", doc.Tree.Find("title").Text())
	assert.Equal(t, "acme.io", doc.Hostname())
}

func TestParse_VisibleTextSkipsScripts(t *testing.T) {
	raw := `<!doctype html><html><head><title>T</title><script>var hidden = "secret";</script>
<style>.x{color:red}</style></head>
<body><h1>Hello   World</h1><script>track()</script><p>Team of 45</p><noscript>enable js</noscript></body></html>`

	doc, err := ParseString(raw, "https://acme.io")
	require.NoError(t, err)

	assert.Equal(t, "hello world team of 45", doc.Text)
	assert.Contains(t, doc.Markup, `var hidden = "secret";`)
	assert.Contains(t, doc.Markup, "<h1>hello   world</h1>")
}

func TestParse_AdjacentBlocksDoNotMerge(t *testing.T) {
	doc, err := ParseString(`<p>team of</p><p>45</p>`, "")
	require.NoError(t, err)

	assert.Equal(t, "team of 45", doc.Text)
	assert.Nil(t, doc.URL)
	assert.Equal(t, "", doc.Hostname())
}

func TestParse_DecodesDeclaredCharset(t *testing.T) {
	raw := []byte("<p>Caf\xe9 Co</p>")

	doc, err := Parse(raw, "text/html; charset=iso-8859-1", "https://cafe.example")
	require.NoError(t, err)

	assert.Equal(t, "café co", doc.Text)
}
