package sitemap

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const indexXML = `<?xml version="1.0" encoding="UTF-8"?>
<sitemapindex xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <sitemap>
    <loc>
      https://www.example.test/sitemap1.xml
    </loc>
    <lastmod>2024-01-01</lastmod>
  </sitemap>
  <sitemap>
    <lastmod>2024-01-02</lastmod>
    <loc>https://www.example.test/sitemap2.xml</loc>
    <loc>https://www.example.test/ignored.xml</loc>
  </sitemap>
  <sitemap>
    <lastmod>2024-01-03</lastmod>
  </sitemap>
</sitemapindex>`

const urlsetXML = `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <url><loc>https://www.example.test/</loc></url>
  <url><loc>https://www.example.test/about</loc></url>
</urlset>`

func TestParseIndex(t *testing.T) {
	entry, err := Parse(strings.NewReader(indexXML))
	require.NoError(t, err)

	assert.Equal(t, Index, entry.Kind)
	assert.Equal(t, []string{
		"https://www.example.test/sitemap1.xml",
		"https://www.example.test/sitemap2.xml",
	}, entry.Children)
}

func TestParseLeaf(t *testing.T) {
	entry, err := Parse(strings.NewReader(urlsetXML))
	require.NoError(t, err)

	assert.Equal(t, Leaf, entry.Kind)
	assert.Empty(t, entry.Children)
}

func TestParseIndexWithoutLocs(t *testing.T) {
	entry, err := Parse(strings.NewReader(`<sitemapindex><sitemap></sitemap></sitemapindex>`))
	require.NoError(t, err)

	assert.Equal(t, Index, entry.Kind)
	assert.Empty(t, entry.Children)
}

func TestParseIndexKeepsBlankLocs(t *testing.T) {
	entry, err := Parse(strings.NewReader(`<sitemapindex>
  <sitemap><loc></loc></sitemap>
  <sitemap><loc>   </loc></sitemap>
  <sitemap><loc>https://x.com/a.xml</loc></sitemap>
</sitemapindex>`))
	require.NoError(t, err)

	assert.Equal(t, Index, entry.Kind)
	assert.Equal(t, []string{"", "", "https://x.com/a.xml"}, entry.Children)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty", ""},
		{"text", "this is not xml"},
		{"unclosed", "<urlset><url><loc>https://x.com/</loc></url>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.body))
			assert.ErrorIs(t, err, ErrParse)
		})
	}
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "index", Index.String())
	assert.Equal(t, "leaf", Leaf.String())
}
