package seo

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRobotsTXT(t *testing.T) {
	body := RobotsTXT("https://example.bg/")

	assert.Contains(t, body, "User-agent: *")
	assert.Contains(t, body, "Disallow: /admin")
	assert.Contains(t, body, "Sitemap: https://example.bg/sitemap.xml")
	assert.NotContains(t, body, ".bg//", "trailing slash on the base URL is trimmed")
}

func TestSitemapXML(t *testing.T) {
	mod := time.Date(2025, 11, 7, 15, 30, 0, 0, time.UTC)
	body := SitemapXML("https://example.bg", []string{"vasil-levski", "hristo-botev"}, mod)

	assert.True(t, strings.HasPrefix(body, `<?xml version="1.0" encoding="UTF-8"?>`))
	assert.Contains(t, body, "<loc>https://example.bg/</loc>")
	assert.Contains(t, body, "<loc>https://example.bg/homes/vasil-levski</loc>")
	assert.Contains(t, body, "<loc>https://example.bg/homes/hristo-botev</loc>")
	assert.Contains(t, body, "<lastmod>2025-11-07</lastmod>")
	assert.Equal(t, 3, strings.Count(body, "<url>"), "root page plus one entry per slug")
}

func TestSitemapXMLEscapesSlugs(t *testing.T) {
	body := SitemapXML("https://example.bg", []string{"a&b"}, time.Now())
	assert.Contains(t, body, "/homes/a&amp;b</loc>")
	assert.NotContains(t, body, "/homes/a&b<")
}
