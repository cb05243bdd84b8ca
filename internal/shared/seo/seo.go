package seo

import (
	"fmt"
	"strings"
	"time"
)

// RobotsTXT renders the crawler policy pointing at the sitemap.
func RobotsTXT(baseURL string) string {
	base := strings.TrimRight(baseURL, "/")

	var b strings.Builder
	b.WriteString("User-agent: *\n")
	b.WriteString("Allow: /\n")
	b.WriteString("Disallow: /admin\n")
	b.WriteString("\n")
	fmt.Fprintf(&b, "Sitemap: %s/sitemap.xml\n", base)

	return b.String()
}

// SitemapXML renders the sitemap from published record slugs.
func SitemapXML(baseURL string, slugs []string, lastMod time.Time) string {
	base := strings.TrimRight(baseURL, "/")
	mod := lastMod.Format("2006-01-02")

	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	b.WriteString(`<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">` + "\n")

	fmt.Fprintf(&b, "  <url><loc>%s/</loc><lastmod>%s</lastmod></url>\n", base, mod)
	for _, slug := range slugs {
		fmt.Fprintf(&b, "  <url><loc>%s/homes/%s</loc><lastmod>%s</lastmod></url>\n",
			base, escapeXML(slug), mod)
	}

	b.WriteString("</urlset>\n")
	return b.String()
}

func escapeXML(s string) string {
	r := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&apos;",
	)
	return r.Replace(s)
}
