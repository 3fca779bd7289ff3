package seo

import (
	"encoding/xml"
	"fmt"
	"time"

	"hremodeling/internal/adapters/i18n"
	"hremodeling/internal/domain/catalog"
)

// URLEntry is one <url> element of the sitemap.
type URLEntry struct {
	Loc        string  `xml:"loc"`
	LastMod    string  `xml:"lastmod"`
	ChangeFreq string  `xml:"changefreq"`
	Priority   float64 `xml:"priority"`
}

type urlSet struct {
	XMLName xml.Name   `xml:"urlset"`
	XMLNS   string     `xml:"xmlns,attr"`
	URLs    []URLEntry `xml:"url"`
}

// staticPages maps page path to its crawl priority. The home page outranks
// the listing pages which outrank everything else.
var staticPages = []struct {
	path     string
	priority float64
}{
	{"", 1.0},
	{"/services", 0.9},
	{"/projects", 0.9},
	{"/about", 0.8},
	{"/contact", 0.8},
}

// SitemapEntries lists every indexable URL: each static page and each
// project detail page, once per supported locale.
// PRE: baseURL has no trailing slash
// POST: Entry count is (len(staticPages)+len(projects)) * len(locales)
func SitemapEntries(baseURL string, now time.Time) []URLEntry {
	lastMod := now.Format("2006-01-02")
	var entries []URLEntry
	for _, locale := range i18n.Locales {
		for _, page := range staticPages {
			entries = append(entries, URLEntry{
				Loc:        fmt.Sprintf("%s/%s%s", baseURL, locale, page.path),
				LastMod:    lastMod,
				ChangeFreq: "weekly",
				Priority:   page.priority,
			})
		}
		for _, slug := range catalog.ProjectSlugs() {
			entries = append(entries, URLEntry{
				Loc:        fmt.Sprintf("%s/%s/projects/%s", baseURL, locale, slug),
				LastMod:    lastMod,
				ChangeFreq: "monthly",
				Priority:   0.7,
			})
		}
	}
	return entries
}

// RenderSitemap serializes entries as a sitemaps.org urlset document.
func RenderSitemap(entries []URLEntry) ([]byte, error) {
	doc := urlSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  entries,
	}
	body, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal sitemap: %w", err)
	}
	return append([]byte(xml.Header), body...), nil
}

// RobotsTxt returns the robots policy pointing crawlers at the sitemap.
func RobotsTxt(baseURL string) string {
	return fmt.Sprintf("User-agent: *\nAllow: /\nDisallow: /api/\n\nSitemap: %s/sitemap.xml\n", baseURL)
}
