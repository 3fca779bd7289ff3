package seo

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"hremodeling/internal/adapters/i18n"
	"hremodeling/internal/domain/catalog"
)

const testBaseURL = "https://h-remodeling.com"

func TestBreadcrumbSchemaDerivesLabels(t *testing.T) {
	schema := BreadcrumbSchema("en", []string{"projects", "modern-kitchen-bethesda"}, testBaseURL)

	items, ok := schema["itemListElement"].([]map[string]any)
	if !ok {
		t.Fatalf("itemListElement has unexpected type %T", schema["itemListElement"])
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 breadcrumb items, got %d", len(items))
	}
	if items[0]["name"] != "Home" || items[0]["item"] != testBaseURL+"/en" {
		t.Errorf("unexpected root item: %v", items[0])
	}
	if items[2]["name"] != "Modern kitchen bethesda" {
		t.Errorf("expected derived label, got %v", items[2]["name"])
	}
	if items[2]["item"] != testBaseURL+"/en/projects/modern-kitchen-bethesda" {
		t.Errorf("unexpected leaf URL: %v", items[2]["item"])
	}
	if items[2]["position"] != 3 {
		t.Errorf("expected position 3, got %v", items[2]["position"])
	}
}

func TestBreadcrumbSchemaWithLabels(t *testing.T) {
	schema := BreadcrumbSchemaWithLabels("ko", []BreadcrumbItem{
		{Path: "/projects", Label: "프로젝트"},
	}, testBaseURL)

	items := schema["itemListElement"].([]map[string]any)
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[1]["name"] != "프로젝트" {
		t.Errorf("expected supplied label, got %v", items[1]["name"])
	}
	if items[1]["item"] != testBaseURL+"/ko/projects" {
		t.Errorf("unexpected URL: %v", items[1]["item"])
	}
}

func TestFAQSchemaShape(t *testing.T) {
	schema := FAQSchema([]FAQItem{
		{Question: "How long does a kitchen remodel take?", Answer: "Six to eight weeks."},
	})
	raw := MarshalJSONLD(schema)

	var decoded map[string]any
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded["@type"] != "FAQPage" {
		t.Errorf("expected FAQPage, got %v", decoded["@type"])
	}
	if !strings.Contains(raw, "acceptedAnswer") {
		t.Error("expected acceptedAnswer in output")
	}
}

func TestMarshalJSONLDIsEmbeddable(t *testing.T) {
	raw := MarshalJSONLD(LocalBusinessSchema(testBaseURL))
	if strings.Contains(raw, "\n") {
		t.Error("expected compact JSON without newlines")
	}
	var decoded map[string]any
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
}

func TestSitemapEntriesCoverAllLocalesAndProjects(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	entries := SitemapEntries(testBaseURL, now)

	perLocale := len(staticPages) + len(catalog.ProjectSlugs())
	want := perLocale * len(i18n.Locales)
	if len(entries) != want {
		t.Fatalf("expected %d entries, got %d", want, len(entries))
	}

	seen := make(map[string]URLEntry, len(entries))
	for _, e := range entries {
		if e.LastMod != "2026-03-01" {
			t.Fatalf("unexpected lastmod %q", e.LastMod)
		}
		seen[e.Loc] = e
	}
	home, ok := seen[testBaseURL+"/en"]
	if !ok || home.Priority != 1.0 {
		t.Errorf("home page missing or mis-prioritized: %+v", home)
	}
	proj, ok := seen[testBaseURL+"/zh/projects/modern-kitchen-bethesda"]
	if !ok || proj.Priority != 0.7 {
		t.Errorf("project page missing or mis-prioritized: %+v", proj)
	}
}

func TestRenderSitemapProducesValidXML(t *testing.T) {
	entries := SitemapEntries(testBaseURL, time.Now())
	body, err := RenderSitemap(entries)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	out := string(body)
	if !strings.HasPrefix(out, xmlHeader()) {
		t.Error("expected XML declaration prefix")
	}
	if !strings.Contains(out, `xmlns="http://www.sitemaps.org/schemas/sitemap/0.9"`) {
		t.Error("expected sitemaps.org namespace")
	}
	if !strings.Contains(out, "<loc>"+testBaseURL+"/en</loc>") {
		t.Error("expected home loc element")
	}
}

func xmlHeader() string {
	return "<?xml version=\"1.0\" encoding=\"UTF-8\"?>"
}

func TestRobotsTxtPointsAtSitemap(t *testing.T) {
	out := RobotsTxt(testBaseURL)
	if !strings.Contains(out, "Sitemap: "+testBaseURL+"/sitemap.xml") {
		t.Errorf("expected sitemap reference, got %q", out)
	}
	if !strings.Contains(out, "Disallow: /api/") {
		t.Error("expected api paths disallowed")
	}
}
