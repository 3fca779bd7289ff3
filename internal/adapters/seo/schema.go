// Package seo generates the structured-data (JSON-LD) markup and the
// sitemap for the site. Everything here is a pure transform of catalog and
// routing data; handlers embed the output in page heads.
package seo

import (
	"encoding/json"
	"fmt"
	"strings"
)

const schemaContext = "https://schema.org"

// BreadcrumbItem is one custom-labelled breadcrumb segment.
type BreadcrumbItem struct {
	Path  string // "/projects/modern-kitchen-bethesda"
	Label string
}

// BreadcrumbSchema builds a schema.org BreadcrumbList from raw path
// segments. Labels are derived from the segments: first letter upper-cased,
// hyphens replaced with spaces.
// PRE: locale is a supported locale; baseURL has no trailing slash
// POST: Returns a JSON-serializable BreadcrumbList
func BreadcrumbSchema(locale string, segments []string, baseURL string) map[string]any {
	items := []map[string]any{{
		"@type":    "ListItem",
		"position": 1,
		"name":     "Home",
		"item":     fmt.Sprintf("%s/%s", baseURL, locale),
	}}

	current := "/" + locale
	for i, seg := range segments {
		current += "/" + seg
		items = append(items, map[string]any{
			"@type":    "ListItem",
			"position": i + 2,
			"name":     segmentLabel(seg),
			"item":     baseURL + current,
		})
	}

	return map[string]any{
		"@context":        schemaContext,
		"@type":           "BreadcrumbList",
		"itemListElement": items,
	}
}

// BreadcrumbSchemaWithLabels builds a BreadcrumbList with caller-supplied
// labels, for pages whose display names are localized.
// PRE: every item Path starts with "/"
// POST: Returns a JSON-serializable BreadcrumbList
func BreadcrumbSchemaWithLabels(locale string, items []BreadcrumbItem, baseURL string) map[string]any {
	elements := []map[string]any{{
		"@type":    "ListItem",
		"position": 1,
		"name":     "Home",
		"item":     fmt.Sprintf("%s/%s", baseURL, locale),
	}}
	for i, item := range items {
		elements = append(elements, map[string]any{
			"@type":    "ListItem",
			"position": i + 2,
			"name":     item.Label,
			"item":     fmt.Sprintf("%s/%s%s", baseURL, locale, item.Path),
		})
	}
	return map[string]any{
		"@context":        schemaContext,
		"@type":           "BreadcrumbList",
		"itemListElement": elements,
	}
}

// LocalBusinessSchema describes the company for search engines.
func LocalBusinessSchema(baseURL string) map[string]any {
	return map[string]any{
		"@context":  schemaContext,
		"@type":     "HomeAndConstructionBusiness",
		"name":      "H Remodeling",
		"url":       baseURL,
		"telephone": "+1-703-555-1234",
		"areaServed": []string{
			"Washington, D.C.", "Maryland", "Virginia",
		},
	}
}

// ServiceSchema describes one remodeling service.
// PRE: serviceID names a catalog service; name is the localized display name
func ServiceSchema(serviceID, name, locale, baseURL string) map[string]any {
	return map[string]any{
		"@context":    schemaContext,
		"@type":       "Service",
		"name":        name,
		"serviceType": name,
		"url":         fmt.Sprintf("%s/%s/services#%s", baseURL, locale, serviceID),
		"provider": map[string]any{
			"@type": "HomeAndConstructionBusiness",
			"name":  "H Remodeling",
		},
	}
}

// FAQItem is one question/answer pair for FAQPage markup.
type FAQItem struct {
	Question string
	Answer   string
}

// FAQSchema builds schema.org FAQPage markup.
// PRE: items is non-empty
func FAQSchema(items []FAQItem) map[string]any {
	entities := make([]map[string]any, 0, len(items))
	for _, item := range items {
		entities = append(entities, map[string]any{
			"@type": "Question",
			"name":  item.Question,
			"acceptedAnswer": map[string]any{
				"@type": "Answer",
				"text":  item.Answer,
			},
		})
	}
	return map[string]any{
		"@context":   schemaContext,
		"@type":      "FAQPage",
		"mainEntity": entities,
	}
}

// MarshalJSONLD renders a schema object as the contents of a
// <script type="application/ld+json"> tag.
// POST: Returns compact JSON; a marshal failure is a programming error and
// returns "{}" so a page never breaks over markup
func MarshalJSONLD(schema map[string]any) string {
	data, err := json.Marshal(schema)
	if err != nil {
		return "{}"
	}
	return string(data)
}

// segmentLabel turns a path segment into a display label.
func segmentLabel(seg string) string {
	label := strings.ReplaceAll(seg, "-", " ")
	if label == "" {
		return label
	}
	return strings.ToUpper(label[:1]) + label[1:]
}
