// Package i18n provides the translation-resource bundles for user-facing
// copy. Bundles are JSON files embedded at build time, one per locale,
// keyed by namespace and dotted key path. Missing keys fall back to the
// default locale, then to the key itself so a broken translation is visible
// instead of blank.
package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"
)

//go:embed locales/*.json
var localeFS embed.FS

// DefaultLocale is the fallback for missing locales and keys.
const DefaultLocale = "en"

// Locales lists supported locales in routing order.
var Locales = []string{"en", "zh", "ko"}

// Bundle holds the parsed translation resources for all locales.
// Read-only after New; safe for concurrent use.
type Bundle struct {
	messages map[string]map[string]any // locale -> namespace tree
}

// New loads and parses the embedded locale bundles.
// POST: Every locale in Locales is present or an error is returned
func New() (*Bundle, error) {
	b := &Bundle{messages: make(map[string]map[string]any, len(Locales))}
	for _, locale := range Locales {
		data, err := localeFS.ReadFile("locales/" + locale + ".json")
		if err != nil {
			return nil, fmt.Errorf("i18n: missing bundle for %s: %w", locale, err)
		}
		var tree map[string]any
		if err := json.Unmarshal(data, &tree); err != nil {
			return nil, fmt.Errorf("i18n: parse bundle %s: %w", locale, err)
		}
		b.messages[locale] = tree
	}
	return b, nil
}

// Supported reports whether locale has a bundle.
func Supported(locale string) bool {
	for _, l := range Locales {
		if l == locale {
			return true
		}
	}
	return false
}

// T resolves a translation by locale, namespace, and dotted key path.
// PRE: namespace and key are non-empty
// POST: Returns the translation, the default-locale translation, or the
// key itself, never an empty string for a non-empty key
func (b *Bundle) T(locale, namespace, key string) string {
	if s, ok := b.lookup(locale, namespace, key); ok {
		return s
	}
	if locale != DefaultLocale {
		if s, ok := b.lookup(DefaultLocale, namespace, key); ok {
			return s
		}
	}
	return key
}

// lookup walks the namespace tree for one locale.
func (b *Bundle) lookup(locale, namespace, key string) (string, bool) {
	tree, ok := b.messages[locale]
	if !ok {
		return "", false
	}
	node, ok := tree[namespace]
	if !ok {
		return "", false
	}
	for _, part := range strings.Split(key, ".") {
		m, ok := node.(map[string]any)
		if !ok {
			return "", false
		}
		node, ok = m[part]
		if !ok {
			return "", false
		}
	}
	s, ok := node.(string)
	return s, ok
}
