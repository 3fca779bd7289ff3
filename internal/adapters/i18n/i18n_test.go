package i18n

import "testing"

// TestBundleLookup verifies direct and nested key resolution per locale.
func TestBundleLookup(t *testing.T) {
	b, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if got := b.T("en", "contact", "title"); got != "Contact Us" {
		t.Errorf(`T(en, contact, title) = %q`, got)
	}
	if got := b.T("zh", "nav", "contact"); got != "联系我们" {
		t.Errorf(`T(zh, nav, contact) = %q`, got)
	}
	if got := b.T("ko", "projects", "categories.kitchen"); got != "주방" {
		t.Errorf(`nested lookup = %q`, got)
	}
}

// TestBundleFallback verifies default-locale and key fallbacks.
func TestBundleFallback(t *testing.T) {
	b, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	// Unknown locale falls back to English.
	if got := b.T("fr", "contact", "title"); got != "Contact Us" {
		t.Errorf("unknown locale fallback = %q", got)
	}
	// Unknown key falls back to the key itself, never empty.
	if got := b.T("en", "contact", "no.such.key"); got != "no.such.key" {
		t.Errorf("unknown key fallback = %q", got)
	}
}

// TestSupported verifies the locale whitelist.
func TestSupported(t *testing.T) {
	for _, l := range []string{"en", "zh", "ko"} {
		if !Supported(l) {
			t.Errorf("Supported(%q) = false", l)
		}
	}
	if Supported("fr") || Supported("") {
		t.Error("unsupported locales must be rejected")
	}
}

// TestAllLocalesCarryContactForm verifies every bundle has the contact-form
// labels the templates render.
func TestAllLocalesCarryContactForm(t *testing.T) {
	b, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for _, locale := range Locales {
		for _, key := range []string{"name", "phone", "service", "message", "submit"} {
			if got := b.T(locale, "contact", key); got == key {
				t.Errorf("locale %s missing contact.%s", locale, key)
			}
		}
	}
}
