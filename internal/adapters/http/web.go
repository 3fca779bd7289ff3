// Package web wires the HTTP surface: the contact API, the catalog API,
// the admin outbox endpoints, and the localized marketing pages.
package web

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"net/http"
	"os"
	"time"

	"hremodeling/internal/adapters/email"
	"hremodeling/internal/adapters/http/middleware"
	"hremodeling/internal/adapters/i18n"
	outboxStore "hremodeling/internal/adapters/storage/outbox"
)

// Stores holds all storage dependencies.
type Stores struct {
	OutboxStore outboxStore.Store
}

// Config carries the request-independent settings NewMux needs.
type Config struct {
	StaticDir string
	BaseURL   string // canonical origin, no trailing slash
	Env       string // "production" enables strict error redaction

	ContactInbox string // operator inbox for contact submissions
	FromAddress  string // sender identity on outgoing mail

	AdminEmail        string
	AdminPasswordHash string // bcrypt

	TrustedOrigins []string
}

// loadCSRFKey reads the CSRF secret from APP_CSRF_KEY (hex-encoded, 32 bytes).
// In production, the key MUST be set. In development, a random key is generated per startup.
func loadCSRFKey(env string) []byte {
	if keyHex := os.Getenv("APP_CSRF_KEY"); keyHex != "" {
		key, err := hex.DecodeString(keyHex)
		if err != nil || len(key) != 32 {
			log.Fatal("APP_CSRF_KEY must be 64 hex characters (32 bytes)")
		}
		return key
	}
	if env == "production" {
		log.Fatal("APP_CSRF_KEY is required in production")
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		log.Fatalf("failed to generate CSRF key: %v", err)
	}
	log.Println("WARNING: using random CSRF key (sessions won't survive restart). Set APP_CSRF_KEY for production.")
	return key
}

// Global stores instance (set by NewMux)
var stores *Stores

// Global session store instance
var sessions *middleware.SessionStore

// Global config (set by NewMux)
var config Config

// Global translation bundle (set by NewMux)
var translations *i18n.Bundle

// RateLimitPerSecond controls the per-IP rate limit. Tests can increase this.
var RateLimitPerSecond = 10

// Global email sender instance (set by SetEmailSender). A nil sender means
// the transport credential is absent; the contact endpoint then reports a
// configuration error without touching the network.
var emailSender email.Sender

// SetEmailSender sets the global email sender for the application.
func SetEmailSender(sender email.Sender) {
	emailSender = sender
}

// NewMux wires HTTP handlers for the app.
func NewMux(cfg Config, s *Stores) http.Handler {
	stores = s
	config = cfg
	sessions = middleware.NewSessionStore()

	bundle, err := i18n.New()
	if err != nil {
		log.Fatalf("failed to load translations: %v", err)
	}
	translations = bundle

	mux := http.NewServeMux()
	registerRoutes(mux, cfg.StaticDir)

	csrfKey := loadCSRFKey(cfg.Env)
	limiter := middleware.NewRateLimiter(RateLimitPerSecond, time.Second)

	// Apply middleware: Timing -> RateLimit -> Auth -> CSRF -> SecurityHeaders -> Mux
	return middleware.Chain(mux,
		middleware.SecurityHeaders,
		middleware.CSRF(csrfKey, cfg.TrustedOrigins),
		middleware.Auth(sessions),
		middleware.RateLimit(limiter),
		middleware.Timing(),
	)
}

func registerRoutes(mux *http.ServeMux, staticDir string) {
	// JSON API
	mux.HandleFunc("POST /api/contact", handleContact)
	mux.HandleFunc("GET /api/projects", handleProjectList)
	mux.HandleFunc("GET /api/projects/{slug}", handleProjectDetail)
	mux.HandleFunc("GET /api/services", handleServiceList)

	// Admin surface
	mux.HandleFunc("POST /api/admin/login", handleAdminLogin)
	mux.HandleFunc("POST /api/admin/logout", handleAdminLogout)
	mux.Handle("GET /api/admin/outbox", middleware.RequireAdmin(http.HandlerFunc(handleAdminOutboxList)))
	mux.Handle("POST /api/admin/outbox/retry", middleware.RequireAdmin(http.HandlerFunc(handleAdminOutboxRetry)))
	mux.Handle("POST /api/admin/outbox/abandon", middleware.RequireAdmin(http.HandlerFunc(handleAdminOutboxAbandon)))

	// Crawling
	mux.HandleFunc("GET /sitemap.xml", handleSitemap)
	mux.HandleFunc("GET /robots.txt", handleRobots)

	// Localized pages
	mux.HandleFunc("GET /{$}", handleRootRedirect)
	mux.HandleFunc("GET /{locale}", handlePage("home"))
	mux.HandleFunc("GET /{locale}/services", handlePage("services"))
	mux.HandleFunc("GET /{locale}/projects", handleProjectsPage)
	mux.HandleFunc("GET /{locale}/projects/{slug}", handleProjectPage)
	mux.HandleFunc("GET /{locale}/about", handlePage("about"))
	mux.HandleFunc("GET /{locale}/contact", handlePage("contact"))

	// Static assets. staticDir is the public root holding the static/ and
	// images/ subdirectories, so no prefix stripping happens here.
	if staticDir != "" {
		fs := http.FileServer(http.Dir(staticDir))
		mux.Handle("GET /static/", fs)
		mux.Handle("GET /images/", fs)
	}
}
