package main

import (
	"database/sql"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"

	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"

	emailPkg "hremodeling/internal/adapters/email"
	web "hremodeling/internal/adapters/http"
	"hremodeling/internal/adapters/storage"
	outboxStorePkg "hremodeling/internal/adapters/storage/outbox"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	env := envOrDefault("APP_ENV", "development")

	// Database with WAL mode, foreign keys, and busy timeout
	dbPath := envOrDefault("APP_DB_PATH", "hremodeling.db")
	dsn := dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	// Connection pool settings for WAL mode
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)

	if err := db.Ping(); err != nil {
		log.Fatalf("database unreachable: %v", err)
	}
	if err := storage.InitDB(db); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	stores := &web.Stores{
		OutboxStore: outboxStorePkg.NewSQLiteStore(db),
	}

	// Mail transport selection. SMTP needs the app password; its absence is
	// a handled state, not a crash: the contact endpoint reports a
	// configuration error and records submissions for manual recovery.
	inbox := envOrDefault("CONTACT_INBOX", "info@h-remodeling.com")
	from := envOrDefault("MAIL_FROM", "H Remodeling <noreply@h-remodeling.com>")
	switch provider := envOrDefault("MAIL_PROVIDER", "smtp"); provider {
	case "smtp":
		user := os.Getenv("GMAIL_USER")
		password := os.Getenv("GMAIL_APP_PASSWORD")
		if password == "" {
			web.SetEmailSender(nil)
			log.Println("WARNING: GMAIL_APP_PASSWORD is not set — contact email delivery is DISABLED")
		} else {
			port, err := strconv.Atoi(envOrDefault("SMTP_PORT", "587"))
			if err != nil {
				log.Fatalf("invalid SMTP_PORT: %v", err)
			}
			sender, err := emailPkg.NewSMTPSender(emailPkg.SMTPConfig{
				Host:     envOrDefault("SMTP_HOST", "smtp.gmail.com"),
				Port:     port,
				Username: user,
				Password: password,
			})
			if err != nil {
				log.Fatalf("invalid SMTP configuration: %v", err)
			}
			web.SetEmailSender(sender)
			log.Println("Email sender configured (SMTP)")
		}
	case "resend":
		key := os.Getenv("RESEND_KEY")
		if key == "" {
			web.SetEmailSender(nil)
			log.Println("WARNING: RESEND_KEY is not set — contact email delivery is DISABLED")
		} else {
			web.SetEmailSender(emailPkg.NewResendSender(key, from))
			log.Println("Email sender configured (Resend)")
		}
	case "noop":
		web.SetEmailSender(emailPkg.NewNoopSender())
		log.Println("Email sender configured (noop)")
	default:
		log.Fatalf("unknown MAIL_PROVIDER %q (want smtp, resend, or noop)", provider)
	}

	// Admin credentials for the outbox endpoints. Absent credentials leave
	// the admin surface disabled.
	adminEmail := os.Getenv("APP_ADMIN_EMAIL")
	adminHash := ""
	if pw := os.Getenv("APP_ADMIN_PASSWORD"); pw != "" && adminEmail != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("failed to hash admin password: %v", err)
		}
		adminHash = string(hash)
	} else {
		log.Println("Admin outbox endpoints disabled (set APP_ADMIN_EMAIL and APP_ADMIN_PASSWORD)")
	}

	baseURL := strings.TrimSuffix(envOrDefault("APP_BASE_URL", "https://h-remodeling.com"), "/")
	addr := envOrDefault("APP_ADDR", ":8080")

	mux := web.NewMux(web.Config{
		StaticDir:         envOrDefault("APP_STATIC_DIR", "public"),
		BaseURL:           baseURL,
		Env:               env,
		ContactInbox:      inbox,
		FromAddress:       from,
		AdminEmail:        adminEmail,
		AdminPasswordHash: adminHash,
		TrustedOrigins:    []string{"localhost:8080", "127.0.0.1:8080", strings.TrimPrefix(strings.TrimPrefix(baseURL, "https://"), "http://")},
	}, stores)

	slog.Info("server_starting", "version", version, "addr", addr, "env", env)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
