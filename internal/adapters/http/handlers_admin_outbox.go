package web

import (
	"errors"
	"net/http"
	"strconv"

	"golang.org/x/crypto/bcrypt"

	"hremodeling/internal/adapters/http/middleware"
	"hremodeling/internal/application/orchestrators"
	"hremodeling/internal/domain/outbox"
)

// handleAdminLogin authenticates the site operator against the configured
// bcrypt hash and issues a session cookie.
func handleAdminLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if config.AdminEmail == "" || config.AdminPasswordHash == "" {
		http.Error(w, "admin login disabled", http.StatusForbidden)
		return
	}
	if req.Email != config.AdminEmail ||
		bcrypt.CompareHashAndPassword([]byte(config.AdminPasswordHash), []byte(req.Password)) != nil {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}

	token, err := sessions.Create(req.Email)
	if err != nil {
		internalError(w, err)
		return
	}
	middleware.SetSessionCookie(w, token)
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleAdminLogout drops the session.
func handleAdminLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie("hremodeling_session"); err == nil {
		sessions.Delete(cookie.Value)
	}
	middleware.ClearSessionCookie(w)
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleAdminOutboxList lists recorded unsent mail. ?status= filters
// (default "pending"), "all" lists everything; ?limit= caps the page.
func handleAdminOutboxList(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}

	status := r.URL.Query().Get("status")
	if status == "" {
		status = outbox.StatusPending
	}
	if status == "all" {
		status = ""
	}

	entries, err := stores.OutboxStore.List(r.Context(), status, limit)
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// handleAdminOutboxRetry redelivers one recorded email on operator request.
// The pipeline itself never retries; this is the only redelivery path.
func handleAdminOutboxRetry(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		http.Error(w, "missing id", http.StatusBadRequest)
		return
	}

	entry, err := orchestrators.ExecuteRetryOutbox(r.Context(), id, orchestrators.RetryOutboxDeps{
		OutboxStore: stores.OutboxStore,
		Sender:      emailSender,
		Now:         timeNow,
	})
	if err != nil {
		switch {
		case errors.Is(err, outbox.ErrNotRetryable):
			http.Error(w, "entry cannot be retried", http.StatusConflict)
		case errors.Is(err, orchestrators.ErrNotConfigured):
			http.Error(w, "email transport not configured", http.StatusServiceUnavailable)
		default:
			// The attempt outcome is already persisted; report it.
			writeJSON(w, http.StatusBadGateway, entry)
		}
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

// handleAdminOutboxAbandon marks one entry as permanently given up.
func handleAdminOutboxAbandon(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		http.Error(w, "missing id", http.StatusBadRequest)
		return
	}

	entry, err := orchestrators.ExecuteAbandonOutbox(r.Context(), id, orchestrators.RetryOutboxDeps{
		OutboxStore: stores.OutboxStore,
		Now:         timeNow,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}
