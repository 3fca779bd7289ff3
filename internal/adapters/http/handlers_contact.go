package web

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"hremodeling/internal/application/orchestrators"
	"hremodeling/internal/domain/submission"
)

// contactRequest is the wire shape of a contact-form submission.
type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Service string `json:"service"`
	Message string `json:"message"`
}

// contactResponse is the wire shape of the result. Exactly one of the two
// shapes goes out per request: {success:true, messageId} or
// {success:false, error, details?}.
type contactResponse struct {
	Success   bool   `json:"success"`
	MessageID string `json:"messageId,omitempty"`
	Error     string `json:"error,omitempty"`
	Details   string `json:"details,omitempty"`
}

// handleContact accepts one contact submission and runs the pipeline:
// validate, compose, deliver. Composition failures are programming errors
// surfaced as panics; the recover below turns them into a 500 instead of
// killing the request goroutine silently.
func handleContact(w http.ResponseWriter, r *http.Request) {
	defer func() {
		if rec := recover(); rec != nil {
			slog.Error("contact_handler_panic", "panic", rec)
			writeJSON(w, http.StatusInternalServerError, contactResponse{
				Success: false,
				Error:   "Failed to send message. Please try again later.",
			})
		}
	}()

	var req contactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, contactResponse{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	// A disconnecting client must not abort the delivery attempt; the send
	// runs to completion or to its own timeout.
	ctx := context.WithoutCancel(r.Context())

	result, err := orchestrators.ExecuteSubmitContact(ctx, orchestrators.SubmitContactCommand{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Service: req.Service,
		Message: req.Message,
	}, orchestrators.SubmitContactDeps{
		Sender:      emailSender,
		OutboxStore: stores.OutboxStore,
		Inbox:       config.ContactInbox,
		From:        config.FromAddress,
		GenerateID:  generateID,
		Now:         timeNow,
	})

	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, contactResponse{
			Success:   true,
			MessageID: result.MessageID,
		})

	case errors.Is(err, submission.ErrMissingFields):
		writeJSON(w, http.StatusBadRequest, contactResponse{
			Success: false,
			Error:   "Missing required fields",
		})

	case errors.Is(err, orchestrators.ErrNotConfigured):
		writeJSON(w, http.StatusInternalServerError, contactResponse{
			Success: false,
			Error:   "Server configuration error",
			Details: detailUnlessProduction(err),
		})

	default:
		writeJSON(w, http.StatusInternalServerError, contactResponse{
			Success: false,
			Error:   "Failed to send message. Please try again later.",
			Details: detailUnlessProduction(err),
		})
	}
}

// detailUnlessProduction exposes the underlying error only outside
// production; production responses carry the generic message alone.
func detailUnlessProduction(err error) string {
	if isProduction() {
		return ""
	}
	return err.Error()
}
