package orchestrators

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"hremodeling/internal/adapters/email"
	outboxStore "hremodeling/internal/adapters/storage/outbox"
	"hremodeling/internal/application/compose"
	outboxDomain "hremodeling/internal/domain/outbox"
	"hremodeling/internal/domain/submission"
)

// ErrNotConfigured is returned when no mail transport credential is present.
// No network call is made in that case; the composed message is logged and
// recorded for manual recovery so the submission is not lost.
var ErrNotConfigured = errors.New("email transport not configured")

// SubmitContactCommand holds one raw contact-form payload.
// PRE: fields come straight from the request body, unvalidated.
// POST: On success exactly one email was handed to the transport.
type SubmitContactCommand struct {
	Name    string
	Email   string // optional
	Phone   string
	Service string
	Message string
}

// SubmitContactResult holds the outcome of a delivered submission.
type SubmitContactResult struct {
	MessageID string
}

// SubmitContactDeps are the external dependencies for this orchestrator.
type SubmitContactDeps struct {
	Sender      email.Sender      // nil when the transport is not configured
	OutboxStore outboxStore.Store // unsent-mail record; may be nil in tests
	Inbox       string            // operator inbox address
	From        string            // sender identity, display-name form
	GenerateID  func() string
	Now         func() time.Time
}

// ExecuteSubmitContact runs the pipeline: validate, compose, deliver.
// One delivery attempt per call; failures are recorded in the outbox and
// surfaced to the caller with a precise reason. A client that retries after
// a transport timeout may cause a duplicate send; there is no idempotency
// key, matching the site's long-standing behavior.
// PRE: deps.Inbox and deps.From are set; GenerateID and Now are non-nil
// POST: Returns the transport message ID, or a typed error
func ExecuteSubmitContact(ctx context.Context, cmd SubmitContactCommand, deps SubmitContactDeps) (SubmitContactResult, error) {
	sub := submission.Submission{
		Name:    cmd.Name,
		Email:   cmd.Email,
		Phone:   cmd.Phone,
		Service: cmd.Service,
		Message: cmd.Message,
	}
	if err := sub.Validate(); err != nil {
		return SubmitContactResult{}, err
	}

	msg := compose.Compose(sub, deps.Now())
	req := email.SendRequest{
		To:      []string{deps.Inbox},
		From:    deps.From,
		ReplyTo: sub.ReplyTo(deps.Inbox),
		Subject: msg.Subject,
		HTML:    msg.HTML,
		Text:    msg.Text,
	}

	if deps.Sender == nil {
		// Log the full text body so the submission can be answered by hand.
		slog.Error("mail_not_configured", "to", deps.Inbox, "subject", msg.Subject, "body", msg.Text)
		recordUnsent(ctx, deps, req, ErrNotConfigured)
		return SubmitContactResult{}, ErrNotConfigured
	}

	res, err := deps.Sender.Send(ctx, req)
	if err != nil {
		slog.Error("contact_delivery_failed", "error", err.Error(), "service", sub.Service)
		recordUnsent(ctx, deps, req, err)
		return SubmitContactResult{}, fmt.Errorf("send contact email: %w", err)
	}

	slog.Info("contact_submitted", "message_id", res.MessageID, "service", sub.Service)
	return SubmitContactResult{MessageID: res.MessageID}, nil
}

// recordUnsent stores the composed message in the outbox for manual
// recovery. Failure to record is logged, never surfaced: the caller already
// has a delivery error to report.
func recordUnsent(ctx context.Context, deps SubmitContactDeps, req email.SendRequest, cause error) {
	if deps.OutboxStore == nil {
		return
	}
	payload, err := json.Marshal(req)
	if err != nil {
		slog.Error("outbox_marshal_failed", "error", err.Error())
		return
	}
	entry := outboxDomain.Entry{
		ID:           deps.GenerateID(),
		ActionType:   outboxDomain.ActionTypeContactEmail,
		Payload:      string(payload),
		Status:       outboxDomain.StatusPending,
		CreatedAt:    deps.Now(),
		ErrorMessage: cause.Error(),
	}
	if err := entry.Validate(); err != nil {
		slog.Error("outbox_entry_invalid", "error", err.Error())
		return
	}
	if err := deps.OutboxStore.Save(ctx, entry); err != nil {
		slog.Error("outbox_save_failed", "error", err.Error(), "entry_id", entry.ID)
		return
	}
	slog.Info("outbox_recorded", "entry_id", entry.ID, "subject", req.Subject)
}
