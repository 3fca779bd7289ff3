package orchestrators

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"hremodeling/internal/adapters/email"
	outboxStore "hremodeling/internal/adapters/storage/outbox"
	outboxDomain "hremodeling/internal/domain/outbox"
)

// RetryOutboxDeps are the dependencies for operator-triggered redelivery.
type RetryOutboxDeps struct {
	OutboxStore outboxStore.Store
	Sender      email.Sender
	Now         func() time.Time
}

// ExecuteRetryOutbox redelivers one recorded unsent email. This runs only
// when an operator asks for it; the submission pipeline itself never
// retries. Redelivery can duplicate mail if the original failure was
// reported after the server had in fact accepted the message.
// PRE: entryID names an existing, retryable entry
// POST: Entry is updated with the attempt outcome and persisted
func ExecuteRetryOutbox(ctx context.Context, entryID string, deps RetryOutboxDeps) (outboxDomain.Entry, error) {
	entry, err := deps.OutboxStore.GetByID(ctx, entryID)
	if err != nil {
		return outboxDomain.Entry{}, fmt.Errorf("load outbox entry: %w", err)
	}
	if !entry.CanRetry() {
		return entry, outboxDomain.ErrNotRetryable
	}
	if deps.Sender == nil {
		return entry, ErrNotConfigured
	}

	var req email.SendRequest
	if err := json.Unmarshal([]byte(entry.Payload), &req); err != nil {
		return entry, fmt.Errorf("decode outbox payload: %w", err)
	}

	entry.MarkAttempt(deps.Now())
	res, sendErr := deps.Sender.Send(ctx, req)
	if sendErr != nil {
		entry.MarkFailed(sendErr)
		slog.Error("outbox_retry_failed", "entry_id", entry.ID, "attempt", entry.Attempts, "error", sendErr.Error())
	} else {
		entry.MarkDelivered(res.MessageID)
		slog.Info("outbox_retry_delivered", "entry_id", entry.ID, "message_id", res.MessageID)
	}

	if err := deps.OutboxStore.Save(ctx, entry); err != nil {
		return entry, fmt.Errorf("save outbox entry: %w", err)
	}
	if sendErr != nil {
		return entry, fmt.Errorf("redeliver: %w", sendErr)
	}
	return entry, nil
}

// ExecuteAbandonOutbox marks a recorded unsent email as given up.
// PRE: entryID names an existing entry
// POST: Entry is abandoned and persisted
func ExecuteAbandonOutbox(ctx context.Context, entryID string, deps RetryOutboxDeps) (outboxDomain.Entry, error) {
	entry, err := deps.OutboxStore.GetByID(ctx, entryID)
	if err != nil {
		return outboxDomain.Entry{}, fmt.Errorf("load outbox entry: %w", err)
	}
	entry.MarkAbandoned()
	if err := deps.OutboxStore.Save(ctx, entry); err != nil {
		return entry, fmt.Errorf("save outbox entry: %w", err)
	}
	slog.Info("outbox_abandoned", "entry_id", entry.ID)
	return entry, nil
}
