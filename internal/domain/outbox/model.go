package outbox

import (
	"errors"
	"time"
)

// Status constants for the unsent-mail record lifecycle.
const (
	StatusPending   = "pending"
	StatusRetrying  = "retrying"
	StatusDone      = "done"
	StatusFailed    = "failed"
	StatusAbandoned = "abandoned"
)

// ActionTypeContactEmail marks entries holding an undelivered contact-form
// email. It is the only action type today; the column exists so other
// external integrations can share the table later.
const ActionTypeContactEmail = "contact_email"

// Domain errors.
var (
	ErrEmptyActionType = errors.New("action type is required")
	ErrEmptyPayload    = errors.New("payload is required")
	ErrNotRetryable    = errors.New("entry cannot be retried")
)

// Entry is one recorded undeliverable email, kept for manual recovery.
// The pipeline writes an entry whenever a composed message could not be
// handed to the transport (missing credentials or a transport failure);
// an operator redelivers or abandons it from the admin dashboard.
type Entry struct {
	ID              string
	ActionType      string
	Payload         string // composed message as JSON, for replay
	Status          string
	Attempts        int
	MaxAttempts     int
	LastAttemptedAt time.Time
	CreatedAt       time.Time
	ExternalID      string // transport message ID once delivered
	ErrorMessage    string // last delivery error
}

// Validate checks that the Entry has valid data.
// PRE: Entry struct is populated
// POST: Returns nil if valid, error otherwise; defaults MaxAttempts
func (e *Entry) Validate() error {
	if e.ActionType == "" {
		return ErrEmptyActionType
	}
	if e.Payload == "" {
		return ErrEmptyPayload
	}
	if e.CreatedAt.IsZero() {
		return errors.New("created_at must be set")
	}
	if e.MaxAttempts <= 0 {
		e.MaxAttempts = 5
	}
	return nil
}

// CanRetry returns true if an operator may trigger redelivery.
// INVARIANT: Entry fields are not mutated
func (e *Entry) CanRetry() bool {
	return (e.Status == StatusPending || e.Status == StatusRetrying || e.Status == StatusFailed) &&
		e.Attempts < e.MaxAttempts
}

// IsTerminal returns true if the entry has reached a terminal state.
// INVARIANT: Entry fields are not mutated
func (e *Entry) IsTerminal() bool {
	if e.Status == StatusDone || e.Status == StatusAbandoned {
		return true
	}
	return e.Status == StatusFailed && e.Attempts >= e.MaxAttempts
}

// MarkAttempt records a redelivery attempt.
// PRE: CanRetry() is true
// POST: Attempts incremented, LastAttemptedAt updated, status retrying
func (e *Entry) MarkAttempt(now time.Time) {
	e.Attempts++
	e.LastAttemptedAt = now
	e.Status = StatusRetrying
}

// MarkDelivered marks the entry as successfully redelivered.
// POST: Status done, ExternalID set, error cleared
func (e *Entry) MarkDelivered(messageID string) {
	e.Status = StatusDone
	e.ExternalID = messageID
	e.ErrorMessage = ""
}

// MarkFailed records a failed redelivery attempt.
// POST: ErrorMessage set; status failed once attempts are exhausted
func (e *Entry) MarkFailed(err error) {
	e.ErrorMessage = err.Error()
	if e.Attempts >= e.MaxAttempts {
		e.Status = StatusFailed
	}
}

// MarkAbandoned marks the entry as explicitly given up by an operator.
// POST: Status abandoned
func (e *Entry) MarkAbandoned() {
	e.Status = StatusAbandoned
}
