package outbox

import (
	"errors"
	"testing"
	"time"
)

func validEntry() Entry {
	return Entry{
		ID:          "entry-1",
		ActionType:  ActionTypeContactEmail,
		Payload:     `{"subject":"New Contact Form Submission - kitchen"}`,
		Status:      StatusPending,
		MaxAttempts: 3,
		CreatedAt:   time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

// TestValidate verifies required fields and the MaxAttempts default.
func TestValidate(t *testing.T) {
	e := validEntry()
	if err := e.Validate(); err != nil {
		t.Fatalf("valid entry failed validation: %v", err)
	}

	e = validEntry()
	e.ActionType = ""
	if err := e.Validate(); err != ErrEmptyActionType {
		t.Errorf("missing action type: got %v, want ErrEmptyActionType", err)
	}

	e = validEntry()
	e.Payload = ""
	if err := e.Validate(); err != ErrEmptyPayload {
		t.Errorf("missing payload: got %v, want ErrEmptyPayload", err)
	}

	e = validEntry()
	e.MaxAttempts = 0
	if err := e.Validate(); err != nil {
		t.Fatalf("validation failed: %v", err)
	}
	if e.MaxAttempts != 5 {
		t.Errorf("MaxAttempts default = %d, want 5", e.MaxAttempts)
	}
}

// TestRetryLifecycle walks an entry through attempt, failure, and delivery.
func TestRetryLifecycle(t *testing.T) {
	e := validEntry()
	if !e.CanRetry() {
		t.Fatal("pending entry should be retryable")
	}

	now := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	e.MarkAttempt(now)
	if e.Attempts != 1 || e.Status != StatusRetrying || !e.LastAttemptedAt.Equal(now) {
		t.Errorf("after MarkAttempt: attempts=%d status=%s", e.Attempts, e.Status)
	}

	e.MarkFailed(errors.New("smtp: timeout"))
	if e.ErrorMessage != "smtp: timeout" {
		t.Errorf("ErrorMessage = %q", e.ErrorMessage)
	}
	if e.Status == StatusFailed {
		t.Error("entry with remaining attempts should not be terminal-failed")
	}
	if !e.CanRetry() {
		t.Error("entry with remaining attempts should still be retryable")
	}

	e.MarkDelivered("msg-abc")
	if e.Status != StatusDone || e.ExternalID != "msg-abc" || e.ErrorMessage != "" {
		t.Errorf("after MarkDelivered: %+v", e)
	}
	if !e.IsTerminal() {
		t.Error("delivered entry must be terminal")
	}
}

// TestExhaustedAttempts verifies that failures at the attempt cap go terminal.
func TestExhaustedAttempts(t *testing.T) {
	e := validEntry()
	e.MaxAttempts = 1
	e.MarkAttempt(time.Now())
	e.MarkFailed(errors.New("boom"))

	if e.Status != StatusFailed {
		t.Errorf("status = %s, want failed", e.Status)
	}
	if e.CanRetry() {
		t.Error("exhausted entry must not be retryable")
	}
	if !e.IsTerminal() {
		t.Error("exhausted entry must be terminal")
	}
}

// TestAbandon verifies operator abandonment.
func TestAbandon(t *testing.T) {
	e := validEntry()
	e.MarkAbandoned()
	if e.Status != StatusAbandoned || !e.IsTerminal() || e.CanRetry() {
		t.Errorf("after MarkAbandoned: %+v", e)
	}
}
