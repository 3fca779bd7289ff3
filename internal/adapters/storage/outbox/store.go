package outbox

import (
	"context"

	domain "hremodeling/internal/domain/outbox"
)

// Store defines the interface for unsent-mail record persistence.
type Store interface {
	// GetByID retrieves an outbox entry by its ID.
	// PRE: id is non-empty
	// POST: Returns the entry or an error if not found
	GetByID(ctx context.Context, id string) (domain.Entry, error)

	// Save persists an outbox entry (insert or update).
	// PRE: entry has been validated
	// POST: Entry is persisted
	Save(ctx context.Context, e domain.Entry) error

	// ListPending returns entries awaiting operator action.
	// PRE: limit > 0
	// POST: Returns up to limit pending/retrying entries oldest first
	ListPending(ctx context.Context, limit int) ([]domain.Entry, error)

	// List returns entries optionally filtered by status, newest first.
	// PRE: limit > 0
	// POST: Returns up to limit entries
	List(ctx context.Context, status string, limit int) ([]domain.Entry, error)

	// Delete removes an outbox entry.
	// PRE: id is non-empty and the entry is in a terminal state
	// POST: Entry is removed
	Delete(ctx context.Context, id string) error
}
