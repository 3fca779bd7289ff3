package email

import (
	"context"
	"time"
)

// SendRequest contains the data needed to send an email via an external transport.
type SendRequest struct {
	To      []string // Recipient email addresses
	From    string   // Sender address (e.g. "H Remodeling <hremodeling05@gmail.com>")
	Subject string
	HTML    string // HTML body
	Text    string // Plain-text body
	ReplyTo string // Reply-to address
}

// SendResult contains the response from the email transport.
type SendResult struct {
	MessageID string    // Transport's opaque message ID, for diagnostics only
	SentAt    time.Time // When the send was accepted
}

// Sender is the interface for sending emails via an external transport.
// Implementations make exactly one delivery attempt per call; retry policy
// belongs to the caller.
type Sender interface {
	Send(ctx context.Context, req SendRequest) (SendResult, error)
}
