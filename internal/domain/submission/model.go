package submission

import (
	"errors"
	"regexp"
	"strings"
)

// Domain errors
var (
	// ErrMissingFields is the aggregate validation failure. Which field was
	// missing is deliberately not reported; the form highlights required
	// fields client-side and the API contract only promises the aggregate.
	ErrMissingFields = errors.New("missing required fields")
)

// emailPattern accepts local@domain.tld with at least one dot in the domain
// and no whitespace. It is a plausibility check, not full RFC 5322 parsing.
var emailPattern = regexp.MustCompile(`(?i)^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Submission is one contact-form payload from a website visitor.
// It is created at request arrival, validated once, and discarded after the
// pipeline completes. Nothing persists it.
type Submission struct {
	Name    string
	Email   string // optional
	Phone   string
	Service string
	Message string
}

// Validate checks that all required fields are present and non-empty.
// PRE: Submission fields are populated from the raw payload
// POST: Returns nil if valid, ErrMissingFields otherwise; no side effects
func (s *Submission) Validate() error {
	if strings.TrimSpace(s.Name) == "" ||
		strings.TrimSpace(s.Phone) == "" ||
		strings.TrimSpace(s.Service) == "" ||
		strings.TrimSpace(s.Message) == "" {
		return ErrMissingFields
	}
	return nil
}

// HasEmail returns true if the visitor supplied an email address.
// INVARIANT: Submission fields are not mutated
func (s *Submission) HasEmail() bool {
	return strings.TrimSpace(s.Email) != ""
}

// ValidEmail reports whether addr looks like a deliverable address.
// A malformed optional email does not reject the submission (the form layer
// already validates it); callers use this to decide whether the address is
// safe to place in a Reply-To header.
func ValidEmail(addr string) bool {
	return emailPattern.MatchString(strings.TrimSpace(addr))
}

// ReplyTo returns the address a reply to this submission should go to.
// PRE: fallback is a valid sender identity
// POST: Returns the visitor's email if present and plausible, else fallback
func (s *Submission) ReplyTo(fallback string) string {
	if s.HasEmail() && ValidEmail(s.Email) {
		return strings.TrimSpace(s.Email)
	}
	return fallback
}
