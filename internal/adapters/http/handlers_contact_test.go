package web

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"hremodeling/internal/adapters/email"
	outboxDomain "hremodeling/internal/domain/outbox"
)

// mockSender records every send and returns a scripted outcome.
type mockSender struct {
	mu   sync.Mutex
	sent []email.SendRequest
	err  error
}

func (m *mockSender) Send(ctx context.Context, req email.SendRequest) (email.SendResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, req)
	if m.err != nil {
		return email.SendResult{}, m.err
	}
	return email.SendResult{MessageID: "mock-message-id", SentAt: time.Now()}, nil
}

func (m *mockSender) sentCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

// mockOutboxStore is a map-backed in-memory store.
type mockOutboxStore struct {
	mu      sync.Mutex
	entries map[string]outboxDomain.Entry
}

func newMockOutboxStore() *mockOutboxStore {
	return &mockOutboxStore{entries: make(map[string]outboxDomain.Entry)}
}

func (m *mockOutboxStore) GetByID(ctx context.Context, id string) (outboxDomain.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[id]
	if !ok {
		return outboxDomain.Entry{}, errors.New("entry not found: " + id)
	}
	return e, nil
}

func (m *mockOutboxStore) Save(ctx context.Context, e outboxDomain.Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[e.ID] = e
	return nil
}

func (m *mockOutboxStore) ListPending(ctx context.Context, limit int) ([]outboxDomain.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []outboxDomain.Entry
	for _, e := range m.entries {
		if e.Status == outboxDomain.StatusPending || e.Status == outboxDomain.StatusRetrying {
			out = append(out, e)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (m *mockOutboxStore) List(ctx context.Context, status string, limit int) ([]outboxDomain.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []outboxDomain.Entry
	for _, e := range m.entries {
		if status != "" && e.Status != status {
			continue
		}
		out = append(out, e)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (m *mockOutboxStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, id)
	return nil
}

func (m *mockOutboxStore) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// newTestMux wires a full handler stack against in-memory dependencies.
func newTestMux(t *testing.T, sender email.Sender) (http.Handler, *mockOutboxStore) {
	t.Helper()
	RateLimitPerSecond = 1000
	store := newMockOutboxStore()
	mux := NewMux(Config{
		BaseURL:      "https://h-remodeling.com",
		Env:          "test",
		ContactInbox: "info@h-remodeling.com",
		FromAddress:  "H Remodeling <noreply@h-remodeling.com>",
	}, &Stores{OutboxStore: store})
	SetEmailSender(sender)
	return mux, store
}

func postContact(t *testing.T, mux http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/contact", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func decodeContactResponse(t *testing.T, rec *httptest.ResponseRecorder) contactResponse {
	t.Helper()
	var resp contactResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("response is not valid JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return resp
}

func TestContactSubmissionSucceeds(t *testing.T) {
	sender := &mockSender{}
	mux, store := newTestMux(t, sender)

	rec := postContact(t, mux, `{"name":"Jane Doe","phone":"7035551234","service":"kitchen","message":"Need a quote"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200\nbody: %s", rec.Code, rec.Body.String())
	}
	resp := decodeContactResponse(t, rec)
	if !resp.Success || resp.MessageID == "" {
		t.Fatalf("unexpected response: %+v", resp)
	}

	if sender.sentCount() != 1 {
		t.Fatalf("expected exactly 1 send, got %d", sender.sentCount())
	}
	sent := sender.sent[0]
	if sent.Subject != "New Contact Form Submission - kitchen" {
		t.Errorf("subject = %q", sent.Subject)
	}
	if len(sent.To) != 1 || sent.To[0] != "info@h-remodeling.com" {
		t.Errorf("to = %v", sent.To)
	}
	if !strings.Contains(sent.Text, "Email: Not provided") {
		t.Error("expected placeholder for the absent email")
	}
	if store.count() != 0 {
		t.Errorf("successful delivery should not be recorded; got %d entries", store.count())
	}
}

func TestContactMissingServiceIs400WithoutTransportCall(t *testing.T) {
	sender := &mockSender{}
	mux, _ := newTestMux(t, sender)

	rec := postContact(t, mux, `{"name":"Jane Doe","phone":"7035551234","message":"Need a quote"}`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	resp := decodeContactResponse(t, rec)
	if resp.Success || resp.Error != "Missing required fields" {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if sender.sentCount() != 0 {
		t.Fatalf("transport must not be invoked on validation failure; got %d sends", sender.sentCount())
	}
}

func TestContactEveryMissingRequiredFieldIs400(t *testing.T) {
	payloads := map[string]string{
		"name":    `{"phone":"7035551234","service":"kitchen","message":"hi"}`,
		"phone":   `{"name":"Jane","service":"kitchen","message":"hi"}`,
		"service": `{"name":"Jane","phone":"7035551234","message":"hi"}`,
		"message": `{"name":"Jane","phone":"7035551234","service":"kitchen"}`,
		"blank":   `{"name":"  ","phone":"7035551234","service":"kitchen","message":"hi"}`,
	}
	sender := &mockSender{}
	mux, _ := newTestMux(t, sender)

	for field, body := range payloads {
		rec := postContact(t, mux, body)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", field, rec.Code)
		}
	}
	if sender.sentCount() != 0 {
		t.Errorf("transport invoked %d times for invalid payloads", sender.sentCount())
	}
}

func TestContactNotConfiguredIs500WithoutNetworkCall(t *testing.T) {
	mux, store := newTestMux(t, nil) // nil sender: credential absent

	rec := postContact(t, mux, `{"name":"Jane Doe","phone":"7035551234","service":"kitchen","message":"Need a quote"}`)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	resp := decodeContactResponse(t, rec)
	if resp.Success {
		t.Fatal("expected a failure response")
	}
	if resp.Error != "Server configuration error" {
		t.Errorf("error = %q", resp.Error)
	}
	// Outside production the diagnostic detail is included.
	if resp.Details == "" {
		t.Error("expected diagnostic details in non-production mode")
	}
	// The submission is recorded for manual recovery.
	if store.count() != 1 {
		t.Errorf("expected 1 outbox entry, got %d", store.count())
	}
}

func TestContactDeliveryFailureIs500AndRecorded(t *testing.T) {
	sender := &mockSender{err: errors.New("smtp handshake timeout")}
	mux, store := newTestMux(t, sender)

	rec := postContact(t, mux, `{"name":"Jane Doe","phone":"7035551234","service":"kitchen","message":"Need a quote"}`)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	resp := decodeContactResponse(t, rec)
	if resp.Success {
		t.Fatal("expected a failure response")
	}
	if !strings.Contains(resp.Details, "smtp handshake timeout") {
		t.Errorf("expected diagnostic details, got %q", resp.Details)
	}
	if sender.sentCount() != 1 {
		t.Fatalf("expected exactly one attempt, got %d", sender.sentCount())
	}
	if store.count() != 1 {
		t.Errorf("expected 1 outbox entry, got %d", store.count())
	}
}

func TestContactProductionRedactsDetails(t *testing.T) {
	RateLimitPerSecond = 1000
	store := newMockOutboxStore()
	t.Setenv("APP_CSRF_KEY", strings.Repeat("ab", 32))
	mux := NewMux(Config{
		BaseURL:      "https://h-remodeling.com",
		Env:          "production",
		ContactInbox: "info@h-remodeling.com",
		FromAddress:  "H Remodeling <noreply@h-remodeling.com>",
	}, &Stores{OutboxStore: store})
	SetEmailSender(&mockSender{err: errors.New("dial tcp: i/o timeout")})

	rec := postContact(t, mux, `{"name":"Jane Doe","phone":"7035551234","service":"kitchen","message":"Need a quote"}`)

	resp := decodeContactResponse(t, rec)
	if resp.Details != "" {
		t.Errorf("production response leaked details: %q", resp.Details)
	}
	if strings.Contains(rec.Body.String(), "i/o timeout") {
		t.Error("underlying error text must not reach production clients")
	}
}

func TestContactMalformedEmailIsAcceptedAnyway(t *testing.T) {
	sender := &mockSender{}
	mux, _ := newTestMux(t, sender)

	rec := postContact(t, mux, `{"name":"Jane Doe","email":"not-an-email","phone":"7035551234","service":"kitchen","message":"hi"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 for malformed optional email", rec.Code)
	}
	// The invalid address must not become the reply target.
	if sender.sent[0].ReplyTo != "info@h-remodeling.com" {
		t.Errorf("reply-to = %q, want the operator inbox fallback", sender.sent[0].ReplyTo)
	}
}

// ctxCheckSender records whether the delivery context was already canceled.
type ctxCheckSender struct {
	canceled bool
}

func (c *ctxCheckSender) Send(ctx context.Context, req email.SendRequest) (email.SendResult, error) {
	c.canceled = ctx.Err() != nil
	return email.SendResult{MessageID: "id"}, nil
}

func TestContactClientDisconnectDoesNotCancelDelivery(t *testing.T) {
	sender := &ctxCheckSender{}
	mux, _ := newTestMux(t, sender)

	ctx, cancel := context.WithCancel(context.Background())
	cancel() // client gone before the handler runs

	body := `{"name":"Jane Doe","phone":"7035551234","service":"kitchen","message":"Need a quote"}`
	req := httptest.NewRequest(http.MethodPost, "/api/contact", bytes.NewBufferString(body)).WithContext(ctx)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if sender.canceled {
		t.Error("delivery context must not inherit the request cancellation")
	}
}

func TestContactInvalidJSONIs400(t *testing.T) {
	mux, _ := newTestMux(t, &mockSender{})
	rec := postContact(t, mux, `{"name": `)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}
