package email

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net"
	"net/mail"
	"net/smtp"
	"net/textproto"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultPhaseTimeout bounds each phase of the SMTP exchange independently:
// connection establishment, server greeting/handshake, and every subsequent
// socket read/write. Matches the transport configuration the operator inbox
// was tuned for.
const DefaultPhaseTimeout = 5 * time.Second

// Dialer abstracts net.Dialer so tests can inject connections.
type Dialer interface {
	DialContext(ctx context.Context, network, address string) (net.Conn, error)
}

// SMTPConfig configures the SMTP transport.
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string // application-level secret; never user input
	HelloName string // EHLO identity, defaults to "localhost"
	Timeout   time.Duration
}

// SMTPSender delivers email over SMTP with STARTTLS and PLAIN auth.
// One delivery attempt per Send call; the caller owns retry policy.
type SMTPSender struct {
	cfg       SMTPConfig
	auth      smtp.Auth
	tlsConfig *tls.Config
	dialer    Dialer
	now       func() time.Time
}

// NewSMTPSender creates a sender for the given transport configuration.
// PRE: cfg.Host is non-empty, cfg.Port is a valid port, credentials are set
// POST: Returns a ready-to-use sender
func NewSMTPSender(cfg SMTPConfig) (*SMTPSender, error) {
	if strings.TrimSpace(cfg.Host) == "" {
		return nil, errors.New("smtp: host is required")
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("smtp: invalid port %d", cfg.Port)
	}
	if cfg.HelloName == "" {
		cfg.HelloName = "localhost"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultPhaseTimeout
	}

	s := &SMTPSender{
		cfg:    cfg,
		dialer: &net.Dialer{Timeout: cfg.Timeout},
		now:    time.Now,
		tlsConfig: &tls.Config{
			ServerName: cfg.Host,
			MinVersion: tls.VersionTLS12,
		},
	}
	if cfg.Username != "" {
		s.auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	}
	return s, nil
}

// SetDialer replaces the network dialer, for tests.
func (s *SMTPSender) SetDialer(d Dialer) {
	if d != nil {
		s.dialer = d
	}
}

// Send delivers one email over SMTP.
// PRE: req has at least one recipient and a From address
// POST: Exactly one delivery attempt was made; returns the generated
// Message-Id on success
func (s *SMTPSender) Send(ctx context.Context, req SendRequest) (SendResult, error) {
	if len(req.To) == 0 {
		return SendResult{}, errors.New("smtp: at least one recipient is required")
	}

	envelopeFrom, err := envelopeAddress(req.From)
	if err != nil {
		return SendResult{}, fmt.Errorf("smtp: invalid from address: %w", err)
	}
	recipients := make([]string, 0, len(req.To))
	for _, to := range req.To {
		addr, err := envelopeAddress(to)
		if err != nil {
			return SendResult{}, fmt.Errorf("smtp: invalid recipient %q: %w", to, err)
		}
		recipients = append(recipients, addr)
	}

	messageID := fmt.Sprintf("<%s@%s>", uuid.New().String(), s.cfg.Host)
	msg := buildMessage(req, messageID, s.now().UTC())

	if err := s.deliver(ctx, envelopeFrom, recipients, msg); err != nil {
		slog.Error("smtp_send_failed", "error", err.Error(), "to", req.To, "subject", req.Subject)
		return SendResult{}, err
	}

	slog.Info("smtp_sent", "message_id", messageID, "to", req.To, "subject", req.Subject)
	return SendResult{MessageID: messageID, SentAt: s.now()}, nil
}

// deliver runs the SMTP conversation. Each phase refreshes the socket
// deadline so connect, greeting, and I/O are bounded independently.
func (s *SMTPSender) deliver(ctx context.Context, from string, recipients []string, msg []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	addr := net.JoinHostPort(s.cfg.Host, strconv.Itoa(s.cfg.Port))
	conn, err := s.dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("smtp: dial: %w", err)
	}
	defer conn.Close()

	// Tear the connection down if the context is cancelled mid-exchange.
	done := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.Close()
		case <-done:
		}
	}()
	defer close(done)

	phase := func() { _ = conn.SetDeadline(s.now().Add(s.cfg.Timeout)) }

	phase() // server greeting
	client, err := smtp.NewClient(conn, s.cfg.Host)
	if err != nil {
		return fmt.Errorf("smtp: greeting: %w", err)
	}
	defer client.Close()

	phase()
	if err := client.Hello(s.cfg.HelloName); err != nil {
		return fmt.Errorf("smtp: hello: %w", err)
	}

	if ok, _ := client.Extension("STARTTLS"); ok {
		phase()
		if err := client.StartTLS(s.tlsConfig.Clone()); err != nil {
			return fmt.Errorf("smtp: starttls: %w", err)
		}
	}

	if s.auth != nil {
		if ok, _ := client.Extension("AUTH"); ok {
			phase()
			if err := client.Auth(s.auth); err != nil {
				return fmt.Errorf("smtp: auth: %w", err)
			}
		}
	}

	phase()
	if err := client.Mail(from); err != nil {
		return fmt.Errorf("smtp: mail from: %w", err)
	}
	for _, rcpt := range recipients {
		phase()
		if err := client.Rcpt(rcpt); err != nil {
			return fmt.Errorf("smtp: rcpt to %s: %w", rcpt, err)
		}
	}

	phase()
	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("smtp: data: %w", err)
	}
	phase()
	if _, err := w.Write(msg); err != nil {
		_ = w.Close()
		return fmt.Errorf("smtp: data write: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("smtp: data close: %w", err)
	}

	phase()
	if err := client.Quit(); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("smtp: quit: %w", err)
	}
	return ctx.Err()
}

// buildMessage renders the RFC 5322 message: headers plus a
// multipart/alternative body carrying the text and HTML renditions.
func buildMessage(req SendRequest, messageID string, date time.Time) []byte {
	var buf bytes.Buffer
	body := &bytes.Buffer{}
	mp := multipart.NewWriter(body)

	header := func(key, value string) {
		if value == "" {
			return
		}
		buf.WriteString(key)
		buf.WriteString(": ")
		buf.WriteString(sanitizeHeaderValue(value))
		buf.WriteString("\r\n")
	}

	header("From", req.From)
	header("To", strings.Join(req.To, ", "))
	header("Reply-To", req.ReplyTo)
	header("Subject", req.Subject)
	header("Date", date.Format(time.RFC1123Z))
	header("Message-Id", messageID)
	header("MIME-Version", "1.0")
	header("Content-Type", `multipart/alternative; boundary="`+mp.Boundary()+`"`)
	buf.WriteString("\r\n")

	// Plain text first so HTML-capable clients prefer the HTML part.
	part, _ := mp.CreatePart(textproto.MIMEHeader{
		"Content-Type": {`text/plain; charset="UTF-8"`},
	})
	_, _ = part.Write([]byte(crlf(req.Text)))
	part, _ = mp.CreatePart(textproto.MIMEHeader{
		"Content-Type": {`text/html; charset="UTF-8"`},
	})
	_, _ = part.Write([]byte(crlf(req.HTML)))
	_ = mp.Close()

	buf.Write(body.Bytes())
	return buf.Bytes()
}

// crlf normalizes line endings to CRLF as SMTP requires.
func crlf(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return strings.ReplaceAll(s, "\n", "\r\n")
}

// sanitizeHeaderValue strips CR/LF so form input can never inject headers.
func sanitizeHeaderValue(v string) string {
	v = strings.ReplaceAll(v, "\r", " ")
	v = strings.ReplaceAll(v, "\n", " ")
	return strings.TrimSpace(v)
}

// envelopeAddress extracts the bare address from a display-name form.
func envelopeAddress(value string) (string, error) {
	addr, err := mail.ParseAddress(value)
	if err != nil {
		return "", err
	}
	return addr.Address, nil
}
