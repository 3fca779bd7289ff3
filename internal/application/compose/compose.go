// Package compose renders the operator-facing email for one contact-form
// submission. Composition is a pure function of the validated submission and
// the injected clock; the same inputs always yield identical bytes (the
// dated footer uses the clock's year, which is part of the input).
package compose

import (
	"fmt"
	"html/template"
	"strings"
	"time"

	"hremodeling/internal/domain/submission"
)

// SubjectPrefix is the fixed subject prefix; the service category is
// appended verbatim.
const SubjectPrefix = "New Contact Form Submission - "

// NotProvided is the placeholder rendered when the visitor left the
// optional email field empty. The field is never silently omitted.
const NotProvided = "Not provided"

// Message is the composed, read-only rendering of a submission. Created per
// request, never mutated, discarded after the delivery attempt.
type Message struct {
	Subject string
	HTML    string
	Text    string
}

// htmlBody is the branded operator email. Field values pass through
// html/template's contextual escaping, so form input can never inject
// markup into the HTML body.
var htmlBody = template.Must(template.New("contact").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <title>Contact Form Submission</title>
</head>
<body style="margin: 0; padding: 0; font-family: -apple-system, 'Segoe UI', Arial, sans-serif; background-color: #f5f5f5;">
  <table cellpadding="0" cellspacing="0" border="0" width="100%" style="background-color: #f5f5f5; padding: 40px 20px;">
    <tr><td align="center">
      <table cellpadding="0" cellspacing="0" border="0" width="600" style="max-width: 600px; background-color: #ffffff; border-radius: 12px; overflow: hidden;">
        <tr>
          <td style="background: linear-gradient(135deg, #b3936b 0%, #a6825f 100%); padding: 40px 30px; text-align: center;">
            <h1 style="margin: 0; color: #ffffff; font-size: 28px; font-weight: 600;">H Remodeling</h1>
            <p style="margin: 8px 0 0 0; color: #faf8f5; font-size: 14px;">New Contact Form Submission</p>
          </td>
        </tr>
        <tr>
          <td style="padding: 30px 30px 20px 30px;">
            <div style="background-color: #f2ede5; border-left: 4px solid #b3936b; padding: 16px 20px; border-radius: 8px;">
              <p style="margin: 0; color: #715845; font-size: 12px; font-weight: 600; text-transform: uppercase;">Service Requested</p>
              <p style="margin: 6px 0 0 0; color: #31261e; font-size: 18px; font-weight: 600;">{{.Service}}</p>
            </div>
          </td>
        </tr>
        <tr>
          <td style="padding: 0 30px 30px 30px;">
            <table cellpadding="0" cellspacing="0" border="0" width="100%">
              <tr><td style="padding-bottom: 20px;">
                <p style="margin: 0; color: #715845; font-size: 12px; text-transform: uppercase;">Name</p>
                <p style="margin: 4px 0 0 0; color: #31261e; font-size: 16px; font-weight: 600;">{{.Name}}</p>
              </td></tr>
              <tr><td style="padding-bottom: 20px;">
                <p style="margin: 0; color: #715845; font-size: 12px; text-transform: uppercase;">Phone</p>
                <p style="margin: 4px 0 0 0; font-size: 16px; font-weight: 600;"><a href="tel:{{.Phone}}" style="color: #b3936b; text-decoration: none;">{{.Phone}}</a></p>
              </td></tr>
              <tr><td style="padding-bottom: 20px;">
                <p style="margin: 0; color: #715845; font-size: 12px; text-transform: uppercase;">Email</p>
                {{if .Email}}<p style="margin: 4px 0 0 0; font-size: 16px; font-weight: 600;"><a href="mailto:{{.Email}}" style="color: #b3936b; text-decoration: none;">{{.Email}}</a></p>
                {{else}}<p style="margin: 4px 0 0 0; color: #31261e; font-size: 16px;">{{.NotProvided}}</p>{{end}}
              </td></tr>
            </table>
          </td>
        </tr>
        <tr>
          <td style="padding: 0 30px 30px 30px;">
            <div style="background-color: #faf8f5; border-radius: 8px; padding: 20px;">
              <p style="margin: 0 0 10px 0; color: #715845; font-size: 12px; font-weight: 600; text-transform: uppercase;">Message</p>
              <p style="margin: 0; color: #31261e; font-size: 15px; line-height: 1.6; white-space: pre-wrap;">{{.Message}}</p>
            </div>
          </td>
        </tr>
        <tr>
          <td style="background-color: #faf8f5; padding: 25px 30px; border-top: 1px solid #e5dccb; text-align: center;">
            <p style="margin: 0; color: #715845; font-size: 13px;">This email was sent from the contact form on<br>
            <a href="https://h-remodeling.com" style="color: #b3936b; text-decoration: none; font-weight: 600;">h-remodeling.com</a></p>
            <p style="margin: 12px 0 0 0; color: #8a6a50; font-size: 11px;">&copy; {{.Year}} H Remodeling. All rights reserved.</p>
          </td>
        </tr>
      </table>
    </td></tr>
  </table>
</body>
</html>`))

type bodyData struct {
	Name        string
	Email       string
	Phone       string
	Service     string
	Message     string
	NotProvided string
	Year        int
}

// Compose renders the operator email for a validated submission.
// PRE: sub passed Validate(); now is the request clock
// POST: Returns the composed message; never fails for validated input.
// A template execution error is a programming error and panics, to be
// recovered at the pipeline boundary
func Compose(sub submission.Submission, now time.Time) Message {
	data := bodyData{
		Name:        strings.TrimSpace(sub.Name),
		Email:       strings.TrimSpace(sub.Email),
		Phone:       strings.TrimSpace(sub.Phone),
		Service:     strings.TrimSpace(sub.Service),
		Message:     sub.Message,
		NotProvided: NotProvided,
		Year:        now.Year(),
	}

	var html strings.Builder
	if err := htmlBody.Execute(&html, data); err != nil {
		panic(fmt.Sprintf("compose: render html body: %v", err))
	}

	return Message{
		Subject: SubjectPrefix + data.Service,
		HTML:    html.String(),
		Text:    textBody(data),
	}
}

// textBody renders the plain-text fallback, one Label: value pair per line.
func textBody(data bodyData) string {
	var sb strings.Builder
	sb.WriteString("New contact form submission from H Remodeling website:\n\n")
	sb.WriteString("Name: " + data.Name + "\n")
	sb.WriteString("Phone: " + data.Phone + "\n")
	if data.Email != "" {
		sb.WriteString("Email: " + data.Email + "\n")
	} else {
		sb.WriteString("Email: " + NotProvided + "\n")
	}
	sb.WriteString("Service: " + data.Service + "\n\n")
	sb.WriteString("Message:\n")
	sb.WriteString(data.Message)
	sb.WriteString("\n\n---\nThis email was sent from the contact form on h-remodeling.com\n")
	return sb.String()
}
