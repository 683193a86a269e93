package services

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/mail"
	"strings"

	"github.com/justsurfingit/hirely/internal/dtos"
	"github.com/justsurfingit/hirely/internal/logging"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/googleapi"
)

// EmailService delivers contact-form messages to the team inbox via Gmail.
type EmailService struct {
	GmailClient *gmail.Service
	Inbox       string
	Log         *logging.Logger
}

func NewEmailService(gmailClient *gmail.Service, inbox string, log *logging.Logger) *EmailService {
	return &EmailService{
		GmailClient: gmailClient,
		Inbox:       inbox,
		Log:         log,
	}
}

// Configured reports whether messages are actually sent.
func (s *EmailService) Configured() bool {
	return s.GmailClient != nil && s.Inbox != ""
}

// SendContact forwards a contact message. Without a mail setup the message is
// only logged; delivered tells the caller which happened.
func (s *EmailService) SendContact(ctx context.Context, req dtos.ContactRequest) (delivered bool, err error) {
	from, err := mail.ParseAddress(req.Email)
	if err != nil {
		return false, fmt.Errorf("services: invalid sender address: %w", err)
	}
	if from.Name == "" {
		from.Name = req.Name
	}

	if !s.Configured() {
		s.Log.Info("contact message received (mail delivery not configured)",
			"from", from.Address, "name", req.Name, "subject", req.Subject, "message", req.Message)
		return false, nil
	}

	raw := buildContactMessage(s.Inbox, from, req.Subject, req.Message)
	_, err = s.GmailClient.Users.Messages.Send("me", &gmail.Message{
		Raw: base64.URLEncoding.EncodeToString(raw),
	}).Context(ctx).Do()
	if err != nil {
		if gErr, ok := err.(*googleapi.Error); ok {
			s.Log.Error("gmail rejected contact message", "code", gErr.Code, "err", gErr.Message)
		}
		return false, fmt.Errorf("services: send contact message: %w", err)
	}

	s.Log.Info("contact message delivered", "from", from.Address, "subject", req.Subject)
	return true, nil
}

func buildContactMessage(to string, from *mail.Address, subject, body string) []byte {
	subject = headerSafe(subject)
	if subject == "" {
		subject = "New message"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "To: %s\r\n", headerSafe(to))
	fmt.Fprintf(&b, "Reply-To: %s\r\n", from.String())
	fmt.Fprintf(&b, "Subject: [Hirely contact] %s\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	// Gmail sends as the authorized account, so the visitor is named in the body.
	fmt.Fprintf(&b, "From: %s\r\n\r\n", from.String())
	b.WriteString(body)
	return []byte(b.String())
}

// headerSafe stops a user-supplied value from starting a new header line.
func headerSafe(v string) string {
	return strings.TrimSpace(strings.NewReplacer("\r", " ", "\n", " ").Replace(v))
}
