// Package mailer hands outbound mail to a transport. The auth flows treat
// every send as fire-and-forget.
package mailer

import (
	"context"
	"fmt"
	"net/url"

	"github.com/rs/zerolog"
)

// Message is one outbound email.
type Message struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Mailer delivers or enqueues a message.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// LogMailer only logs messages. It is used when no broker is configured.
type LogMailer struct {
	log zerolog.Logger
}

// NewLogMailer creates a mailer that writes messages to log.
func NewLogMailer(log zerolog.Logger) *LogMailer {
	return &LogMailer{log: log}
}

// Send logs the recipient and subject; bodies may carry reset tokens and are
// never logged.
func (m *LogMailer) Send(_ context.Context, msg Message) error {
	m.log.Info().Str("to", msg.To).Str("subject", msg.Subject).Msg("mail not sent: no transport configured")
	return nil
}

// WelcomeMessage builds the mail sent after registration.
func WelcomeMessage(to, firstName string) Message {
	return Message{
		To:      to,
		Subject: "Welcome to the CMS",
		Body: fmt.Sprintf("Hello %s,\n\nyour account has been created. You can now sign in with %s.\n",
			firstName, to),
	}
}

// ResetLink builds the frontend URL a user follows to pick a new password.
func ResetLink(frontendURL string, userID uint, token string) string {
	return fmt.Sprintf("%s/reset-password/%d/%s", frontendURL, userID, url.PathEscape(token))
}

// ResetPasswordMessage builds the mail carrying a reset link.
func ResetPasswordMessage(to, link string, validMinutes int) Message {
	return Message{
		To:      to,
		Subject: "Reset your password",
		Body: fmt.Sprintf("A password reset was requested for your account.\n\n%s\n\nThe link is valid for %d minutes. If you did not ask for it, ignore this mail.\n",
			link, validMinutes),
	}
}
