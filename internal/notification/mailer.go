package notification

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/zakariamagdyz/memorize-api/internal/domain"

	"github.com/google/uuid"
	"gopkg.in/gomail.v2"
)

// Mailer is what the auth flows need: both sends may fail, and signup
// compensates by deleting the just-created user when the activation mail
// cannot be delivered.
type Mailer interface {
	SendActivationMail(ctx context.Context, to domain.PublicUser, activationURL string) error
	SendResetMail(ctx context.Context, to domain.PublicUser, resetURL string) error
}

type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPMailer(host string, port int, user, pass, from string) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(host, port, user, pass),
		from:   from,
	}
}

func (m *SMTPMailer) SendActivationMail(_ context.Context, to domain.PublicUser, activationURL string) error {
	subject := "Welcome to Memorize! Confirm your email"
	body := fmt.Sprintf(
		"Hi %s,\n\nWelcome to Memorize. Please confirm your email address within the next 30 minutes:\n\n%s\n\nIf you didn't sign up, you can safely ignore this email.\n",
		firstName(to.Name), activationURL,
	)
	return m.send(to.Email, subject, body)
}

func (m *SMTPMailer) SendResetMail(_ context.Context, to domain.PublicUser, resetURL string) error {
	subject := "Your password reset link (valid for 10 minutes)"
	body := fmt.Sprintf(
		"Hi %s,\n\nForgot your password? Submit a new one here:\n\n%s\n\nIf you didn't request a reset, ignore this email and your password stays unchanged.\n",
		firstName(to.Name), resetURL,
	)
	return m.send(to.Email, subject, body)
}

func (m *SMTPMailer) send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetHeader("Message-ID", fmt.Sprintf("<%s@memorize-api>", uuid.NewString()))
	msg.SetBody("text/plain", body)
	return m.dialer.DialAndSend(msg)
}

func firstName(name string) string {
	if i := strings.IndexByte(name, ' '); i > 0 {
		return name[:i]
	}
	return name
}

// DevConsoleMailer logs mail instead of sending it; used whenever SMTP is
// not configured.
type DevConsoleMailer struct{}

func NewDevConsoleMailer() *DevConsoleMailer { return &DevConsoleMailer{} }

func (m *DevConsoleMailer) SendActivationMail(_ context.Context, to domain.PublicUser, activationURL string) error {
	log.Printf("[DEV-EMAIL] activation email=%s url=%s", to.Email, activationURL)
	return nil
}

func (m *DevConsoleMailer) SendResetMail(_ context.Context, to domain.PublicUser, resetURL string) error {
	log.Printf("[DEV-EMAIL] password-reset email=%s url=%s", to.Email, resetURL)
	return nil
}
