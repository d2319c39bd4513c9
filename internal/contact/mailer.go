// Package contact delivers contact-form submissions by email.
package contact

import (
	"errors"
	"fmt"
	"net/mail"
	"net/smtp"
	"strings"

	"go.uber.org/zap"

	"github.com/Zachkp/folio/internal/config"
)

var (
	ErrNotConfigured = errors.New("SMTP credentials not configured")
	ErrInvalid       = errors.New("invalid contact message")
)

const maxMessageLen = 5000

type Message struct {
	Name    string `json:"name" form:"fullName"`
	Email   string `json:"email" form:"email"`
	Message string `json:"message" form:"message"`
}

func (m Message) Validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalid)
	}
	if _, err := mail.ParseAddress(m.Email); err != nil {
		return fmt.Errorf("%w: email address is not valid", ErrInvalid)
	}
	if strings.TrimSpace(m.Message) == "" {
		return fmt.Errorf("%w: message is required", ErrInvalid)
	}
	if len(m.Message) > maxMessageLen {
		return fmt.Errorf("%w: message is longer than %d bytes", ErrInvalid, maxMessageLen)
	}
	return nil
}

// SendFunc matches smtp.SendMail.
type SendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

type Mailer struct {
	cfg    config.SMTP
	send   SendFunc
	logger *zap.Logger
}

func NewMailer(cfg config.SMTP, send SendFunc, logger *zap.Logger) *Mailer {
	if send == nil {
		send = smtp.SendMail
	}
	if cfg.To == "" {
		cfg.To = cfg.User
	}
	return &Mailer{cfg: cfg, send: send, logger: logger}
}

func (m *Mailer) Configured() bool {
	return m.cfg.User != "" && m.cfg.Pass != "" && m.cfg.Host != ""
}

func (m *Mailer) Send(msg Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}
	if !m.Configured() {
		return ErrNotConfigured
	}

	auth := smtp.PlainAuth("", m.cfg.User, m.cfg.Pass, m.cfg.Host)
	addr := m.cfg.Host + ":" + m.cfg.Port
	if err := m.send(addr, auth, m.cfg.User, []string{m.cfg.To}, m.compose(msg)); err != nil {
		m.logger.Error("error sending email", zap.Error(err))
		return fmt.Errorf("send contact email: %w", err)
	}

	m.logger.Info("contact email sent", zap.String("from", msg.Email))
	return nil
}

// headerSafe strips CR and LF so user input cannot inject headers.
func headerSafe(s string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(strings.TrimSpace(s))
}

func (m *Mailer) compose(msg Message) []byte {
	subject := fmt.Sprintf("Portfolio Contact: %s", headerSafe(msg.Name))
	body := fmt.Sprintf(`
New contact form submission from your portfolio:

Name: %s
Email: %s
Message:
%s

---
Sent from your portfolio contact form
`, msg.Name, msg.Email, msg.Message)

	return []byte("To: " + m.cfg.To + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"From: " + m.cfg.User + "\r\n" +
		"Reply-To: " + headerSafe(msg.Email) + "\r\n" +
		"\r\n" +
		body + "\r\n")
}
