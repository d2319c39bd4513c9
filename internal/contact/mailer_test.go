package contact

import (
	"errors"
	"net/smtp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Zachkp/folio/internal/config"
)

var smtpCfg = config.SMTP{Host: "smtp.example.com", Port: "587", User: "bot@example.com", Pass: "secret", To: "me@example.com"}

var validMsg = Message{Name: "Ada", Email: "ada@example.com", Message: "Hello there"}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		msg  Message
		ok   bool
	}{
		{"valid", validMsg, true},
		{"missing name", Message{Email: "a@b.c", Message: "x"}, false},
		{"bad email", Message{Name: "a", Email: "nope", Message: "x"}, false},
		{"empty message", Message{Name: "a", Email: "a@b.c", Message: "  "}, false},
		{"too long", Message{Name: "a", Email: "a@b.c", Message: strings.Repeat("x", maxMessageLen+1)}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.msg.Validate()
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestSend(t *testing.T) {
	var gotAddr, gotFrom string
	var gotTo []string
	var gotMsg []byte
	send := func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotFrom, gotTo, gotMsg = addr, from, to, msg
		return nil
	}

	m := NewMailer(smtpCfg, send, zap.NewNop())
	require.NoError(t, m.Send(validMsg))

	assert.Equal(t, "smtp.example.com:587", gotAddr)
	assert.Equal(t, "bot@example.com", gotFrom)
	assert.Equal(t, []string{"me@example.com"}, gotTo)
	body := string(gotMsg)
	assert.Contains(t, body, "Subject: Portfolio Contact: Ada\r\n")
	assert.Contains(t, body, "Reply-To: ada@example.com\r\n")
	assert.Contains(t, body, "Hello there")
}

func TestSendStripsHeaderInjection(t *testing.T) {
	var gotMsg []byte
	send := func(_ string, _ smtp.Auth, _ string, _ []string, msg []byte) error {
		gotMsg = msg
		return nil
	}
	m := NewMailer(smtpCfg, send, zap.NewNop())
	msg := validMsg
	msg.Name = "Ada\r\nBcc: victim@example.com"
	require.NoError(t, m.Send(msg))

	headers, _, _ := strings.Cut(string(gotMsg), "\r\n\r\n")
	assert.NotContains(t, headers, "\r\nBcc:")
}

func TestSendNotConfigured(t *testing.T) {
	m := NewMailer(config.SMTP{Host: "smtp.example.com", Port: "587"}, nil, zap.NewNop())
	assert.False(t, m.Configured())
	assert.ErrorIs(t, m.Send(validMsg), ErrNotConfigured)
}

func TestSendFailure(t *testing.T) {
	boom := errors.New("connection refused")
	m := NewMailer(smtpCfg, func(string, smtp.Auth, string, []string, []byte) error { return boom }, zap.NewNop())
	assert.ErrorIs(t, m.Send(validMsg), boom)
}

func TestToDefaultsToUser(t *testing.T) {
	cfg := smtpCfg
	cfg.To = ""
	var gotTo []string
	m := NewMailer(cfg, func(_ string, _ smtp.Auth, _ string, to []string, _ []byte) error {
		gotTo = to
		return nil
	}, zap.NewNop())
	require.NoError(t, m.Send(validMsg))
	assert.Equal(t, []string{"bot@example.com"}, gotTo)
}
