package mail

import (
	"context"
	"errors"
	"net/smtp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vietanh2810/occurrence-registration-api/internal/config"
	"github.com/vietanh2810/occurrence-registration-api/internal/domain"
)

func TestSMTPMailer_Send(t *testing.T) {
	m := NewSMTPMailer(&config.MailConfig{Host: "smtp.example.com", Port: 2525, From: "noreply@example.com"})
	m.now = func() time.Time { return time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC) }

	var (
		gotAddr string
		gotTo   []string
		gotMsg  string
	)
	m.send = func(addr string, _ smtp.Auth, _ string, to []string, msg []byte) error {
		gotAddr, gotTo, gotMsg = addr, to, string(msg)
		return nil
	}

	err := m.Send(context.Background(),
		domain.Recipient{Name: "Alice", Email: "alice@example.com"},
		domain.Message{Subject: "Payment for Weekly yoga", Body: "line one\nline two"},
	)
	require.NoError(t, err)

	assert.Equal(t, "smtp.example.com:2525", gotAddr)
	assert.Equal(t, []string{"alice@example.com"}, gotTo)
	assert.Contains(t, gotMsg, "To: Alice <alice@example.com>\r\n")
	assert.Contains(t, gotMsg, "Subject: Payment for Weekly yoga\r\n")
	assert.Contains(t, gotMsg, "Date: Tue, 10 Mar 2026 12:00:00 +0000\r\n")
	assert.True(t, strings.HasSuffix(gotMsg, "\r\n\r\nline one\r\nline two"))
}

func TestSMTPMailer_Send_Errors(t *testing.T) {
	m := NewSMTPMailer(&config.MailConfig{Host: "smtp.example.com", Port: 25})
	m.send = func(string, smtp.Auth, string, []string, []byte) error {
		return errors.New("connection refused")
	}

	err := m.Send(context.Background(), domain.Recipient{Email: "bob@example.com"}, domain.Message{})
	require.ErrorContains(t, err, "connection refused")

	err = m.Send(context.Background(), domain.Recipient{Name: "Bob"}, domain.Message{})
	require.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = m.Send(ctx, domain.Recipient{Email: "bob@example.com"}, domain.Message{})
	require.ErrorIs(t, err, context.Canceled)
}
