// Package mail delivers payment links by email.
package mail

import (
	"context"
	"fmt"
	"mime"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/vietanh2810/occurrence-registration-api/internal/config"
	"github.com/vietanh2810/occurrence-registration-api/internal/domain"
)

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

type SMTPMailer struct {
	addr string
	auth smtp.Auth
	from string
	send sendFunc
	now  func() time.Time
}

func NewSMTPMailer(conf *config.MailConfig) *SMTPMailer {
	m := &SMTPMailer{
		addr: net.JoinHostPort(conf.Host, strconv.Itoa(conf.Port)),
		from: conf.From,
		send: smtp.SendMail,
		now:  time.Now,
	}
	if conf.Username != "" {
		m.auth = smtp.PlainAuth("", conf.Username, conf.Password, conf.Host)
	}

	return m
}

// Send blocks until the server accepted the message. net/smtp has no context
// support, so ctx is only checked before dialing.
func (m *SMTPMailer) Send(ctx context.Context, to domain.Recipient, msg domain.Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if to.Email == "" {
		return fmt.Errorf("recipient %q has no email address", to.Name)
	}

	body := buildMessage(m.from, to, msg, m.now())
	if err := m.send(m.addr, m.auth, m.from, []string{to.Email}, body); err != nil {
		return fmt.Errorf("smtp.SendMail -> %w", err)
	}

	zap.L().Debug("mail sent", zap.String("to", to.Email), zap.String("subject", msg.Subject))

	return nil
}

func buildMessage(from string, to domain.Recipient, msg domain.Message, at time.Time) []byte {
	recipient := to.Email
	if to.Name != "" {
		recipient = fmt.Sprintf("%s <%s>", mime.QEncoding.Encode("utf-8", to.Name), to.Email)
	}

	var b strings.Builder
	b.WriteString("From: " + from + "\r\n")
	b.WriteString("To: " + recipient + "\r\n")
	b.WriteString("Subject: " + mime.QEncoding.Encode("utf-8", msg.Subject) + "\r\n")
	b.WriteString("Date: " + at.Format(time.RFC1123Z) + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(strings.ReplaceAll(msg.Body, "\n", "\r\n"))

	return []byte(b.String())
}
