package smtp

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"
)

// Sender delivers HTML mail over plain SMTP. The stdlib client is enough
// here: one message shape, one recipient, no attachments.
type Sender struct {
	log  *slog.Logger
	addr string
	from string
	auth smtp.Auth
}

func NewSender(log *slog.Logger, addr, from, username, password string) *Sender {
	var auth smtp.Auth
	if username != "" {
		host := addr
		if i := strings.Index(addr, ":"); i >= 0 {
			host = addr[:i]
		}
		auth = smtp.PlainAuth("", username, password, host)
	}
	return &Sender{log: log, addr: addr, from: from, auth: auth}
}

func (s *Sender) Send(ctx context.Context, recipient, subject, html string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", s.from)
	fmt.Fprintf(&msg, "To: %s\r\n", recipient)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(html)

	if err := smtp.SendMail(s.addr, s.auth, s.from, []string{recipient}, []byte(msg.String())); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}
