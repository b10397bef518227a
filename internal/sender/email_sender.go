package sender

import (
	"context"
	"fmt"
	"net/smtp"

	"github.com/jordan-wright/email"
)

type EmailSender interface {
	SendEmail(ctx context.Context, to, subject, body string) error
}

type SMTPEmailSender struct {
	host string
	port string
	user string
	pass string
	from string
	bcc  string
}

// NewSMTPEmailSender builds a sender that copies every message to bcc when it
// is non-empty.
func NewSMTPEmailSender(host, port, user, pass, from, bcc string) *SMTPEmailSender {
	return &SMTPEmailSender{host: host, port: port, user: user, pass: pass, from: from, bcc: bcc}
}

func (s *SMTPEmailSender) SendEmail(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	addr := fmt.Sprintf("%s:%s", s.host, s.port)
	auth := smtp.PlainAuth("", s.user, s.pass, s.host)

	e := s.compose(to, subject, body)
	return e.Send(addr, auth)
}

func (s *SMTPEmailSender) compose(to, subject, body string) *email.Email {
	e := email.NewEmail()
	e.From = s.from
	e.To = []string{to}
	if s.bcc != "" {
		e.Bcc = []string{s.bcc}
	}
	e.Subject = subject
	e.Text = []byte(body)
	return e
}
