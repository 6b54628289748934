// Package notify delivers digest and operator mails over SMTP.
package notify

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

// Sender delivers one mail. The diff job depends on this interface so tests
// can capture what would have been sent.
type Sender interface {
	Send(to, subject, body string) error
}

// SMTPSender is the production Sender.
type SMTPSender struct {
	dialer   *gomail.Dialer
	from     string
	fromName string
}

// NewSMTPSender builds a sender with a fixed from-address and display name.
func NewSMTPSender(host string, port int, username, password, from, fromName string) *SMTPSender {
	return &SMTPSender{
		dialer:   gomail.NewDialer(host, port, username, password),
		from:     from,
		fromName: fromName,
	}
}

// Send delivers one plain-text mail.
func (s *SMTPSender) Send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.from, s.fromName)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send mail to %s: %w", to, err)
	}
	return nil
}
