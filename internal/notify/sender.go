package notify

import (
	"gopkg.in/gomail.v2"
)

// Sender abstrae la entrega por mail. La entrega real es un
// colaborador externo: acá solo el adaptador SMTP y un no-op para
// entornos sin salida de correo.
type Sender interface {
	Send(to, subject, body string) error
}

type SMTPSender struct {
	host string
	port int
	user string
	pass string
	from string
}

func NewSMTPSender(host string, port int, user, pass, from string) *SMTPSender {
	return &SMTPSender{host: host, port: port, user: user, pass: pass, from: from}
}

func (s *SMTPSender) Send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(s.host, s.port, s.user, s.pass)
	return d.DialAndSend(m)
}

type NoopSender struct{}

func (NoopSender) Send(to, subject, body string) error { return nil }
