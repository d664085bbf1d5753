package messaging

import (
	"fmt"
	"net/smtp"

	"go-casework/internal/config"
)

type SMTPGateway struct {
	host string
	port int
	user string
	pass string
	from string
}

func NewSMTPGateway(cfg *config.Config) *SMTPGateway {
	return &SMTPGateway{
		host: cfg.SMTPHost,
		port: cfg.SMTPPort,
		user: cfg.SMTPUser,
		pass: cfg.SMTPPass,
		from: cfg.SMTPFrom,
	}
}

func (g *SMTPGateway) Send(to, subject, body string) error {
	if g.host == "" {
		return fmt.Errorf("smtp not configured")
	}

	auth := smtp.PlainAuth("", g.user, g.pass, g.host)

	msg := fmt.Sprintf("From: %s\r\n", g.from)
	msg += fmt.Sprintf("To: %s\r\n", to)
	msg += fmt.Sprintf("Subject: %s\r\n", subject)
	msg += "MIME-Version: 1.0\r\n"
	msg += "Content-Type: text/plain; charset=\"UTF-8\"\r\n"
	msg += "\r\n" + body

	addr := fmt.Sprintf("%s:%d", g.host, g.port)
	return smtp.SendMail(addr, auth, g.from, []string{to}, []byte(msg))
}
