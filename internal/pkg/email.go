package pkg

import (
	"crypto/tls"
	"fmt"
	"html"

	"gopkg.in/gomail.v2"
)

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

func SendEmail(cfg SMTPConfig, to, subject, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", cfg.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	d.TLSConfig = &tls.Config{ServerName: cfg.Host}
	return d.DialAndSend(m)
}

// MembershipDecisionHTML renders the mail sent when an application is approved or rejected.
func MembershipDecisionHTML(username, projectName string, approved bool, feedback string) string {
	if approved {
		return fmt.Sprintf(`<p>Hi %s,</p><p>Your application to <b>%s</b> was approved. Welcome aboard!</p>`,
			html.EscapeString(username), html.EscapeString(projectName))
	}
	body := fmt.Sprintf(`<p>Hi %s,</p><p>Your application to <b>%s</b> was not accepted.</p>`,
		html.EscapeString(username), html.EscapeString(projectName))
	if feedback != "" {
		body += fmt.Sprintf(`<p>Feedback from the project: %s</p>`, html.EscapeString(feedback))
	}
	return body
}
