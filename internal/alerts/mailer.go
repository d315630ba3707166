package alerts

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/lmirsal/binershare/internal/config"
)

var mailCfg config.SMTPConfig

func configureMailer(cfg config.SMTPConfig) {
	mailCfg = cfg
}

// sendEmail sends a plain text email over SMTP. When SMTP is not configured
// the message is dropped; the worker logs the outcome either way.
func sendEmail(to, subject, body string) error {
	if mailCfg.Host == "" {
		return fmt.Errorf("smtp not configured: set SMTP_HOST, SMTP_PORT, SMTP_USERNAME, SMTP_PASSWORD, SMTP_FROM")
	}

	addr := mailCfg.Host + ":" + mailCfg.Port

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", mailCfg.From)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("\r\n")
	msg.WriteString(body)

	auth := smtp.PlainAuth("", mailCfg.Username, mailCfg.Password, mailCfg.Host)
	return smtp.SendMail(addr, auth, mailCfg.From, []string{to}, []byte(msg.String()))
}
