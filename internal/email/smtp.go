package emails

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"net/smtp"
	"strings"
)

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
}

func SendSMTP(cfg SMTPConfig, email *Email) error {
	auth := smtp.PlainAuth(
		"",
		cfg.Username,
		cfg.Password,
		cfg.Host,
	)

	msg := buildMessage(email)
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	return smtp.SendMail(addr, auth, email.From, email.To, msg)
}

// buildMessage renders the email as MIME. Messages without attachments go
// out as plain html; with attachments a multipart/mixed envelope wraps the
// body and the base64-encoded files.
func buildMessage(email *Email) []byte {
	var buf bytes.Buffer

	write := func(k, v string) {
		fmt.Fprintf(&buf, "%s: %s\r\n", k, v)
	}
	write("From", email.From)
	write("To", strings.Join(email.To, ", "))
	write("Subject", email.Subject)
	write("MIME-Version", "1.0")

	if len(email.Attachments) == 0 {
		write("Content-Type", "text/html; charset=\"UTF-8\"")
		buf.WriteString("\r\n" + email.HtmlBody)
		return buf.Bytes()
	}

	const boundary = "report-delivery-boundary"
	write("Content-Type", fmt.Sprintf("multipart/mixed; boundary=%s", boundary))
	buf.WriteString("\r\n")

	fmt.Fprintf(&buf, "--%s\r\n", boundary)
	buf.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n\r\n")
	buf.WriteString(email.HtmlBody + "\r\n")

	for _, att := range email.Attachments {
		fmt.Fprintf(&buf, "--%s\r\n", boundary)
		fmt.Fprintf(&buf, "Content-Type: %s\r\n", att.ContentType)
		buf.WriteString("Content-Transfer-Encoding: base64\r\n")
		fmt.Fprintf(&buf, "Content-Disposition: attachment; filename=%s\r\n\r\n", att.Filename)

		encoded := base64.StdEncoding.EncodeToString(att.Data)
		for len(encoded) > 76 {
			buf.WriteString(encoded[:76] + "\r\n")
			encoded = encoded[76:]
		}
		buf.WriteString(encoded + "\r\n")
	}
	fmt.Fprintf(&buf, "--%s--\r\n", boundary)

	return buf.Bytes()
}
