// Package mailer delivers a rendered report as an email attachment over
// SMTP.
package mailer

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"mime/multipart"
	"net/smtp"
	"net/textproto"
	"strings"
	"time"
)

type Mailer struct {
	Host     string
	Port     int
	Username string
	Password string
}

func New(host string, port int, username, password string) (*Mailer, error) {
	if host == "" {
		return nil, fmt.Errorf("mailer: host is required")
	}
	if port <= 0 || port > 65535 {
		return nil, fmt.Errorf("mailer: invalid port %d", port)
	}
	if username == "" || password == "" {
		return nil, fmt.Errorf("mailer: username and password are required")
	}
	return &Mailer{Host: host, Port: port, Username: username, Password: password}, nil
}

// SendReport emails the PDF to every recipient as a single message.
func (m *Mailer) SendReport(to []string, subject, body string, pdf []byte, filename string) error {
	if len(to) == 0 {
		return fmt.Errorf("mailer: no recipients")
	}
	msg, err := buildMessage(m.Username, to, subject, body, pdf, filename)
	if err != nil {
		return fmt.Errorf("building message: %w", err)
	}

	addr := fmt.Sprintf("%s:%d", m.Host, m.Port)
	auth := smtp.PlainAuth("", m.Username, m.Password, m.Host)
	if err := smtp.SendMail(addr, auth, m.Username, to, msg); err != nil {
		return fmt.Errorf("sending mail via %s: %w", addr, err)
	}
	return nil
}

// buildMessage assembles a multipart/mixed MIME message: a plain text part
// and the PDF as a base64 attachment.
func buildMessage(from string, to []string, subject, body string, pdf []byte, filename string) ([]byte, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fmt.Fprintf(&buf, "From: %s\r\n", from)
	fmt.Fprintf(&buf, "To: %s\r\n", strings.Join(to, ", "))
	fmt.Fprintf(&buf, "Subject: %s\r\n", subject)
	fmt.Fprintf(&buf, "Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	fmt.Fprintf(&buf, "MIME-Version: 1.0\r\n")
	fmt.Fprintf(&buf, "Content-Type: multipart/mixed; boundary=%q\r\n\r\n", w.Boundary())

	text, err := w.CreatePart(textproto.MIMEHeader{
		"Content-Type": {"text/plain; charset=utf-8"},
	})
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(text, "%s\r\n", body)

	if len(pdf) > 0 {
		if filename == "" {
			filename = "report.pdf"
		}
		part, err := w.CreatePart(textproto.MIMEHeader{
			"Content-Type":              {"application/pdf"},
			"Content-Transfer-Encoding": {"base64"},
			"Content-Disposition":       {fmt.Sprintf("attachment; filename=%q", filename)},
		})
		if err != nil {
			return nil, err
		}
		enc := base64.StdEncoding.EncodeToString(pdf)
		// RFC 2045 line length limit.
		for len(enc) > 76 {
			fmt.Fprintf(part, "%s\r\n", enc[:76])
			enc = enc[76:]
		}
		fmt.Fprintf(part, "%s\r\n", enc)
	}

	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
