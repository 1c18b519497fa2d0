// internal/app/system/mailer/mailer.go
package mailer

import (
	"fmt"
	"mime"
	"mime/multipart"
	"net/smtp"
	"net/textproto"
	"strings"

	"go.uber.org/zap"
)

// Email is a message ready to send. TextBody is the fallback for
// clients that do not render HTML.
type Email struct {
	To       string
	Subject  string
	TextBody string
	HTMLBody string
}

// Mailer sends mail through an SMTP relay.
type Mailer struct {
	host     string
	port     int
	username string
	password string
	from     string
	siteName string
	log      *zap.Logger
}

// New constructs a Mailer. from is the sender address on outgoing
// messages; siteName appears in subjects and bodies.
func New(host string, port int, username, password, from, siteName string, logger *zap.Logger) *Mailer {
	return &Mailer{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
		siteName: siteName,
		log:      logger,
	}
}

// SendOneTimeCode emails a fresh account verification code. The send
// is synchronous; registration waits for the relay to accept it.
func (m *Mailer) SendOneTimeCode(to, code, displayName string) error {
	email := BuildOneTimeCodeEmail(OneTimeCodeEmailData{
		SiteName:    m.siteName,
		Code:        code,
		DisplayName: displayName,
		ExpiresIn:   "5 minutes",
	})
	email.To = to
	return m.Send(email)
}

// Send delivers the email. It blocks until the relay accepts or
// rejects the message.
func (m *Mailer) Send(email Email) error {
	msg, err := buildMessage(m.from, email)
	if err != nil {
		return fmt.Errorf("build message: %w", err)
	}

	addr := fmt.Sprintf("%s:%d", m.host, m.port)
	var auth smtp.Auth
	if m.username != "" {
		auth = smtp.PlainAuth("", m.username, m.password, m.host)
	}

	if err := smtp.SendMail(addr, auth, m.from, []string{email.To}, msg); err != nil {
		m.log.Error("smtp send failed",
			zap.String("to", email.To),
			zap.String("subject", email.Subject),
			zap.Error(err))
		return fmt.Errorf("send to %s: %w", email.To, err)
	}

	m.log.Info("email sent",
		zap.String("to", email.To),
		zap.String("subject", email.Subject))
	return nil
}

// buildMessage assembles a multipart/alternative MIME message so both
// text and HTML bodies travel in one email.
func buildMessage(from string, email Email) ([]byte, error) {
	var b strings.Builder
	var alt strings.Builder
	mw := multipart.NewWriter(&alt)

	for _, part := range []struct {
		contentType string
		body        string
	}{
		{"text/plain; charset=utf-8", email.TextBody},
		{"text/html; charset=utf-8", email.HTMLBody},
	} {
		if part.body == "" {
			continue
		}
		h := textproto.MIMEHeader{}
		h.Set("Content-Type", part.contentType)
		w, err := mw.CreatePart(h)
		if err != nil {
			return nil, err
		}
		if _, err := w.Write([]byte(part.body)); err != nil {
			return nil, err
		}
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	b.WriteString("From: " + from + "\r\n")
	b.WriteString("To: " + email.To + "\r\n")
	b.WriteString("Subject: " + mime.QEncoding.Encode("utf-8", email.Subject) + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: multipart/alternative; boundary=" + mw.Boundary() + "\r\n")
	b.WriteString("\r\n")
	b.WriteString(alt.String())

	return []byte(b.String()), nil
}
