package notifier

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/smtp"
	"strings"

	"go.uber.org/zap"

	"wholesomemarket.io/booking/config"
)

type Attachment struct {
	Filename string
	MIMEType string
	Content  []byte
}

type Message struct {
	To         string
	Subject    string
	HTMLBody   string
	Attachment *Attachment
}

// Mailer is the transport seam; tests substitute a recording double.
type Mailer interface {
	Send(ctx context.Context, msg *Message) error
}

type smtpMailer struct {
	config config.SMTPConfig
	logger *zap.Logger
}

func NewSMTPMailer(cfg *config.Config, logger *zap.Logger) Mailer {
	return &smtpMailer{
		config: cfg.SMTP,
		logger: logger,
	}
}

func (m *smtpMailer) Send(_ context.Context, msg *Message) error {
	if m.config.Host == "" || m.config.Port == "" || m.config.Username == "" || m.config.Password == "" {
		m.logger.Info("[MOCK EMAIL] smtp not configured",
			zap.String("to", msg.To),
			zap.String("subject", msg.Subject))
		return nil
	}

	from := fmt.Sprintf("%s <%s>", m.config.FromName, m.config.Username)
	addr := fmt.Sprintf("%s:%s", m.config.Host, m.config.Port)
	auth := smtp.PlainAuth("", m.config.Username, m.config.Password, m.config.Host)

	payload := BuildMIME(from, msg)
	if err := smtp.SendMail(addr, auth, m.config.Username, []string{msg.To}, payload); err != nil {
		return fmt.Errorf("failed to send mail to %s: %w", msg.To, err)
	}

	return nil
}

// BuildMIME assembles a multipart/mixed message with an HTML part and an
// optional base64-encoded attachment.
func BuildMIME(from string, msg *Message) []byte {
	const boundary = "----=_DEMO_BOOKING_BOUNDARY"

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("From: %s\r\n", from))
	sb.WriteString(fmt.Sprintf("To: %s\r\n", msg.To))
	sb.WriteString(fmt.Sprintf("Subject: %s\r\n", sanitizeHeader(msg.Subject)))
	sb.WriteString("MIME-Version: 1.0\r\n")
	sb.WriteString(fmt.Sprintf("Content-Type: multipart/mixed; boundary=\"%s\"\r\n\r\n", boundary))

	sb.WriteString(fmt.Sprintf("--%s\r\n", boundary))
	sb.WriteString("Content-Type: text/html; charset=utf-8\r\n\r\n")
	sb.WriteString(msg.HTMLBody + "\r\n")

	if msg.Attachment != nil {
		sb.WriteString(fmt.Sprintf("--%s\r\n", boundary))
		sb.WriteString(fmt.Sprintf("Content-Type: %s; charset=utf-8\r\n", msg.Attachment.MIMEType))
		sb.WriteString("Content-Transfer-Encoding: base64\r\n")
		sb.WriteString(fmt.Sprintf("Content-Disposition: attachment; filename=\"%s\"\r\n\r\n", msg.Attachment.Filename))
		sb.WriteString(wrapBase64(base64.StdEncoding.EncodeToString(msg.Attachment.Content)))
		sb.WriteString("\r\n")
	}

	sb.WriteString(fmt.Sprintf("--%s--\r\n", boundary))

	return []byte(sb.String())
}

// Header values must not carry CRLF, which would allow injection of extra
// headers.
func sanitizeHeader(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// RFC 2045 caps encoded lines at 76 characters.
func wrapBase64(s string) string {
	const width = 76
	var sb strings.Builder
	for len(s) > width {
		sb.WriteString(s[:width])
		sb.WriteString("\r\n")
		s = s[width:]
	}
	sb.WriteString(s)
	return sb.String()
}
