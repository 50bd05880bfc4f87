package mailer

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/smtp"
	"strings"
	"time"

	"github.com/devdesk/devdesk/internal/config"
	"github.com/devdesk/devdesk/internal/logger"
)

// smtpMailer is the SMTP-backed implementation of [Mailer]. It speaks
// implicit TLS (port 465 style) and authenticates with PLAIN auth.
type smtpMailer struct {
	cfg    config.Mail
	logger *logger.Logger
}

// NewSMTPMailer constructs a [Mailer] from the mail configuration. When no
// host is configured it returns [Nop], so local development works without
// an SMTP server.
func NewSMTPMailer(cfg config.Mail, log *logger.Logger) Mailer {
	if cfg.Host == "" {
		log.Warn().Msg("no SMTP host configured, email dispatch disabled")
		return Nop{}
	}

	return &smtpMailer{cfg: cfg, logger: log}
}

// Send implements [Mailer]. The context deadline (if any) bounds the TCP
// dial; the SMTP exchange itself follows the server's pacing.
func (m *smtpMailer) Send(ctx context.Context, to, subject, body string) error {
	log := logger.FromContext(ctx)

	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)

	dialer := &tls.Dialer{Config: &tls.Config{ServerName: m.cfg.Host}}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		log.Err(err).Str("addr", addr).Msg("error dialing SMTP server")
		return fmt.Errorf("error dialing SMTP server: %w", err)
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, m.cfg.Host)
	if err != nil {
		log.Err(err).Msg("error creating SMTP client")
		return fmt.Errorf("error creating SMTP client: %w", err)
	}
	defer client.Close()

	auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	if err = client.Auth(auth); err != nil {
		log.Err(err).Msg("error authenticating against SMTP server")
		return fmt.Errorf("error authenticating against SMTP server: %w", err)
	}

	if err = client.Mail(m.cfg.From); err != nil {
		return fmt.Errorf("error setting sender: %w", err)
	}
	if err = client.Rcpt(to); err != nil {
		return fmt.Errorf("error setting recipient: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("error opening message body: %w", err)
	}
	if _, err = w.Write([]byte(buildMessage(m.cfg.From, to, subject, body))); err != nil {
		return fmt.Errorf("error writing message body: %w", err)
	}
	if err = w.Close(); err != nil {
		return fmt.Errorf("error closing message body: %w", err)
	}

	if err = client.Quit(); err != nil {
		return fmt.Errorf("error closing SMTP session: %w", err)
	}

	log.Info().Str("to", to).Str("subject", subject).Msg("email sent")
	return nil
}

// buildMessage assembles a minimal RFC 5322 plain-text message.
func buildMessage(from, to, subject, body string) string {
	var sb strings.Builder
	sb.WriteString("From: DevDesk <" + from + ">\r\n")
	sb.WriteString("To: " + to + "\r\n")
	sb.WriteString("Subject: " + subject + "\r\n")
	sb.WriteString("Date: " + time.Now().Format(time.RFC1123Z) + "\r\n")
	sb.WriteString("MIME-Version: 1.0\r\n")
	sb.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	sb.WriteString("\r\n")
	sb.WriteString(body)
	return sb.String()
}
