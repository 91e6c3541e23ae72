// Package mailer delivers spreadsheet exports as email attachments over
// SMTP with opportunistic STARTTLS.
package mailer

import (
	"bytes"
	"context"
	"fmt"

	"github.com/rs/zerolog"
	mail "github.com/wneessen/go-mail"

	"github.com/tbeier/pokedex-web/internal/export"
	"github.com/tbeier/pokedex-web/pkg/logging"
)

// Fixed message content; only the recipient and the attachment bytes vary.
const (
	subject = "Pokedex export"
	body    = "Attached is the Pokedex page you exported."
)

// Config holds the SMTP settings.
type Config struct {
	Host string
	Port int

	// Username/Password enable PLAIN authentication when Username is
	// non-empty. Anonymous submission is used otherwise.
	Username string
	Password string

	// From is the envelope and header sender address.
	From string
}

// Mailer sends export emails. Safe for concurrent use; each Send dials a
// fresh SMTP session.
type Mailer struct {
	cfg    Config
	logger zerolog.Logger
}

// New creates a Mailer from cfg.
func New(cfg Config) (*Mailer, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("smtp host is required")
	}
	if cfg.Port < 1 || cfg.Port > 65535 {
		return nil, fmt.Errorf("smtp port %d out of range", cfg.Port)
	}
	if cfg.From == "" {
		return nil, fmt.Errorf("from address is required")
	}

	return &Mailer{
		cfg:    cfg,
		logger: logging.NewLogger("mailer"),
	}, nil
}

// Send emails the spreadsheet bytes to the given recipient. The message
// carries a fixed subject, a plain-text body and a single attachment named
// after the export filename.
func (m *Mailer) Send(ctx context.Context, to string, attachment []byte) error {
	msg, err := m.buildMessage(to, attachment)
	if err != nil {
		return err
	}

	opts := []mail.Option{
		mail.WithPort(m.cfg.Port),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if m.cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(m.cfg.Username),
			mail.WithPassword(m.cfg.Password),
		)
	}

	client, err := mail.NewClient(m.cfg.Host, opts...)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		m.logger.Error().
			Err(err).
			Str("host", m.cfg.Host).
			Msg("Export mail delivery failed")
		return fmt.Errorf("send mail: %w", err)
	}

	m.logger.Info().
		Str("to", to).
		Int("attachment_bytes", len(attachment)).
		Msg("Export mail sent")

	return nil
}

// buildMessage assembles the complete message without touching the network.
func (m *Mailer) buildMessage(to string, attachment []byte) (*mail.Msg, error) {
	msg := mail.NewMsg()

	if err := msg.From(m.cfg.From); err != nil {
		return nil, fmt.Errorf("invalid from address %q: %w", m.cfg.From, err)
	}
	if err := msg.To(to); err != nil {
		return nil, fmt.Errorf("invalid recipient %q: %w", to, err)
	}

	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	if err := msg.AttachReader(export.Filename, bytes.NewReader(attachment),
		mail.WithFileContentType(mail.ContentType(export.ContentType))); err != nil {
		return nil, fmt.Errorf("attach workbook: %w", err)
	}

	return msg, nil
}
