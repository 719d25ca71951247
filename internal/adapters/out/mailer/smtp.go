// Package mailer sends customer notifications over SMTP.
package mailer

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"

	"bistro/internal/core/ports"
	"bistro/internal/pkg/errs"
)

// SMTPConfig holds the connection settings for the outgoing mail server.
// Username and Password are optional; without them the client connects
// unauthenticated, which is what local relays expect.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SMTPMailer implements the Mailer port over plain SMTP.
type SMTPMailer struct {
	cfg    SMTPConfig
	send   func(addr string, auth smtp.Auth, from string, to []string, msg []byte) error
	logger *slog.Logger
}

// NewSMTPMailer creates a mailer for the given server settings.
func NewSMTPMailer(cfg SMTPConfig, logger *slog.Logger) (*SMTPMailer, error) {
	if cfg.Host == "" {
		return nil, errs.NewValueIsRequiredError("cfg.Host")
	}
	if cfg.Port <= 0 {
		return nil, errs.NewValueIsInvalidError("cfg.Port")
	}
	if cfg.From == "" {
		return nil, errs.NewValueIsRequiredError("cfg.From")
	}

	return &SMTPMailer{
		cfg:    cfg,
		send:   smtp.SendMail,
		logger: logger.With("component", "mailer"),
	}, nil
}

// SendOrderConfirmation delivers the order confirmation mail. The wait is
// bounded by the context deadline; net/smtp itself has no I/O timeout, so a
// hung server surfaces as ctx.Err() instead of blocking the caller.
func (m *SMTPMailer) SendOrderConfirmation(ctx context.Context, confirmation ports.OrderConfirmation) error {
	if confirmation.To == "" {
		return errs.NewValueIsRequiredError("confirmation.To")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := buildConfirmationMessage(m.cfg.From, confirmation)

	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}

	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)

	sendErr := make(chan error, 1)
	go func() {
		sendErr <- m.send(addr, auth, m.cfg.From, []string{confirmation.To}, msg)
	}()

	select {
	case err := <-sendErr:
		if err != nil {
			return fmt.Errorf("send confirmation for order %s: %w", confirmation.Ref, err)
		}
	case <-ctx.Done():
		return fmt.Errorf("send confirmation for order %s: %w", confirmation.Ref, ctx.Err())
	}

	m.logger.Info("confirmation mail sent", "ref", confirmation.Ref, "to", confirmation.To)
	return nil
}

func buildConfirmationMessage(from string, c ports.OrderConfirmation) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", c.To)
	fmt.Fprintf(&b, "Subject: Your order %s is confirmed\r\n", c.Ref)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	b.WriteString("\r\n")
	fmt.Fprintf(&b, "Hi %s,\r\n\r\n", c.CustomerName)
	fmt.Fprintf(&b, "we received your order %s.\r\n\r\n", c.Ref)
	fmt.Fprintf(&b, "Subtotal:     %s\r\n", formatCents(c.SubtotalCents))
	fmt.Fprintf(&b, "Delivery fee: %s\r\n", formatCents(c.FeeCents))
	fmt.Fprintf(&b, "Total:        %s\r\n\r\n", formatCents(c.GrandTotalCents))
	b.WriteString("We will let you know as soon as it is on the way.\r\n")
	return []byte(b.String())
}

func formatCents(cents int64) string {
	return fmt.Sprintf("%d.%02d EUR", cents/100, cents%100)
}
