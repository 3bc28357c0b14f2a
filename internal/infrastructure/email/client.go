package email

import (
	"context"
	"fmt"

	"reminderio/internal/pkg/logger"

	"gopkg.in/gomail.v2"
)

// Sender is the outbound email channel contract.
type Sender interface {
	// Send delivers a single HTML message.
	Send(ctx context.Context, to, subject, htmlBody string) error
	// VerifyIdentity checks that the channel can handle the given address.
	// It is best-effort: callers log failures and carry on.
	VerifyIdentity(ctx context.Context, address string) error
}

// Client sends transactional email over SMTP.
type Client struct {
	dialer *gomail.Dialer
	from   string
	log    logger.Logger
}

// NewClient creates an SMTP email client.
func NewClient(host string, port int, username, password, from string, log logger.Logger) *Client {
	return &Client{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
		log:    log,
	}
}

// Send delivers a single HTML message.
func (c *Client) Send(ctx context.Context, to, subject, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", c.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	if err := c.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	c.log.Debug(fmt.Sprintf("Email sent to %s: %s", to, subject))
	return nil
}

// VerifyIdentity confirms the SMTP relay is reachable for the address.
func (c *Client) VerifyIdentity(ctx context.Context, address string) error {
	conn, err := c.dialer.Dial()
	if err != nil {
		return fmt.Errorf("failed to verify identity %s: %w", address, err)
	}
	if err := conn.Close(); err != nil {
		return fmt.Errorf("failed to close verification connection: %w", err)
	}
	c.log.Debug(fmt.Sprintf("Email identity verification initiated for %s", address))
	return nil
}
