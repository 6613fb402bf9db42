package email

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
)

// EmailSender delivers one message per call.
type EmailSender interface {
	SendEmail(ctx context.Context, params SendEmailParams) error
}

// Pinger is implemented by senders that can verify connectivity and
// credentials without sending a message.
type Pinger interface {
	Ping(ctx context.Context) error
}

// SendEmailParams describes a single outbound message.
type SendEmailParams struct {
	SendTo   string `json:"send_to"`
	Subject  string `json:"subject"`
	BodyHTML string `json:"body_html"`
	Tag      string `json:"tag,omitempty"`
}

// Validate checks the fields every provider needs.
func (p SendEmailParams) Validate() error {
	if strings.TrimSpace(p.SendTo) == "" {
		return fmt.Errorf("%w: recipient is required", ErrInvalidParams)
	}
	if _, err := mail.ParseAddress(p.SendTo); err != nil {
		return fmt.Errorf("%w: invalid recipient %q", ErrInvalidParams, p.SendTo)
	}
	if strings.TrimSpace(p.Subject) == "" {
		return fmt.Errorf("%w: subject is required", ErrInvalidParams)
	}
	if strings.TrimSpace(p.BodyHTML) == "" {
		return fmt.Errorf("%w: html body is required", ErrInvalidParams)
	}
	return nil
}

func validAddress(addr string) bool {
	parsed, err := mail.ParseAddress(addr)
	return err == nil && parsed.Address == addr
}

func (c Config) from() string {
	if c.SenderName == "" {
		return c.SenderEmail
	}
	return (&mail.Address{Name: c.SenderName, Address: c.SenderEmail}).String()
}

func (c Config) validateSender() error {
	if c.SenderEmail == "" {
		return fmt.Errorf("%w: SenderEmail is required", ErrInvalidConfig)
	}
	if !validAddress(c.SenderEmail) {
		return fmt.Errorf("%w: SenderEmail must be a valid email address", ErrInvalidConfig)
	}
	if c.SupportEmail != "" && !validAddress(c.SupportEmail) {
		return fmt.Errorf("%w: SupportEmail must be a valid email address", ErrInvalidConfig)
	}
	return nil
}
