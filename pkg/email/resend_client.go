package email

import (
	"context"
	"errors"
	"fmt"

	"github.com/resend/resend-go/v2"
)

type resendClient struct {
	client *resend.Client
	config Config
}

// NewResendClient returns a sender backed by the Resend API.
func NewResendClient(cfg Config) (EmailSender, error) {
	if cfg.ResendAPIKey == "" {
		return nil, fmt.Errorf("%w: ResendAPIKey is required", ErrInvalidConfig)
	}
	if err := cfg.validateSender(); err != nil {
		return nil, err
	}
	return &resendClient{
		client: resend.NewClient(cfg.ResendAPIKey),
		config: cfg,
	}, nil
}

func (c *resendClient) SendEmail(ctx context.Context, params SendEmailParams) error {
	if err := params.Validate(); err != nil {
		return err
	}

	req := &resend.SendEmailRequest{
		From:    c.config.from(),
		To:      []string{params.SendTo},
		Subject: params.Subject,
		Html:    params.BodyHTML,
	}
	if c.config.SupportEmail != "" {
		req.ReplyTo = c.config.SupportEmail
	}
	if params.Tag != "" {
		req.Tags = []resend.Tag{{Name: "category", Value: params.Tag}}
	}

	if _, err := c.client.Emails.SendWithContext(ctx, req); err != nil {
		return errors.Join(ErrFailedToSendEmail, err)
	}
	return nil
}
