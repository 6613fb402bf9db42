package email

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	brevo "github.com/getbrevo/brevo-go/lib"
)

type brevoClient struct {
	api    *brevo.APIClient
	config Config
}

// BrevoOption customises the Brevo client.
type BrevoOption func(*brevo.Configuration)

// WithBrevoHTTPClient replaces the default HTTP client, mainly for tests.
func WithBrevoHTTPClient(c *http.Client) BrevoOption {
	return func(bc *brevo.Configuration) {
		if c != nil {
			bc.HTTPClient = c
		}
	}
}

// NewBrevoClient returns a sender backed by Brevo's transactional email API.
func NewBrevoClient(cfg Config, opts ...BrevoOption) (EmailSender, error) {
	if cfg.BrevoAPIKey == "" {
		return nil, fmt.Errorf("%w: BrevoAPIKey is required", ErrInvalidConfig)
	}
	if err := cfg.validateSender(); err != nil {
		return nil, err
	}

	bc := brevo.NewConfiguration()
	bc.AddDefaultHeader("api-key", cfg.BrevoAPIKey)
	if base := strings.TrimSuffix(cfg.BrevoBaseURL, "/"); base != "" {
		bc.BasePath = base
	}
	bc.HTTPClient = &http.Client{
		Timeout: 30 * time.Second,
		Transport: &http.Transport{
			MaxIdleConns:        20,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(bc)
	}

	return &brevoClient{api: brevo.NewAPIClient(bc), config: cfg}, nil
}

func (c *brevoClient) SendEmail(ctx context.Context, params SendEmailParams) error {
	if err := params.Validate(); err != nil {
		return err
	}

	msg := brevo.SendSmtpEmail{
		Sender:      &brevo.SendSmtpEmailSender{Name: c.config.SenderName, Email: c.config.SenderEmail},
		To:          []brevo.SendSmtpEmailTo{{Email: params.SendTo}},
		Subject:     params.Subject,
		HtmlContent: params.BodyHTML,
	}
	if c.config.SupportEmail != "" {
		msg.ReplyTo = &brevo.SendSmtpEmailReplyTo{Email: c.config.SupportEmail}
	}
	if params.Tag != "" {
		msg.Tags = []string{params.Tag}
	}

	if _, _, err := c.api.TransactionalEmailsApi.SendTransacEmail(ctx, msg); err != nil {
		return errors.Join(ErrFailedToSendEmail, brevoError(err))
	}
	return nil
}

// Ping reads the account endpoint, which rejects an invalid api key.
func (c *brevoClient) Ping(ctx context.Context) error {
	if _, _, err := c.api.AccountApi.GetAccount(ctx); err != nil {
		return errors.Join(ErrHealthcheckFailed, brevoError(err))
	}
	return nil
}

// brevoError appends the API's response body to the status-only SDK error.
func brevoError(err error) error {
	var apiErr brevo.GenericSwaggerError
	if !errors.As(err, &apiErr) {
		return err
	}
	body := strings.ReplaceAll(strings.TrimSpace(string(apiErr.Body())), "\n", " ")
	if len(body) > 200 {
		body = body[:200] + "..."
	}
	if body == "" {
		return fmt.Errorf("brevo returned status %s", apiErr.Error())
	}
	return fmt.Errorf("brevo returned status %s: %s", apiErr.Error(), body)
}
