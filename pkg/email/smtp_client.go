package email

import (
	"context"
	"errors"
	"fmt"
	"time"

	gomail "github.com/wneessen/go-mail"
)

type smtpClient struct {
	opts   []gomail.Option
	config Config
}

// NewSMTPClient returns a sender that delivers over an SMTP session,
// upgrading with STARTTLS when the server offers it.
func NewSMTPClient(cfg Config) (EmailSender, error) {
	if cfg.SMTPHost == "" {
		return nil, fmt.Errorf("%w: SMTPHost is required", ErrInvalidConfig)
	}
	if cfg.SMTPPort <= 0 {
		return nil, fmt.Errorf("%w: SMTPPort must be positive", ErrInvalidConfig)
	}
	if (cfg.SMTPUsername == "") != (cfg.SMTPPassword == "") {
		return nil, fmt.Errorf("%w: SMTPUsername and SMTPPassword must be set together", ErrInvalidConfig)
	}
	if err := cfg.validateSender(); err != nil {
		return nil, err
	}

	opts := []gomail.Option{
		gomail.WithPort(cfg.SMTPPort),
		gomail.WithTLSPolicy(gomail.TLSOpportunistic),
		gomail.WithTimeout(10 * time.Second),
	}
	if cfg.SMTPUsername != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(cfg.SMTPUsername),
			gomail.WithPassword(cfg.SMTPPassword),
		)
	}
	return &smtpClient{opts: opts, config: cfg}, nil
}

func (c *smtpClient) SendEmail(ctx context.Context, params SendEmailParams) error {
	if err := params.Validate(); err != nil {
		return err
	}
	msg, err := c.buildMessage(params)
	if err != nil {
		return errors.Join(ErrFailedToSendEmail, err)
	}

	client, err := gomail.NewClient(c.config.SMTPHost, c.opts...)
	if err != nil {
		return errors.Join(ErrFailedToSendEmail, err)
	}
	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return errors.Join(ErrFailedToSendEmail, err)
	}
	return nil
}

// Ping opens and authenticates a session without sending anything.
func (c *smtpClient) Ping(ctx context.Context) error {
	client, err := gomail.NewClient(c.config.SMTPHost, c.opts...)
	if err != nil {
		return errors.Join(ErrHealthcheckFailed, err)
	}
	if err := client.DialWithContext(ctx); err != nil {
		return errors.Join(ErrHealthcheckFailed, err)
	}
	return client.Close()
}

func (c *smtpClient) buildMessage(params SendEmailParams) (*gomail.Msg, error) {
	msg := gomail.NewMsg()
	if err := msg.From(c.config.from()); err != nil {
		return nil, fmt.Errorf("from: %w", err)
	}
	if err := msg.To(params.SendTo); err != nil {
		return nil, fmt.Errorf("to: %w", err)
	}
	if c.config.SupportEmail != "" {
		if err := msg.ReplyTo(c.config.SupportEmail); err != nil {
			return nil, fmt.Errorf("reply-to: %w", err)
		}
	}
	msg.Subject(params.Subject)
	msg.SetDate()
	msg.SetMessageID()
	if params.Tag != "" {
		msg.SetGenHeader(gomail.Header("X-Tag"), params.Tag)
	}
	msg.SetBodyString(gomail.TypeTextHTML, params.BodyHTML)
	return msg, nil
}
