package email

import (
	"context"
	"fmt"
	"time"
)

// New builds the sender selected by cfg.Provider and bounds every send with
// cfg.SendTimeout.
func New(cfg Config) (EmailSender, error) {
	var (
		sender EmailSender
		err    error
	)
	switch cfg.Provider {
	case ProviderBrevo, "":
		sender, err = NewBrevoClient(cfg)
	case ProviderPostmark:
		sender, err = NewPostmarkClient(cfg)
	case ProviderResend:
		sender, err = NewResendClient(cfg)
	case ProviderSMTP:
		sender, err = NewSMTPClient(cfg)
	case ProviderDev:
		if err = cfg.validateSender(); err == nil {
			sender = NewDevSender(cfg.DevDir)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, cfg.Provider)
	}
	if err != nil {
		return nil, err
	}
	return WithTimeout(sender, cfg.SendTimeout), nil
}

// MustNew is New that panics on invalid configuration.
func MustNew(cfg Config) EmailSender {
	sender, err := New(cfg)
	if err != nil {
		panic(err)
	}
	return sender
}

type timeoutSender struct {
	next    EmailSender
	timeout time.Duration
}

// WithTimeout wraps sender so each SendEmail call gets its own deadline.
// A non-positive timeout returns sender unchanged.
func WithTimeout(sender EmailSender, timeout time.Duration) EmailSender {
	if timeout <= 0 {
		return sender
	}
	return &timeoutSender{next: sender, timeout: timeout}
}

func (t *timeoutSender) SendEmail(ctx context.Context, params SendEmailParams) error {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.next.SendEmail(ctx, params)
}

func (t *timeoutSender) Ping(ctx context.Context) error {
	if p, ok := t.next.(Pinger); ok {
		ctx, cancel := context.WithTimeout(ctx, t.timeout)
		defer cancel()
		return p.Ping(ctx)
	}
	return nil
}
