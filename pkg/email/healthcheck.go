package email

import (
	"context"
	"errors"
)

// Healthcheck returns a check for the mail transport. Senders that implement
// Pinger are pinged; others are assumed healthy once constructed.
func Healthcheck(sender EmailSender) func(context.Context) error {
	return func(ctx context.Context) error {
		if p, ok := sender.(Pinger); ok {
			return p.Ping(ctx)
		}
		return nil
	}
}

// SendTestEmail delivers a short test message to recipient. It is meant for a
// one-off startup check when TEST_RECIPIENT is configured.
func SendTestEmail(ctx context.Context, sender EmailSender, recipient string) error {
	if recipient == "" {
		return nil
	}
	err := sender.SendEmail(ctx, SendEmailParams{
		SendTo:   recipient,
		Subject:  "GitHub Timeline connectivity check",
		BodyHTML: "<p>The GitHub Timeline service started and can deliver email.</p>",
		Tag:      "connectivity-test",
	})
	if err != nil {
		return errors.Join(ErrHealthcheckFailed, err)
	}
	return nil
}
