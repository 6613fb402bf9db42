package email_test

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ghtimeline/timeline/pkg/email"
)

func TestNewSMTPClient_Config(t *testing.T) {
	t.Parallel()

	base := email.Config{
		Provider:    email.ProviderSMTP,
		SenderName:  "GitHub Timeline",
		SenderEmail: "noreply@example.com",
		SMTPHost:    "smtp.example.com",
		SMTPPort:    587,
	}

	tests := []struct {
		name    string
		mutate  func(*email.Config)
		wantErr bool
	}{
		{name: "anonymous relay", mutate: func(*email.Config) {}},
		{name: "with credentials", mutate: func(c *email.Config) { c.SMTPUsername, c.SMTPPassword = "user", "pass" }},
		{name: "missing host", mutate: func(c *email.Config) { c.SMTPHost = "" }, wantErr: true},
		{name: "bad port", mutate: func(c *email.Config) { c.SMTPPort = 0 }, wantErr: true},
		{name: "username without password", mutate: func(c *email.Config) { c.SMTPUsername = "user" }, wantErr: true},
		{name: "invalid sender", mutate: func(c *email.Config) { c.SenderEmail = "nope" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := base
			tt.mutate(&cfg)
			sender, err := email.NewSMTPClient(cfg)
			if tt.wantErr {
				assert.ErrorIs(t, err, email.ErrInvalidConfig)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, sender)
		})
	}
}

func TestSMTPClient_UnreachableServer(t *testing.T) {
	t.Parallel()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := ln.Addr().(*net.TCPAddr).Port
	require.NoError(t, ln.Close())

	sender, err := email.NewSMTPClient(email.Config{
		SenderEmail: "noreply@example.com",
		SMTPHost:    "127.0.0.1",
		SMTPPort:    port,
	})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	assert.ErrorIs(t, sender.SendEmail(ctx, validParams()), email.ErrFailedToSendEmail)

	pinger, ok := sender.(email.Pinger)
	require.True(t, ok)
	assert.ErrorIs(t, pinger.Ping(ctx), email.ErrHealthcheckFailed)
}
