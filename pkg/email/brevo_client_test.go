package email_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ghtimeline/timeline/pkg/email"
)

func brevoConfig(baseURL string) email.Config {
	return email.Config{
		Provider:     email.ProviderBrevo,
		SenderName:   "GitHub Timeline",
		SenderEmail:  "noreply@example.com",
		BrevoAPIKey:  "xkeysib-test",
		BrevoBaseURL: baseURL,
	}
}

func TestBrevoClient_SendEmail(t *testing.T) {
	t.Parallel()

	var (
		gotPath   string
		gotKey    string
		gotCT     string
		gotFields map[string]any
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("api-key")
		gotCT = r.Header.Get("Content-Type")
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &gotFields)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"messageId":"<abc@smtp-relay.brevo.com>"}`))
	}))
	defer srv.Close()

	sender, err := email.NewBrevoClient(brevoConfig(srv.URL + "/v3"))
	require.NoError(t, err)

	err = sender.SendEmail(context.Background(), email.SendEmailParams{
		SendTo:   "reader@example.com",
		Subject:  "Your GitHub Timeline Update",
		BodyHTML: "<h1>digest</h1>",
		Tag:      "digest",
	})
	require.NoError(t, err)

	assert.Equal(t, "/v3/smtp/email", gotPath)
	assert.Equal(t, "xkeysib-test", gotKey)
	assert.Equal(t, "application/json", gotCT)
	assert.Equal(t, map[string]any{"name": "GitHub Timeline", "email": "noreply@example.com"}, gotFields["sender"])
	assert.Equal(t, []any{map[string]any{"email": "reader@example.com"}}, gotFields["to"])
	assert.Equal(t, "Your GitHub Timeline Update", gotFields["subject"])
	assert.Equal(t, "<h1>digest</h1>", gotFields["htmlContent"])
}

func TestBrevoClient_ErrorStatus(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"code":"unauthorized","message":"Key not found"}`))
	}))
	defer srv.Close()

	sender, err := email.NewBrevoClient(brevoConfig(srv.URL))
	require.NoError(t, err)

	err = sender.SendEmail(context.Background(), validParams())
	require.Error(t, err)
	assert.ErrorIs(t, err, email.ErrFailedToSendEmail)
	assert.Contains(t, err.Error(), "401")
	assert.Contains(t, err.Error(), "Key not found")

	pinger, ok := sender.(email.Pinger)
	require.True(t, ok)
	assert.ErrorIs(t, pinger.Ping(context.Background()), email.ErrHealthcheckFailed)
}

func TestBrevoClient_InvalidParamsSkipRequest(t *testing.T) {
	t.Parallel()

	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	sender, err := email.NewBrevoClient(brevoConfig(srv.URL))
	require.NoError(t, err)

	err = sender.SendEmail(context.Background(), email.SendEmailParams{SendTo: "reader@example.com"})
	assert.ErrorIs(t, err, email.ErrInvalidParams)
	assert.False(t, called)
}

func TestHealthcheck(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/account", r.URL.Path)
		_, _ = w.Write([]byte(`{"email":"owner@example.com"}`))
	}))
	defer srv.Close()

	sender, err := email.New(brevoConfig(srv.URL))
	require.NoError(t, err)
	assert.NoError(t, email.Healthcheck(sender)(context.Background()))

	assert.NoError(t, email.Healthcheck(&deadlineRecorder{})(context.Background()))
}
