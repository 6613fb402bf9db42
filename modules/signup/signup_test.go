package signup_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ghtimeline/timeline/modules/signup"
	"github.com/ghtimeline/timeline/pkg/environment"
	"github.com/ghtimeline/timeline/pkg/logger"
	"github.com/ghtimeline/timeline/svc/subscriber"
)

func setup(t *testing.T) (http.Handler, *subscriber.MemoryStore) {
	t.Helper()
	store := subscriber.NewMemoryStore()
	svc := subscriber.NewService(store, nil, subscriber.WithLogger(logger.Discard()))
	return signup.New(svc, logger.Discard()).Handle(), store
}

func post(t *testing.T, h http.Handler, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	return postAs(t, h, body, "application/json")
}

func postAs(t *testing.T, h http.Handler, body, contentType string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return rec, out
}

func TestSignup_Lifecycle(t *testing.T) {
	t.Parallel()

	h, store := setup(t)

	rec, body := post(t, h, `{"email":"Alice@Example.com"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Successfully subscribed! Check your email for confirmation.", body["message"])
	sub, ok := body["subscriber"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "alice@example.com", sub["email"])
	assert.NotEmpty(t, sub["id"])
	assert.NotEmpty(t, sub["subscribed_at"])

	rec, body = post(t, h, `{"email":"alice@example.com"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Email already subscribed to updates", body["error"])

	require.True(t, store.Deactivate("alice@example.com"))
	rec, body = post(t, h, `{"email":"alice@example.com"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Welcome back! Your subscription has been reactivated.", body["message"])
	assert.NotContains(t, body, "subscriber")
}

func TestSignup_FormEncoded(t *testing.T) {
	t.Parallel()

	h, store := setup(t)

	form := url.Values{"email": {"Bob@Example.com"}}.Encode()
	rec, body := postAs(t, h, form, "application/x-www-form-urlencoded")
	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	sub, ok := body["subscriber"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "bob@example.com", sub["email"])

	rec, body = postAs(t, h, form, "application/x-www-form-urlencoded; charset=utf-8")
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "Email already subscribed to updates", body["error"])

	rec, body = postAs(t, h, "email=nope", "application/x-www-form-urlencoded")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid email format", body["error"])

	rec, _ = postAs(t, h, "bob@example.com", "text/plain")
	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)

	n, err := store.ActiveCount(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestSignup_Invalid(t *testing.T) {
	t.Parallel()

	h, store := setup(t)

	for _, payload := range []string{`{"email":"nope"}`, `{}`, `{"email":"a@b"}`} {
		rec, body := post(t, h, payload)
		assert.Equal(t, http.StatusBadRequest, rec.Code, payload)
		assert.Equal(t, false, body["success"])
		assert.Equal(t, "Invalid email format", body["error"])
		details, ok := body["details"].(map[string]any)
		require.True(t, ok, payload)
		assert.Contains(t, details, "email")
	}

	n, err := store.ActiveCount(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestSignup_MalformedBody(t *testing.T) {
	t.Parallel()

	h, _ := setup(t)
	rec, body := post(t, h, `{"email":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, false, body["success"])
}

type brokenService struct{}

func (brokenService) Signup(context.Context, string) (subscriber.SignupResult, error) {
	return subscriber.SignupResult{}, subscriber.ErrStore
}

func (brokenService) ActiveCount(context.Context) (int, error) {
	return 0, subscriber.ErrStore
}

func TestSignup_StoreFailure(t *testing.T) {
	t.Parallel()

	h := signup.New(brokenService{}, logger.Discard()).Handle()
	serve := func(req *http.Request) map[string]any {
		req = req.WithContext(environment.WithContext(req.Context(), environment.Production))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		var out map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
		return out
	}

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"a@example.com"}`))
	req.Header.Set("Content-Type", "application/json")
	body := serve(req)
	assert.Equal(t, "Failed to subscribe. Please try again later.", body["error"])
	assert.NotContains(t, body, "details")

	body = serve(httptest.NewRequest(http.MethodGet, "/count", nil))
	assert.Equal(t, "Failed to get subscriber count", body["error"])
}

func TestCount(t *testing.T) {
	t.Parallel()

	h, _ := setup(t)
	post(t, h, `{"email":"a@example.com"}`)
	post(t, h, `{"email":"b@example.com"}`)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/count", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"active_subscribers":2}`, rec.Body.String())
}

func TestSignup_Middleware(t *testing.T) {
	t.Parallel()

	store := subscriber.NewMemoryStore()
	svc := subscriber.NewService(store, nil, subscriber.WithLogger(logger.Discard()))
	block := func(http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		})
	}
	h := signup.New(svc, logger.Discard(), signup.WithMiddleware(block)).Handle()

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"a@example.com"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/count", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
