package handler_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ghtimeline/timeline/binder"
	"github.com/ghtimeline/timeline/handler"
	"github.com/ghtimeline/timeline/pkg/environment"
	"github.com/ghtimeline/timeline/pkg/logger"
)

type echoRequest struct {
	Name string `json:"name"`
}

type echoResponse struct {
	Success bool   `json:"success"`
	Name    string `json:"name"`
}

func withEnv(r *http.Request, env environment.Environment) *http.Request {
	return r.WithContext(environment.WithContext(r.Context(), env))
}

func TestWrap_BindsAndRenders(t *testing.T) {
	t.Parallel()

	h := handler.Wrap(
		func(_ handler.Context, req echoRequest) handler.Response {
			return handler.JSON(echoResponse{Success: true, Name: req.Name}, handler.WithJSONStatus(http.StatusCreated))
		},
		handler.WithBinder[handler.Context, echoRequest](binder.BindJSON()),
	)

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"octocat"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"success":true,"name":"octocat"}`, rec.Body.String())
}

func TestWrap_BindErrorGoesToErrorHandler(t *testing.T) {
	t.Parallel()

	called := false
	h := handler.Wrap(
		func(handler.Context, echoRequest) handler.Response {
			called = true
			return handler.JSON(nil)
		},
		handler.WithBinder[handler.Context, echoRequest](binder.BindJSON()),
		handler.WithErrorHandler[handler.Context, echoRequest](handler.NewErrorHandler(logger.Discard())),
	)

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.False(t, called)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"success":false,"error":"Request body must be valid JSON","code":"bad_request"}`, rec.Body.String())
}

func TestWrap_NilResponse(t *testing.T) {
	t.Parallel()

	var got error
	h := handler.Wrap(
		func(handler.Context, struct{}) handler.Response { return nil },
		handler.WithErrorHandler[handler.Context, struct{}](func(_ handler.Context, err error) { got = err }),
	)
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.ErrorIs(t, got, handler.ErrNilResponse)
}

func TestWrap_ErrorResponse(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	var got error
	h := handler.Wrap(
		func(handler.Context, struct{}) handler.Response { return handler.Error(boom) },
		handler.WithErrorHandler[handler.Context, struct{}](func(_ handler.Context, err error) { got = err }),
	)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.ErrorIs(t, got, boom)
	assert.Empty(t, rec.Body.String())
}

func TestContext_DelegatesToRequest(t *testing.T) {
	t.Parallel()

	req := withEnv(httptest.NewRequest(http.MethodGet, "/x", nil), environment.Staging)
	rec := httptest.NewRecorder()
	ctx := handler.NewContext(rec, req)

	assert.Same(t, req, ctx.Request())
	assert.Equal(t, environment.Staging, environment.FromContext(ctx))
	require.NoError(t, ctx.Err())
	_, ok := ctx.Deadline()
	assert.False(t, ok)
}
