package binder_test

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ghtimeline/timeline/binder"
)

type formRequest struct {
	Email    string   `form:"email"`
	Age      int      `form:"age"`
	Page     uint     `form:"page"`
	Score    float64  `form:"score"`
	Remember bool     `form:"remember"`
	Tags     []string `form:"tags"`
	Ref      *string  `form:"ref"`
	Internal string   `form:"-"`
	Nickname string
}

const formType = "application/x-www-form-urlencoded"

func TestBindForm(t *testing.T) {
	t.Parallel()

	t.Run("all supported kinds", func(t *testing.T) {
		t.Parallel()

		body := url.Values{
			"email":    {"a@b.co"},
			"age":      {"30"},
			"page":     {"2"},
			"score":    {"4.5"},
			"remember": {"on"},
			"tags":     {"go", " infra "},
			"ref":      {"newsletter"},
			"internal": {"secret"},
			"nickname": {"octo"},
		}.Encode()

		got := formRequest{Internal: "kept"}
		require.NoError(t, binder.BindForm()(newRequest(body, formType+"; charset=utf-8"), &got))

		assert.Equal(t, "a@b.co", got.Email)
		assert.Equal(t, 30, got.Age)
		assert.Equal(t, uint(2), got.Page)
		assert.InDelta(t, 4.5, got.Score, 0.0001)
		assert.True(t, got.Remember)
		assert.Equal(t, []string{"go", "infra"}, got.Tags)
		require.NotNil(t, got.Ref)
		assert.Equal(t, "newsletter", *got.Ref)
		assert.Equal(t, "kept", got.Internal)
		assert.Equal(t, "octo", got.Nickname)
	})

	t.Run("missing fields keep zero values", func(t *testing.T) {
		t.Parallel()

		var got formRequest
		require.NoError(t, binder.BindForm()(newRequest("email=a%40b.co", formType), &got))
		assert.Equal(t, "a@b.co", got.Email)
		assert.Zero(t, got.Age)
		assert.Nil(t, got.Ref)
	})

	tests := []struct {
		name        string
		body        string
		contentType string
		opts        []binder.JSONOption
		err         error
	}{
		{name: "missing content type", body: "email=a%40b.co", err: binder.ErrMissingContentType},
		{name: "json content type", body: `{"email":"a@b.co"}`, contentType: "application/json", err: binder.ErrUnsupportedMediaType},
		{name: "bad int", body: "age=old", contentType: formType, err: binder.ErrInvalidForm},
		{name: "bad bool", body: "remember=maybe", contentType: formType, err: binder.ErrInvalidForm},
		{name: "bad escape", body: "email=%zz", contentType: formType, err: binder.ErrInvalidForm},
		{name: "too large", body: "email=" + strings.Repeat("a", 100), contentType: formType, opts: []binder.JSONOption{binder.WithMaxBodyBytes(32)}, err: binder.ErrBodyTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var got formRequest
			err := binder.BindForm(tt.opts...)(newRequest(tt.body, tt.contentType), &got)
			require.ErrorIs(t, err, tt.err)
		})
	}

	t.Run("non pointer target", func(t *testing.T) {
		t.Parallel()

		err := binder.BindForm()(newRequest("email=a%40b.co", formType), formRequest{})
		require.ErrorIs(t, err, binder.ErrInvalidForm)
	})
}

func TestBindBody(t *testing.T) {
	t.Parallel()

	type request struct {
		Email string `json:"email" form:"email"`
	}

	tests := []struct {
		name        string
		body        string
		contentType string
		want        string
		err         error
	}{
		{name: "json", body: `{"email":"a@b.co"}`, contentType: "application/json", want: "a@b.co"},
		{name: "form", body: "email=a%40b.co", contentType: formType, want: "a@b.co"},
		{name: "form with charset", body: "email=a%40b.co", contentType: formType + "; charset=UTF-8", want: "a@b.co"},
		{name: "missing content type falls to json", body: `{"email":"a@b.co"}`, err: binder.ErrMissingContentType},
		{name: "text plain", body: "a@b.co", contentType: "text/plain", err: binder.ErrUnsupportedMediaType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var got request
			err := binder.BindBody()(newRequest(tt.body, tt.contentType), &got)
			if tt.err != nil {
				require.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Email)
		})
	}
}
