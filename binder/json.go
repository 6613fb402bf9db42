package binder

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
)

// DefaultMaxBodyBytes caps request bodies read by BindJSON.
const DefaultMaxBodyBytes int64 = 64 << 10

// JSONOption configures BindJSON.
type JSONOption func(*jsonConfig)

type jsonConfig struct {
	maxBytes      int64
	allowUnknown  bool
	requireHeader bool
}

// WithMaxBodyBytes overrides DefaultMaxBodyBytes.
func WithMaxBodyBytes(n int64) JSONOption {
	return func(c *jsonConfig) {
		c.maxBytes = n
	}
}

// AllowUnknownFields accepts JSON keys that do not map to struct fields.
func AllowUnknownFields() JSONOption {
	return func(c *jsonConfig) {
		c.allowUnknown = true
	}
}

// LenientContentType accepts requests without a Content-Type header.
// A present header must still be application/json.
func LenientContentType() JSONOption {
	return func(c *jsonConfig) {
		c.requireHeader = false
	}
}

// BindJSON decodes exactly one JSON value from the request body into v.
//
//	http.HandleFunc("/signup", handler.Wrap(signup,
//		handler.WithBinder[handler.Context, SignupRequest](binder.BindJSON()),
//	))
func BindJSON(opts ...JSONOption) func(r *http.Request, v any) error {
	cfg := jsonConfig{maxBytes: DefaultMaxBodyBytes, requireHeader: true}
	for _, opt := range opts {
		opt(&cfg)
	}

	return func(r *http.Request, v any) error {
		if err := checkContentType(r.Header.Get("Content-Type"), cfg.requireHeader); err != nil {
			return err
		}

		body := io.LimitReader(r.Body, cfg.maxBytes+1)
		data, err := io.ReadAll(body)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidJSON, err)
		}
		if int64(len(data)) > cfg.maxBytes {
			return fmt.Errorf("%w: limit is %d bytes", ErrBodyTooLarge, cfg.maxBytes)
		}

		dec := json.NewDecoder(bytes.NewReader(data))
		if !cfg.allowUnknown {
			dec.DisallowUnknownFields()
		}
		if err := dec.Decode(v); err != nil {
			if errors.Is(err, io.EOF) {
				return fmt.Errorf("%w: empty body", ErrInvalidJSON)
			}
			return fmt.Errorf("%w: %w", ErrInvalidJSON, err)
		}

		var extra json.RawMessage
		if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: unexpected data after JSON value", ErrInvalidJSON)
		}
		return nil
	}
}

func checkContentType(contentType string, required bool) error {
	if contentType == "" {
		if required {
			return fmt.Errorf("%w: expected application/json", ErrMissingContentType)
		}
		return nil
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil || mediaType != "application/json" {
		return fmt.Errorf("%w: got %s, expected application/json", ErrUnsupportedMediaType, contentType)
	}
	return nil
}
