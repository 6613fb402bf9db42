package jwt

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
)

// TokenExtractorFunc pulls a raw token out of a request.
type TokenExtractorFunc func(r *http.Request) (string, error)

type middlewareConfig struct {
	extractor    TokenExtractorFunc
	scope        string
	unauthorized func(w http.ResponseWriter, r *http.Request, err error)
}

type MiddlewareOption func(*middlewareConfig)

// WithExtractor replaces Bearer header extraction.
func WithExtractor(fn TokenExtractorFunc) MiddlewareOption {
	return func(c *middlewareConfig) {
		c.extractor = fn
	}
}

// RequireScope rejects tokens that lack scope with 403.
func RequireScope(scope string) MiddlewareOption {
	return func(c *middlewareConfig) {
		c.scope = scope
	}
}

// WithUnauthorizedHandler replaces the default JSON 401/403 body.
func WithUnauthorizedHandler(fn func(w http.ResponseWriter, r *http.Request, err error)) MiddlewareOption {
	return func(c *middlewareConfig) {
		c.unauthorized = fn
	}
}

// Middleware verifies the request token and stores its claims in the context.
func Middleware(svc *Service, opts ...MiddlewareOption) func(http.Handler) http.Handler {
	cfg := &middlewareConfig{extractor: BearerTokenExtractor, unauthorized: writeUnauthorized}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, err := cfg.extractor(r)
			if err != nil {
				cfg.unauthorized(w, r, err)
				return
			}
			claims, err := svc.Parse(raw)
			if err != nil {
				cfg.unauthorized(w, r, err)
				return
			}
			if cfg.scope != "" && !claims.HasScope(cfg.scope) {
				cfg.unauthorized(w, r, ErrInsufficientScope)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

// BearerTokenExtractor reads "Authorization: Bearer <token>".
func BearerTokenExtractor(r *http.Request) (string, error) {
	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return "", ErrMissingToken
	}
	return strings.TrimSpace(token), nil
}

func writeUnauthorized(w http.ResponseWriter, _ *http.Request, err error) {
	status, msg := http.StatusUnauthorized, "Unauthorized"
	if errors.Is(err, ErrInsufficientScope) {
		status, msg = http.StatusForbidden, "Forbidden"
	}
	w.Header().Set("Content-Type", "application/json")
	if status == http.StatusUnauthorized {
		w.Header().Set("WWW-Authenticate", `Bearer realm="timeline"`)
	}
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success": false,
		"error":   msg,
	})
}
