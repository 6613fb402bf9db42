package cors_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ghtimeline/timeline/pkg/cors"
)

func testConfig() cors.Config {
	return cors.Config{
		AllowedOrigins:   []string{"http://localhost:5173", "https://timeline99.vercel.app/"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           10 * time.Minute,
	}
}

func serve(cfg cors.Config, req *http.Request) (*httptest.ResponseRecorder, bool) {
	reached := false
	h := cors.Middleware(cfg)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		reached = true
		w.WriteHeader(http.StatusOK)
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec, reached
}

func TestMiddleware_SimpleRequests(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		origin      string
		allowOrigin string
	}{
		{"allowed origin", "http://localhost:5173", "http://localhost:5173"},
		{"allowed origin configured with trailing slash", "https://timeline99.vercel.app", "https://timeline99.vercel.app"},
		{"unknown origin", "https://evil.example", ""},
		{"no origin", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodPost, "/signup", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			rec, reached := serve(testConfig(), req)

			assert.True(t, reached)
			assert.Equal(t, tt.allowOrigin, rec.Header().Get("Access-Control-Allow-Origin"))
			if tt.allowOrigin != "" {
				assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
				assert.Equal(t, "X-Request-Id", rec.Header().Get("Access-Control-Expose-Headers"))
				assert.Contains(t, rec.Header().Values("Vary"), "Origin")
			}
		})
	}
}

func TestMiddleware_Preflight(t *testing.T) {
	t.Parallel()

	preflight := func(origin, method string) *http.Request {
		req := httptest.NewRequest(http.MethodOptions, "/signup", nil)
		req.Header.Set("Origin", origin)
		req.Header.Set("Access-Control-Request-Method", method)
		return req
	}

	rec, reached := serve(testConfig(), preflight("http://localhost:5173", "POST"))
	assert.False(t, reached)
	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "POST", rec.Header().Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "600", rec.Header().Get("Access-Control-Max-Age"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))

	rec, reached = serve(testConfig(), preflight("http://localhost:5173", "PATCH"))
	assert.False(t, reached)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Methods"))

	rec, reached = serve(testConfig(), preflight("https://evil.example", "POST"))
	assert.False(t, reached)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestMiddleware_Wildcard(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.AllowedOrigins = []string{"*"}
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "https://anything.example")

	rec, _ := serve(cfg, req)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
