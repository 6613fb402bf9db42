package jwt_test

import (
	"strings"
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ghtimeline/timeline/pkg/jwt"
)

var testKey = []byte("0123456789abcdef0123456789abcdef")

func TestService_GenerateParse(t *testing.T) {
	t.Parallel()

	svc, err := jwt.New(testKey, jwt.WithIssuer("ghtimeline"), jwt.WithTTL(time.Minute))
	require.NoError(t, err)

	token, err := svc.Generate("ops", "digest:send", "digest:preview")
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(token, "."))

	claims, err := svc.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "ops", claims.Subject)
	assert.Equal(t, "ghtimeline", claims.Issuer)
	assert.NotEmpty(t, claims.ID)
	assert.True(t, claims.HasScope("digest:send"))
	assert.False(t, claims.HasScope("admin"))
}

func TestService_ParseFailures(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	issuer, err := jwt.New(testKey, jwt.WithIssuer("ghtimeline"), jwt.WithTTL(time.Minute), jwt.WithClock(clock))
	require.NoError(t, err)
	token, err := issuer.Generate("ops")
	require.NoError(t, err)

	later, err := jwt.New(testKey, jwt.WithIssuer("ghtimeline"), jwt.WithClock(func() time.Time { return now.Add(2 * time.Minute) }))
	require.NoError(t, err)
	otherKey, err := jwt.New([]byte("another-key-another-key-another!"), jwt.WithIssuer("ghtimeline"), jwt.WithClock(clock))
	require.NoError(t, err)
	otherIssuer, err := jwt.New(testKey, jwt.WithIssuer("someone-else"), jwt.WithClock(clock))
	require.NoError(t, err)
	same, err := jwt.New(testKey, jwt.WithIssuer("ghtimeline"), jwt.WithClock(clock))
	require.NoError(t, err)

	none, err := gojwt.NewWithClaims(gojwt.SigningMethodNone, gojwt.RegisteredClaims{
		Issuer:    "ghtimeline",
		ExpiresAt: gojwt.NewNumericDate(now.Add(time.Hour)),
	}).SignedString(gojwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	noExpiry, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, gojwt.RegisteredClaims{Issuer: "ghtimeline"}).SignedString(testKey)
	require.NoError(t, err)

	tests := []struct {
		name  string
		svc   *jwt.Service
		token string
		err   error
	}{
		{"expired", later, token, jwt.ErrExpiredToken},
		{"wrong key", otherKey, token, jwt.ErrInvalidSignature},
		{"wrong issuer", otherIssuer, token, jwt.ErrInvalidToken},
		{"alg none", same, none, jwt.ErrInvalidSignature},
		{"no expiry", same, noExpiry, jwt.ErrInvalidToken},
		{"garbage", same, "not.a.token", jwt.ErrInvalidToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := tt.svc.Parse(tt.token)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestNew_Validation(t *testing.T) {
	t.Parallel()

	_, err := jwt.New(nil)
	assert.ErrorIs(t, err, jwt.ErrMissingSigningKey)

	_, err = jwt.New(testKey, jwt.WithTTL(0))
	assert.ErrorIs(t, err, jwt.ErrInvalidTTL)

	_, err = jwt.NewFromConfig(jwt.Config{})
	assert.ErrorIs(t, err, jwt.ErrMissingSigningKey)
	assert.False(t, jwt.Config{}.Enabled())
	assert.True(t, jwt.Config{Secret: "x"}.Enabled())
}
