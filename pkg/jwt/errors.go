package jwt

import "errors"

var (
	ErrInvalidToken            = errors.New("jwt: invalid token")
	ErrExpiredToken            = errors.New("jwt: token is expired")
	ErrInvalidSignature        = errors.New("jwt: invalid signature")
	ErrUnexpectedSigningMethod = errors.New("jwt: unexpected signing method")
	ErrMissingSigningKey       = errors.New("jwt: missing signing key")
	ErrMissingToken            = errors.New("jwt: missing bearer token")
	ErrInsufficientScope       = errors.New("jwt: insufficient scope")
	ErrInvalidTTL              = errors.New("jwt: ttl must be positive")
)
