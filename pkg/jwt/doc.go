// Package jwt issues and verifies HS256 operator tokens and provides an HTTP
// middleware that guards routes with them.
//
// Tokens carry the registered claims plus a list of scopes. The middleware
// reads a Bearer token, verifies it, optionally checks a scope and stores
// the claims in the request context:
//
//	svc, err := jwt.NewFromConfig(cfg)
//	r.Use(jwt.Middleware(svc, jwt.RequireScope("digest:send")))
//
// Parsing accepts only HS256, requires an expiry and checks the issuer when
// one is configured.
package jwt
