// Package binder decodes HTTP request bodies into typed request structs for
// handler.Wrap. BindJSON decodes one JSON value strictly (unknown fields
// rejected unless allowed). BindForm maps url-encoded form fields onto
// struct fields by their `form` tag. BindBody picks between the two by
// Content-Type. Every binder caps the body size.
package binder
