// Package httpserver runs the service's http.Server with configurable
// timeouts and graceful shutdown on SIGINT/SIGTERM or context cancellation.
//
// It also provides the liveness and readiness handlers, plus RunChecks for
// probing dependencies once at startup with the same check functions the
// readiness endpoint uses.
package httpserver
