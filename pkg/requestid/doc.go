// Package requestid assigns a correlation id to each HTTP request.
//
// The id travels in the X-Request-ID header, the request context and, through
// LoggerExtractor, every log line written while serving the request.
package requestid
