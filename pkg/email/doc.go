// Package email is the mail transport used for welcome messages and digests.
//
// Every binding implements EmailSender, one message per call:
//
//   - Brevo: github.com/getbrevo/brevo-go transactional API (default)
//   - Postmark: github.com/mrz1836/postmark
//   - Resend: github.com/resend/resend-go/v2
//   - SMTP: github.com/wneessen/go-mail session with opportunistic STARTTLS
//   - Dev: writes messages to a local directory
//
// New picks the binding from Config.Provider and wraps it with WithTimeout.
// Bindings that can check credentials without sending implement Pinger,
// which Healthcheck uses for readiness and startup probing.
//
// HTML bodies are usually produced with templ components and rendered to a
// string with templates.Render.
package email
