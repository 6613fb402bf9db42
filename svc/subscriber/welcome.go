package subscriber

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

const WelcomeSubject = "Welcome to GitHub Timeline Updates!"

// WelcomeEmail renders the confirmation mail sent after a subscribe or
// reactivate transition.
func WelcomeEmail(recipient string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, welcomeHead); err != nil {
			return err
		}
		if _, err := io.WriteString(w, templ.EscapeString(recipient)); err != nil {
			return err
		}
		_, err := io.WriteString(w, welcomeTail)
		return err
	})
}

const welcomeHead = `<!DOCTYPE html><html><head><meta charset="utf-8">` +
	`<meta name="viewport" content="width=device-width, initial-scale=1.0"></head>` +
	`<body style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Helvetica, Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px; background-color: #f8fafc;">` +
	`<div style="text-align: center; margin-bottom: 30px; padding: 30px; background: linear-gradient(135deg, #667eea 0%, #764ba2 100%); border-radius: 12px; color: white;">` +
	`<div style="font-size: 32px; margin-bottom: 10px;">⚡</div>` +
	`<h1 style="margin: 0 0 8px 0; font-size: 24px; font-weight: 600;">Welcome to GitHub Timeline!</h1>` +
	`<p style="margin: 0; opacity: 0.9; font-size: 16px;">Your gateway to curated developer insights</p></div>` +
	`<div style="background: white; border-radius: 12px; padding: 25px; margin-bottom: 20px; box-shadow: 0 2px 10px rgba(0,0,0,0.1);">` +
	`<h2 style="color: #1a202c; margin: 0 0 15px 0; font-size: 20px;">🎉 You're officially subscribed!</h2>` +
	`<p style="color: #4a5568; margin: 0 0 20px 0; line-height: 1.5;">Thanks for joining! You'll receive curated GitHub timeline updates featuring trending repositories, latest commits, and developer insights.</p>` +
	`<div style="background: #f7fafc; border-radius: 8px; padding: 20px; margin: 20px 0;">` +
	`<h3 style="color: #2d3748; margin: 0 0 12px 0; font-size: 16px;">What to expect:</h3>` +
	`<div style="color: #4a5568; font-size: 14px; line-height: 1.6;">` +
	`✅ Trending repositories and breakthrough projects<br>` +
	`✅ Latest commits and releases from popular repos<br>` +
	`✅ Curated content sent only when there's something worth sharing</div></div></div>` +
	`<div style="background: white; border-radius: 12px; padding: 25px; margin-bottom: 20px; box-shadow: 0 2px 10px rgba(0,0,0,0.1);">` +
	`<h3 style="color: #2d3748; margin: 0 0 15px 0; font-size: 18px;">🎯 What's next?</h3>` +
	`<div style="color: #4a5568; font-size: 14px; line-height: 1.6;">` +
	`<p style="margin: 0 0 10px 0;"><strong>1. Confirmation Complete</strong> - Your subscription is active!</p>` +
	`<p style="margin: 0 0 10px 0;"><strong>2. Smart Delivery</strong> - Updates sent manually when there's existing activity</p>` +
	`<p style="margin: 0;"><strong>3. Stay Informed</strong> - Be the first to discover emerging trends</p></div></div>` +
	`<div style="text-align: center; padding: 20px; color: #718096; font-size: 14px;">` +
	`<p style="margin: 0 0 10px 0; font-weight: 600; color: #2d3748;">GitHub Timeline Updates</p>` +
	`<p style="margin: 0; font-size: 12px;">🔒 Privacy first • 📵 Zero spam • Built for developers</p>` +
	`<div style="margin-top: 15px; padding-top: 15px; border-top: 1px solid #e2e8f0; font-size: 11px; color: #a0aec0;">This email was sent to `

const welcomeTail = ` because you subscribed to GitHub Timeline Updates.</div></div></body></html>`
