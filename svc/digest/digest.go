package digest

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/a-h/templ"

	"github.com/ghtimeline/timeline/pkg/email/templates"
	"github.com/ghtimeline/timeline/svc/timeline"
)

// Subject is the subject line of every digest mail.
const Subject = "Your GitHub Timeline Update"

// GeneratedLayout formats the footer date like "1/2/2024".
const GeneratedLayout = "1/2/2006"

// Renderer turns a list of events into a standalone HTML document.
type Renderer struct {
	loc *time.Location
}

type Option func(*Renderer)

// WithLocation sets the location used for the footer date.
func WithLocation(loc *time.Location) Option {
	return func(r *Renderer) {
		if loc != nil {
			r.loc = loc
		}
	}
}

func New(opts ...Option) *Renderer {
	r := &Renderer{loc: time.UTC}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render returns the digest document for events.
func (r *Renderer) Render(ctx context.Context, events []timeline.Event, generatedOn time.Time) (string, error) {
	html, err := templates.Render(ctx, r.Component(events, generatedOn))
	if err != nil {
		return "", fmt.Errorf("render digest: %w", err)
	}
	return html, nil
}

// Component exposes the digest as a templ component.
func (r *Renderer) Component(events []timeline.Event, generatedOn time.Time) templ.Component {
	date := generatedOn.In(r.loc).Format(GeneratedLayout)
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		bw := &writer{w: w}
		bw.raw(head)
		bw.raw(`<div style="margin-bottom: 30px;">` +
			`<h2 style="color: #24292e; border-bottom: 2px solid #e1e4e8; padding-bottom: 10px;">Recent Activities</h2>`)
		if len(events) == 0 {
			bw.raw(`<p style="color: #586069;">No recent activity to report.</p>`)
		}
		for _, e := range events {
			if err := ctx.Err(); err != nil {
				return err
			}
			writeEvent(bw, e)
		}
		bw.raw(`</div>`)
		bw.raw(`<div style="border-top: 1px solid #e1e4e8; padding-top: 20px; text-align: center;">` +
			`<p style="color: #586069; font-size: 14px; margin: 0;">🚀 You're receiving this because you subscribed to GitHub Timeline updates</p>` +
			`<p style="color: #586069; font-size: 12px; margin: 5px 0 0 0;">Generated on `)
		bw.text(date)
		bw.raw(`</p></div></body></html>`)
		return bw.err
	})
}

func writeEvent(bw *writer, e timeline.Event) {
	bw.raw(`<div data-event-id="`)
	bw.text(e.ID)
	bw.raw(`" style="margin-bottom: 20px; padding: 15px; border-left: 4px solid #0366d6; background: #f6f8fa; border-radius: 6px;">`)
	bw.raw(`<div style="display: flex; align-items: center; margin-bottom: 8px;"><img src="`)
	bw.url(e.Actor.AvatarURL)
	bw.raw(`" alt="`)
	bw.text(e.Actor.Login)
	bw.raw(`" style="width: 20px; height: 20px; border-radius: 50%; margin-right: 8px;"><strong style="color: #0366d6;">`)
	bw.text(e.Actor.Login)
	bw.raw(`</strong><span style="margin: 0 5px; color: #666;">•</span><small style="color: #666;">`)
	bw.text(e.CreatedAt)
	bw.raw(`</small></div><div style="margin-left: 28px;"><span style="color: #24292e;">`)
	bw.text(e.Action)
	bw.raw(` in</span> <a href="`)
	bw.url(e.Repo.URL)
	bw.raw(`" style="color: #0366d6; text-decoration: none; font-weight: 500;">`)
	bw.text(e.Repo.Name)
	bw.raw(`</a></div></div>`)
}

const head = `<!DOCTYPE html><html><head><meta charset="utf-8">` +
	`<meta name="viewport" content="width=device-width, initial-scale=1.0">` +
	`<title>GitHub Timeline Update</title></head>` +
	`<body style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Helvetica, Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px; background-color: #ffffff;">` +
	`<div style="text-align: center; margin-bottom: 30px; padding: 20px; background: linear-gradient(135deg, #667eea 0%, #764ba2 100%); border-radius: 10px;">` +
	`<h1 style="color: white; margin: 0; font-size: 28px;">🐙 GitHub Timeline Update</h1>` +
	`<p style="color: rgba(255,255,255,0.9); margin: 5px 0 0 0; font-size: 16px;">Latest activities from the GitHub community</p></div>`

// writer keeps the first write error so the component body stays linear.
type writer struct {
	w   io.Writer
	err error
}

func (b *writer) raw(s string) {
	if b.err == nil {
		_, b.err = io.WriteString(b.w, s)
	}
}

func (b *writer) text(s string) {
	b.raw(templ.EscapeString(s))
}

func (b *writer) url(s string) {
	b.raw(templ.EscapeString(string(templ.URL(s))))
}
