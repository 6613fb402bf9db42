package delivery

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/ghtimeline/timeline/pkg/email"
	"github.com/ghtimeline/timeline/pkg/logger"
)

// Content is the message every recipient of a batch receives.
type Content struct {
	Subject string
	HTML    string
	Tag     string
}

// Failure records one recipient the transport rejected.
type Failure struct {
	Email string `json:"email"`
	Error string `json:"error"`
}

type Result struct {
	Sent   int       `json:"emails_sent"`
	Failed int       `json:"emails_failed"`
	Errors []Failure `json:"errors,omitempty"`
}

// Driver sends one message per address with a fixed pause between sends.
// Individual failures are recorded, never returned.
type Driver struct {
	mailer  email.EmailSender
	cfg     Config
	log     *slog.Logger
	metrics *Metrics
	tracer  trace.Tracer
	sleep   func(ctx context.Context, d time.Duration)
	now     func() time.Time
}

type Option func(*Driver)

func WithLogger(log *slog.Logger) Option {
	return func(d *Driver) {
		if log != nil {
			d.log = log
		}
	}
}

func WithMetrics(m *Metrics) Option {
	return func(d *Driver) { d.metrics = m }
}

// WithSleeper replaces the pause between sends.
func WithSleeper(sleep func(ctx context.Context, d time.Duration)) Option {
	return func(d *Driver) {
		if sleep != nil {
			d.sleep = sleep
		}
	}
}

func New(mailer email.EmailSender, cfg Config, opts ...Option) *Driver {
	d := &Driver{
		mailer: mailer,
		cfg:    cfg,
		log:    slog.Default(),
		tracer: otel.Tracer("github.com/ghtimeline/timeline/svc/delivery"),
		sleep:  sleepCtx,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	d.log = d.log.With(logger.Component("delivery"))
	return d
}

// SendAll delivers content to every address in input order. An empty list
// returns a zero Result without touching the transport.
func (d *Driver) SendAll(ctx context.Context, addresses []string, content Content) Result {
	if len(addresses) == 0 {
		return Result{Errors: []Failure{}}
	}

	ctx, span := d.tracer.Start(ctx, "delivery.SendAll",
		trace.WithAttributes(attribute.Int("delivery.recipients", len(addresses))))
	defer span.End()

	start := d.now()
	errs := make([]error, len(addresses))
	if workers := d.cfg.workers(); workers > 1 {
		d.sendConcurrent(ctx, addresses, content, errs, workers)
	} else {
		d.sendSequential(ctx, addresses, content, errs)
	}

	res := Result{Errors: []Failure{}}
	for i, err := range errs {
		if err == nil {
			res.Sent++
			continue
		}
		res.Failed++
		res.Errors = append(res.Errors, Failure{Email: addresses[i], Error: oneLine(err)})
	}

	elapsed := d.now().Sub(start)
	d.metrics.batch(elapsed.Seconds(), len(addresses))
	span.SetAttributes(
		attribute.Int("delivery.sent", res.Sent),
		attribute.Int("delivery.failed", res.Failed),
	)
	d.log.InfoContext(ctx, "bulk delivery finished",
		logger.Count("sent", res.Sent),
		logger.Count("failed", res.Failed),
		logger.Duration(elapsed),
	)
	return res
}

func (d *Driver) sendSequential(ctx context.Context, addresses []string, content Content, errs []error) {
	for i, addr := range addresses {
		if i > 0 && d.cfg.Interval > 0 {
			d.sleep(ctx, d.cfg.Interval)
		}
		errs[i] = d.sendOne(ctx, addr, content)
	}
}

// sendConcurrent spaces send starts by Interval and keeps at most workers
// sends in flight.
func (d *Driver) sendConcurrent(ctx context.Context, addresses []string, content Content, errs []error, workers int) {
	var g errgroup.Group
	g.SetLimit(workers)
	for i, addr := range addresses {
		if i > 0 && d.cfg.Interval > 0 {
			d.sleep(ctx, d.cfg.Interval)
		}
		g.Go(func() error {
			errs[i] = d.sendOne(ctx, addr, content)
			return nil
		})
	}
	_ = g.Wait()
}

func (d *Driver) sendOne(ctx context.Context, addr string, content Content) error {
	if d.cfg.SendTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.cfg.SendTimeout)
		defer cancel()
	}
	err := d.mailer.SendEmail(ctx, email.SendEmailParams{
		SendTo:   addr,
		Subject:  content.Subject,
		BodyHTML: content.HTML,
		Tag:      content.Tag,
	})
	d.metrics.send(err == nil)
	if err != nil {
		d.log.WarnContext(ctx, "digest send failed", logger.Email(addr), logger.Error(err))
	}
	return err
}

// oneLine flattens multi-line messages, such as those from errors.Join,
// so each failure renders as a single line in the response.
func oneLine(err error) string {
	parts := strings.FieldsFunc(err.Error(), func(r rune) bool { return r == '\n' || r == '\r' })
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return strings.Join(slices.DeleteFunc(parts, func(s string) bool { return s == "" }), ": ")
}

func sleepCtx(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
