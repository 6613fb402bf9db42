package update

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/ghtimeline/timeline/pkg/logger"
	"github.com/ghtimeline/timeline/svc/archive"
	"github.com/ghtimeline/timeline/svc/delivery"
	"github.com/ghtimeline/timeline/svc/digest"
	"github.com/ghtimeline/timeline/svc/subscriber"
	"github.com/ghtimeline/timeline/svc/timeline"
)

// ErrRender wraps digest rendering failures.
var ErrRender = errors.New("update: render digest")

type Config struct {
	PreviewEvents int `env:"PREVIEW_EVENT_LIMIT" envDefault:"10"`
}

type SubscriberLister interface {
	ListActive(ctx context.Context) ([]subscriber.Subscriber, error)
}

type Renderer interface {
	Render(ctx context.Context, events []timeline.Event, generatedOn time.Time) (string, error)
}

type Sender interface {
	SendAll(ctx context.Context, addresses []string, content delivery.Content) delivery.Result
}

type Status string

const (
	StatusNoSubscribers Status = "no_subscribers"
	StatusNoEvents      Status = "no_events"
	StatusSent          Status = "sent"
)

type TriggerResult struct {
	Status           Status
	TotalSubscribers int
	EventsCount      int
	Delivery         delivery.Result
	ArchiveKey       string
}

type Preview struct {
	EventsCount int
	Events      []timeline.Event
	HTML        string
}

// Service runs one digest cycle per Trigger call.
type Service struct {
	subscribers SubscriberLister
	feed        timeline.Fetcher
	preview     timeline.Fetcher
	renderer    Renderer
	sender      Sender
	archiver    archive.Archiver
	cfg         Config
	log         *slog.Logger
	tracer      trace.Tracer
	now         func() time.Time
}

type Option func(*Service)

// WithPreviewFetcher sets the fetcher used by Preview, typically a cached
// one. Trigger always uses the fresh feed.
func WithPreviewFetcher(f timeline.Fetcher) Option {
	return func(s *Service) {
		if f != nil {
			s.preview = f
		}
	}
}

func WithArchiver(a archive.Archiver) Option {
	return func(s *Service) {
		if a != nil {
			s.archiver = a
		}
	}
}

func WithConfig(cfg Config) Option {
	return func(s *Service) { s.cfg = cfg }
}

func WithLogger(log *slog.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func NewService(subs SubscriberLister, feed timeline.Fetcher, renderer Renderer, sender Sender, opts ...Option) *Service {
	s := &Service{
		subscribers: subs,
		feed:        feed,
		preview:     feed,
		renderer:    renderer,
		sender:      sender,
		archiver:    archive.Noop{},
		cfg:         Config{PreviewEvents: 10},
		log:         slog.Default(),
		tracer:      otel.Tracer("github.com/ghtimeline/timeline/svc/update"),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With(logger.Component("update"))
	return s
}

// Trigger loads active subscribers, fetches the feed, renders one digest
// and sends it to everyone. With no subscribers the feed is not fetched;
// with no events nothing is sent. Once events are in hand the cycle runs
// to completion even if ctx is canceled.
func (s *Service) Trigger(ctx context.Context) (res TriggerResult, err error) {
	ctx, span := s.tracer.Start(ctx, "update.Trigger")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "trigger failed")
		}
		span.SetAttributes(attribute.String("update.status", string(res.Status)))
		span.End()
	}()

	subs, err := s.subscribers.ListActive(ctx)
	if err != nil {
		return TriggerResult{}, err
	}
	if len(subs) == 0 {
		s.log.InfoContext(ctx, "no active subscribers, skipping feed fetch")
		return TriggerResult{Status: StatusNoSubscribers}, nil
	}
	res.TotalSubscribers = len(subs)

	events, err := s.feed.Fetch(ctx)
	if err != nil {
		return TriggerResult{}, err
	}
	if len(events) == 0 {
		s.log.InfoContext(ctx, "feed returned no events, nothing to send")
		res.Status = StatusNoEvents
		return res, nil
	}
	res.EventsCount = len(events)

	detached := context.WithoutCancel(ctx)
	generated := s.now()
	html, err := s.renderer.Render(detached, events, generated)
	if err != nil {
		return TriggerResult{}, fmt.Errorf("%w: %w", ErrRender, err)
	}

	addrs := make([]string, len(subs))
	for i, sub := range subs {
		addrs[i] = sub.Email
	}

	res.Delivery = s.sender.SendAll(detached, addrs, delivery.Content{
		Subject: digest.Subject,
		HTML:    html,
		Tag:     "digest",
	})
	res.Status = StatusSent

	key, aerr := s.archiver.Archive(detached, archive.Digest{
		HTML:        html,
		EventsCount: len(events),
		Recipients:  len(addrs),
		GeneratedAt: generated,
	})
	if aerr != nil {
		s.log.WarnContext(ctx, "digest archive failed", logger.Error(aerr))
	}
	res.ArchiveKey = key

	s.log.InfoContext(ctx, "digest cycle finished",
		logger.Count("subscribers", res.TotalSubscribers),
		logger.Count("events", res.EventsCount),
		logger.Count("sent", res.Delivery.Sent),
		logger.Count("failed", res.Delivery.Failed),
	)
	return res, nil
}

// Preview renders the digest for the current feed without sending it.
// Events holds at most Config.PreviewEvents entries; EventsCount and the
// document cover the whole feed.
func (s *Service) Preview(ctx context.Context) (Preview, error) {
	ctx, span := s.tracer.Start(ctx, "update.Preview")
	defer span.End()

	events, err := s.preview.Fetch(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "preview failed")
		return Preview{}, err
	}
	html, err := s.renderer.Render(ctx, events, s.now())
	if err != nil {
		return Preview{}, fmt.Errorf("%w: %w", ErrRender, err)
	}

	shown := events
	if limit := s.cfg.PreviewEvents; limit > 0 && len(shown) > limit {
		shown = shown[:limit]
	}
	if shown == nil {
		shown = []timeline.Event{}
	}
	return Preview{EventsCount: len(events), Events: shown, HTML: html}, nil
}

var _ Renderer = (*digest.Renderer)(nil)
var _ Sender = (*delivery.Driver)(nil)
