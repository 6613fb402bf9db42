package update

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ghtimeline/timeline/handler"
	"github.com/ghtimeline/timeline/svc/delivery"
	"github.com/ghtimeline/timeline/svc/timeline"
	updatesvc "github.com/ghtimeline/timeline/svc/update"
)

// Scope is the operator token scope that guards this module when JWT
// authentication is configured.
const Scope = "digest:send"

type Service interface {
	Trigger(ctx context.Context) (updatesvc.TriggerResult, error)
	Preview(ctx context.Context) (updatesvc.Preview, error)
}

type Module struct {
	svc         Service
	log         *slog.Logger
	middlewares []func(http.Handler) http.Handler
}

type Option func(*Module)

// WithMiddleware wraps every route of the module, e.g. with the operator
// token guard.
func WithMiddleware(mw ...func(http.Handler) http.Handler) Option {
	return func(m *Module) { m.middlewares = append(m.middlewares, mw...) }
}

func New(svc Service, log *slog.Logger, opts ...Option) *Module {
	if log == nil {
		log = slog.Default()
	}
	m := &Module{svc: svc, log: log}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Module) Handle() http.Handler {
	r := chi.NewRouter()
	r.Use(m.middlewares...)

	r.Post("/trigger", handler.Wrap(m.trigger,
		handler.WithErrorHandler[handler.Context, struct{}](handler.NewErrorHandler(m.log, feedErrors("Failed to send updates"))),
	))
	r.Get("/preview", handler.Wrap(m.preview,
		handler.WithErrorHandler[handler.Context, struct{}](handler.NewErrorHandler(m.log, feedErrors("Failed to fetch GitHub timeline preview"))),
	))
	return r
}

type TriggerData struct {
	TotalSubscribers int                `json:"total_subscribers"`
	EmailsSent       int                `json:"emails_sent"`
	EmailsFailed     int                `json:"emails_failed"`
	EventsCount      int                `json:"events_count"`
	Errors           []delivery.Failure `json:"errors,omitempty"`
	ArchiveKey       string             `json:"archive_key,omitempty"`
}

type TriggerResponse struct {
	Success          bool         `json:"success"`
	Message          string       `json:"message"`
	SubscribersCount *int         `json:"subscribers_count,omitempty"`
	Data             *TriggerData `json:"data,omitempty"`
}

type PreviewResponse struct {
	Success      bool             `json:"success"`
	EventsCount  int              `json:"events_count"`
	Events       []timeline.Event `json:"events"`
	EmailPreview string           `json:"email_preview"`
}

func (m *Module) trigger(ctx handler.Context, _ struct{}) handler.Response {
	res, err := m.svc.Trigger(ctx)
	if err != nil {
		return handler.Error(err)
	}

	switch res.Status {
	case updatesvc.StatusNoSubscribers:
		zero := 0
		return handler.JSON(TriggerResponse{
			Success:          true,
			Message:          "No active subscribers found",
			SubscribersCount: &zero,
		})
	case updatesvc.StatusNoEvents:
		return handler.JSON(TriggerResponse{
			Success: false,
			Message: "No GitHub events found to send",
		})
	}

	return handler.JSON(TriggerResponse{
		Success: true,
		Message: "GitHub timeline updates sent successfully!",
		Data: &TriggerData{
			TotalSubscribers: res.TotalSubscribers,
			EmailsSent:       res.Delivery.Sent,
			EmailsFailed:     res.Delivery.Failed,
			EventsCount:      res.EventsCount,
			Errors:           res.Delivery.Errors,
			ArchiveKey:       res.ArchiveKey,
		},
	})
}

func (m *Module) preview(ctx handler.Context, _ struct{}) handler.Response {
	p, err := m.svc.Preview(ctx)
	if err != nil {
		return handler.Error(err)
	}
	return handler.JSON(PreviewResponse{
		Success:      true,
		EventsCount:  p.EventsCount,
		Events:       p.Events,
		EmailPreview: p.HTML,
	})
}

// feedErrors maps upstream throttling to 429 and every other failure to a
// 500 carrying msg.
func feedErrors(msg string) handler.ErrorMapper {
	return func(err error) (handler.HTTPError, bool) {
		if retry, ok := timeline.RetryAfter(err); ok {
			return handler.ErrTooManyRequests.
				WithMessage("GitHub API rate limit reached, please retry later").
				WithRetryAfter(retry).
				WithCause(err), true
		}
		var httpErr handler.HTTPError
		if errors.As(err, &httpErr) {
			return handler.HTTPError{}, false
		}
		return handler.ErrInternal.WithMessage(msg).WithCause(err), true
	}
}
