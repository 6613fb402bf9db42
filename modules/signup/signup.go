package signup

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ghtimeline/timeline/binder"
	"github.com/ghtimeline/timeline/handler"
	"github.com/ghtimeline/timeline/pkg/validator"
	"github.com/ghtimeline/timeline/svc/subscriber"
)

type Service interface {
	Signup(ctx context.Context, email string) (subscriber.SignupResult, error)
	ActiveCount(ctx context.Context) (int, error)
}

type Module struct {
	svc         Service
	log         *slog.Logger
	middlewares []func(http.Handler) http.Handler
}

type Option func(*Module)

// WithMiddleware wraps POST / only, e.g. with a rate limiter.
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

	r.With(m.middlewares...).Post("/", handler.Wrap(m.subscribe,
		handler.WithBinder[handler.Context, Request](binder.BindBody()),
		handler.WithErrorHandler[handler.Context, Request](handler.NewErrorHandler(m.log, signupErrors)),
	))
	r.Get("/count", handler.Wrap(m.count,
		handler.WithErrorHandler[handler.Context, struct{}](handler.NewErrorHandler(m.log, countErrors)),
	))
	return r
}

type Request struct {
	Email string `json:"email" form:"email"`
}

type SubscriberView struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	SubscribedAt time.Time `json:"subscribed_at"`
}

type Response struct {
	Success    bool            `json:"success"`
	Message    string          `json:"message"`
	Subscriber *SubscriberView `json:"subscriber,omitempty"`
}

type CountResponse struct {
	Success           bool `json:"success"`
	ActiveSubscribers int  `json:"active_subscribers"`
}

func (m *Module) subscribe(ctx handler.Context, req Request) handler.Response {
	res, err := m.svc.Signup(ctx, req.Email)
	if err != nil {
		return handler.Error(err)
	}

	if res.Outcome == subscriber.OutcomeReactivated {
		return handler.JSON(Response{
			Success: true,
			Message: "Welcome back! Your subscription has been reactivated.",
		})
	}
	return handler.JSON(Response{
		Success: true,
		Message: "Successfully subscribed! Check your email for confirmation.",
		Subscriber: &SubscriberView{
			ID:           res.Subscriber.ID,
			Email:        res.Subscriber.Email,
			SubscribedAt: res.Subscriber.SubscribedAt,
		},
	}, handler.WithJSONStatus(http.StatusCreated))
}

func (m *Module) count(ctx handler.Context, _ struct{}) handler.Response {
	n, err := m.svc.ActiveCount(ctx)
	if err != nil {
		return handler.Error(err)
	}
	return handler.JSON(CountResponse{Success: true, ActiveSubscribers: n})
}

func signupErrors(err error) (handler.HTTPError, bool) {
	if ve := validator.ExtractValidationErrors(err); ve != nil {
		return handler.ErrBadRequest.
			WithMessage("Invalid email format").
			WithDetails(ve.Details()).
			WithCause(err), true
	}
	switch {
	case errors.Is(err, subscriber.ErrAlreadySubscribed):
		return handler.ErrConflict.WithMessage("Email already subscribed to updates").WithCause(err), true
	case errors.Is(err, subscriber.ErrStore):
		return handler.ErrInternal.WithMessage("Failed to subscribe. Please try again later.").WithCause(err), true
	}
	return handler.HTTPError{}, false
}

func countErrors(err error) (handler.HTTPError, bool) {
	if errors.Is(err, subscriber.ErrStore) {
		return handler.ErrInternal.WithMessage("Failed to get subscriber count").WithCause(err), true
	}
	return handler.HTTPError{}, false
}
