package subscriber

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ghtimeline/timeline/pkg/email"
	"github.com/ghtimeline/timeline/pkg/email/templates"
	"github.com/ghtimeline/timeline/pkg/logger"
	"github.com/ghtimeline/timeline/pkg/sanitizer"
	"github.com/ghtimeline/timeline/pkg/statemachine"
	"github.com/ghtimeline/timeline/pkg/validator"
)

const (
	minEmailLen = 5
	maxEmailLen = 254
)

// Event drives the subscription lifecycle.
type Event string

const EventSubscribe Event = "subscribe"

type Config struct {
	WelcomeTimeout time.Duration `env:"WELCOME_EMAIL_TIMEOUT" envDefault:"10s"`
}

// Service owns the signup lifecycle: unknown and inactive addresses become
// active, active ones are rejected.
type Service struct {
	store   Store
	mailer  email.EmailSender
	machine *statemachine.Machine[State, Event]
	log     *slog.Logger
	metrics *Metrics
	cfg     Config
}

type Option func(*Service)

func WithLogger(log *slog.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

func WithMetrics(m *Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func WithConfig(cfg Config) Option {
	return func(s *Service) { s.cfg = cfg }
}

func NewService(store Store, mailer email.EmailSender, opts ...Option) *Service {
	s := &Service{
		store:  store,
		mailer: mailer,
		log:    slog.Default(),
		cfg:    Config{WelcomeTimeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With(logger.Component("subscriber"))
	s.machine = statemachine.MustNew(
		statemachine.WithTransition(StateUnknown, StateActive, EventSubscribe,
			statemachine.WithAction[State, Event](s.insert)),
		statemachine.WithTransition(StateInactive, StateActive, EventSubscribe,
			statemachine.WithAction[State, Event](s.reactivate)),
	)
	return s
}

// attempt carries one signup through the state machine actions.
type attempt struct {
	email   string
	current Subscriber
	result  SignupResult
}

func (s *Service) insert(ctx context.Context, _, _ State, _ Event, data any) error {
	a := data.(*attempt)
	sub, err := s.store.Insert(ctx, a.email)
	if err != nil {
		return err
	}
	a.result = SignupResult{Outcome: OutcomeSubscribed, Subscriber: sub}
	return nil
}

func (s *Service) reactivate(ctx context.Context, _, _ State, _ Event, data any) error {
	a := data.(*attempt)
	sub, err := s.store.Reactivate(ctx, a.current.ID)
	if err != nil {
		return err
	}
	a.result = SignupResult{Outcome: OutcomeReactivated, Subscriber: sub}
	return nil
}

// Signup normalizes and validates rawEmail, then moves it to the active
// state. Validation failures are validator.ValidationErrors; an already
// active address yields ErrAlreadySubscribed. The welcome mail never
// affects the result.
func (s *Service) Signup(ctx context.Context, rawEmail string) (SignupResult, error) {
	addr := sanitizer.NormalizeEmail(rawEmail)
	if err := validateEmail(addr); err != nil {
		s.metrics.signup("invalid")
		return SignupResult{}, err
	}

	state, current, err := s.stateOf(ctx, addr)
	if err != nil {
		s.metrics.signup("error")
		return SignupResult{}, err
	}

	a := &attempt{email: addr, current: current}
	if _, err := s.machine.Fire(ctx, state, EventSubscribe, a); err != nil {
		if statemachine.IsNoTransition(err) || errors.Is(err, ErrConflict) {
			s.metrics.signup("duplicate")
			return SignupResult{}, ErrAlreadySubscribed
		}
		s.metrics.signup("error")
		return SignupResult{}, fmt.Errorf("signup: %w", err)
	}

	s.metrics.signup(string(a.result.Outcome))
	s.log.InfoContext(ctx, "subscriber activated",
		logger.Event(string(a.result.Outcome)),
		logger.Email(addr),
	)
	s.sendWelcome(ctx, addr)
	return a.result, nil
}

func (s *Service) stateOf(ctx context.Context, addr string) (State, Subscriber, error) {
	sub, err := s.store.FindByEmail(ctx, addr)
	switch {
	case errors.Is(err, ErrNotFound):
		return StateUnknown, Subscriber{}, nil
	case err != nil:
		return "", Subscriber{}, err
	case sub.IsActive:
		return StateActive, sub, nil
	default:
		return StateInactive, sub, nil
	}
}

func (s *Service) sendWelcome(ctx context.Context, addr string) {
	if s.mailer == nil {
		return
	}
	ctx = context.WithoutCancel(ctx)
	if s.cfg.WelcomeTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.WelcomeTimeout)
		defer cancel()
	}

	body, err := templates.Render(ctx, WelcomeEmail(addr))
	if err == nil {
		err = s.mailer.SendEmail(ctx, email.SendEmailParams{
			SendTo:   addr,
			Subject:  WelcomeSubject,
			BodyHTML: body,
			Tag:      "welcome",
		})
	}
	if err != nil {
		s.metrics.welcomeFailed()
		s.log.WarnContext(ctx, "welcome email failed", logger.Email(addr), logger.Error(err))
	}
}

func (s *Service) ActiveCount(ctx context.Context) (int, error) {
	return s.store.ActiveCount(ctx)
}

func validateEmail(addr string) error {
	tooShort := validator.MinLenString("email", addr, minEmailLen)
	tooLong := validator.MaxLenString("email", addr, maxEmailLen)
	lengthMsg := fmt.Sprintf("Email must be between %d and %d characters", minEmailLen, maxEmailLen)
	tooShort.Error.Message = lengthMsg
	tooLong.Error.Message = lengthMsg

	return validator.FirstFailure(
		validator.RequiredString("email", addr),
		validator.ValidEmail("email", addr),
		tooShort,
		tooLong,
	)
}
