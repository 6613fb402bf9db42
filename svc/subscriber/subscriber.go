package subscriber

import (
	"time"

	"github.com/google/uuid"
)

// Subscriber is one row of the mailing list, keyed by normalized email.
type Subscriber struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	IsActive     bool      `json:"is_active"`
	SubscribedAt time.Time `json:"subscribed_at"`
}

// State is the lifecycle position of an email address.
type State string

const (
	StateUnknown  State = "unknown"
	StateInactive State = "inactive"
	StateActive   State = "active"
)

// Outcome reports which transition a successful signup took.
type Outcome string

const (
	OutcomeSubscribed  Outcome = "subscribed"
	OutcomeReactivated Outcome = "reactivated"
)

type SignupResult struct {
	Outcome    Outcome
	Subscriber Subscriber
}
