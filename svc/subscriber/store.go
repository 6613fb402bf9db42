package subscriber

import (
	"context"

	"github.com/google/uuid"
)

// Store is the only writer of subscriber state.
type Store interface {
	// ListActive returns active subscribers ordered by signup time.
	ListActive(ctx context.Context) ([]Subscriber, error)
	FindByEmail(ctx context.Context, email string) (Subscriber, error)
	Insert(ctx context.Context, email string) (Subscriber, error)
	Reactivate(ctx context.Context, id uuid.UUID) (Subscriber, error)
	ActiveCount(ctx context.Context) (int, error)
}
