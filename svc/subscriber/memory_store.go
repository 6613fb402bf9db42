package subscriber

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore is a process-local Store for development and tests.
type MemoryStore struct {
	mu      sync.RWMutex
	byEmail map[string]*Subscriber
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{byEmail: make(map[string]*Subscriber), now: time.Now}
}

// WithClock replaces the time source used for SubscribedAt.
func (m *MemoryStore) WithClock(now func() time.Time) *MemoryStore {
	m.now = now
	return m
}

func (m *MemoryStore) ListActive(ctx context.Context) ([]Subscriber, error) {
	if err := ctx.Err(); err != nil {
		return nil, storeErr("list active", err)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Subscriber, 0, len(m.byEmail))
	for _, s := range m.byEmail {
		if s.IsActive {
			out = append(out, *s)
		}
	}
	slices.SortFunc(out, func(a, b Subscriber) int {
		if c := a.SubscribedAt.Compare(b.SubscribedAt); c != 0 {
			return c
		}
		return slices.Compare(a.ID[:], b.ID[:])
	})
	return out, nil
}

func (m *MemoryStore) FindByEmail(ctx context.Context, email string) (Subscriber, error) {
	if err := ctx.Err(); err != nil {
		return Subscriber{}, storeErr("find by email", err)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.byEmail[email]
	if !ok {
		return Subscriber{}, ErrNotFound
	}
	return *s, nil
}

func (m *MemoryStore) Insert(ctx context.Context, email string) (Subscriber, error) {
	if err := ctx.Err(); err != nil {
		return Subscriber{}, storeErr("insert", err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byEmail[email]; ok {
		return Subscriber{}, ErrConflict
	}
	s := &Subscriber{
		ID:           uuid.New(),
		Email:        email,
		IsActive:     true,
		SubscribedAt: m.now().UTC(),
	}
	m.byEmail[email] = s
	return *s, nil
}

func (m *MemoryStore) Reactivate(ctx context.Context, id uuid.UUID) (Subscriber, error) {
	if err := ctx.Err(); err != nil {
		return Subscriber{}, storeErr("reactivate", err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, s := range m.byEmail {
		if s.ID == id {
			s.IsActive = true
			return *s, nil
		}
	}
	return Subscriber{}, ErrNotFound
}

func (m *MemoryStore) ActiveCount(ctx context.Context) (int, error) {
	subs, err := m.ListActive(ctx)
	return len(subs), err
}

// Deactivate marks email inactive. Unsubscribe has no endpoint yet, so
// this exists for seeding and tests.
func (m *MemoryStore) Deactivate(email string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.byEmail[email]
	if ok {
		s.IsActive = false
	}
	return ok
}
