package subscriber

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ghtimeline/timeline/pkg/pg"
)

const columns = "id, email, is_active, subscribed_at"

// PostgresStore keeps subscribers in the email_subscribers table.
type PostgresStore struct {
	pool    *pgxpool.Pool
	timeout time.Duration
}

// NewPostgresStore bounds each call by timeout; zero disables the bound.
func NewPostgresStore(pool *pgxpool.Pool, timeout time.Duration) *PostgresStore {
	return &PostgresStore{pool: pool, timeout: timeout}
}

func (s *PostgresStore) ctx(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.timeout)
}

func (s *PostgresStore) ListActive(ctx context.Context) ([]Subscriber, error) {
	ctx, cancel := s.ctx(ctx)
	defer cancel()

	rows, err := s.pool.Query(ctx,
		"SELECT "+columns+" FROM email_subscribers WHERE is_active = true ORDER BY subscribed_at, id")
	if err != nil {
		return nil, storeErr("list active", err)
	}
	subs, err := pgx.CollectRows(rows, func(r pgx.CollectableRow) (Subscriber, error) {
		return scanSubscriber(r)
	})
	if err != nil {
		return nil, storeErr("list active", err)
	}
	return subs, nil
}

func (s *PostgresStore) FindByEmail(ctx context.Context, email string) (Subscriber, error) {
	ctx, cancel := s.ctx(ctx)
	defer cancel()

	row := s.pool.QueryRow(ctx, "SELECT "+columns+" FROM email_subscribers WHERE email = $1", email)
	sub, err := scanSubscriber(row)
	if pg.IsNotFoundError(err) {
		return Subscriber{}, ErrNotFound
	}
	if err != nil {
		return Subscriber{}, storeErr("find by email", err)
	}
	return sub, nil
}

func (s *PostgresStore) Insert(ctx context.Context, email string) (Subscriber, error) {
	ctx, cancel := s.ctx(ctx)
	defer cancel()

	id, err := uuid.NewV7()
	if err != nil {
		return Subscriber{}, storeErr("generate id", err)
	}
	row := s.pool.QueryRow(ctx,
		"INSERT INTO email_subscribers (id, email, is_active) VALUES ($1, $2, true) RETURNING "+columns,
		id, email)
	sub, err := scanSubscriber(row)
	if pg.IsDuplicateKeyError(err) {
		return Subscriber{}, ErrConflict
	}
	if err != nil {
		return Subscriber{}, storeErr("insert", err)
	}
	return sub, nil
}

func (s *PostgresStore) Reactivate(ctx context.Context, id uuid.UUID) (Subscriber, error) {
	ctx, cancel := s.ctx(ctx)
	defer cancel()

	row := s.pool.QueryRow(ctx,
		"UPDATE email_subscribers SET is_active = true WHERE id = $1 RETURNING "+columns, id)
	sub, err := scanSubscriber(row)
	if pg.IsNotFoundError(err) {
		return Subscriber{}, ErrNotFound
	}
	if err != nil {
		return Subscriber{}, storeErr("reactivate", err)
	}
	return sub, nil
}

func (s *PostgresStore) ActiveCount(ctx context.Context) (int, error) {
	ctx, cancel := s.ctx(ctx)
	defer cancel()

	var n int
	if err := s.pool.QueryRow(ctx,
		"SELECT count(*) FROM email_subscribers WHERE is_active = true").Scan(&n); err != nil {
		return 0, storeErr("count active", err)
	}
	return n, nil
}

func scanSubscriber(row pgx.Row) (Subscriber, error) {
	var sub Subscriber
	err := row.Scan(&sub.ID, &sub.Email, &sub.IsActive, &sub.SubscribedAt)
	return sub, err
}

func storeErr(op string, err error) error {
	return errors.Join(ErrStore, fmt.Errorf("%s: %w", op, err))
}
