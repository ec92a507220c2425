package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres is a KV backed by the kv_store table. It relies on the prepared
// statements registered by db.New.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres wraps a pool created by db.New.
func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

// Get returns the entry for key, if any.
func (p *Postgres) Get(ctx context.Context, key string) (Entry, bool, error) {
	var e Entry
	err := p.pool.QueryRow(ctx, "kv_get", key).Scan(&e.Value, &e.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, fmt.Errorf("get %s: %w", key, err)
	}
	return e, true, nil
}

// Put upserts value under key.
func (p *Postgres) Put(ctx context.Context, key, value string) error {
	if _, err := p.pool.Exec(ctx, "kv_put", key, value); err != nil {
		return fmt.Errorf("put %s: %w", key, err)
	}
	return nil
}

// Take deletes and returns the entry in a single DELETE ... RETURNING, so two
// concurrent callers can never both receive the value.
func (p *Postgres) Take(ctx context.Context, key string) (Entry, bool, error) {
	var e Entry
	err := p.pool.QueryRow(ctx, "kv_take", key).Scan(&e.Value, &e.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, fmt.Errorf("take %s: %w", key, err)
	}
	return e, true, nil
}

// Delete removes key. Deleting a missing key is not an error.
func (p *Postgres) Delete(ctx context.Context, key string) error {
	if _, err := p.pool.Exec(ctx, "kv_delete", key); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}
