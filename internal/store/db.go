package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore implements Store atop a pgx connection pool, grounded on
// internal/db/db.go's New/Close/Pool wrapper idiom.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// New connects to PostgreSQL and returns a PostgresStore.
func New(ctx context.Context, dsn string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

// Close closes the underlying connection pool.
func (s *PostgresStore) Close() {
	s.pool.Close()
}

// Pool returns the underlying pgx pool, for goose migrations.
func (s *PostgresStore) Pool() *pgxpool.Pool {
	return s.pool
}

var _ Store = (*PostgresStore)(nil)
