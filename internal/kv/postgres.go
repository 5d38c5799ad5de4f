package kv

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"shopswift/internal/logging"
)

type postgresStore struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// NewPostgres stores entries in the kv_entries table created by the embedded
// migrations.
func NewPostgres(pool *pgxpool.Pool, logger *zap.Logger) Store {
	return &postgresStore{pool: pool, logger: logging.OrNop(logger).Named("kv.postgres")}
}

func (r *postgresStore) Get(ctx context.Context, key string) (string, bool, error) {
	const q = `
SELECT value
FROM kv_entries
WHERE key = $1
`
	var value string
	if err := r.pool.QueryRow(ctx, q, key).Scan(&value); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, nil
		}
		r.logger.Warn("get failed", zap.String("key", key), zap.Error(err))
		return "", false, err
	}
	return value, true, nil
}

func (r *postgresStore) Set(ctx context.Context, key, value string) error {
	const q = `
INSERT INTO kv_entries (key, value, updated_at)
VALUES ($1, $2, now())
ON CONFLICT (key) DO UPDATE SET
    value = EXCLUDED.value,
    updated_at = EXCLUDED.updated_at
`
	if _, err := r.pool.Exec(ctx, q, key, value); err != nil {
		r.logger.Warn("set failed", zap.String("key", key), zap.Error(err))
		return err
	}
	return nil
}

func (r *postgresStore) Delete(ctx context.Context, key string) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM kv_entries WHERE key = $1`, key); err != nil {
		r.logger.Warn("delete failed", zap.String("key", key), zap.Error(err))
		return err
	}
	return nil
}

func (r *postgresStore) Ping(ctx context.Context) error {
	if r.pool == nil {
		return ErrUnavailable
	}
	return r.pool.Ping(ctx)
}
