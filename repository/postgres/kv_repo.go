package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fastygo/cooltodo/domain"
	"github.com/fastygo/cooltodo/repository"
)

type kvRepository struct {
	pool *pgxpool.Pool
}

// NewKVRepository returns a Postgres-backed KeyValueStore over the snapshots table.
func NewKVRepository(pool *pgxpool.Pool) repository.KeyValueStore {
	return &kvRepository{pool: pool}
}

func (r *kvRepository) Load(ctx context.Context, key string) ([]byte, error) {
	const query = `
	SELECT value
	FROM snapshots
	WHERE key = $1
	`
	var value []byte
	if err := r.pool.QueryRow(ctx, query, key).Scan(&value); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSnapshotNotFound
		}
		return nil, err
	}
	return value, nil
}

func (r *kvRepository) Save(ctx context.Context, key string, value []byte) error {
	const query = `
	INSERT INTO snapshots (key, value, updated_at)
	VALUES ($1, $2, NOW())
	ON CONFLICT (key) DO UPDATE
	SET value = EXCLUDED.value,
		updated_at = NOW()
	`
	_, err := r.pool.Exec(ctx, query, key, value)
	return err
}

func (r *kvRepository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

func (r *kvRepository) Close() error {
	r.pool.Close()
	return nil
}
