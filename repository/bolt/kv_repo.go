package bolt

import (
	"context"

	"github.com/fastygo/cooltodo/domain"
	"github.com/fastygo/cooltodo/internal/infrastructure/kv"
	"github.com/fastygo/cooltodo/repository"
)

type kvRepository struct {
	store *kv.Store
}

// NewKVRepository returns a BoltDB-backed KeyValueStore.
func NewKVRepository(store *kv.Store) repository.KeyValueStore {
	return &kvRepository{store: store}
}

func (r *kvRepository) Load(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	value, found, err := r.store.Get(key)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, domain.ErrSnapshotNotFound
	}
	return value, nil
}

func (r *kvRepository) Save(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.store.Put(key, value)
}

func (r *kvRepository) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := r.store.Size()
	return err
}

func (r *kvRepository) Close() error {
	return r.store.Close()
}
