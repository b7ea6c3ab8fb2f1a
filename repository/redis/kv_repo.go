package redis

import (
	"context"
	"errors"
	"fmt"

	redislib "github.com/redis/go-redis/v9"

	"github.com/fastygo/cooltodo/domain"
	"github.com/fastygo/cooltodo/repository"
)

type kvRepository struct {
	client *redislib.Client
	prefix string
}

// NewKVRepository creates a Redis-backed KeyValueStore. Values never expire.
func NewKVRepository(client *redislib.Client, prefix string) repository.KeyValueStore {
	return &kvRepository{
		client: client,
		prefix: prefix,
	}
}

func (r *kvRepository) Load(ctx context.Context, key string) ([]byte, error) {
	result, err := r.client.Get(ctx, r.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, redislib.Nil) {
			return nil, domain.ErrSnapshotNotFound
		}
		return nil, err
	}
	return result, nil
}

func (r *kvRepository) Save(ctx context.Context, key string, value []byte) error {
	return r.client.Set(ctx, r.key(key), value, 0).Err()
}

func (r *kvRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *kvRepository) Close() error {
	return r.client.Close()
}

func (r *kvRepository) key(key string) string {
	return fmt.Sprintf("%s%s", r.prefix, key)
}
