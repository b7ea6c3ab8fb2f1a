package memory

import (
	"context"
	"sync"

	"github.com/fastygo/cooltodo/domain"
	"github.com/fastygo/cooltodo/repository"
)

// KVRepository keeps slots in process memory. Used by tests and ephemeral sessions.
type KVRepository struct {
	mu     sync.RWMutex
	values map[string][]byte
	writes int
}

var _ repository.KeyValueStore = (*KVRepository)(nil)

func NewKVRepository() *KVRepository {
	return &KVRepository{values: make(map[string][]byte)}
}

func (r *KVRepository) Load(_ context.Context, key string) ([]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	value, ok := r.values[key]
	if !ok {
		return nil, domain.ErrSnapshotNotFound
	}
	return append([]byte(nil), value...), nil
}

func (r *KVRepository) Save(_ context.Context, key string, value []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values[key] = append([]byte(nil), value...)
	r.writes++
	return nil
}

// Writes returns how many Save calls succeeded.
func (r *KVRepository) Writes() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.writes
}

func (r *KVRepository) Ping(context.Context) error {
	return nil
}

func (r *KVRepository) Close() error {
	return nil
}
