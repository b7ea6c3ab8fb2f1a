package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/fastygo/cooltodo/domain"
	"github.com/fastygo/cooltodo/repository"
	"github.com/fastygo/cooltodo/usecase"
)

// SnapshotBridge stores state slots as versioned snapshots in a key-value store.
type SnapshotBridge struct {
	kv     repository.KeyValueStore
	logger *zap.Logger
	now    func() time.Time
}

func NewSnapshotBridge(kv repository.KeyValueStore, logger *zap.Logger) *SnapshotBridge {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SnapshotBridge{
		kv:     kv,
		logger: logger,
		now:    time.Now,
	}
}

// LoadState decodes the slot under key into dst, migrating older layouts first.
func (b *SnapshotBridge) LoadState(ctx context.Context, kind, key string, dst interface{}) (bool, error) {
	if b.kv == nil || dst == nil {
		return false, domain.ErrInvalidPayload
	}
	raw, err := b.kv.Load(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrSnapshotNotFound) {
			return false, nil
		}
		return false, err
	}

	snapshot, err := DecodeSnapshot(kind, raw)
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(snapshot.Payload, dst); err != nil {
		return false, domain.WrapError(domain.ErrCodeInvalid, "corrupt "+kind+" payload", err)
	}
	b.logger.Debug("state loaded", zap.String("kind", kind), zap.String("key", key), zap.Int("version", snapshot.Version))
	return true, nil
}

// SaveState writes the full state under key, replacing whatever was there.
func (b *SnapshotBridge) SaveState(ctx context.Context, kind, key string, state interface{}) error {
	if b.kv == nil {
		return domain.ErrInvalidPayload
	}
	payload, err := json.Marshal(state)
	if err != nil {
		return err
	}
	snapshot := domain.Snapshot{
		Version: domain.SnapshotVersion,
		Kind:    kind,
		SavedAt: b.now().UTC(),
		Payload: payload,
	}
	raw, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}
	return b.kv.Save(ctx, key, raw)
}

var _ usecase.StateStore = (*SnapshotBridge)(nil)
