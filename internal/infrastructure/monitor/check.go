package monitor

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/fastygo/cooltodo/domain"
	"github.com/fastygo/cooltodo/repository"
)

// Monitor reports reachability of the configured store and the size of each slot.
type Monitor struct {
	backend string
	store   repository.KeyValueStore
	keys    []string
	logger  *zap.Logger
}

func New(backend string, store repository.KeyValueStore, keys []string, logger *zap.Logger) *Monitor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Monitor{
		backend: backend,
		store:   store,
		keys:    keys,
		logger:  logger,
	}
}

// Check pings the store when it supports it and measures every slot in bytes.
// Missing slots report 0.
func (m *Monitor) Check(ctx context.Context) Status {
	status := Status{
		Backend:   m.backend,
		Online:    true,
		Slots:     make(map[string]int, len(m.keys)),
		LastCheck: time.Now(),
	}

	if pinger, ok := m.store.(repository.Pinger); ok {
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()
		if err := pinger.Ping(pingCtx); err != nil {
			m.logger.Warn("store ping failed", zap.String("backend", m.backend), zap.Error(err))
			status.Online = false
			status.Error = err.Error()
			return status
		}
	}

	for _, key := range m.keys {
		raw, err := m.store.Load(ctx, key)
		switch {
		case errors.Is(err, domain.ErrSnapshotNotFound):
			status.Slots[key] = 0
		case err != nil:
			m.logger.Warn("slot size check failed", zap.String("key", key), zap.Error(err))
			status.Online = false
			status.Error = err.Error()
		default:
			status.Slots[key] = len(raw)
		}
	}
	return status
}
