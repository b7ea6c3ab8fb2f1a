package services

import (
	"context"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/cooltodo/domain"
	"github.com/fastygo/cooltodo/internal/config"
)

func TestOpenStoreBolt(t *testing.T) {
	ctx := context.Background()
	cfg := &config.Config{
		Storage: config.StorageConfig{Backend: config.BackendBolt},
		Bolt:    config.BoltConfig{Path: filepath.Join(t.TempDir(), "nested", "state.db")},
	}

	store, err := OpenStore(ctx, cfg, nil)
	require.NoError(t, err)
	bridge := NewSnapshotBridge(store, nil)
	require.NoError(t, bridge.SaveState(ctx, domain.KindUser, "user", domain.DefaultUser(time.Now())))
	require.NoError(t, store.Close())

	reopened, err := OpenStore(ctx, cfg, nil)
	require.NoError(t, err)
	defer reopened.Close()

	var user domain.User
	found, err := NewSnapshotBridge(reopened, nil).LoadState(ctx, domain.KindUser, "user", &user)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "Cool Todo User", user.Name)
}

func TestOpenStoreUnknownBackend(t *testing.T) {
	_, err := OpenStore(context.Background(), &config.Config{Storage: config.StorageConfig{Backend: "floppy"}}, nil)
	assert.Error(t, err)
}

type countingRefresher struct {
	calls atomic.Int32
}

func (c *countingRefresher) RefreshStreak(context.Context) (int, error) {
	return int(c.calls.Add(1)), nil
}

func TestStreakScheduler(t *testing.T) {
	refresher := &countingRefresher{}

	_, err := NewStreakScheduler(refresher, "not a schedule", time.Second, nil)
	assert.Error(t, err)

	scheduler, err := NewStreakScheduler(refresher, "@every 10ms", time.Second, nil)
	require.NoError(t, err)
	scheduler.Run()
	assert.Equal(t, int32(1), refresher.calls.Load())

	scheduler.Start()
	assert.Eventually(t, func() bool { return refresher.calls.Load() >= 2 }, 2*time.Second, 10*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	scheduler.Stop(ctx)
}
