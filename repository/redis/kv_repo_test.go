package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	redislib "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/cooltodo/domain"
	"github.com/fastygo/cooltodo/repository"
)

func newRepo(t *testing.T) (repository.KeyValueStore, *miniredis.Miniredis) {
	t.Helper()
	server := miniredis.RunT(t)
	client := redislib.NewClient(&redislib.Options{Addr: server.Addr()})
	return NewKVRepository(client, "cooltodo:"), server
}

func TestKVRepository(t *testing.T) {
	ctx := context.Background()
	repo, server := newRepo(t)
	defer repo.Close()

	_, err := repo.Load(ctx, "cool-todo-v1-todos")
	assert.ErrorIs(t, err, domain.ErrSnapshotNotFound)

	require.NoError(t, repo.Save(ctx, "cool-todo-v1-todos", []byte(`[]`)))
	raw, err := repo.Load(ctx, "cool-todo-v1-todos")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[]`), raw)

	stored, err := server.Get("cooltodo:cool-todo-v1-todos")
	require.NoError(t, err)
	assert.Equal(t, `[]`, stored)
	assert.Zero(t, server.TTL("cooltodo:cool-todo-v1-todos"))

	pinger, ok := repo.(repository.Pinger)
	require.True(t, ok)
	assert.NoError(t, pinger.Ping(ctx))
}
