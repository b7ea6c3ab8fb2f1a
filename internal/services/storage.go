package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/fastygo/cooltodo/internal/config"
	"github.com/fastygo/cooltodo/internal/infrastructure/kv"
	pgInfra "github.com/fastygo/cooltodo/internal/infrastructure/postgres"
	redisInfra "github.com/fastygo/cooltodo/internal/infrastructure/redis"
	"github.com/fastygo/cooltodo/repository"
	boltRepo "github.com/fastygo/cooltodo/repository/bolt"
	"github.com/fastygo/cooltodo/repository/memory"
	pgRepo "github.com/fastygo/cooltodo/repository/postgres"
	redisRepo "github.com/fastygo/cooltodo/repository/redis"
)

// OpenStore connects the key-value backend selected by configuration.
func OpenStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (repository.KeyValueStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	switch cfg.Storage.Backend {
	case config.BackendMemory:
		return memory.NewKVRepository(), nil

	case config.BackendRedis:
		client, err := redisInfra.NewClient(ctx, cfg.Redis, logger)
		if err != nil {
			return nil, fmt.Errorf("redis connection failed: %w", err)
		}
		logger.Debug("using redis store", zap.String("prefix", cfg.Redis.Prefix))
		return redisRepo.NewKVRepository(client, cfg.Redis.Prefix), nil

	case config.BackendPostgres:
		if err := pgInfra.RunMigrations(cfg, logger); err != nil {
			return nil, fmt.Errorf("migrations failed: %w", err)
		}
		pool, err := pgInfra.NewPool(ctx, cfg.Database, logger)
		if err != nil {
			return nil, fmt.Errorf("postgres connection failed: %w", err)
		}
		return pgRepo.NewKVRepository(pool), nil

	case config.BackendBolt, "":
		store, err := kv.Open(cfg.Bolt.Path, cfg.Bolt.Bucket)
		if err != nil {
			return nil, fmt.Errorf("failed to open bolt store: %w", err)
		}
		logger.Debug("using bolt store", zap.String("path", store.Path()))
		return boltRepo.NewKVRepository(store), nil

	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}
