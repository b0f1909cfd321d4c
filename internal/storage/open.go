package storage

import (
	"context"
	"fmt"

	"greenpatch/internal/config"
)

// Open builds the backend selected by cfg.
func Open(ctx context.Context, cfg *config.StorageConfig) (KV, error) {
	if cfg == nil {
		cfg = config.DefaultStorageConfig()
	}
	switch cfg.Backend {
	case config.BackendMemory, "":
		return NewMemoryKV(), nil
	case config.BackendFile:
		return NewFileKV(cfg.Path)
	case config.BackendSQLite:
		return NewSQLiteKV(cfg.Path)
	case config.BackendRedis:
		return NewRedisKV(ctx, cfg.RedisAddr)
	case config.BackendPostgres:
		return NewPostgresKV(cfg.URI)
	case config.BackendMongo:
		return NewMongoKV(cfg.URI, cfg.MongoDB)
	default:
		return nil, fmt.Errorf("unsupported storage backend %q", cfg.Backend)
	}
}
