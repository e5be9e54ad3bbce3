package bootstrap

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/aura-blueprint/aura/config"
	"github.com/aura-blueprint/aura/internal/history"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// OpenHistory opens the durable backend selected by HISTORY_BACKEND and
// wraps it in a bounded store. The store is not loaded yet. The returned
// closer releases the backend.
func OpenHistory(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*history.History, io.Closer, error) {
	var (
		backend history.Backend
		closer  io.Closer = nopCloser{}
	)

	switch cfg.History.Backend {
	case "memory":
		backend = history.NewMemoryBackend()
	case "redis":
		client, err := OpenRedis(ctx, RedisOptions{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, nil, err
		}
		backend, closer = history.NewRedisBackend(client, 0), client
	case "", "sqlite":
		db, err := history.OpenSQLite(cfg.History.Path)
		if err != nil {
			return nil, nil, err
		}
		backend, closer = db, db
	default:
		return nil, nil, fmt.Errorf("unknown history backend %q", cfg.History.Backend)
	}

	store := history.New(backend, history.WithKey(cfg.History.Key), history.WithLogger(logger))
	return store, closer, nil
}
