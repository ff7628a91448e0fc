// Package repository selects the record store backend named by the
// configuration.
package repository

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dayflow-hr/hrms-backend-go/internal/config"
	"github.com/dayflow-hr/hrms-backend-go/internal/domain/auth"
	"github.com/dayflow-hr/hrms-backend-go/internal/domain/record"
	"github.com/dayflow-hr/hrms-backend-go/internal/pkg/database"
	"github.com/dayflow-hr/hrms-backend-go/internal/repository/memory"
	"github.com/dayflow-hr/hrms-backend-go/internal/repository/postgresql"
	"github.com/dayflow-hr/hrms-backend-go/internal/repository/redis"
	goredis "github.com/redis/go-redis/v9"
)

// Backend is an opened record store plus the session store that goes with it.
type Backend struct {
	Store    record.Store
	Sessions auth.SessionRepository
	closers  []func()
}

func (b *Backend) Close() {
	for i := len(b.closers) - 1; i >= 0; i-- {
		b.closers[i]()
	}
}

// Open connects to the backend selected by cfg.Store.Driver. Sessions live in
// Redis for the redis driver and in process memory otherwise.
func Open(ctx context.Context, cfg *config.Config) (*Backend, error) {
	switch cfg.Store.Driver {
	case config.StoreMemory:
		slog.Info("using in-memory record store")
		return &Backend{Store: memory.NewStore(), Sessions: memory.NewSessionRepository()}, nil

	case config.StorePostgres:
		db, err := database.NewPostgreSQLDB(ctx, cfg.Database.URL())
		if err != nil {
			return nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		slog.Info("using postgres record store", "host", cfg.Database.Host, "database", cfg.Database.Name)
		return &Backend{
			Store:    postgresql.NewRecordStore(db),
			Sessions: memory.NewSessionRepository(),
			closers:  []func(){db.Close},
		}, nil

	case config.StoreRedis:
		rdb := goredis.NewClient(&goredis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			_ = rdb.Close()
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		slog.Info("using redis record store", "addr", cfg.Redis.Addr, "prefix", cfg.Redis.KeyPrefix)
		return &Backend{
			Store:    redis.NewStore(rdb, cfg.Redis.KeyPrefix),
			Sessions: redis.NewSessionRepository(rdb, cfg.Redis.KeyPrefix),
			closers:  []func(){func() { _ = rdb.Close() }},
		}, nil
	}
	return nil, fmt.Errorf("unsupported store driver %q", cfg.Store.Driver)
}
