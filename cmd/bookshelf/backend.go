// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/taibuivan/bookshelf/internal/api"
	"github.com/taibuivan/bookshelf/internal/platform/config"
	"github.com/taibuivan/bookshelf/internal/platform/migration"
	pgstore "github.com/taibuivan/bookshelf/internal/platform/postgres"
	redisstore "github.com/taibuivan/bookshelf/internal/platform/redis"
	"github.com/taibuivan/bookshelf/internal/storage"
)

// backend is an opened key-value store with its readiness probe and cleanup.
type backend struct {
	store  storage.Store
	health api.HealthCheck
	close  func()
}

// openBackend connects the storage backend selected by STORAGE_BACKEND.
//
// The postgres backend runs migrations before the pool is opened so the
// kv_entries table exists on first start.
func openBackend(ctx context.Context, cfg *config.Config, log *slog.Logger) (*backend, error) {
	switch cfg.StorageBackend {
	case config.BackendMemory:
		memory := storage.NewMemory()
		log.Warn("storage_memory_backend", slog.String("detail", "state is lost on restart"))
		return &backend{
			store:  memory,
			health: api.HealthCheck{Name: config.BackendMemory, Check: memory.Ping},
			close:  func() {},
		}, nil

	case config.BackendRedis:
		client, err := redisstore.NewClient(ctx, cfg.RedisURL, log)
		if err != nil {
			return nil, err
		}
		store := redisstore.NewStore(client)
		return &backend{
			store:  store,
			health: api.HealthCheck{Name: config.BackendRedis, Check: store.Ping},
			close: func() {
				log.Info("closing_redis_client")
				if cerr := client.Close(); cerr != nil {
					log.Error("redis_close_error", slog.Any("error", cerr))
				}
			},
		}, nil

	case config.BackendPostgres:
		if err := migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log); err != nil {
			return nil, err
		}
		pool, err := pgstore.NewPool(ctx, cfg.DatabaseURL, log)
		if err != nil {
			return nil, err
		}
		store := pgstore.NewStore(pool)
		return &backend{
			store:  store,
			health: api.HealthCheck{Name: config.BackendPostgres, Check: store.Ping},
			close: func() {
				log.Info("closing_postgres_pool")
				pool.Close()
			},
		}, nil
	}

	return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
}
