package storage

import (
	"context"
	"fmt"

	"github.com/dimitrije/inventory-api/internal/config"
	"github.com/dimitrije/inventory-api/internal/database"
	"github.com/redis/go-redis/v9"
)

// Open connects the configured backend. The returned func releases its
// connections and is never nil on success.
func Open(ctx context.Context, cfg config.StorageConfig) (Store, func(), error) {
	noop := func() {}

	switch cfg.Backend {
	case config.BackendMemory:
		return NewMemoryStore(), noop, nil

	case config.BackendFile:
		store, err := NewFileStore(cfg.Dir)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open file store: %w", err)
		}
		return store, noop, nil

	case config.BackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("failed to connect to redis (%s): %w", cfg.Redis.Addr, err)
		}
		return NewRedisStore(client, cfg.Redis.Prefix), func() { _ = client.Close() }, nil

	case config.BackendS3:
		client, err := NewS3Client(ctx, S3Options{
			Region:    cfg.S3.Region,
			Endpoint:  cfg.S3.Endpoint,
			AccessKey: cfg.S3.AccessKey,
			SecretKey: cfg.S3.SecretKey,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create s3 client: %w", err)
		}
		return NewS3Store(client, cfg.S3.Bucket, cfg.S3.Prefix), noop, nil

	case config.BackendPostgres:
		db, err := database.New(ctx, cfg.Postgres.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := db.Migrate(ctx); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		return NewPostgresStore(db), db.Close, nil
	}

	return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
}
