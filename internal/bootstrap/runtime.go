// Package bootstrap wires the process-wide runtime shared by the commands.
package bootstrap

import (
	"fmt"

	"threadly/internal/cache"
	"threadly/internal/config"
	"threadly/internal/database"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// InitRuntime connects to the database and Redis. The Redis client is nil
// when Redis is unreachable; callers run without cache, rate limits fail
// open and notifications are dropped.
func InitRuntime(cfg *config.Config) (*gorm.DB, *redis.Client, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	return db, cache.InitRedis(cfg.RedisURL), nil
}

// Close releases the connections opened by InitRuntime.
func Close(db *gorm.DB, rdb *redis.Client) error {
	var firstErr error
	if db != nil {
		if sqlDB, err := db.DB(); err == nil {
			if cerr := sqlDB.Close(); cerr != nil {
				firstErr = fmt.Errorf("close database: %w", cerr)
			}
		}
	}
	if rdb != nil {
		if rerr := rdb.Close(); rerr != nil && firstErr == nil {
			firstErr = fmt.Errorf("close redis: %w", rerr)
		}
	}
	return firstErr
}
