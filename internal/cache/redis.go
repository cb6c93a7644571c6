package cache

import (
	"context"
	"fmt"
	"time"

	"registru-backend/internal/config"

	"github.com/redis/go-redis/v9"
)

var client *redis.Client

// Init connects to Redis. A failed connection leaves the client nil; the
// server then falls back to in-memory staging instead of refusing to start.
func Init(cfg *config.Config) error {
	if cfg.Redis.Host == "" {
		return fmt.Errorf("redis host not configured")
	}

	client = redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		// Close the failed client and set to nil for graceful degradation
		client.Close()
		client = nil
		return err
	}
	return nil
}

// GetClient returns the Redis client, or nil when Redis is unavailable.
func GetClient() *redis.Client {
	return client
}

// IsHealthy returns true if the Redis connection is working
func IsHealthy() bool {
	if client == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return client.Ping(ctx).Err() == nil
}
