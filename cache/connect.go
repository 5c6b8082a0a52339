package cache

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// ConnectOptions carries the Redis connection settings.
type ConnectOptions struct {
	Addr     string
	Username string
	Password string
	DB       int
}

// Connect establishes a Redis connection and verifies it with a ping before
// handing the client back.
func Connect(ctx context.Context, opts ConnectOptions) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Username: opts.Username,
		Password: opts.Password,
		DB:       opts.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return client, nil
}
