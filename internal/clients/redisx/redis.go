package redisx

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/screenrate/screenrate-backend/internal/logger"
	"github.com/screenrate/screenrate-backend/internal/utils"
)

// Client wraps the shared redis connection. It is used as a best-effort cache:
// callers treat every error as a miss.
type Client struct {
	rdb *redis.Client
	log *logger.Logger
}

func New(log *logger.Logger) (*Client, error) {
	clientLog := log.With("client", "Redis")

	addr := utils.GetEnv("REDIS_ADDR", "localhost:6379", log)
	password := utils.GetEnv("REDIS_PASSWORD", "", log)
	dbIndex := utils.GetEnvAsInt("REDIS_DB", 0, log)

	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       dbIndex,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}

	clientLog.Info("Connected to redis", "addr", addr)
	return &Client{rdb: rdb, log: clientLog}, nil
}

func (c *Client) Get(ctx context.Context, key string) ([]byte, bool) {
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Debug("Redis get failed", "key", key, "error", err)
		}
		return nil, false
	}
	return raw, true
}

func (c *Client) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if err := c.rdb.Set(ctx, key, value, ttl).Err(); err != nil {
		c.log.Debug("Redis set failed", "key", key, "error", err)
	}
}

func (c *Client) Close() error {
	return c.rdb.Close()
}
