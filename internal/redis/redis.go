// Package redis wraps the go-redis client with the handful of operations
// the swipe engine uses for caching. All helpers are nil-safe so the server
// can run without a cache.
package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

type Client struct {
	rdb *redis.Client
}

// Initialize connects to Redis at the given URL. A failed connection is
// logged and reported; callers may choose to continue without caching.
func Initialize(redisURL string) (*Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	rdb := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	logrus.Info("Redis connection established")
	return &Client{rdb: rdb}, nil
}

func (c *Client) Get(ctx context.Context, key string) (string, bool) {
	if c == nil {
		return "", false
	}
	val, err := c.rdb.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			logrus.WithError(err).WithField("key", key).Warn("redis get failed")
		}
		return "", false
	}
	return val, true
}

func (c *Client) Set(ctx context.Context, key, value string, ttl time.Duration) {
	if c == nil {
		return
	}
	if err := c.rdb.Set(ctx, key, value, ttl).Err(); err != nil {
		logrus.WithError(err).WithField("key", key).Warn("redis set failed")
	}
}

func (c *Client) Del(ctx context.Context, keys ...string) {
	if c == nil {
		return
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		logrus.WithError(err).WithField("keys", keys).Warn("redis del failed")
	}
}

func (c *Client) HSet(ctx context.Context, key string, values map[string]interface{}) {
	if c == nil {
		return
	}
	if err := c.rdb.HSet(ctx, key, values).Err(); err != nil {
		logrus.WithError(err).WithField("key", key).Warn("redis hset failed")
	}
}

func (c *Client) Expire(ctx context.Context, key string, ttl time.Duration) {
	if c == nil {
		return
	}
	if err := c.rdb.Expire(ctx, key, ttl).Err(); err != nil {
		logrus.WithError(err).WithField("key", key).Warn("redis expire failed")
	}
}

func (c *Client) Close() error {
	if c == nil {
		return nil
	}
	return c.rdb.Close()
}
