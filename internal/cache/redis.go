package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

type redisCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisCache 多实例部署时共享博客缓存
func NewRedisCache(rdb *redis.Client, ttl time.Duration) BlogCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &redisCache{rdb: rdb, ttl: ttl}
}

func (c *redisCache) Get(ctx context.Context, shop string) (string, bool, error) {
	val, err := c.rdb.Get(ctx, blogKey(shop)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

func (c *redisCache) Set(ctx context.Context, shop, blogID string) error {
	return c.rdb.Set(ctx, blogKey(shop), blogID, c.ttl).Err()
}

func (c *redisCache) Delete(ctx context.Context, shop string) error {
	return c.rdb.Del(ctx, blogKey(shop)).Err()
}

// NewRedisClient 连接并 Ping
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, err
	}
	return rdb, nil
}
