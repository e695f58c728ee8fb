package cache

import (
	"context"
	"sync"
	"time"
)

// cacheItem 值和过期时间
type cacheItem struct {
	value      string
	expiration time.Time
}

// memoryCache 未配置 Redis 时使用，单进程有效
type memoryCache struct {
	items sync.Map
	ttl   time.Duration
	now   func() time.Time
}

// NewMemoryCache 创建进程内缓存
func NewMemoryCache(ttl time.Duration) BlogCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &memoryCache{ttl: ttl, now: time.Now}
}

func (c *memoryCache) Get(_ context.Context, shop string) (string, bool, error) {
	key := blogKey(shop)
	val, ok := c.items.Load(key)
	if !ok {
		return "", false, nil
	}
	item := val.(cacheItem)
	if c.now().After(item.expiration) {
		c.items.Delete(key) // 懒删除
		return "", false, nil
	}
	return item.value, true, nil
}

func (c *memoryCache) Set(_ context.Context, shop, blogID string) error {
	c.items.Store(blogKey(shop), cacheItem{
		value:      blogID,
		expiration: c.now().Add(c.ttl),
	})
	return nil
}

func (c *memoryCache) Delete(_ context.Context, shop string) error {
	c.items.Delete(blogKey(shop))
	return nil
}
