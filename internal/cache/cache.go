package cache

import (
	"context"
	"time"
)

// BlogCache 按店铺缓存 outblog 博客的 GID
type BlogCache interface {
	Get(ctx context.Context, shop string) (string, bool, error)
	Set(ctx context.Context, shop, blogID string) error
	Delete(ctx context.Context, shop string) error
}

const keyPrefix = "outblog:blog:"

func blogKey(shop string) string {
	return keyPrefix + shop
}

// DefaultTTL 博客被商家手动删除后最多这么久才会重新创建
const DefaultTTL = 24 * time.Hour
