package middleware

import (
	"fmt"
	"sync"
	"time"
)

// ==================== SyncRateLimiter 冷却限流器 ====================

// SyncRateLimiter 手动操作冷却限流器
// 防止商家连续点击拉取/批量发布打满 Outblog 和 Shopify 的配额
type SyncRateLimiter struct {
	locks sync.Map // key -> *lockEntry
	now   func() time.Time
}

type lockEntry struct {
	lastTime time.Time
	mu       sync.Mutex
}

// NewSyncRateLimiter 创建限流器
func NewSyncRateLimiter() *SyncRateLimiter {
	return &SyncRateLimiter{now: time.Now}
}

// CheckResult 检查结果
type CheckResult struct {
	Allowed    bool
	RetryAfter time.Duration // 剩余冷却时间
}

// Check 检查是否允许执行，允许时记录本次执行时间
// key: 如 "shop:demo.myshopify.com:fetch"
func (r *SyncRateLimiter) Check(key string, interval time.Duration) CheckResult {
	actual, _ := r.locks.LoadOrStore(key, &lockEntry{})
	entry := actual.(*lockEntry)

	entry.mu.Lock()
	defer entry.mu.Unlock()

	now := r.now()
	elapsed := now.Sub(entry.lastTime)
	if elapsed < interval {
		return CheckResult{Allowed: false, RetryAfter: interval - elapsed}
	}

	entry.lastTime = now
	return CheckResult{Allowed: true}
}

// Reset 清除某个 key，操作失败时允许立即重试
func (r *SyncRateLimiter) Reset(key string) {
	r.locks.Delete(key)
}

// ==================== Key 生成 ====================

// SyncType 操作类型
type SyncType string

const (
	SyncTypeFetch      SyncType = "fetch"
	SyncTypePublishAll SyncType = "publish_all"
)

// ShopSyncKey 店铺级 key
func ShopSyncKey(shop string, syncType SyncType) string {
	return fmt.Sprintf("shop:%s:%s", shop, syncType)
}
