package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// SyncRateLimit 按店铺 + 操作类型限流
// 必须挂在 SessionToken 之后，依赖 context 中的店铺域名
//
//	api.POST("/posts/fetch",
//	    middleware.SyncRateLimit(limiter, middleware.SyncTypeFetch, 30*time.Second),
//	    postCtl.Fetch,
//	)
func SyncRateLimit(limiter *SyncRateLimiter, syncType SyncType, interval time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if interval <= 0 {
			c.Next()
			return
		}

		key := ShopSyncKey(GetShop(c), syncType)
		result := limiter.Check(key, interval)
		if !result.Allowed {
			c.Header("Retry-After", fmt.Sprintf("%d", int(result.RetryAfter.Seconds())+1))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"success":     false,
				"error":       formatRetryMessage(result.RetryAfter),
				"retry_after": int(result.RetryAfter.Seconds()),
			})
			return
		}

		c.Next()

		// 操作失败不占用冷却时间
		if c.Writer.Status() >= http.StatusBadRequest {
			limiter.Reset(key)
		}
	}
}

func formatRetryMessage(d time.Duration) string {
	seconds := int(d.Seconds())
	if seconds < 1 {
		seconds = 1
	}
	if seconds < 60 {
		return fmt.Sprintf("Please wait %d seconds before trying again.", seconds)
	}

	minutes := seconds / 60
	remaining := seconds % 60
	if remaining == 0 {
		return fmt.Sprintf("Please wait %d minute(s) before trying again.", minutes)
	}
	return fmt.Sprintf("Please wait %d minute(s) %d seconds before trying again.", minutes, remaining)
}
