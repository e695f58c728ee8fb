package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"outblog_shopify_v1/pkg/apperr"
	"outblog_shopify_v1/pkg/logger"
)

// OfflineEnsurer 保证店铺有离线 Admin API token
type OfflineEnsurer interface {
	EnsureOffline(ctx context.Context, shop, sessionToken string) error
}

// OfflineSession 首次请求时用 session token 交换离线 token
// 挂在 SessionToken 之后
func OfflineSession(ensurer OfflineEnsurer) gin.HandlerFunc {
	return func(c *gin.Context) {
		shop := GetShop(c)
		if err := ensurer.EnsureOffline(c.Request.Context(), shop, GetSessionToken(c)); err != nil {
			logger.FromContext(c.Request.Context()).Warn("获取离线 token 失败", zap.String("shop", shop), zap.Error(err))
			c.AbortWithStatusJSON(apperr.HTTPStatus(err), gin.H{
				"success": false,
				"error":   apperr.UserMessage(err),
				"kind":    apperr.KindOf(err).String(),
			})
			return
		}
		c.Next()
	}
}
