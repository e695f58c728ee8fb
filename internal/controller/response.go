package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"outblog_shopify_v1/pkg/apperr"
	"outblog_shopify_v1/pkg/logger"
)

// respondError 按错误分类渲染 {success:false, error, kind}，extra 合并进响应
func respondError(c *gin.Context, err error, extra ...gin.H) {
	status := apperr.HTTPStatus(err)
	if status >= 500 {
		logger.FromContext(c.Request.Context()).Error("请求处理失败", zap.Error(err))
	}
	_ = c.Error(err)
	body := gin.H{
		"success": false,
		"error":   apperr.UserMessage(err),
		"kind":    apperr.KindOf(err).String(),
	}
	for _, e := range extra {
		for k, v := range e {
			body[k] = v
		}
	}
	c.JSON(status, body)
}

// respondBadRequest 参数错误
func respondBadRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"error":   msg,
	})
}
