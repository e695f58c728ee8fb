package middleware

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	HeaderWebhookHmac  = "X-Shopify-Hmac-Sha256"
	HeaderWebhookShop  = "X-Shopify-Shop-Domain"
	HeaderWebhookTopic = "X-Shopify-Topic"

	ContextKeyWebhookTopic = "webhook_topic"
)

// SignWebhook 计算 webhook 签名 (base64 HMAC-SHA256)
func SignWebhook(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// VerifyWebhook 校验 Shopify webhook 签名，通过后注入店铺域名与 topic
func VerifyWebhook(apiSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			abortUnauthorized(c)
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(body))

		expected := SignWebhook(apiSecret, body)
		given := c.GetHeader(HeaderWebhookHmac)
		if apiSecret == "" || !hmac.Equal([]byte(expected), []byte(given)) {
			abortUnauthorized(c)
			return
		}

		shop := c.GetHeader(HeaderWebhookShop)
		if !ValidShopDomain(shop) {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error":   "invalid shop domain",
			})
			return
		}

		c.Set(ContextKeyShop, shop)
		c.Set(ContextKeyWebhookTopic, c.GetHeader(HeaderWebhookTopic))
		c.Next()
	}
}
