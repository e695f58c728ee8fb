package middleware

import (
	"errors"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// ==================== Session Token ====================

// Context Keys
const (
	ContextKeyShop         = "shop"
	ContextKeySessionToken = "session_token"
	ContextKeyClaims       = "claims"
)

var shopDomainRe = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9-]*\.myshopify\.com$`)

// ValidShopDomain 只接受 xxx.myshopify.com
func ValidShopDomain(shop string) bool {
	return shopDomainRe.MatchString(shop)
}

// SessionClaims App Bridge session token 的声明
type SessionClaims struct {
	Dest string `json:"dest"` // https://{shop}
	SID  string `json:"sid"`
	jwt.RegisteredClaims
}

// Shop 从 dest 取店铺域名
func (c *SessionClaims) Shop() (string, error) {
	u, err := url.Parse(c.Dest)
	if err != nil || u.Host == "" {
		return "", errors.New("invalid dest claim")
	}
	if !ValidShopDomain(u.Host) {
		return "", errors.New("invalid shop domain")
	}
	return u.Host, nil
}

// ParseSessionToken 校验签名 (HS256, app secret)、有效期与 aud
func ParseSessionToken(tokenString, apiKey, apiSecret string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(apiSecret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithAudience(apiKey),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(5*time.Second),
	)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// SessionToken 嵌入式 App 请求认证
// Authorization: Bearer {session token}
func SessionToken(apiKey, apiSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			abortUnauthorized(c)
			return
		}

		claims, err := ParseSessionToken(parts[1], apiKey, apiSecret)
		if err != nil {
			abortUnauthorized(c)
			return
		}
		shop, err := claims.Shop()
		if err != nil {
			abortUnauthorized(c)
			return
		}

		c.Set(ContextKeyShop, shop)
		c.Set(ContextKeySessionToken, parts[1])
		c.Set(ContextKeyClaims, claims)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"error":   "Unauthorized",
	})
}

// ==================== 辅助函数 ====================

// GetShop 当前请求的店铺域名
func GetShop(c *gin.Context) string {
	return c.GetString(ContextKeyShop)
}

// GetSessionToken 当前请求的 session token
func GetSessionToken(c *gin.Context) string {
	return c.GetString(ContextKeySessionToken)
}
