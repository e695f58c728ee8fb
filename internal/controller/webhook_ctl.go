package controller

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"outblog_shopify_v1/internal/middleware"
	"outblog_shopify_v1/internal/service"
	"outblog_shopify_v1/pkg/logger"
)

// WebhookController Shopify webhook，签名已由 VerifyWebhook 校验
type WebhookController struct {
	settingsService *service.SettingsService
	sessionService  *service.SessionService
}

func NewWebhookController(settingsService *service.SettingsService, sessionService *service.SessionService) *WebhookController {
	return &WebhookController{
		settingsService: settingsService,
		sessionService:  sessionService,
	}
}

type scopesUpdatePayload struct {
	Current []string `json:"current"`
}

// AppUninstalled 清理店铺数据，重新安装从空状态开始
// @Summary app/uninstalled
// @Tags Webhook
// @Success 200
// @Router /webhooks/app/uninstalled [post]
func (ctrl *WebhookController) AppUninstalled(c *gin.Context) {
	shop := middleware.GetShop(c)
	logger.FromContext(c.Request.Context()).Info("收到 webhook",
		zap.String("topic", c.GetString(middleware.ContextKeyWebhookTopic)),
		zap.String("shop", shop),
	)

	if err := ctrl.settingsService.Uninstall(c.Request.Context(), shop); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

// ScopesUpdate 更新会话中的授权范围
// @Summary app/scopes_update
// @Tags Webhook
// @Accept json
// @Success 200
// @Router /webhooks/app/scopes_update [post]
func (ctrl *WebhookController) ScopesUpdate(c *gin.Context) {
	var payload scopesUpdatePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, "invalid payload")
		return
	}

	shop := middleware.GetShop(c)
	if err := ctrl.sessionService.UpdateScope(c.Request.Context(), shop, strings.Join(payload.Current, ",")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusOK)
}
