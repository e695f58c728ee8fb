package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"outblog_shopify_v1/internal/service"
)

// CronController 外部定时器入口
type CronController struct {
	cronService *service.CronService
}

func NewCronController(cronService *service.CronService) *CronController {
	return &CronController{cronService: cronService}
}

// Sync 同步所有已配置 API Key 的店铺
// @Summary 定时同步
// @Tags Cron
// @Produce json
// @Param secret query string true "CRON_SECRET"
// @Success 200 {object} dto.CronSyncResp
// @Failure 401 {string} string "Unauthorized"
// @Router /api/cron [get]
func (ctrl *CronController) Sync(c *gin.Context) {
	if err := ctrl.cronService.Authorize(c.Query("secret")); err != nil {
		c.String(http.StatusUnauthorized, "Unauthorized")
		return
	}

	resp, err := ctrl.cronService.SyncAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
