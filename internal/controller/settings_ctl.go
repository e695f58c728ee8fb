package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"outblog_shopify_v1/internal/api/dto"
	"outblog_shopify_v1/internal/middleware"
	"outblog_shopify_v1/internal/service"
)

// SettingsController 首页与设置
type SettingsController struct {
	settingsService *service.SettingsService
}

func NewSettingsController(settingsService *service.SettingsService) *SettingsController {
	return &SettingsController{settingsService: settingsService}
}

// Dashboard 首页数据
// @Summary 店铺设置与帖子列表
// @Tags App
// @Produce json
// @Security SessionToken
// @Param page query int false "页码" default(1)
// @Success 200 {object} dto.DashboardResp
// @Router /api/app/dashboard [get]
func (ctrl *SettingsController) Dashboard(c *gin.Context) {
	var req dto.DashboardReq
	if err := c.ShouldBindQuery(&req); err != nil {
		respondBadRequest(c, "Invalid page")
		return
	}

	resp, err := ctrl.settingsService.Dashboard(c.Request.Context(), middleware.GetShop(c), req.Page)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// SaveSettings 保存 Outblog API Key
// @Summary 校验并保存 API Key
// @Tags App
// @Accept json
// @Produce json
// @Security SessionToken
// @Param body body dto.SaveSettingsReq true "设置"
// @Success 200 {object} map[string]interface{}
// @Router /api/app/settings [post]
func (ctrl *SettingsController) SaveSettings(c *gin.Context) {
	var req dto.SaveSettingsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "API key not configured")
		return
	}

	postAsDraft := true
	if req.PostAsDraft != nil {
		postAsDraft = *req.PostAsDraft
	}

	if err := ctrl.settingsService.SaveAPIKey(c.Request.Context(), middleware.GetShop(c), req.APIKey, postAsDraft); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "API key saved successfully",
	})
}
