package controller

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"outblog_shopify_v1/internal/api/dto"
	"outblog_shopify_v1/internal/middleware"
	"outblog_shopify_v1/internal/service"
)

// ==================== 控制器 ====================

// PostController 拉取、发布与在线状态校验
type PostController struct {
	fetchService   *service.FetchService
	publishService *service.PublishService
	verifyService  *service.VerifyService
}

func NewPostController(
	fetchService *service.FetchService,
	publishService *service.PublishService,
	verifyService *service.VerifyService,
) *PostController {
	return &PostController{
		fetchService:   fetchService,
		publishService: publishService,
		verifyService:  verifyService,
	}
}

// ==================== API 方法 ====================

// Fetch 从 Outblog 拉取帖子
// @Summary 手动拉取 Outblog 帖子
// @Tags Posts
// @Produce json
// @Security SessionToken
// @Success 200 {object} dto.FetchResp
// @Failure 429 {object} map[string]interface{}
// @Router /api/app/posts/fetch [post]
func (ctrl *PostController) Fetch(c *gin.Context) {
	n, err := ctrl.fetchService.FetchForShop(c.Request.Context(), middleware.GetShop(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FetchResp{
		Success: true,
		Message: fmt.Sprintf("Fetched %d blogs", n),
		Synced:  n,
	})
}

// Publish 发布单篇
// @Summary 发布单篇帖子到 Shopify
// @Tags Posts
// @Produce json
// @Security SessionToken
// @Param id path int true "帖子ID"
// @Success 200 {object} dto.PublishResp
// @Router /api/app/posts/{id}/publish [post]
func (ctrl *PostController) Publish(c *gin.Context) {
	postID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || postID <= 0 {
		respondBadRequest(c, "Invalid post id")
		return
	}

	resp, err := ctrl.publishService.PublishPost(c.Request.Context(), middleware.GetShop(c), postID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// PublishAll 批量发布
// @Summary 发布所有未发布的帖子
// @Tags Posts
// @Produce json
// @Security SessionToken
// @Success 200 {object} dto.PublishAllResp
// @Router /api/app/posts/publish-all [post]
func (ctrl *PostController) PublishAll(c *gin.Context) {
	resp, err := ctrl.publishService.PublishAll(c.Request.Context(), middleware.GetShop(c))
	if err != nil {
		if resp != nil {
			// 中止前已发布的数量
			respondError(c, err, gin.H{"published": resp.Published, "message": resp.Message})
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CheckLiveStatus 校验已发布文章是否还在 Shopify
// @Summary 校验文章在线状态
// @Tags Posts
// @Produce json
// @Security SessionToken
// @Success 200 {object} dto.LiveStatusResp
// @Router /api/app/posts/check-live-status [post]
func (ctrl *PostController) CheckLiveStatus(c *gin.Context) {
	resp, err := ctrl.verifyService.CheckLiveStatus(c.Request.Context(), middleware.GetShop(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
