package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"outblog_shopify_v1/internal/controller"
	"outblog_shopify_v1/internal/middleware"

	_ "outblog_shopify_v1/docs"
)

// Controllers 控制器集合
type Controllers struct {
	Settings *controller.SettingsController
	Post     *controller.PostController
	Cron     *controller.CronController
	Webhook  *controller.WebhookController
	Health   *controller.HealthController
}

// Options 路由依赖的认证与限流配置
type Options struct {
	APIKey    string
	APISecret string

	Sessions middleware.OfflineEnsurer
	Limiter  *middleware.SyncRateLimiter

	FetchInterval      time.Duration
	PublishAllInterval time.Duration
}

// SetupRouter 注册所有路由
func SetupRouter(ctl *Controllers, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.AccessLog(), middleware.Metrics())

	if opts.Limiter == nil {
		opts.Limiter = middleware.NewSyncRateLimiter()
	}

	// 1. 基础路由
	// 访问 http://localhost:8080/swagger/index.html 即可查看
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/healthz", ctl.Health.Health)

	api := r.Group("/api")
	{
		// GET /api/cron?secret=
		api.GET("/cron", ctl.Cron.Sync)

		// 嵌入式 App，需要 App Bridge session token
		app := api.Group("/app",
			middleware.SessionToken(opts.APIKey, opts.APISecret),
			middleware.OfflineSession(opts.Sessions),
		)
		{
			app.GET("/dashboard", ctl.Settings.Dashboard)
			app.POST("/settings", ctl.Settings.SaveSettings)

			posts := app.Group("/posts")
			{
				posts.POST("/fetch",
					middleware.SyncRateLimit(opts.Limiter, middleware.SyncTypeFetch, opts.FetchInterval),
					ctl.Post.Fetch,
				)
				posts.POST("/publish-all",
					middleware.SyncRateLimit(opts.Limiter, middleware.SyncTypePublishAll, opts.PublishAllInterval),
					ctl.Post.PublishAll,
				)
				posts.POST("/check-live-status", ctl.Post.CheckLiveStatus)
				posts.POST("/:id/publish", ctl.Post.Publish)
			}
		}
	}

	webhooks := r.Group("/webhooks", middleware.VerifyWebhook(opts.APISecret))
	{
		webhooks.POST("/app/uninstalled", ctl.Webhook.AppUninstalled)
		webhooks.POST("/app/scopes_update", ctl.Webhook.ScopesUpdate)
	}

	return r
}
