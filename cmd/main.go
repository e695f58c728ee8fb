package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"outblog_shopify_v1/internal/cache"
	"outblog_shopify_v1/internal/config"
	"outblog_shopify_v1/internal/controller"
	"outblog_shopify_v1/internal/middleware"
	"outblog_shopify_v1/internal/model"
	"outblog_shopify_v1/internal/repository"
	"outblog_shopify_v1/internal/router"
	"outblog_shopify_v1/internal/service"
	"outblog_shopify_v1/internal/task"
	"outblog_shopify_v1/pkg/database"
	"outblog_shopify_v1/pkg/logger"
	"outblog_shopify_v1/pkg/outblog"
	"outblog_shopify_v1/pkg/shopify"
)

// @title Outblog Shopify Sync API
// @version 1.0
// @description Outblog 帖子同步到 Shopify 博客
// @BasePath /
// @securityDefinitions.apikey SessionToken
// @in header
// @name Authorization
func main() {
	app := &cli.App{
		Name:  "outblog-sync",
		Usage: "Outblog -> Shopify 博客同步服务",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "配置文件路径，默认 ./config.yaml",
				EnvVars: []string{"CONFIG_PATH"},
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "启动 HTTP 服务",
				Action: runServe,
			},
			{
				Name:   "sync",
				Usage:  "同步所有店铺一次并输出结果 (供系统 cron 调用)",
				Action: runSync,
			},
			{
				Name:   "migrate",
				Usage:  "执行数据库迁移",
				Action: runMigrate,
			},
		},
		DefaultCommand: "serve",
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// ==================== 依赖容器 ====================

// Dependencies 依赖容器
type Dependencies struct {
	Config      *config.Config
	DB          *gorm.DB
	Repos       *Repositories
	Services    *Services
	Controllers *router.Controllers
}

// Repositories 仓库集合
type Repositories struct {
	Settings repository.SettingsRepository
	Post     repository.PostRepository
	Session  repository.SessionRepository
}

// Services 服务集合
type Services struct {
	Session  *service.SessionService
	Fetch    *service.FetchService
	Publish  *service.PublishService
	Verify   *service.VerifyService
	Cron     *service.CronService
	Settings *service.SettingsService
}

// ==================== 初始化函数 ====================

// bootstrap 读取配置、初始化日志和数据库
func bootstrap(c *cli.Context) (*config.Config, *gorm.DB, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, nil, err
	}
	if _, err := logger.Init(cfg.App.Env, cfg.Log.Level); err != nil {
		return nil, nil, fmt.Errorf("初始化日志失败: %w", err)
	}

	db, err := database.Open(database.Options{
		Driver:          cfg.Database.Driver,
		DSN:             cfg.Database.DSN,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		LogLevel:        cfg.Database.LogLevel,
	}, model.AllModels()...)
	if err != nil {
		return nil, nil, err
	}
	return cfg, db, nil
}

// initDependencies 初始化所有依赖
func initDependencies(ctx context.Context, cfg *config.Config, db *gorm.DB) *Dependencies {
	// -------- Repo 层 --------
	repos := &Repositories{
		Settings: repository.NewSettingsRepository(db),
		Post:     repository.NewPostRepository(db),
		Session:  repository.NewSessionRepository(db),
	}

	// -------- 外部客户端 --------
	outblogClient := outblog.NewClient(cfg.Outblog.BaseURL, cfg.Outblog.Timeout)
	shopifyClient := shopify.NewClient(shopify.Options{
		APIKey:        cfg.Shopify.APIKey,
		APISecret:     cfg.Shopify.APISecret,
		APIVersion:    cfg.Shopify.APIVersion,
		Timeout:       cfg.Shopify.Timeout,
		RatePerSecond: cfg.Shopify.RatePerSecond,
		RateBurst:     cfg.Shopify.RateBurst,
	})
	blogs := initBlogCache(ctx, cfg)

	// -------- 业务服务 --------
	services := &Services{}
	services.Session = service.NewSessionService(repos.Session, shopifyClient)
	services.Fetch = service.NewFetchService(repos.Settings, repos.Post, outblogClient)
	services.Publish = service.NewPublishService(repos.Settings, repos.Post, services.Session, shopifyClient, blogs, service.PublishOptions{
		BlogHandle:       cfg.Shopify.BlogHandle,
		BlogTitle:        cfg.Shopify.BlogTitle,
		Author:           cfg.Shopify.Author,
		BulkFullSanitize: cfg.Publish.BulkFullSanitize,
	})
	services.Verify = service.NewVerifyService(repos.Settings, repos.Post, services.Session, shopifyClient)
	services.Cron = service.NewCronService(repos.Settings, services.Fetch, cfg.Cron.Secret)
	services.Settings = service.NewSettingsService(repos.Settings, repos.Post, outblogClient, blogs, services.Publish.BlogHandle())

	// -------- Controller 层 --------
	var pinger controller.Pinger
	if sqlDB, err := db.DB(); err == nil {
		pinger = sqlDB
	}
	controllers := &router.Controllers{
		Settings: controller.NewSettingsController(services.Settings),
		Post:     controller.NewPostController(services.Fetch, services.Publish, services.Verify),
		Cron:     controller.NewCronController(services.Cron),
		Webhook:  controller.NewWebhookController(services.Settings, services.Session),
		Health:   controller.NewHealthController(pinger),
	}

	return &Dependencies{
		Config:      cfg,
		DB:          db,
		Repos:       repos,
		Services:    services,
		Controllers: controllers,
	}
}

// initBlogCache 配置了 Redis 用 Redis，否则进程内缓存
func initBlogCache(ctx context.Context, cfg *config.Config) cache.BlogCache {
	if cfg.Redis.Addr == "" {
		return cache.NewMemoryCache(cfg.Redis.BlogTTL)
	}
	rdb, err := cache.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		logger.L().Warn("Redis 不可用，使用进程内缓存", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
		return cache.NewMemoryCache(cfg.Redis.BlogTTL)
	}
	return cache.NewRedisCache(rdb, cfg.Redis.BlogTTL)
}

// ==================== 命令 ====================

func runServe(c *cli.Context) error {
	cfg, db, err := bootstrap(c)
	if err != nil {
		return err
	}
	defer func() { _ = database.Close(db) }()
	defer func() { _ = logger.L().Sync() }()

	deps := initDependencies(c.Context, cfg, db)

	// 定时任务
	var syncTask *task.SyncTask
	if cfg.Cron.Enabled {
		syncTask = task.NewSyncTask(deps.Services.Cron, cfg.Cron.Schedule)
		if err := syncTask.Start(); err != nil {
			return err
		}
		defer syncTask.Stop()
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := router.SetupRouter(deps.Controllers, router.Options{
		APIKey:             cfg.Shopify.APIKey,
		APISecret:          cfg.Shopify.APISecret,
		Sessions:           deps.Services.Session,
		Limiter:            middleware.NewSyncRateLimiter(),
		FetchInterval:      cfg.Limit.FetchInterval,
		PublishAllInterval: cfg.Limit.PublishAllInterval,
	})

	return startServer(r, cfg.App.Port)
}

func runSync(c *cli.Context) error {
	cfg, db, err := bootstrap(c)
	if err != nil {
		return err
	}
	defer func() { _ = database.Close(db) }()
	defer func() { _ = logger.L().Sync() }()

	deps := initDependencies(c.Context, cfg, db)

	ctx, cancel := context.WithTimeout(c.Context, 30*time.Minute)
	defer cancel()

	resp, err := task.NewSyncTask(deps.Services.Cron, cfg.Cron.Schedule).RunOnce(ctx)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(resp)
}

func runMigrate(c *cli.Context) error {
	_, db, err := bootstrap(c)
	if err != nil {
		return err
	}
	defer func() { _ = database.Close(db) }()

	logger.L().Info("数据库迁移完成")
	return nil
}

// ==================== 服务启动 ====================

// startServer 启动服务，收到退出信号后优雅关闭
func startServer(r *gin.Engine, port string) error {
	log := logger.L()

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("服务启动", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// 等待退出信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return fmt.Errorf("服务启动失败: %w", err)
	case <-quit:
	}

	log.Info("正在关闭服务...")

	// 优雅关闭，最多等待 30 秒
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("服务强制关闭: %w", err)
	}

	log.Info("服务已退出")
	return nil
}
