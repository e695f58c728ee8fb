package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"outblog_shopify_v1/internal/model"
	"outblog_shopify_v1/internal/repository"
	"outblog_shopify_v1/pkg/apperr"
	"outblog_shopify_v1/pkg/logger"
	"outblog_shopify_v1/pkg/metrics"
	"outblog_shopify_v1/pkg/outblog"
)

// 触发来源，用于指标
const (
	TriggerManual = "manual"
	TriggerCron   = "cron"
)

// FetchService 从 Outblog 拉取帖子并落库
type FetchService struct {
	SettingsRepo repository.SettingsRepository
	PostRepo     repository.PostRepository
	outblog      outblog.API
	now          func() time.Time
}

// NewFetchService 创建拉取服务
func NewFetchService(settingsRepo repository.SettingsRepository, postRepo repository.PostRepository, api outblog.API) *FetchService {
	return &FetchService{
		SettingsRepo: settingsRepo,
		PostRepo:     postRepo,
		outblog:      api,
		now:          time.Now,
	}
}

// FetchForShop 商家手动拉取
func (s *FetchService) FetchForShop(ctx context.Context, shop string) (int, error) {
	settings, err := s.SettingsRepo.GetByShop(ctx, shop)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, apperr.New(apperr.KindCredentialMissing, "fetch.FetchForShop", "API key not configured")
	}
	if err != nil {
		return 0, apperr.Store("fetch.FetchForShop", err)
	}
	return s.SyncShop(ctx, settings, TriggerManual)
}

// SyncShop 拉取一个店铺的全部帖子，按 (店铺, slug) upsert，最后更新 last_sync_at
// 重复执行结果一致
func (s *FetchService) SyncShop(ctx context.Context, settings *model.ShopSettings, trigger string) (int, error) {
	const op = "fetch.SyncShop"
	log := logger.FromContext(ctx).With(zap.String("shop", settings.Shop), zap.String("trigger", trigger))

	if !settings.HasAPIKey() {
		return 0, apperr.New(apperr.KindCredentialMissing, op, "API key not configured")
	}

	posts, err := s.outblog.ListPosts(ctx, *settings.APIKey)
	if err != nil {
		metrics.SyncFailures.WithLabelValues(apperr.KindOf(err).String()).Inc()
		log.Warn("拉取 Outblog 帖子失败", zap.Error(err))
		return 0, err
	}

	for _, p := range posts {
		post := ToPostModel(settings.ID, p)
		if err := s.PostRepo.Upsert(ctx, post); err != nil {
			metrics.SyncFailures.WithLabelValues(apperr.KindStore.String()).Inc()
			log.Error("保存帖子失败", zap.String("slug", post.Slug), zap.Error(err))
			return 0, apperr.Store(op, err)
		}
	}

	if err := s.SettingsRepo.TouchLastSync(ctx, settings.ID, s.now()); err != nil {
		return 0, apperr.Store(op, err)
	}

	metrics.PostsSynced.WithLabelValues(trigger).Add(float64(len(posts)))
	log.Info("拉取完成", zap.Int("count", len(posts)))
	return len(posts), nil
}
