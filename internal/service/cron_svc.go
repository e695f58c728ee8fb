package service

import (
	"context"
	"crypto/subtle"
	"errors"

	"go.uber.org/zap"

	"outblog_shopify_v1/internal/api/dto"
	"outblog_shopify_v1/internal/repository"
	"outblog_shopify_v1/pkg/apperr"
	"outblog_shopify_v1/pkg/logger"
)

// CronService 定时同步所有配置了 API Key 的店铺
type CronService struct {
	SettingsRepo repository.SettingsRepository
	fetcher      *FetchService
	secret       string
}

// NewCronService 创建定时同步服务
func NewCronService(settingsRepo repository.SettingsRepository, fetcher *FetchService, secret string) *CronService {
	return &CronService{
		SettingsRepo: settingsRepo,
		fetcher:      fetcher,
		secret:       secret,
	}
}

// Authorize 常量时间比较 secret，未配置 secret 时一律拒绝
func (s *CronService) Authorize(given string) error {
	if s.secret == "" || subtle.ConstantTimeCompare([]byte(given), []byte(s.secret)) != 1 {
		return apperr.New(apperr.KindUnauthorized, "cron.Authorize", "Unauthorized")
	}
	return nil
}

// SyncAll 依次同步每个店铺，单店失败记录后继续
func (s *CronService) SyncAll(ctx context.Context) (*dto.CronSyncResp, error) {
	log := logger.FromContext(ctx)

	list, err := s.SettingsRepo.ListWithAPIKey(ctx)
	if err != nil {
		return nil, apperr.Store("cron.SyncAll", err)
	}
	if len(list) == 0 {
		return &dto.CronSyncResp{
			Success: true,
			Message: "No shops with API keys found. Nothing to sync.",
			Shops:   []dto.ShopSyncResult{},
		}, nil
	}

	resp := &dto.CronSyncResp{Success: true, Shops: make([]dto.ShopSyncResult, 0, len(list))}
	for i := range list {
		settings := &list[i]
		if err := ctx.Err(); err != nil {
			return nil, apperr.Classify("cron.SyncAll", err)
		}

		n, err := s.fetcher.SyncShop(ctx, settings, TriggerCron)
		result := dto.ShopSyncResult{Shop: settings.Shop, Synced: n}
		if err != nil {
			result.Error = shopErrorText(err)
			log.Warn("店铺同步失败", zap.String("shop", settings.Shop), zap.Error(err))
		}
		resp.TotalSynced += n
		resp.Shops = append(resp.Shops, result)
	}

	log.Info("定时同步完成", zap.Int("shops", len(list)), zap.Int("total_synced", resp.TotalSynced))
	return resp, nil
}

// shopErrorText 上游 HTTP 错误报告为 "HTTP 401"，其它用面向商家的提示
func shopErrorText(err error) string {
	var ae *apperr.Error
	if errors.As(err, &ae) && ae.Status > 0 {
		return ae.Message
	}
	return apperr.UserMessage(err)
}
