package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"outblog_shopify_v1/internal/api/dto"
	"outblog_shopify_v1/internal/cache"
	"outblog_shopify_v1/internal/repository"
	"outblog_shopify_v1/pkg/apperr"
	"outblog_shopify_v1/pkg/logger"
	"outblog_shopify_v1/pkg/outblog"
)

// DashboardPageSize 首页每页帖子数
const DashboardPageSize = 10

// SettingsService 店铺设置、首页数据与卸载清理
type SettingsService struct {
	SettingsRepo repository.SettingsRepository
	PostRepo     repository.PostRepository

	outblog    outblog.API
	blogs      cache.BlogCache
	blogHandle string
}

// NewSettingsService 创建设置服务
func NewSettingsService(
	settingsRepo repository.SettingsRepository,
	postRepo repository.PostRepository,
	api outblog.API,
	blogs cache.BlogCache,
	blogHandle string,
) *SettingsService {
	if blogHandle == "" {
		blogHandle = DefaultBlogHandle
	}
	return &SettingsService{
		SettingsRepo: settingsRepo,
		PostRepo:     postRepo,
		outblog:      api,
		blogs:        blogs,
		blogHandle:   blogHandle,
	}
}

// Dashboard 首页：设置 (不存在则创建) + 分页帖子，按创建时间倒序
func (s *SettingsService) Dashboard(ctx context.Context, shop string, page int) (*dto.DashboardResp, error) {
	const op = "settings.Dashboard"
	if page < 1 {
		page = 1
	}

	settings, err := s.SettingsRepo.GetOrCreate(ctx, shop)
	if err != nil {
		return nil, apperr.Store(op, err)
	}

	posts, total, err := s.PostRepo.List(ctx, repository.PostFilter{
		ShopSettingsID: settings.ID,
		Page:           page,
		PageSize:       DashboardPageSize,
	})
	if err != nil {
		return nil, apperr.Store(op, err)
	}
	published, err := s.PostRepo.CountPublished(ctx, settings.ID)
	if err != nil {
		return nil, apperr.Store(op, err)
	}

	resp := &dto.DashboardResp{
		Success:        true,
		Shop:           shop,
		HasAPIKey:      settings.HasAPIKey(),
		PostAsDraft:    settings.PostAsDraft,
		LastSyncAt:     settings.LastSyncAt,
		Posts:          make([]dto.PostResp, 0, len(posts)),
		Page:           page,
		PageSize:       DashboardPageSize,
		Total:          total,
		TotalPages:     int((total + DashboardPageSize - 1) / DashboardPageSize),
		PublishedCount: published,
	}
	for i := range posts {
		resp.Posts = append(resp.Posts, ToPostResp(shop, s.blogHandle, &posts[i]))
	}
	return resp, nil
}

// SaveAPIKey 先向 Outblog 校验 key，再保存
func (s *SettingsService) SaveAPIKey(ctx context.Context, shop, apiKey string, postAsDraft bool) error {
	const op = "settings.SaveAPIKey"

	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return apperr.New(apperr.KindCredentialMissing, op, "API key not configured")
	}

	valid, err := s.outblog.ValidateAPIKey(ctx, apiKey)
	if err != nil {
		return err
	}
	if !valid {
		return apperr.New(apperr.KindCredentialInvalid, op, "Invalid API key")
	}

	if _, err := s.SettingsRepo.SaveCredentials(ctx, shop, apiKey, postAsDraft); err != nil {
		return apperr.Store(op, err)
	}
	logger.FromContext(ctx).Info("API Key 已保存", zap.String("shop", shop), zap.Bool("post_as_draft", postAsDraft))
	return nil
}

// Uninstall app/uninstalled webhook：删除设置、帖子、会话和博客缓存
func (s *SettingsService) Uninstall(ctx context.Context, shop string) error {
	log := logger.FromContext(ctx).With(zap.String("shop", shop))

	if err := s.SettingsRepo.DeleteTenant(ctx, shop); err != nil {
		return apperr.Store("settings.Uninstall", err)
	}
	if err := s.blogs.Delete(ctx, shop); err != nil {
		log.Warn("清除博客缓存失败", zap.Error(err))
	}
	log.Info("应用已卸载，店铺数据已清理")
	return nil
}
