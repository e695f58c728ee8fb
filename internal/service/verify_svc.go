package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"outblog_shopify_v1/internal/api/dto"
	"outblog_shopify_v1/internal/repository"
	"outblog_shopify_v1/pkg/apperr"
	"outblog_shopify_v1/pkg/logger"
	"outblog_shopify_v1/pkg/metrics"
	"outblog_shopify_v1/pkg/shopify"
)

// VerifyService 校验已发布文章在 Shopify 是否还存在
type VerifyService struct {
	SettingsRepo repository.SettingsRepository
	PostRepo     repository.PostRepository

	creds     CredentialSource
	admin     shopify.Admin
	batchSize int
}

// NewVerifyService 创建校验服务
func NewVerifyService(settingsRepo repository.SettingsRepository, postRepo repository.PostRepository, creds CredentialSource, admin shopify.Admin) *VerifyService {
	return &VerifyService{
		SettingsRepo: settingsRepo,
		PostRepo:     postRepo,
		creds:        creds,
		admin:        admin,
		batchSize:    shopify.NodesBatchSize,
	}
}

// CheckLiveStatus 按 50 个一批查询 nodes(ids:)，全部批次成功后统一回退缺失的帖子
// 任一批次失败立即返回，不做任何回退
func (s *VerifyService) CheckLiveStatus(ctx context.Context, shop string) (*dto.LiveStatusResp, error) {
	const op = "verify.CheckLiveStatus"
	log := logger.FromContext(ctx).With(zap.String("shop", shop))

	settings, err := s.SettingsRepo.GetByShop(ctx, shop)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound(op, "Shop settings not found")
	}
	if err != nil {
		return nil, apperr.Store(op, err)
	}

	posts, err := s.PostRepo.ListPublished(ctx, settings.ID)
	if err != nil {
		return nil, apperr.Store(op, err)
	}
	if len(posts) == 0 {
		return &dto.LiveStatusResp{Success: true, Message: "No published blogs to check"}, nil
	}

	cred, err := s.creds.Credentials(ctx, shop)
	if err != nil {
		return nil, err
	}

	var missing []int64
	for start := 0; start < len(posts); start += s.batchSize {
		end := start + s.batchSize
		if end > len(posts) {
			end = len(posts)
		}
		batch := posts[start:end]

		ids := make([]string, 0, len(batch))
		for _, p := range batch {
			ids = append(ids, *p.ShopifyArticleID)
		}

		present, err := s.admin.ExistingArticles(ctx, cred, ids)
		if err != nil {
			log.Warn("查询文章状态失败", zap.Int("batch_start", start), zap.Error(err))
			return nil, err
		}
		for _, p := range batch {
			if !present[*p.ShopifyArticleID] {
				missing = append(missing, p.ID)
			}
		}
	}

	resp := &dto.LiveStatusResp{Success: true, Checked: len(posts)}
	if len(missing) == 0 {
		resp.Message = "Live status checked: all published blogs still exist in Shopify."
		return resp, nil
	}

	n, err := s.PostRepo.Demote(ctx, settings.ID, missing)
	if err != nil {
		return nil, apperr.Store(op, err)
	}
	metrics.ArticlesDemoted.Add(float64(n))
	log.Info("已回退缺失文章", zap.Int("missing", len(missing)), zap.Int64("updated", n))

	resp.Demoted = n
	resp.Message = fmt.Sprintf("Live status checked: %d blog(s) are no longer published in Shopify and were marked as not published.", len(missing))
	return resp, nil
}
