package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"outblog_shopify_v1/internal/model"
)

// ==================== 接口定义 ====================

// PostRepository Outblog 帖子仓储接口
type PostRepository interface {
	// Upsert 按 (shop_settings_id, slug) 插入或覆盖内容字段，不修改发布状态
	Upsert(ctx context.Context, post *model.OutblogPost) error
	GetForShop(ctx context.Context, settingsID, postID int64) (*model.OutblogPost, error)
	List(ctx context.Context, filter PostFilter) ([]model.OutblogPost, int64, error)
	ListUnpublished(ctx context.Context, settingsID int64) ([]model.OutblogPost, error)
	ListPublished(ctx context.Context, settingsID int64) ([]model.OutblogPost, error)
	CountPublished(ctx context.Context, settingsID int64) (int64, error)

	MarkPublished(ctx context.Context, id int64, articleID, status string) error
	// Demote 清空文章 ID 并回退为 draft，返回影响行数
	Demote(ctx context.Context, settingsID int64, postIDs []int64) (int64, error)
}

// ==================== 过滤条件 ====================

// PostFilter 帖子分页条件
type PostFilter struct {
	ShopSettingsID int64
	Page           int
	PageSize       int
}

// ==================== 仓储实现 ====================

type postRepo struct {
	db *gorm.DB
}

// NewPostRepository 创建帖子仓储
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepo{db: db}
}

func (r *postRepo) Upsert(ctx context.Context, post *model.OutblogPost) error {
	if post.Status == "" {
		post.Status = model.PostStatusDraft
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "shop_settings_id"}, {Name: "slug"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"external_id", "title", "content",
			"meta_description", "featured_image",
			"categories", "tags", "updated_at",
		}),
	}).Create(post).Error
}

func (r *postRepo) GetForShop(ctx context.Context, settingsID, postID int64) (*model.OutblogPost, error) {
	var post model.OutblogPost
	err := r.db.WithContext(ctx).
		Where("id = ? AND shop_settings_id = ?", postID, settingsID).
		First(&post).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepo) List(ctx context.Context, filter PostFilter) ([]model.OutblogPost, int64, error) {
	var posts []model.OutblogPost
	var total int64

	query := r.db.WithContext(ctx).
		Model(&model.OutblogPost{}).
		Where("shop_settings_id = ?", filter.ShopSettingsID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 10
	}
	offset := (filter.Page - 1) * filter.PageSize

	err := query.
		Order("created_at DESC").
		Order("id DESC").
		Offset(offset).
		Limit(filter.PageSize).
		Find(&posts).Error
	return posts, total, err
}

func (r *postRepo) ListUnpublished(ctx context.Context, settingsID int64) ([]model.OutblogPost, error) {
	var posts []model.OutblogPost
	err := r.db.WithContext(ctx).
		Where("shop_settings_id = ? AND shopify_article_id IS NULL", settingsID).
		Order("id ASC").
		Find(&posts).Error
	return posts, err
}

func (r *postRepo) ListPublished(ctx context.Context, settingsID int64) ([]model.OutblogPost, error) {
	var posts []model.OutblogPost
	err := r.db.WithContext(ctx).
		Where("shop_settings_id = ? AND shopify_article_id IS NOT NULL", settingsID).
		Order("id ASC").
		Find(&posts).Error
	return posts, err
}

func (r *postRepo) CountPublished(ctx context.Context, settingsID int64) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.OutblogPost{}).
		Where("shop_settings_id = ? AND shopify_article_id IS NOT NULL", settingsID).
		Count(&n).Error
	return n, err
}

func (r *postRepo) MarkPublished(ctx context.Context, id int64, articleID, status string) error {
	return r.db.WithContext(ctx).
		Model(&model.OutblogPost{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"shopify_article_id": articleID,
			"status":             status,
			"updated_at":         time.Now(),
		}).Error
}

func (r *postRepo) Demote(ctx context.Context, settingsID int64, postIDs []int64) (int64, error) {
	if len(postIDs) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).
		Model(&model.OutblogPost{}).
		Where("shop_settings_id = ? AND id IN ?", settingsID, postIDs).
		Updates(map[string]interface{}{
			"shopify_article_id": nil,
			"status":             model.PostStatusDraft,
			"updated_at":         time.Now(),
		})
	return result.RowsAffected, result.Error
}
