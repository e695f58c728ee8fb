package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"outblog_shopify_v1/internal/model"
)

// ==================== 接口定义 ====================

// SettingsRepository 店铺设置仓储接口
type SettingsRepository interface {
	GetByShop(ctx context.Context, shop string) (*model.ShopSettings, error)
	// GetOrCreate 不存在时创建 (post_as_draft = true)
	GetOrCreate(ctx context.Context, shop string) (*model.ShopSettings, error)
	SaveCredentials(ctx context.Context, shop, apiKey string, postAsDraft bool) (*model.ShopSettings, error)
	ListWithAPIKey(ctx context.Context) ([]model.ShopSettings, error)
	TouchLastSync(ctx context.Context, id int64, at time.Time) error

	// DeleteTenant 卸载时清理该店铺的设置、帖子、会话
	DeleteTenant(ctx context.Context, shop string) error
}

// ==================== 仓储实现 ====================

type settingsRepo struct {
	db *gorm.DB
}

// NewSettingsRepository 创建店铺设置仓储
func NewSettingsRepository(db *gorm.DB) SettingsRepository {
	return &settingsRepo{db: db}
}

func (r *settingsRepo) GetByShop(ctx context.Context, shop string) (*model.ShopSettings, error) {
	var s model.ShopSettings
	if err := r.db.WithContext(ctx).Where("shop = ?", shop).First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *settingsRepo) GetOrCreate(ctx context.Context, shop string) (*model.ShopSettings, error) {
	var s model.ShopSettings
	err := r.db.WithContext(ctx).
		Where(model.ShopSettings{Shop: shop}).
		Attrs(model.ShopSettings{PostAsDraft: true}).
		FirstOrCreate(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *settingsRepo) SaveCredentials(ctx context.Context, shop, apiKey string, postAsDraft bool) (*model.ShopSettings, error) {
	var s model.ShopSettings
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where(model.ShopSettings{Shop: shop}).
			Attrs(model.ShopSettings{PostAsDraft: true}).
			FirstOrCreate(&s).Error; err != nil {
			return err
		}
		// post_as_draft 有默认值，false 只能通过 map 写入
		return tx.Model(&model.ShopSettings{}).
			Where("id = ?", s.ID).
			Updates(map[string]interface{}{
				"api_key":       apiKey,
				"post_as_draft": postAsDraft,
				"updated_at":    time.Now(),
			}).Error
	})
	if err != nil {
		return nil, err
	}
	s.APIKey = &apiKey
	s.PostAsDraft = postAsDraft
	return &s, nil
}

func (r *settingsRepo) ListWithAPIKey(ctx context.Context) ([]model.ShopSettings, error) {
	var list []model.ShopSettings
	err := r.db.WithContext(ctx).
		Where("api_key IS NOT NULL").
		Order("id ASC").
		Find(&list).Error
	return list, err
}

func (r *settingsRepo) TouchLastSync(ctx context.Context, id int64, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&model.ShopSettings{}).
		Where("id = ?", id).
		Update("last_sync_at", at).Error
}

func (r *settingsRepo) DeleteTenant(ctx context.Context, shop string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		sub := tx.Model(&model.ShopSettings{}).Select("id").Where("shop = ?", shop)
		if err := tx.Where("shop_settings_id IN (?)", sub).Delete(&model.OutblogPost{}).Error; err != nil {
			return err
		}
		if err := tx.Where("shop = ?", shop).Delete(&model.ShopSettings{}).Error; err != nil {
			return err
		}
		return tx.Where("shop = ?", shop).Delete(&model.Session{}).Error
	})
}
