package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"outblog_shopify_v1/internal/model"
)

// SessionRepository Shopify 会话仓储接口
type SessionRepository interface {
	Get(ctx context.Context, id string) (*model.Session, error)
	Save(ctx context.Context, session *model.Session) error
	UpdateScope(ctx context.Context, shop, scope string) (int64, error)
}

type sessionRepo struct {
	db *gorm.DB
}

// NewSessionRepository 创建会话仓储
func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepo{db: db}
}

func (r *sessionRepo) Get(ctx context.Context, id string) (*model.Session, error) {
	var s model.Session
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *sessionRepo) Save(ctx context.Context, session *model.Session) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"access_token", "scope", "expires_at", "updated_at"}),
	}).Create(session).Error
}

func (r *sessionRepo) UpdateScope(ctx context.Context, shop, scope string) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&model.Session{}).
		Where("shop = ?", shop).
		Update("scope", scope)
	return result.RowsAffected, result.Error
}
