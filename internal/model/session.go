package model

import (
	"time"
)

// Session Shopify Admin API 会话 (离线 token)
type Session struct {
	ID          string     `gorm:"primaryKey;size:255" json:"id"` // offline_{shop}
	Shop        string     `gorm:"index;size:255;not null" json:"shop"`
	AccessToken string     `gorm:"size:255" json:"-"`
	Scope       string     `gorm:"size:1024" json:"scope"`
	IsOnline    bool       `gorm:"default:false" json:"is_online"`
	ExpiresAt   *time.Time `json:"expires_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (Session) TableName() string {
	return "shopify_sessions"
}

// OfflineSessionID 离线会话 ID
func OfflineSessionID(shop string) string {
	return "offline_" + shop
}

// AllModels 需要迁移的全部模型
func AllModels() []interface{} {
	return []interface{}{
		&ShopSettings{},
		&OutblogPost{},
		&Session{},
	}
}
