package model

import (
	"time"
)

// ShopSettings 每个 Shopify 店铺一条，保存 Outblog 凭证与发布偏好
type ShopSettings struct {
	BaseModel
	Shop        string     `gorm:"uniqueIndex;size:255;not null" json:"shop"` // xxx.myshopify.com
	APIKey      *string    `gorm:"size:255" json:"-"`
	PostAsDraft bool       `gorm:"not null;default:true" json:"post_as_draft"`
	LastSyncAt  *time.Time `json:"last_sync_at"`

	Posts []OutblogPost `gorm:"foreignKey:ShopSettingsID;constraint:OnDelete:CASCADE;" json:"-"`
}

func (ShopSettings) TableName() string {
	return "shop_settings"
}

// HasAPIKey 是否配置了 Outblog API Key
func (s *ShopSettings) HasAPIKey() bool {
	return s.APIKey != nil && *s.APIKey != ""
}
