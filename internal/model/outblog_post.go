package model

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"
)

// 帖子发布状态
const (
	PostStatusDraft     = "draft"
	PostStatusPublished = "published"
)

// OutblogPost 从 Outblog 拉取的帖子，(shop_settings_id, slug) 唯一
type OutblogPost struct {
	BaseModel
	ShopSettingsID  int64          `gorm:"not null;uniqueIndex:idx_post_shop_slug,priority:1" json:"shop_settings_id"`
	ExternalID      string         `gorm:"size:100" json:"external_id"`
	Slug            string         `gorm:"size:255;not null;uniqueIndex:idx_post_shop_slug,priority:2" json:"slug"`
	Title           string         `gorm:"size:500" json:"title"`
	Content         string         `gorm:"type:text" json:"content"`
	MetaDescription *string        `gorm:"type:text" json:"meta_description"`
	FeaturedImage   *string        `gorm:"type:text" json:"featured_image"`
	Categories      datatypes.JSON `json:"categories"`
	Tags            datatypes.JSON `json:"tags"`

	Status           string  `gorm:"size:20;not null;default:'draft';index" json:"status"`
	ShopifyArticleID *string `gorm:"size:100;index" json:"shopify_article_id"`
}

func (OutblogPost) TableName() string {
	return "outblog_posts"
}

// IsOnShopify 是否已经创建过 Shopify 文章
func (p *OutblogPost) IsOnShopify() bool {
	return p.ShopifyArticleID != nil && *p.ShopifyArticleID != ""
}

// StringList 把字符串数组编码成 JSON 列，nil 编码为 []
func StringList(items []string) datatypes.JSON {
	if items == nil {
		items = []string{}
	}
	b, _ := json.Marshal(items)
	return datatypes.JSON(b)
}

// DecodeStringList JSON 列解码，空值返回空切片
func DecodeStringList(raw datatypes.JSON) ([]string, error) {
	if len(raw) == 0 {
		return []string{}, nil
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("解析 JSON 数组失败: %w", err)
	}
	if out == nil {
		out = []string{}
	}
	return out, nil
}
