package dto

import "time"

// ================== Post DTO ==================

// PostResp 帖子列表项
type PostResp struct {
	ID               int64     `json:"id"`
	ExternalID       string    `json:"external_id"`
	Slug             string    `json:"slug"`
	Title            string    `json:"title"`
	MetaDescription  *string   `json:"meta_description"`
	FeaturedImage    *string   `json:"featured_image"`
	Categories       []string  `json:"categories"`
	Tags             []string  `json:"tags"`
	Status           string    `json:"status"`
	ShopifyArticleID *string   `json:"shopify_article_id"`
	EditorURL        string    `json:"editor_url,omitempty"` // 后台编辑页
	LiveURL          string    `json:"live_url,omitempty"`   // 前台地址，仅 published
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// PublishResp 单篇发布结果
type PublishResp struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	PostID    int64  `json:"post_id"`
	ArticleID string `json:"article_id"`
	Status    string `json:"status"`
	EditorURL string `json:"editor_url"`
	LiveURL   string `json:"live_url,omitempty"`
}

// SkippedPost 批量发布中被跳过的帖子
type SkippedPost struct {
	PostID int64  `json:"post_id"`
	Slug   string `json:"slug"`
	Error  string `json:"error"`
}

// PublishAllResp 批量发布结果
type PublishAllResp struct {
	Success   bool          `json:"success"`
	Message   string        `json:"message"`
	Published int           `json:"published"`
	Skipped   []SkippedPost `json:"skipped"`
}

// LiveStatusResp 在线状态校验结果
type LiveStatusResp struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Checked int    `json:"checked"`
	Demoted int64  `json:"demoted"`
}

// FetchResp 拉取结果
type FetchResp struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Synced  int    `json:"synced"`
}
