package dto

import "time"

// DashboardReq 首页分页参数
type DashboardReq struct {
	Page int `form:"page,default=1"`
}

// DashboardResp 首页数据
type DashboardResp struct {
	Success        bool       `json:"success"`
	Shop           string     `json:"shop"`
	HasAPIKey      bool       `json:"has_api_key"`
	PostAsDraft    bool       `json:"post_as_draft"`
	LastSyncAt     *time.Time `json:"last_sync_at"`
	Posts          []PostResp `json:"posts"`
	Page           int        `json:"page"`
	PageSize       int        `json:"page_size"`
	Total          int64      `json:"total"`
	TotalPages     int        `json:"total_pages"`
	PublishedCount int64      `json:"published_count"`
}

// SaveSettingsReq 保存 API Key
type SaveSettingsReq struct {
	APIKey      string `json:"api_key" binding:"required"`
	PostAsDraft *bool  `json:"post_as_draft"` // 缺省为 true
}
