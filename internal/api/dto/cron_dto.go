package dto

// ShopSyncResult 单个店铺的定时同步结果
type ShopSyncResult struct {
	Shop   string `json:"shop"`
	Synced int    `json:"synced"`
	Error  string `json:"error,omitempty"`
}

// CronSyncResp 定时同步汇总
type CronSyncResp struct {
	Success     bool             `json:"success"`
	Message     string           `json:"message,omitempty"`
	TotalSynced int              `json:"totalSynced"`
	Shops       []ShopSyncResult `json:"shops"`
}
