package net

import (
	"time"

	"github.com/go-resty/resty/v2"

	"outblog_shopify_v1/pkg/apperr"
)

const defaultUserAgent = "Outblog-Shopify-Sync/1.0"

// ClientOptions resty 客户端参数
type ClientOptions struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
	Debug     bool
}

// NewClient 创建配置好超时和 UA 的 Resty 客户端
// 全系统统一的出站请求入口，不做自动重试
func NewClient(opts ClientOptions) *resty.Client {
	if opts.Timeout <= 0 {
		opts.Timeout = 20 * time.Second
	}
	if opts.UserAgent == "" {
		opts.UserAgent = defaultUserAgent
	}

	client := resty.New().
		SetDebug(opts.Debug).
		SetTimeout(opts.Timeout).
		SetHeader("User-Agent", opts.UserAgent).
		SetHeader("Accept", "application/json")

	if opts.BaseURL != "" {
		client.SetBaseURL(opts.BaseURL)
	}
	return client
}

// CheckResponse 把传输错误和非 2xx 状态码转成 apperr
func CheckResponse(op string, resp *resty.Response, err error) error {
	if err != nil {
		return apperr.Classify(op, err)
	}
	if resp.IsError() {
		return apperr.FromStatus(op, resp.StatusCode())
	}
	return nil
}
