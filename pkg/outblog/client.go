package outblog

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-resty/resty/v2"

	"outblog_shopify_v1/pkg/apperr"
	"outblog_shopify_v1/pkg/net"
)

const DefaultBaseURL = "https://api.outblogai.com"

//go:generate mockgen -destination=../../internal/mocks/mock_outblog.go -package=mocks outblog_shopify_v1/pkg/outblog API

// API Outblog 内容接口
type API interface {
	ListPosts(ctx context.Context, apiKey string) ([]Post, error)
	ValidateAPIKey(ctx context.Context, apiKey string) (bool, error)
}

// Client Outblog HTTP 客户端
type Client struct {
	http *resty.Client
}

var _ API = (*Client)(nil)

// NewClient 创建 Outblog 客户端
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		http: net.NewClient(net.ClientOptions{BaseURL: baseURL, Timeout: timeout}),
	}
}

// ListPosts 拉取该 API Key 下的全部帖子
// 缺少 data 或 posts 字段视为空列表
func (c *Client) ListPosts(ctx context.Context, apiKey string) ([]Post, error) {
	const op = "outblog.ListPosts"

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("x-api-key", apiKey).
		Get("/blogs/posts/wp")
	if err := net.CheckResponse(op, resp, err); err != nil {
		return nil, err
	}

	var env postsEnvelope
	if err := json.Unmarshal(resp.Body(), &env); err != nil {
		return nil, apperr.Wrap(apperr.KindUpstream, op, err)
	}
	if env.Data == nil || env.Data.Posts == nil {
		return []Post{}, nil
	}
	return env.Data.Posts, nil
}

// ValidateAPIKey 校验 API Key，非 2xx 返回错误
func (c *Client) ValidateAPIKey(ctx context.Context, apiKey string) (bool, error) {
	const op = "outblog.ValidateAPIKey"

	var out validateResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader("x-api-key", apiKey).
		SetResult(&out).
		Post("/blogs/validate-api-key")
	if err := net.CheckResponse(op, resp, err); err != nil {
		return false, err
	}
	return out.Valid, nil
}
