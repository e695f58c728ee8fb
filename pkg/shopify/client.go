package shopify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"

	"outblog_shopify_v1/pkg/apperr"
	"outblog_shopify_v1/pkg/net"
)

const (
	DefaultAPIVersion = "2025-01"

	// nodes(ids:) 单次查询上限
	NodesBatchSize = 50
)

// ErrNoArticleData articleCreate 没有报错但也没有返回文章
var ErrNoArticleData = errors.New("shopify: no article data")

//go:generate mockgen -destination=../../internal/mocks/mock_shopify.go -package=mocks outblog_shopify_v1/pkg/shopify Admin,TokenExchanger

// Admin Shopify Admin GraphQL 能力
type Admin interface {
	FindBlogByHandle(ctx context.Context, cred Credentials, handle string) (*Blog, error)
	CreateBlog(ctx context.Context, cred Credentials, title, handle string) (*Blog, error)
	CreateArticle(ctx context.Context, cred Credentials, input ArticleInput) (*Article, error)
	// ExistingArticles 返回 ids 中仍然存在的 Article ID
	ExistingArticles(ctx context.Context, cred Credentials, ids []string) (map[string]bool, error)
}

// TokenExchanger 用 App Bridge session token 换离线 access token
type TokenExchanger interface {
	ExchangeToken(ctx context.Context, shop, sessionToken string) (*AccessToken, error)
}

// Options 客户端参数
type Options struct {
	APIKey        string
	APISecret     string
	APIVersion    string
	Timeout       time.Duration
	RatePerSecond float64
	RateBurst     int
	// BaseURL 覆盖 https://{shop}，仅测试使用
	BaseURL func(shop string) string
}

// Client Shopify Admin API 客户端，按店铺限速
type Client struct {
	http     *resty.Client
	opts     Options
	limiters sync.Map // shop -> *rate.Limiter
}

var (
	_ Admin          = (*Client)(nil)
	_ TokenExchanger = (*Client)(nil)
)

// NewClient 创建 Shopify 客户端
func NewClient(opts Options) *Client {
	if opts.APIVersion == "" {
		opts.APIVersion = DefaultAPIVersion
	}
	if opts.RatePerSecond <= 0 {
		opts.RatePerSecond = 2
	}
	if opts.RateBurst <= 0 {
		opts.RateBurst = 4
	}
	if opts.BaseURL == nil {
		opts.BaseURL = func(shop string) string { return "https://" + shop }
	}
	return &Client{
		http: net.NewClient(net.ClientOptions{Timeout: opts.Timeout}),
		opts: opts,
	}
}

func (c *Client) limiter(shop string) *rate.Limiter {
	if v, ok := c.limiters.Load(shop); ok {
		return v.(*rate.Limiter)
	}
	l := rate.NewLimiter(rate.Limit(c.opts.RatePerSecond), c.opts.RateBurst)
	actual, _ := c.limiters.LoadOrStore(shop, l)
	return actual.(*rate.Limiter)
}

func (c *Client) graphqlURL(shop string) string {
	return fmt.Sprintf("%s/admin/api/%s/graphql.json", c.opts.BaseURL(shop), c.opts.APIVersion)
}

// statusError Shopify 的 401/403 表示会话失效
func statusError(op string, status int) error {
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return &apperr.Error{Kind: apperr.KindAuth, Op: op, Status: status, Message: fmt.Sprintf("HTTP %d", status)}
	}
	return apperr.FromStatus(op, status)
}

// do 发送 GraphQL 请求，data 解码到 out
func (c *Client) do(ctx context.Context, op string, cred Credentials, query string, vars map[string]interface{}, out interface{}) error {
	if err := c.limiter(cred.Shop).Wait(ctx); err != nil {
		if ctx.Err() != nil {
			return apperr.Classify(op, ctx.Err())
		}
		return apperr.Wrap(apperr.KindTimeout, op, err)
	}

	var env struct {
		Data   json.RawMessage `json:"data"`
		Errors []graphqlError  `json:"errors"`
	}
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader("X-Shopify-Access-Token", cred.AccessToken).
		SetBody(graphqlRequest{Query: query, Variables: vars}).
		Post(c.graphqlURL(cred.Shop))
	if err != nil {
		return apperr.Classify(op, err)
	}
	if resp.IsError() {
		return statusError(op, resp.StatusCode())
	}
	if err := json.Unmarshal(resp.Body(), &env); err != nil {
		return apperr.Wrap(apperr.KindUpstream, op, err)
	}
	if len(env.Errors) > 0 {
		return graphqlErrorOf(op, env.Errors[0])
	}
	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return apperr.Wrap(apperr.KindUpstream, op, err)
		}
	}
	return nil
}

// graphqlErrorOf 顶层 errors 影响整个请求，不是单篇文章的问题
func graphqlErrorOf(op string, e graphqlError) error {
	kind := apperr.KindUpstream
	switch e.Extensions.Code {
	case "THROTTLED":
		kind = apperr.KindRateLimited
	case "ACCESS_DENIED", "UNAUTHORIZED":
		kind = apperr.KindAuth
	}
	return apperr.New(kind, op, "GraphQL Error: "+e.Message)
}

func firstUserError(op string, errs []UserError) error {
	if len(errs) == 0 {
		return nil
	}
	return apperr.Validation(op, strings.Join(errs[0].Field, "."), errs[0].Message)
}

// FindBlogByHandle 按 handle 查找博客，不存在返回 nil
func (c *Client) FindBlogByHandle(ctx context.Context, cred Credentials, handle string) (*Blog, error) {
	var data struct {
		Blogs struct {
			Edges []struct {
				Node Blog `json:"node"`
			} `json:"edges"`
		} `json:"blogs"`
	}
	vars := map[string]interface{}{"query": "handle:" + handle}
	if err := c.do(ctx, "shopify.FindBlogByHandle", cred, queryBlogs, vars, &data); err != nil {
		return nil, err
	}
	for _, edge := range data.Blogs.Edges {
		if edge.Node.Handle == handle {
			blog := edge.Node
			return &blog, nil
		}
	}
	return nil, nil
}

// CreateBlog 创建博客
func (c *Client) CreateBlog(ctx context.Context, cred Credentials, title, handle string) (*Blog, error) {
	const op = "shopify.CreateBlog"

	var data struct {
		BlogCreate struct {
			Blog       *Blog       `json:"blog"`
			UserErrors []UserError `json:"userErrors"`
		} `json:"blogCreate"`
	}
	vars := map[string]interface{}{
		"blog": map[string]string{"title": title, "handle": handle},
	}
	if err := c.do(ctx, op, cred, mutationBlogCreate, vars, &data); err != nil {
		return nil, err
	}
	if err := firstUserError(op, data.BlogCreate.UserErrors); err != nil {
		return nil, err
	}
	if data.BlogCreate.Blog == nil || data.BlogCreate.Blog.ID == "" {
		return nil, apperr.New(apperr.KindUnknown, op, "Shopify API returned no blog data. Please try again.")
	}
	return data.BlogCreate.Blog, nil
}

// CreateArticle 创建文章，userErrors 取第一条返回 KindValidation
func (c *Client) CreateArticle(ctx context.Context, cred Credentials, input ArticleInput) (*Article, error) {
	const op = "shopify.CreateArticle"

	var data struct {
		ArticleCreate struct {
			Article    *Article    `json:"article"`
			UserErrors []UserError `json:"userErrors"`
		} `json:"articleCreate"`
	}
	vars := map[string]interface{}{"article": input}
	if err := c.do(ctx, op, cred, mutationArticleCreate, vars, &data); err != nil {
		return nil, err
	}
	if err := firstUserError(op, data.ArticleCreate.UserErrors); err != nil {
		return nil, err
	}
	if data.ArticleCreate.Article == nil || data.ArticleCreate.Article.ID == "" {
		return nil, &apperr.Error{
			Kind:    apperr.KindUnknown,
			Op:      op,
			Message: "Shopify API returned no article data. Please try again.",
			Err:     ErrNoArticleData,
		}
	}
	return data.ArticleCreate.Article, nil
}

// ExistingArticles 单次最多 NodesBatchSize 个 ID，调用方负责分批
func (c *Client) ExistingArticles(ctx context.Context, cred Credentials, ids []string) (map[string]bool, error) {
	const op = "shopify.ExistingArticles"
	if len(ids) > NodesBatchSize {
		return nil, apperr.New(apperr.KindValidation, op, fmt.Sprintf("too many ids: %d > %d", len(ids), NodesBatchSize))
	}

	var data struct {
		Nodes []*struct {
			Typename string `json:"__typename"`
			ID       string `json:"id"`
		} `json:"nodes"`
	}
	if err := c.do(ctx, op, cred, queryNodes, map[string]interface{}{"ids": ids}, &data); err != nil {
		return nil, err
	}

	present := make(map[string]bool, len(ids))
	for _, node := range data.Nodes {
		if node != nil && node.Typename == "Article" && node.ID != "" {
			present[node.ID] = true
		}
	}
	return present, nil
}

// ExchangeToken 用 session token 换离线 access token
func (c *Client) ExchangeToken(ctx context.Context, shop, sessionToken string) (*AccessToken, error) {
	const op = "shopify.ExchangeToken"

	var out AccessToken
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]string{
			"client_id":            c.opts.APIKey,
			"client_secret":        c.opts.APISecret,
			"grant_type":           "urn:ietf:params:oauth:grant-type:token-exchange",
			"subject_token":        sessionToken,
			"subject_token_type":   "urn:ietf:params:oauth:token-type:id_token",
			"requested_token_type": "urn:shopify:params:oauth:token-type:offline-access-token",
		}).
		SetResult(&out).
		Post(c.opts.BaseURL(shop) + "/admin/oauth/access_token")
	if err != nil {
		return nil, apperr.Classify(op, err)
	}
	if resp.IsError() {
		return nil, statusError(op, resp.StatusCode())
	}
	if out.AccessToken == "" {
		return nil, apperr.New(apperr.KindAuth, op, "empty access token")
	}
	return &out, nil
}
