package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"

	"outblog_shopify_v1/internal/api/dto"
	"outblog_shopify_v1/internal/cache"
	"outblog_shopify_v1/internal/model"
	"outblog_shopify_v1/internal/repository"
	"outblog_shopify_v1/pkg/apperr"
	"outblog_shopify_v1/pkg/content"
	"outblog_shopify_v1/pkg/logger"
	"outblog_shopify_v1/pkg/metrics"
	"outblog_shopify_v1/pkg/shopify"
)

const (
	DefaultBlogHandle = "outblog"
	DefaultBlogTitle  = "Outblog"
	DefaultAuthor     = "Outblog AI"

	ensureBlogTimeout = 30 * time.Second
)

// PublishOptions 发布配置
type PublishOptions struct {
	BlogHandle string
	BlogTitle  string
	Author     string
	// 批量发布也做 markdown 转换；默认只去掉 front matter
	BulkFullSanitize bool
}

// PublishService 把本地帖子发布为 Shopify 文章
type PublishService struct {
	SettingsRepo repository.SettingsRepository
	PostRepo     repository.PostRepository

	creds CredentialSource
	admin shopify.Admin
	blogs cache.BlogCache
	group singleflight.Group
	opts  PublishOptions
}

// NewPublishService 创建发布服务
func NewPublishService(
	settingsRepo repository.SettingsRepository,
	postRepo repository.PostRepository,
	creds CredentialSource,
	admin shopify.Admin,
	blogs cache.BlogCache,
	opts PublishOptions,
) *PublishService {
	if opts.BlogHandle == "" {
		opts.BlogHandle = DefaultBlogHandle
	}
	if opts.BlogTitle == "" {
		opts.BlogTitle = DefaultBlogTitle
	}
	if opts.Author == "" {
		opts.Author = DefaultAuthor
	}
	return &PublishService{
		SettingsRepo: settingsRepo,
		PostRepo:     postRepo,
		creds:        creds,
		admin:        admin,
		blogs:        blogs,
		opts:         opts,
	}
}

// BlogHandle 应用博客的 handle
func (s *PublishService) BlogHandle() string {
	return s.opts.BlogHandle
}

// PublishPost 发布单篇，正文走完整的 markdown 转换
func (s *PublishService) PublishPost(ctx context.Context, shop string, postID int64) (*dto.PublishResp, error) {
	const op = "publish.PublishPost"

	settings, err := s.loadSettings(ctx, op, shop)
	if err != nil {
		return nil, err
	}
	post, err := s.PostRepo.GetForShop(ctx, settings.ID, postID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound(op, "Blog post not found")
	}
	if err != nil {
		return nil, apperr.Store(op, err)
	}

	cred, err := s.creds.Credentials(ctx, shop)
	if err != nil {
		return nil, err
	}
	blogID, err := s.ensureBlog(ctx, cred)
	if err != nil {
		return nil, err
	}

	article, status, err := s.publishOne(ctx, cred, blogID, settings, post, true)
	if err != nil {
		metrics.PublishFailures.WithLabelValues("single", apperr.KindOf(err).String()).Inc()
		return nil, err
	}
	metrics.ArticlesPublished.WithLabelValues("single").Inc()

	resp := &dto.PublishResp{
		Success:   true,
		PostID:    post.ID,
		ArticleID: article.ID,
		Status:    status,
		EditorURL: shopify.ArticleEditorURL(shop, article.ID),
	}
	if status == model.PostStatusPublished {
		resp.Message = "Blog published to Shopify successfully!"
		resp.LiveURL = shopify.ArticleLiveURL(shop, s.opts.BlogHandle, content.ArticleHandle(post.Slug, post.Title))
	} else {
		resp.Message = "Blog saved to Shopify as a draft."
	}
	return resp, nil
}

// PublishAll 发布所有还没有 Shopify 文章的帖子
// 单篇 userErrors 跳过继续；认证/网络/存储错误中止，返回已成功的数量
func (s *PublishService) PublishAll(ctx context.Context, shop string) (*dto.PublishAllResp, error) {
	const op = "publish.PublishAll"
	log := logger.FromContext(ctx).With(zap.String("shop", shop))

	settings, err := s.loadSettings(ctx, op, shop)
	if err != nil {
		return nil, err
	}
	posts, err := s.PostRepo.ListUnpublished(ctx, settings.ID)
	if err != nil {
		return nil, apperr.Store(op, err)
	}

	result := &dto.PublishAllResp{Skipped: []dto.SkippedPost{}}
	if len(posts) == 0 {
		result.Success = true
		result.Message = "Published 0 blogs to Shopify"
		return result, nil
	}

	cred, err := s.creds.Credentials(ctx, shop)
	if err != nil {
		return nil, err
	}
	blogID, err := s.ensureBlog(ctx, cred)
	if err != nil {
		return nil, err
	}

	for i := range posts {
		post := &posts[i]
		_, _, err := s.publishOne(ctx, cred, blogID, settings, post, s.opts.BulkFullSanitize)
		if err == nil {
			result.Published++
			metrics.ArticlesPublished.WithLabelValues("bulk").Inc()
			continue
		}

		kind := apperr.KindOf(err)
		metrics.PublishFailures.WithLabelValues("bulk", kind.String()).Inc()
		if !skippable(err) {
			log.Error("批量发布中止", zap.Int("published", result.Published), zap.Error(err))
			result.Message = fmt.Sprintf("Published %d blogs to Shopify before an error occurred", result.Published)
			return result, err
		}

		log.Warn("跳过帖子", zap.Int64("post_id", post.ID), zap.String("slug", post.Slug), zap.Error(err))
		result.Skipped = append(result.Skipped, dto.SkippedPost{
			PostID: post.ID,
			Slug:   post.Slug,
			Error:  apperr.UserMessage(err),
		})
	}

	result.Success = true
	result.Message = fmt.Sprintf("Published %d blogs to Shopify", result.Published)
	log.Info("批量发布完成", zap.Int("published", result.Published), zap.Int("skipped", len(result.Skipped)))
	return result, nil
}

// skippable 只和单篇内容有关的错误：userErrors 或者没有返回文章
func skippable(err error) bool {
	return apperr.KindOf(err) == apperr.KindValidation || errors.Is(err, shopify.ErrNoArticleData)
}

func (s *PublishService) loadSettings(ctx context.Context, op, shop string) (*model.ShopSettings, error) {
	settings, err := s.SettingsRepo.GetByShop(ctx, shop)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound(op, "Shop settings not found")
	}
	if err != nil {
		return nil, apperr.Store(op, err)
	}
	return settings, nil
}

// ensureBlog 找到或创建应用博客，结果按店铺缓存，同一店铺并发只查一次
func (s *PublishService) ensureBlog(ctx context.Context, cred shopify.Credentials) (string, error) {
	log := logger.FromContext(ctx).With(zap.String("shop", cred.Shop))

	if id, ok, err := s.blogs.Get(ctx, cred.Shop); err != nil {
		log.Warn("读取博客缓存失败", zap.Error(err))
	} else if ok {
		return id, nil
	}

	v, err, _ := s.group.Do(cred.Shop, func() (interface{}, error) {
		// 共享调用不跟随第一个请求取消
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), ensureBlogTimeout)
		defer cancel()

		blog, err := s.admin.FindBlogByHandle(ctx, cred, s.opts.BlogHandle)
		if err != nil {
			return "", err
		}
		if blog == nil {
			blog, err = s.admin.CreateBlog(ctx, cred, s.opts.BlogTitle, s.opts.BlogHandle)
			if err != nil {
				return "", err
			}
			log.Info("已创建应用博客", zap.String("blog_id", blog.ID))
		}
		if err := s.blogs.Set(ctx, cred.Shop, blog.ID); err != nil {
			log.Warn("写入博客缓存失败", zap.Error(err))
		}
		return blog.ID, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// publishOne 创建文章并回写本地状态，失败时不修改本地记录
func (s *PublishService) publishOne(
	ctx context.Context,
	cred shopify.Credentials,
	blogID string,
	settings *model.ShopSettings,
	post *model.OutblogPost,
	fullSanitize bool,
) (*shopify.Article, string, error) {
	var body string
	if fullSanitize {
		body = content.ToArticleHTML(post.Content, post.Title)
	} else {
		body = content.StripFrontMatter(post.Content)
	}

	input := shopify.ArticleInput{
		BlogID:      blogID,
		Title:       post.Title,
		Body:        body,
		Handle:      content.ArticleHandle(post.Slug, post.Title),
		IsPublished: !settings.PostAsDraft,
		Author:      shopify.ArticleAuthor{Name: s.opts.Author},
	}
	if post.FeaturedImage != nil {
		if src, ok := content.ImageURL(*post.FeaturedImage); ok {
			input.Image = &shopify.ArticleImage{AltText: content.AltText(post.Title), URL: src}
		}
	}

	article, err := s.admin.CreateArticle(ctx, cred, input)
	if err != nil {
		s.dropStaleBlog(ctx, cred.Shop, err)
		return nil, "", err
	}

	status := model.PostStatusPublished
	if settings.PostAsDraft {
		status = model.PostStatusDraft
	}
	if err := s.PostRepo.MarkPublished(ctx, post.ID, article.ID, status); err != nil {
		return nil, "", apperr.Store("publish.MarkPublished", err)
	}
	return article, status, nil
}

// dropStaleBlog 博客被商家删除后 blogId 会报错，清掉缓存让下次重新查找
func (s *PublishService) dropStaleBlog(ctx context.Context, shop string, err error) {
	var ae *apperr.Error
	if !errors.As(err, &ae) || ae.Kind != apperr.KindValidation {
		return
	}
	if !strings.Contains(strings.ToLower(ae.Field), "blogid") {
		return
	}
	if derr := s.blogs.Delete(ctx, shop); derr != nil {
		logger.FromContext(ctx).Warn("清除博客缓存失败", zap.String("shop", shop), zap.Error(derr))
	}
}

