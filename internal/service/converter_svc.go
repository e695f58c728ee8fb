package service

import (
	"outblog_shopify_v1/internal/api/dto"
	"outblog_shopify_v1/internal/model"
	"outblog_shopify_v1/pkg/content"
	"outblog_shopify_v1/pkg/outblog"
	"outblog_shopify_v1/pkg/shopify"
)

// ToPostModel Outblog 帖子 -> 本地记录 (不含发布状态)
func ToPostModel(settingsID int64, p outblog.Post) *model.OutblogPost {
	title := p.Title
	if title == "" {
		title = content.DefaultTitle
	}

	post := &model.OutblogPost{
		ShopSettingsID: settingsID,
		ExternalID:     p.ID,
		Slug:           content.PostSlug(p.Slug, p.Title),
		Title:          title,
		Content:        p.Content,
		FeaturedImage:  p.FeaturedImage,
		Status:         model.PostStatusDraft,
	}

	var categories, tags []string
	if p.MetaData != nil {
		post.MetaDescription = p.MetaData.MetaDescription
		categories = p.MetaData.Categories
		tags = p.MetaData.Tags
	}
	post.Categories = model.StringList(categories)
	post.Tags = model.StringList(tags)
	return post
}

// ToPostResp 本地记录 -> 列表项
func ToPostResp(shop, blogHandle string, p *model.OutblogPost) dto.PostResp {
	categories, _ := model.DecodeStringList(p.Categories)
	tags, _ := model.DecodeStringList(p.Tags)

	resp := dto.PostResp{
		ID:               p.ID,
		ExternalID:       p.ExternalID,
		Slug:             p.Slug,
		Title:            p.Title,
		MetaDescription:  p.MetaDescription,
		FeaturedImage:    p.FeaturedImage,
		Categories:       categories,
		Tags:             tags,
		Status:           p.Status,
		ShopifyArticleID: p.ShopifyArticleID,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
	if p.IsOnShopify() {
		resp.EditorURL = shopify.ArticleEditorURL(shop, *p.ShopifyArticleID)
		if p.Status == model.PostStatusPublished {
			resp.LiveURL = shopify.ArticleLiveURL(shop, blogHandle, content.ArticleHandle(p.Slug, p.Title))
		}
	}
	return resp
}
