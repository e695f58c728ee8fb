package service

import (
	"context"
	"testing"

	"gorm.io/gorm"

	"outblog_shopify_v1/internal/model"
	"outblog_shopify_v1/internal/repository"
	"outblog_shopify_v1/pkg/apperr"
	"outblog_shopify_v1/pkg/database"
	"outblog_shopify_v1/pkg/shopify"
)

// ==================== 测试辅助 ====================

const testShop = "demo.myshopify.com"

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := database.Open(database.Options{
		Driver:       "sqlite",
		DSN:          ":memory:",
		MaxOpenConns: 1,
		LogLevel:     "silent",
	}, model.AllModels()...)
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

type testRepos struct {
	settings repository.SettingsRepository
	posts    repository.PostRepository
	sessions repository.SessionRepository
}

func newTestRepos(t *testing.T) testRepos {
	db := setupTestDB(t)
	return testRepos{
		settings: repository.NewSettingsRepository(db),
		posts:    repository.NewPostRepository(db),
		sessions: repository.NewSessionRepository(db),
	}
}

// seedShop 创建带 API Key 的店铺设置
func seedShop(t *testing.T, r testRepos, shop string, postAsDraft bool) *model.ShopSettings {
	s, err := r.settings.SaveCredentials(context.Background(), shop, "key-"+shop, postAsDraft)
	if err != nil {
		t.Fatalf("创建店铺设置失败: %v", err)
	}
	return s
}

// seedPost 创建一篇帖子，articleID 非空时标记为已发布
func seedPost(t *testing.T, r testRepos, settingsID int64, slug, content, articleID string) *model.OutblogPost {
	ctx := context.Background()
	p := &model.OutblogPost{
		ShopSettingsID: settingsID,
		Slug:           slug,
		Title:          "Title " + slug,
		Content:        content,
		Categories:     model.StringList(nil),
		Tags:           model.StringList(nil),
	}
	if err := r.posts.Upsert(ctx, p); err != nil {
		t.Fatalf("创建帖子失败: %v", err)
	}
	list, _, err := r.posts.List(ctx, repository.PostFilter{ShopSettingsID: settingsID, PageSize: 1000})
	if err != nil {
		t.Fatalf("查询帖子失败: %v", err)
	}
	for i := range list {
		if list[i].Slug != slug {
			continue
		}
		if articleID != "" {
			if err := r.posts.MarkPublished(ctx, list[i].ID, articleID, model.PostStatusPublished); err != nil {
				t.Fatalf("标记发布失败: %v", err)
			}
		}
		return &list[i]
	}
	t.Fatalf("帖子 %s 未找到", slug)
	return nil
}

// staticCreds 测试用凭证
type staticCreds struct {
	err error
}

func (s staticCreds) Credentials(_ context.Context, shop string) (shopify.Credentials, error) {
	if s.err != nil {
		return shopify.Credentials{}, s.err
	}
	return shopify.Credentials{Shop: shop, AccessToken: "shpat_test"}, nil
}

var errNetwork = apperr.New(apperr.KindNetwork, "shopify.do", "connection refused")

func postFilterFor(settingsID int64) repository.PostFilter {
	return repository.PostFilter{ShopSettingsID: settingsID, PageSize: 100}
}
