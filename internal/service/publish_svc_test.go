package service

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"outblog_shopify_v1/internal/cache"
	"outblog_shopify_v1/internal/mocks"
	"outblog_shopify_v1/internal/model"
	"outblog_shopify_v1/pkg/apperr"
	"outblog_shopify_v1/pkg/shopify"
)

const testBlogID = "gid://shopify/Blog/1"

type publishFixture struct {
	repos testRepos
	admin *mocks.MockAdmin
	blogs cache.BlogCache
	svc   *PublishService
}

func newPublishFixture(t *testing.T, opts PublishOptions) *publishFixture {
	ctrl := gomock.NewController(t)
	f := &publishFixture{
		repos: newTestRepos(t),
		admin: mocks.NewMockAdmin(ctrl),
		blogs: cache.NewMemoryCache(0),
	}
	f.svc = NewPublishService(f.repos.settings, f.repos.posts, staticCreds{}, f.admin, f.blogs, opts)
	return f
}

func TestPublishService_PublishPost(t *testing.T) {
	f := newPublishFixture(t, PublishOptions{})
	ctx := context.Background()

	settings := seedShop(t, f.repos, testShop, false)
	post := seedPost(t, f.repos, settings.ID, "hello-world", "---\ntitle: x\n---\n## Sub", "")
	img := "https://cdn.example.com/a.png"
	require.NoError(t, f.repos.posts.Upsert(ctx, &model.OutblogPost{
		ShopSettingsID: settings.ID, Slug: post.Slug, Title: post.Title, Content: post.Content,
		FeaturedImage: &img, Categories: model.StringList(nil), Tags: model.StringList(nil),
	}))

	f.admin.EXPECT().FindBlogByHandle(gomock.Any(), gomock.Any(), "outblog").Return(nil, nil)
	f.admin.EXPECT().CreateBlog(gomock.Any(), gomock.Any(), "Outblog", "outblog").
		Return(&shopify.Blog{ID: testBlogID, Handle: "outblog"}, nil)
	f.admin.EXPECT().CreateArticle(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, cred shopify.Credentials, in shopify.ArticleInput) (*shopify.Article, error) {
			assert.Equal(t, testShop, cred.Shop)
			assert.Equal(t, testBlogID, in.BlogID)
			assert.Equal(t, "<h2>Sub</h2>", in.Body)
			assert.Equal(t, "hello-world", in.Handle)
			assert.True(t, in.IsPublished)
			assert.Equal(t, DefaultAuthor, in.Author.Name)
			require.NotNil(t, in.Image)
			assert.Equal(t, img, in.Image.URL)
			assert.Equal(t, post.Title, in.Image.AltText)
			return &shopify.Article{ID: "gid://shopify/Article/99"}, nil
		})

	resp, err := f.svc.PublishPost(ctx, testShop, post.ID)
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, model.PostStatusPublished, resp.Status)
	assert.Equal(t, "Blog published to Shopify successfully!", resp.Message)
	assert.Equal(t, "https://"+testShop+"/admin/articles/99", resp.EditorURL)
	assert.Equal(t, "https://"+testShop+"/blogs/outblog/hello-world", resp.LiveURL)

	got, err := f.repos.posts.GetForShop(ctx, settings.ID, post.ID)
	require.NoError(t, err)
	require.NotNil(t, got.ShopifyArticleID)
	assert.Equal(t, "gid://shopify/Article/99", *got.ShopifyArticleID)
	assert.Equal(t, model.PostStatusPublished, got.Status)

	id, ok, _ := f.blogs.Get(ctx, testShop)
	assert.True(t, ok)
	assert.Equal(t, testBlogID, id)
}

func TestPublishService_PublishPost_DraftAndCachedBlog(t *testing.T) {
	f := newPublishFixture(t, PublishOptions{})
	ctx := context.Background()

	settings := seedShop(t, f.repos, testShop, true)
	post := seedPost(t, f.repos, settings.ID, "draft-me", "plain", "")
	require.NoError(t, f.blogs.Set(ctx, testShop, testBlogID))

	// 命中缓存，不查博客
	f.admin.EXPECT().CreateArticle(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ shopify.Credentials, in shopify.ArticleInput) (*shopify.Article, error) {
			assert.False(t, in.IsPublished)
			assert.Nil(t, in.Image)
			assert.Equal(t, "<p>plain</p>", in.Body)
			return &shopify.Article{ID: "gid://shopify/Article/7"}, nil
		})

	resp, err := f.svc.PublishPost(ctx, testShop, post.ID)
	require.NoError(t, err)
	assert.Equal(t, model.PostStatusDraft, resp.Status)
	assert.Equal(t, "Blog saved to Shopify as a draft.", resp.Message)
	assert.Empty(t, resp.LiveURL)
}

func TestPublishService_PublishPost_UserErrorLeavesPostUntouched(t *testing.T) {
	f := newPublishFixture(t, PublishOptions{})
	ctx := context.Background()

	settings := seedShop(t, f.repos, testShop, false)
	post := seedPost(t, f.repos, settings.ID, "bad", "x", "")
	require.NoError(t, f.blogs.Set(ctx, testShop, testBlogID))

	f.admin.EXPECT().CreateArticle(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, apperr.Validation("shopify.CreateArticle", "article.blogId", "Blog does not exist"))

	_, err := f.svc.PublishPost(ctx, testShop, post.ID)
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	assert.Equal(t, "Shopify API Error: article.blogId: Blog does not exist", apperr.UserMessage(err))

	got, err := f.repos.posts.GetForShop(ctx, settings.ID, post.ID)
	require.NoError(t, err)
	assert.Nil(t, got.ShopifyArticleID)
	assert.Equal(t, model.PostStatusDraft, got.Status)

	// blogId 错误会清掉缓存
	_, ok, _ := f.blogs.Get(ctx, testShop)
	assert.False(t, ok)
}

func TestPublishService_PublishPost_NotFound(t *testing.T) {
	f := newPublishFixture(t, PublishOptions{})
	ctx := context.Background()

	_, err := f.svc.PublishPost(ctx, testShop, 1)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	assert.Equal(t, "Shop settings not found", apperr.UserMessage(err))

	// 其它店铺的帖子不可见
	other := seedShop(t, f.repos, "other.myshopify.com", false)
	foreign := seedPost(t, f.repos, other.ID, "theirs", "x", "")
	seedShop(t, f.repos, testShop, false)

	_, err = f.svc.PublishPost(ctx, testShop, foreign.ID)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	assert.Equal(t, "Blog post not found", apperr.UserMessage(err))
}

func TestPublishService_PublishAll_SkipsInvalidPosts(t *testing.T) {
	f := newPublishFixture(t, PublishOptions{})
	ctx := context.Background()

	settings := seedShop(t, f.repos, testShop, false)
	seedPost(t, f.repos, settings.ID, "already", "x", "gid://shopify/Article/1")
	p1 := seedPost(t, f.repos, settings.ID, "one", "---\na: b\n---\n**keep markdown**", "")
	p2 := seedPost(t, f.repos, settings.ID, "two", "x", "")
	p3 := seedPost(t, f.repos, settings.ID, "three", "x", "")
	require.NoError(t, f.blogs.Set(ctx, testShop, testBlogID))

	f.admin.EXPECT().CreateArticle(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ shopify.Credentials, in shopify.ArticleInput) (*shopify.Article, error) {
			switch in.Handle {
			case "one":
				assert.Equal(t, "**keep markdown**", in.Body)
				return &shopify.Article{ID: "gid://shopify/Article/11"}, nil
			case "two":
				return nil, apperr.Validation("shopify.CreateArticle", "article.handle", "Handle has already been taken")
			default:
				return &shopify.Article{ID: "gid://shopify/Article/13"}, nil
			}
		}).Times(3)

	resp, err := f.svc.PublishAll(ctx, testShop)
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, 2, resp.Published)
	assert.Equal(t, "Published 2 blogs to Shopify", resp.Message)
	require.Len(t, resp.Skipped, 1)
	assert.Equal(t, p2.ID, resp.Skipped[0].PostID)
	assert.Equal(t, "two", resp.Skipped[0].Slug)

	for id, want := range map[int64]bool{p1.ID: true, p2.ID: false, p3.ID: true} {
		got, err := f.repos.posts.GetForShop(ctx, settings.ID, id)
		require.NoError(t, err)
		assert.Equal(t, want, got.IsOnShopify(), got.Slug)
	}
}

func TestPublishService_PublishAll_FullSanitizeOption(t *testing.T) {
	f := newPublishFixture(t, PublishOptions{BulkFullSanitize: true})
	ctx := context.Background()

	settings := seedShop(t, f.repos, testShop, false)
	seedPost(t, f.repos, settings.ID, "one", "**bold**", "")
	require.NoError(t, f.blogs.Set(ctx, testShop, testBlogID))

	f.admin.EXPECT().CreateArticle(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ shopify.Credentials, in shopify.ArticleInput) (*shopify.Article, error) {
			assert.Equal(t, "<strong>bold</strong>", in.Body)
			return &shopify.Article{ID: "gid://shopify/Article/1"}, nil
		})

	resp, err := f.svc.PublishAll(ctx, testShop)
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Published)
}

func TestPublishService_PublishAll_AbortsOnAuthError(t *testing.T) {
	f := newPublishFixture(t, PublishOptions{})
	ctx := context.Background()

	settings := seedShop(t, f.repos, testShop, false)
	for i := 0; i < 3; i++ {
		seedPost(t, f.repos, settings.ID, fmt.Sprintf("p-%d", i), "x", "")
	}
	require.NoError(t, f.blogs.Set(ctx, testShop, testBlogID))

	gomock.InOrder(
		f.admin.EXPECT().CreateArticle(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(&shopify.Article{ID: "gid://shopify/Article/1"}, nil),
		f.admin.EXPECT().CreateArticle(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, apperr.New(apperr.KindAuth, "shopify.CreateArticle", "HTTP 401")),
	)

	resp, err := f.svc.PublishAll(ctx, testShop)
	require.Error(t, err)
	assert.Equal(t, apperr.KindAuth, apperr.KindOf(err))
	require.NotNil(t, resp)
	assert.Equal(t, 1, resp.Published)
	assert.False(t, resp.Success)

	n, err := f.repos.posts.CountPublished(ctx, settings.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestPublishService_PublishAll_Nothing(t *testing.T) {
	f := newPublishFixture(t, PublishOptions{})
	seedShop(t, f.repos, testShop, false)

	resp, err := f.svc.PublishAll(context.Background(), testShop)
	require.NoError(t, err)
	assert.Equal(t, 0, resp.Published)
	assert.Equal(t, "Published 0 blogs to Shopify", resp.Message)
}

func TestPublishService_EnsureBlogErrorPropagates(t *testing.T) {
	f := newPublishFixture(t, PublishOptions{BlogHandle: "news"})
	ctx := context.Background()

	settings := seedShop(t, f.repos, testShop, false)
	post := seedPost(t, f.repos, settings.ID, "one", "x", "")

	f.admin.EXPECT().FindBlogByHandle(gomock.Any(), gomock.Any(), "news").Return(nil, errNetwork)

	_, err := f.svc.PublishPost(ctx, testShop, post.ID)
	assert.Equal(t, apperr.KindNetwork, apperr.KindOf(err))
	assert.Equal(t, "news", f.svc.BlogHandle())
}

func TestPublishService_PublishAll_SkipsMissingArticleData(t *testing.T) {
	f := newPublishFixture(t, PublishOptions{})
	ctx := context.Background()

	settings := seedShop(t, f.repos, testShop, false)
	seedPost(t, f.repos, settings.ID, "one", "x", "")
	seedPost(t, f.repos, settings.ID, "two", "x", "")
	require.NoError(t, f.blogs.Set(ctx, testShop, testBlogID))

	noData := &apperr.Error{Kind: apperr.KindUnknown, Op: "shopify.CreateArticle", Err: shopify.ErrNoArticleData}
	gomock.InOrder(
		f.admin.EXPECT().CreateArticle(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, noData),
		f.admin.EXPECT().CreateArticle(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(&shopify.Article{ID: "gid://shopify/Article/2"}, nil),
	)

	resp, err := f.svc.PublishAll(ctx, testShop)
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Published)
	require.Len(t, resp.Skipped, 1)
	assert.Equal(t, "one", resp.Skipped[0].Slug)
}

func TestPublishService_PublishAll_AbortsOnUnclassifiedError(t *testing.T) {
	f := newPublishFixture(t, PublishOptions{})
	ctx := context.Background()

	settings := seedShop(t, f.repos, testShop, false)
	seedPost(t, f.repos, settings.ID, "one", "x", "")
	seedPost(t, f.repos, settings.ID, "two", "x", "")
	require.NoError(t, f.blogs.Set(ctx, testShop, testBlogID))

	f.admin.EXPECT().CreateArticle(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, fmt.Errorf("boom")).Times(1)

	resp, err := f.svc.PublishAll(ctx, testShop)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, 0, resp.Published)
	assert.False(t, resp.Success)
}

// 顶层 GraphQL errors 影响整个店铺，批量发布必须中止
func TestPublishService_PublishAll_GraphQLErrorsAbort(t *testing.T) {
	tests := []struct {
		name string
		body string
		kind apperr.Kind
	}{
		{"无权限", `{"errors":[{"message":"Access denied for articleCreate field.","extensions":{"code":"ACCESS_DENIED"}}]}`, apperr.KindAuth},
		{"其它错误", `{"errors":[{"message":"Invalid global id 'x'","extensions":{"code":"argumentLiteralsIncompatible"}}]}`, apperr.KindUpstream},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				atomic.AddInt32(&calls, 1)
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(tt.body))
			}))
			t.Cleanup(srv.Close)

			admin := shopify.NewClient(shopify.Options{
				Timeout:       5 * time.Second,
				RatePerSecond: 100,
				RateBurst:     100,
				BaseURL:       func(string) string { return srv.URL },
			})
			repos := newTestRepos(t)
			blogs := cache.NewMemoryCache(0)
			svc := NewPublishService(repos.settings, repos.posts, staticCreds{}, admin, blogs, PublishOptions{})
			ctx := context.Background()

			settings := seedShop(t, repos, testShop, false)
			for i := 0; i < 3; i++ {
				seedPost(t, repos, settings.ID, fmt.Sprintf("p-%d", i), "x", "")
			}
			require.NoError(t, blogs.Set(ctx, testShop, testBlogID))

			resp, err := svc.PublishAll(ctx, testShop)
			require.Error(t, err)
			assert.Equal(t, tt.kind, apperr.KindOf(err))
			require.NotNil(t, resp)
			assert.False(t, resp.Success)
			assert.Equal(t, 0, resp.Published)
			assert.Empty(t, resp.Skipped)
			assert.Equal(t, int32(1), atomic.LoadInt32(&calls))

			n, err := repos.posts.CountPublished(ctx, settings.ID)
			require.NoError(t, err)
			assert.Equal(t, int64(0), n)
		})
	}
}

func TestPublishService_EnsureBlogIgnoresCallerCancel(t *testing.T) {
	f := newPublishFixture(t, PublishOptions{})

	f.admin.EXPECT().FindBlogByHandle(gomock.Any(), gomock.Any(), DefaultBlogHandle).
		DoAndReturn(func(ctx context.Context, _ shopify.Credentials, _ string) (*shopify.Blog, error) {
			assert.NoError(t, ctx.Err())
			_, ok := ctx.Deadline()
			assert.True(t, ok)
			return &shopify.Blog{ID: testBlogID}, nil
		})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	id, err := f.svc.ensureBlog(ctx, shopify.Credentials{Shop: testShop, AccessToken: "shpat_test"})
	require.NoError(t, err)
	assert.Equal(t, testBlogID, id)
}
