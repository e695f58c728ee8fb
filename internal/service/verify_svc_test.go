package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"outblog_shopify_v1/internal/mocks"
	"outblog_shopify_v1/internal/model"
	"outblog_shopify_v1/pkg/apperr"
	"outblog_shopify_v1/pkg/shopify"
)

func newVerifyFixture(t *testing.T) (testRepos, *mocks.MockAdmin, *VerifyService) {
	ctrl := gomock.NewController(t)
	r := newTestRepos(t)
	admin := mocks.NewMockAdmin(ctrl)
	return r, admin, NewVerifyService(r.settings, r.posts, staticCreds{}, admin)
}

func TestVerifyService_Batches(t *testing.T) {
	r, admin, svc := newVerifyFixture(t)
	ctx := context.Background()

	settings := seedShop(t, r, testShop, false)
	for i := 0; i < 120; i++ {
		seedPost(t, r, settings.ID, fmt.Sprintf("post-%03d", i), "x", fmt.Sprintf("gid://shopify/Article/%d", i))
	}
	// 未发布的不参与检查
	seedPost(t, r, settings.ID, "local-only", "x", "")

	// 第 7 和第 101 篇已在 Shopify 删除
	gone := map[string]bool{"gid://shopify/Article/7": true, "gid://shopify/Article/101": true}
	var sizes []int
	admin.EXPECT().ExistingArticles(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ shopify.Credentials, ids []string) (map[string]bool, error) {
			sizes = append(sizes, len(ids))
			present := make(map[string]bool, len(ids))
			for _, id := range ids {
				if !gone[id] {
					present[id] = true
				}
			}
			return present, nil
		}).Times(3)

	resp, err := svc.CheckLiveStatus(ctx, testShop)
	require.NoError(t, err)
	assert.Equal(t, []int{50, 50, 20}, sizes)
	assert.Equal(t, 120, resp.Checked)
	assert.Equal(t, int64(2), resp.Demoted)
	assert.Equal(t,
		"Live status checked: 2 blog(s) are no longer published in Shopify and were marked as not published.",
		resp.Message)

	n, err := r.posts.CountPublished(ctx, settings.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(118), n)

	unpublished, err := r.posts.ListUnpublished(ctx, settings.ID)
	require.NoError(t, err)
	slugs := make([]string, 0, len(unpublished))
	for _, p := range unpublished {
		slugs = append(slugs, p.Slug)
		assert.Equal(t, model.PostStatusDraft, p.Status)
	}
	assert.ElementsMatch(t, []string{"post-007", "post-101", "local-only"}, slugs)
}

func TestVerifyService_AllPresent(t *testing.T) {
	r, admin, svc := newVerifyFixture(t)
	ctx := context.Background()

	settings := seedShop(t, r, testShop, false)
	seedPost(t, r, settings.ID, "a", "x", "gid://shopify/Article/1")

	admin.EXPECT().ExistingArticles(gomock.Any(), gomock.Any(), []string{"gid://shopify/Article/1"}).
		Return(map[string]bool{"gid://shopify/Article/1": true}, nil)

	resp, err := svc.CheckLiveStatus(ctx, testShop)
	require.NoError(t, err)
	assert.Equal(t, "Live status checked: all published blogs still exist in Shopify.", resp.Message)
	assert.Zero(t, resp.Demoted)
}

func TestVerifyService_NoPublishedPosts(t *testing.T) {
	r, _, svc := newVerifyFixture(t)
	settings := seedShop(t, r, testShop, false)
	seedPost(t, r, settings.ID, "a", "x", "")

	resp, err := svc.CheckLiveStatus(context.Background(), testShop)
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, "No published blogs to check", resp.Message)
}

func TestVerifyService_BatchErrorDemotesNothing(t *testing.T) {
	r, admin, svc := newVerifyFixture(t)
	ctx := context.Background()
	svc.batchSize = 2

	settings := seedShop(t, r, testShop, false)
	for i := 0; i < 4; i++ {
		seedPost(t, r, settings.ID, fmt.Sprintf("p-%d", i), "x", fmt.Sprintf("gid://shopify/Article/%d", i))
	}

	gomock.InOrder(
		// 第一批两篇都已删除
		admin.EXPECT().ExistingArticles(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(map[string]bool{}, nil),
		admin.EXPECT().ExistingArticles(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, apperr.New(apperr.KindRateLimited, "shopify.ExistingArticles", "GraphQL Error: Throttled")),
	)

	_, err := svc.CheckLiveStatus(ctx, testShop)
	require.Error(t, err)
	assert.Equal(t, apperr.KindRateLimited, apperr.KindOf(err))

	n, err := r.posts.CountPublished(ctx, settings.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)
}

func TestVerifyService_MissingSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	r := newTestRepos(t)
	svc := NewVerifyService(r.settings, r.posts, staticCreds{err: apperr.New(apperr.KindAuth, "session.Credentials", "no session")}, mocks.NewMockAdmin(ctrl))

	settings := seedShop(t, r, testShop, false)
	seedPost(t, r, settings.ID, "a", "x", "gid://shopify/Article/1")

	_, err := svc.CheckLiveStatus(context.Background(), testShop)
	assert.Equal(t, apperr.KindAuth, apperr.KindOf(err))

	_, err = svc.CheckLiveStatus(context.Background(), "missing.myshopify.com")
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}
