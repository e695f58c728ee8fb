package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"outblog_shopify_v1/internal/mocks"
	"outblog_shopify_v1/internal/model"
	"outblog_shopify_v1/pkg/apperr"
	"outblog_shopify_v1/pkg/shopify"
)

func TestSessionService_EnsureOffline(t *testing.T) {
	ctrl := gomock.NewController(t)
	ex := mocks.NewMockTokenExchanger(ctrl)
	r := newTestRepos(t)
	svc := NewSessionService(r.sessions, ex)
	ctx := context.Background()

	_, err := svc.Credentials(ctx, testShop)
	assert.Equal(t, apperr.KindAuth, apperr.KindOf(err))

	// 只交换一次
	ex.EXPECT().ExchangeToken(gomock.Any(), testShop, "session-jwt").
		Return(&shopify.AccessToken{AccessToken: "shpat_1", Scope: "write_content"}, nil).
		Times(1)

	require.NoError(t, svc.EnsureOffline(ctx, testShop, "session-jwt"))
	require.NoError(t, svc.EnsureOffline(ctx, testShop, "session-jwt"))

	cred, err := svc.Credentials(ctx, testShop)
	require.NoError(t, err)
	assert.Equal(t, shopify.Credentials{Shop: testShop, AccessToken: "shpat_1"}, cred)
}

func TestSessionService_EnsureOffline_ExchangeFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	ex := mocks.NewMockTokenExchanger(ctrl)
	r := newTestRepos(t)
	svc := NewSessionService(r.sessions, ex)
	ctx := context.Background()

	ex.EXPECT().ExchangeToken(gomock.Any(), testShop, "expired").
		Return(nil, apperr.New(apperr.KindAuth, "shopify.ExchangeToken", "HTTP 400"))

	err := svc.EnsureOffline(ctx, testShop, "expired")
	assert.Equal(t, apperr.KindAuth, apperr.KindOf(err))

	_, err = r.sessions.Get(ctx, model.OfflineSessionID(testShop))
	assert.Error(t, err)
}

func TestSessionService_UpdateScope(t *testing.T) {
	r := newTestRepos(t)
	svc := NewSessionService(r.sessions, nil)
	ctx := context.Background()

	require.NoError(t, r.sessions.Save(ctx, &model.Session{ID: model.OfflineSessionID(testShop), Shop: testShop, AccessToken: "t", Scope: "read_content"}))
	require.NoError(t, svc.UpdateScope(ctx, testShop, "read_content,write_content"))

	sess, err := r.sessions.Get(ctx, model.OfflineSessionID(testShop))
	require.NoError(t, err)
	assert.Equal(t, "read_content,write_content", sess.Scope)
}
