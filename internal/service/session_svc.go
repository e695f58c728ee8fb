package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"outblog_shopify_v1/internal/model"
	"outblog_shopify_v1/internal/repository"
	"outblog_shopify_v1/pkg/apperr"
	"outblog_shopify_v1/pkg/logger"
	"outblog_shopify_v1/pkg/shopify"
)

// CredentialSource 按店铺取 Admin API 凭证
type CredentialSource interface {
	Credentials(ctx context.Context, shop string) (shopify.Credentials, error)
}

// SessionService 管理 Shopify 离线会话
type SessionService struct {
	SessionRepo repository.SessionRepository
	exchanger   shopify.TokenExchanger
}

var _ CredentialSource = (*SessionService)(nil)

// NewSessionService 创建会话服务
func NewSessionService(repo repository.SessionRepository, exchanger shopify.TokenExchanger) *SessionService {
	return &SessionService{
		SessionRepo: repo,
		exchanger:   exchanger,
	}
}

// Credentials 读取离线 token，没有会话时返回 KindAuth
func (s *SessionService) Credentials(ctx context.Context, shop string) (shopify.Credentials, error) {
	const op = "session.Credentials"

	sess, err := s.SessionRepo.Get(ctx, model.OfflineSessionID(shop))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return shopify.Credentials{}, apperr.New(apperr.KindAuth, op, "no offline session for "+shop)
	}
	if err != nil {
		return shopify.Credentials{}, apperr.Store(op, err)
	}
	if sess.AccessToken == "" {
		return shopify.Credentials{}, apperr.New(apperr.KindAuth, op, "empty access token for "+shop)
	}
	return shopify.Credentials{Shop: shop, AccessToken: sess.AccessToken}, nil
}

// EnsureOffline 店铺还没有离线会话时，用 session token 交换并保存
func (s *SessionService) EnsureOffline(ctx context.Context, shop, sessionToken string) error {
	const op = "session.EnsureOffline"

	_, err := s.SessionRepo.Get(ctx, model.OfflineSessionID(shop))
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.Store(op, err)
	}

	tok, err := s.exchanger.ExchangeToken(ctx, shop, sessionToken)
	if err != nil {
		return err
	}
	sess := &model.Session{
		ID:          model.OfflineSessionID(shop),
		Shop:        shop,
		AccessToken: tok.AccessToken,
		Scope:       tok.Scope,
	}
	if err := s.SessionRepo.Save(ctx, sess); err != nil {
		return apperr.Store(op, err)
	}

	logger.FromContext(ctx).Info("已保存离线会话", zap.String("shop", shop), zap.String("scope", tok.Scope))
	return nil
}

// UpdateScope scopes_update webhook
func (s *SessionService) UpdateScope(ctx context.Context, shop, scope string) error {
	n, err := s.SessionRepo.UpdateScope(ctx, shop, scope)
	if err != nil {
		return apperr.Store("session.UpdateScope", err)
	}
	logger.FromContext(ctx).Info("店铺授权范围已更新",
		zap.String("shop", shop),
		zap.String("scope", scope),
		zap.Int64("sessions", n),
	)
	return nil
}
