package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"sweet-shop-api/internal/core/auth"
	"sweet-shop-api/internal/domain"
	"sweet-shop-api/pkg/utils"
)

type AuthService struct {
	accounts domain.AccountRepository
	profiles domain.ProfileRepository
	jwter    *auth.JWTer
	log      *zap.Logger
}

func NewAuthService(accounts domain.AccountRepository, profiles domain.ProfileRepository, jwter *auth.JWTer, log *zap.Logger) *AuthService {
	return &AuthService{accounts: accounts, profiles: profiles, jwter: jwter, log: log}
}

// Register 只建 accounts 行；profile 留到首次访问受保护接口时懒创建
func (s *AuthService) Register(ctx context.Context, email, password, fullName string) (*domain.Account, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	fullName = strings.TrimSpace(fullName)
	if fullName == "" {
		if at := strings.IndexByte(email, '@'); at > 0 {
			fullName = email[:at]
		}
	}

	if existing, err := s.accounts.FindByEmail(ctx, email); err != nil {
		return nil, "", err
	} else if existing != nil {
		return nil, "", domain.ErrEmailTaken
	}

	a := &domain.Account{
		ID:           utils.NewID(),
		Email:        email,
		FullName:     fullName,
		PasswordHash: utils.HashPassword(password),
	}
	if err := s.accounts.Create(ctx, a); err != nil {
		// 并发注册撞唯一索引也按邮箱占用处理
		if isDupKey(err) {
			return nil, "", domain.ErrEmailTaken
		}
		return nil, "", err
	}
	s.log.Info("account registered", zap.String("account_id", a.ID))

	tok, err := s.jwter.Issue(a.ID, domain.RoleUser)
	if err != nil {
		return nil, "", err
	}
	return a, tok, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.Account, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	a, err := s.accounts.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if a == nil || !utils.CheckPassword(password, a.PasswordHash) {
		return nil, "", domain.ErrInvalidCredentials
	}

	// token 里带当前角色快照；授权判定仍以 profile 表为准
	role := domain.RoleUser
	if p, err := s.profiles.FindByID(ctx, a.ID); err == nil && p != nil {
		role = p.Role
	}
	tok, err := s.jwter.Issue(a.ID, role)
	if err != nil {
		return nil, "", err
	}
	return a, tok, nil
}
