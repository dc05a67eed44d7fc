package service

import (
	"context"

	"go.uber.org/zap"

	"sweet-shop-api/internal/domain"
)

type ProfileService struct {
	profiles domain.ProfileRepository
	accounts domain.AccountRepository
	log      *zap.Logger
}

func NewProfileService(profiles domain.ProfileRepository, accounts domain.AccountRepository, log *zap.Logger) *ProfileService {
	return &ProfileService{profiles: profiles, accounts: accounts, log: log}
}

// Ensure 取 uid 对应的 profile，不存在就以 role=user 懒创建。
// 全站唯一的 profile 创建入口：所有受保护路由都经这里，保证
// 「首次访问即有且仅有一条 profile」。
func (s *ProfileService) Ensure(ctx context.Context, uid string) (*domain.Profile, error) {
	p, err := s.profiles.FindByID(ctx, uid)
	if err != nil {
		return nil, err
	}
	if p != nil {
		return p, nil
	}

	a, err := s.accounts.FindByID(ctx, uid)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, domain.ErrAccountNotFound
	}

	p = &domain.Profile{
		ID:       uid,
		Email:    a.Email,
		FullName: a.FullName,
		Role:     domain.RoleUser,
	}
	if err := s.profiles.Create(ctx, p); err != nil {
		// 并发首访撞主键：另一个请求已建好，重查一次
		if isDupKey(err) {
			return s.profiles.FindByID(ctx, uid)
		}
		return nil, err
	}
	s.log.Info("profile created", zap.String("profile_id", uid), zap.String("role", p.Role))
	return p, nil
}

func (s *ProfileService) List(ctx context.Context, q string, offset, limit int) ([]domain.Profile, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.profiles.List(ctx, q, offset, limit)
}

func (s *ProfileService) Promote(ctx context.Context, id string) error {
	if err := s.profiles.UpdateRole(ctx, id, domain.RoleAdmin); err != nil {
		return err
	}
	s.log.Info("profile promoted to admin", zap.String("profile_id", id))
	return nil
}

func (s *ProfileService) Demote(ctx context.Context, id string) error {
	if err := s.profiles.UpdateRole(ctx, id, domain.RoleUser); err != nil {
		return err
	}
	s.log.Info("profile demoted to user", zap.String("profile_id", id))
	return nil
}
