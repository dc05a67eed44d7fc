package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"sweet-shop-api/internal/domain"
)

type AccountRepo struct{ db *gorm.DB }

func NewAccountRepo(db *gorm.DB) *AccountRepo { return &AccountRepo{db: db} }

func (r *AccountRepo) Create(ctx context.Context, a *domain.Account) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *AccountRepo) FindByID(ctx context.Context, id string) (*domain.Account, error) {
	var a domain.Account
	err := r.db.WithContext(ctx).First(&a, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &a, err
}

func (r *AccountRepo) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	var a domain.Account
	err := r.db.WithContext(ctx).First(&a, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &a, err
}
