package repo

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"sweet-shop-api/internal/domain"
)

type ProfileRepo struct{ db *gorm.DB }

func NewProfileRepo(db *gorm.DB) *ProfileRepo { return &ProfileRepo{db: db} }

func (r *ProfileRepo) Create(ctx context.Context, p *domain.Profile) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *ProfileRepo) FindByID(ctx context.Context, id string) (*domain.Profile, error) {
	var p domain.Profile
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &p, err
}

func (r *ProfileRepo) UpdateRole(ctx context.Context, id, role string) error {
	res := r.db.WithContext(ctx).Model(&domain.Profile{}).
		Where("id = ?", id).
		Update("role", role)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrProfileNotFound
	}
	return nil
}

func (r *ProfileRepo) List(ctx context.Context, q string, offset, limit int) ([]domain.Profile, int64, error) {
	tx := r.db.WithContext(ctx).Model(&domain.Profile{})
	if s := strings.TrimSpace(q); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		tx = tx.Where("LOWER(email) LIKE ? OR LOWER(full_name) LIKE ?", like, like)
	}
	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var ps []domain.Profile
	if err := tx.Order("created_at DESC").Offset(offset).Limit(limit).Find(&ps).Error; err != nil {
		return nil, 0, err
	}
	return ps, total, nil
}
