package repo

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"sweet-shop-api/internal/domain"
)

type SweetRepo struct{ db *gorm.DB }

func NewSweetRepo(db *gorm.DB) *SweetRepo { return &SweetRepo{db: db} }

func (r *SweetRepo) Create(ctx context.Context, s *domain.Sweet) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *SweetRepo) FindByID(ctx context.Context, id string) (*domain.Sweet, error) {
	var s domain.Sweet
	err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &s, err
}

// Update 整行替换；Save 会写入全部字段（包括归零的 stock）
func (r *SweetRepo) Update(ctx context.Context, s *domain.Sweet) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *SweetRepo) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Sweet{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrSweetNotFound
	}
	return nil
}

func (r *SweetRepo) Search(ctx context.Context, q, category string) ([]domain.Sweet, error) {
	tx := r.db.WithContext(ctx).Model(&domain.Sweet{})
	if s := strings.TrimSpace(q); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		tx = tx.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}
	if category != "" && category != "all" {
		tx = tx.Where("category = ?", category)
	}
	var out []domain.Sweet
	err := tx.Order("name").Find(&out).Error
	return out, err
}
