package repo

import (
	"context"

	"gorm.io/gorm"

	"sweet-shop-api/internal/domain"
	"sweet-shop-api/pkg/utils"
)

type PurchaseRepo struct{ db *gorm.DB }

func NewPurchaseRepo(db *gorm.DB) *PurchaseRepo { return &PurchaseRepo{db: db} }

// Record 单事务下单：先条件扣减（stock >= quantity 才命中行），命中后
// 读同一行的现价做快照再插入购买记录。两个并发请求争同一行时，
// 条件 UPDATE 在行锁上串行化，最多一个能把库存扣到位，不会超卖。
func (r *PurchaseRepo) Record(ctx context.Context, userID, sweetID string, quantity int) (*domain.Purchase, error) {
	var out *domain.Purchase
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&domain.Sweet{}).
			Where("id = ? AND stock >= ?", sweetID, quantity).
			UpdateColumn("stock", gorm.Expr("stock - ?", quantity))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// 分不清是缺货还是没这个商品，补一次存在性检查
			var n int64
			if err := tx.Model(&domain.Sweet{}).Where("id = ?", sweetID).Count(&n).Error; err != nil {
				return err
			}
			if n == 0 {
				return domain.ErrSweetNotFound
			}
			return domain.ErrInsufficientStock
		}

		var s domain.Sweet
		if err := tx.First(&s, "id = ?", sweetID).Error; err != nil {
			return err
		}
		p := &domain.Purchase{
			ID:         utils.NewID(),
			UserID:     userID,
			SweetID:    sweetID,
			Quantity:   quantity,
			UnitPrice:  s.Price,
			TotalPrice: s.TotalFor(quantity),
			SweetName:  s.Name,
		}
		if err := tx.Create(p).Error; err != nil {
			return err
		}
		out = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PurchaseRepo) ListByUser(ctx context.Context, userID string) ([]domain.PurchaseDetail, error) {
	var ps []domain.Purchase
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("purchase_date DESC").
		Find(&ps).Error
	if err != nil {
		return nil, err
	}
	return r.attach(ctx, ps, false)
}

func (r *PurchaseRepo) ListAll(ctx context.Context) ([]domain.PurchaseDetail, error) {
	var ps []domain.Purchase
	err := r.db.WithContext(ctx).Order("purchase_date DESC").Find(&ps).Error
	if err != nil {
		return nil, err
	}
	return r.attach(ctx, ps, true)
}

// attach 批量补齐关联行。故意不用外键约束：商品删除后这里查不到，
// 对应 detail.Sweet 留 nil，历史视图靠快照字段渲染。
func (r *PurchaseRepo) attach(ctx context.Context, ps []domain.Purchase, withProfiles bool) ([]domain.PurchaseDetail, error) {
	sweetIDs := make([]string, 0, len(ps))
	userIDs := make([]string, 0, len(ps))
	for _, p := range ps {
		sweetIDs = append(sweetIDs, p.SweetID)
		userIDs = append(userIDs, p.UserID)
	}

	sweets := map[string]*domain.Sweet{}
	if len(sweetIDs) > 0 {
		var ss []domain.Sweet
		if err := r.db.WithContext(ctx).Where("id IN ?", sweetIDs).Find(&ss).Error; err != nil {
			return nil, err
		}
		for i := range ss {
			sweets[ss[i].ID] = &ss[i]
		}
	}

	profiles := map[string]*domain.Profile{}
	if withProfiles && len(userIDs) > 0 {
		var prs []domain.Profile
		if err := r.db.WithContext(ctx).Where("id IN ?", userIDs).Find(&prs).Error; err != nil {
			return nil, err
		}
		for i := range prs {
			profiles[prs[i].ID] = &prs[i]
		}
	}

	out := make([]domain.PurchaseDetail, 0, len(ps))
	for _, p := range ps {
		out = append(out, domain.PurchaseDetail{
			Purchase: p,
			Sweet:    sweets[p.SweetID],
			Profile:  profiles[p.UserID],
		})
	}
	return out, nil
}
