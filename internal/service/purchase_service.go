package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"sweet-shop-api/internal/core/cache"
	"sweet-shop-api/internal/domain"
)

// PurchaseService 下单入口。原子性在仓储层的单事务条件扣减里，
// 这里只做入参校验、缓存失效和指标。
type PurchaseService struct {
	purchases domain.PurchaseRepository
	cache     *cache.Cache // 可为 nil
	log       *zap.Logger
}

func NewPurchaseService(purchases domain.PurchaseRepository, c *cache.Cache, log *zap.Logger) *PurchaseService {
	return &PurchaseService{purchases: purchases, cache: c, log: log}
}

// Purchase quantity ∈ [1, stock] 才会成交；任何拒绝都不产生写入
func (s *PurchaseService) Purchase(ctx context.Context, userID, sweetID string, quantity int) (*domain.Purchase, error) {
	if quantity < 1 {
		observePurchase("rejected")
		return nil, domain.ErrInvalidQuantity
	}

	p, err := s.purchases.Record(ctx, userID, sweetID, quantity)
	if err != nil {
		if errors.Is(err, domain.ErrInsufficientStock) || errors.Is(err, domain.ErrSweetNotFound) {
			observePurchase("rejected")
		} else {
			observePurchase("error")
		}
		return nil, err
	}

	if s.cache != nil {
		s.cache.Invalidate(ctx, catalogCacheKey)
	}
	observePurchase("ok")
	s.log.Info("purchase recorded",
		zap.String("purchase_id", p.ID),
		zap.String("sweet_id", sweetID),
		zap.Int("quantity", quantity),
		zap.String("total_price", p.TotalPrice.String()),
	)
	return p, nil
}

// History 当前用户的购买记录，倒序
func (s *PurchaseService) History(ctx context.Context, userID string) ([]domain.PurchaseDetail, error) {
	return s.purchases.ListByUser(ctx, userID)
}
