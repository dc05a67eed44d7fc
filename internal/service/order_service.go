package service

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"sweet-shop-api/internal/domain"
)

// OrderSummary 管理端订单页顶部的聚合卡片
type OrderSummary struct {
	TotalOrders  int             `json:"total_orders"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
}

type OrderService struct {
	purchases domain.PurchaseRepository
	log       *zap.Logger
}

func NewOrderService(purchases domain.PurchaseRepository, log *zap.Logger) *OrderService {
	return &OrderService{purchases: purchases, log: log}
}

// ListAll 全量订单倒序。q 对商品名/买家邮箱/买家姓名做不区分大小写的
// 子串过滤；聚合始终基于全量（搜索不改变营收卡片）。
func (s *OrderService) ListAll(ctx context.Context, q string) ([]domain.PurchaseDetail, OrderSummary, error) {
	all, err := s.purchases.ListAll(ctx)
	if err != nil {
		return nil, OrderSummary{}, err
	}

	sum := OrderSummary{TotalOrders: len(all), TotalRevenue: decimal.Zero}
	for _, d := range all {
		sum.TotalRevenue = sum.TotalRevenue.Add(d.TotalPrice)
	}

	needle := strings.ToLower(strings.TrimSpace(q))
	if needle == "" {
		return all, sum, nil
	}
	filtered := make([]domain.PurchaseDetail, 0, len(all))
	for _, d := range all {
		if matchesOrder(&d, needle) {
			filtered = append(filtered, d)
		}
	}
	return filtered, sum, nil
}

func matchesOrder(d *domain.PurchaseDetail, needle string) bool {
	if strings.Contains(strings.ToLower(d.SweetName), needle) {
		return true
	}
	if d.Sweet != nil && strings.Contains(strings.ToLower(d.Sweet.Name), needle) {
		return true
	}
	if d.Profile != nil {
		if strings.Contains(strings.ToLower(d.Profile.Email), needle) {
			return true
		}
		if strings.Contains(strings.ToLower(d.Profile.FullName), needle) {
			return true
		}
	}
	return false
}
