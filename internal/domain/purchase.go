package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Purchase 一次购买的不可变记录。unit_price/total_price/sweet_name 是
// 下单时刻的快照：商品之后改价或被删除都不影响历史。
type Purchase struct {
	ID           string          `gorm:"primaryKey;size:36" json:"id"`
	UserID       string          `gorm:"size:36;not null;index" json:"user_id"`
	SweetID      string          `gorm:"size:36;not null;index" json:"sweet_id"`
	Quantity     int             `gorm:"not null" json:"quantity"`
	UnitPrice    decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"unit_price"`
	TotalPrice   decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"total_price"`
	SweetName    string          `gorm:"size:128;not null" json:"sweet_name"`
	PurchaseDate time.Time       `gorm:"autoCreateTime;index" json:"purchase_date"`
}

func (Purchase) TableName() string { return "purchases" }

// PurchaseDetail 查询结果：购买记录 + 关联行。Sweet/Profile 可能为 nil
// （商品已删除、账号已注销），调用方按快照渲染。
type PurchaseDetail struct {
	Purchase
	Sweet   *Sweet   `json:"sweet,omitempty"`
	Profile *Profile `json:"profile,omitempty"`
}

// SweetAvailable 关联商品是否仍在售
func (d *PurchaseDetail) SweetAvailable() bool { return d.Sweet != nil }

type PurchaseRepository interface {
	// Record 在单个事务里完成条件扣减（stock >= quantity 才生效）与
	// 购买记录插入。库存不足返回 ErrInsufficientStock，商品不存在返回
	// ErrSweetNotFound；两种情况都不产生任何写入。
	Record(ctx context.Context, userID, sweetID string, quantity int) (*Purchase, error)
	// ListByUser 单个用户的历史，按购买时间倒序
	ListByUser(ctx context.Context, userID string) ([]PurchaseDetail, error)
	// ListAll 全量订单（管理端），按购买时间倒序
	ListAll(ctx context.Context) ([]PurchaseDetail, error)
}
