package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Sweet 商品行。库存只允许两条路径修改：管理端整行更新、购买时条件扣减。
type Sweet struct {
	ID          string          `gorm:"primaryKey;size:36" json:"id"`
	Name        string          `gorm:"size:128;not null" json:"name"`
	Description string          `gorm:"type:text;not null" json:"description"`
	Price       decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"price"`
	Stock       int             `gorm:"not null;default:0" json:"stock"`
	Category    string          `gorm:"size:64;not null;index" json:"category"`
	ImageURL    *string         `gorm:"size:512" json:"image_url"`
	CreatedAt   time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Sweet) TableName() string { return "sweets" }

// TotalFor 购买总价 = 当前单价 × 数量。只在下单瞬间调用一次，
// 结果落库后不再依据商品价格重算。
func (s *Sweet) TotalFor(quantity int) decimal.Decimal {
	return s.Price.Mul(decimal.NewFromInt(int64(quantity)))
}

type SweetRepository interface {
	Create(ctx context.Context, s *Sweet) error
	FindByID(ctx context.Context, id string) (*Sweet, error)
	// Update 整行替换（管理端表单提交完整字段）
	Update(ctx context.Context, s *Sweet) error
	// Delete 不检查既有购买记录；历史视图靠快照字段兜底
	Delete(ctx context.Context, id string) error
	// Search q 为 name/description 不区分大小写的子串；category 精确匹配；按 name 排序
	Search(ctx context.Context, q, category string) ([]Sweet, error)
}
