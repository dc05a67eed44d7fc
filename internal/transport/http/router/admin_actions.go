package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"sweet-shop-api/internal/service"
)

// mountAdminActions 管理端接口；分组已要求 admin 角色
func mountAdminActions(admin *gin.RouterGroup, svc Services) {
	ez := newEZ(admin)

	// --- GET /admin/v1/sweets 库存列表 ---
	type sweetsQ struct {
		Q        string `form:"q"`
		Category string `form:"category"`
	}
	type sweetsOut struct {
		Items []sweetRow `json:"items"`
	}
	register(ez, Action[sweetsQ, sweetsOut]{
		Method: http.MethodGet,
		Path:   "/sweets",
		Binder: BindQuery,
		Handler: func(c *gin.Context, in *sweetsQ) (sweetsOut, error) {
			sweets, err := svc.Catalog.List(c.Request.Context(), in.Q, in.Category)
			if err != nil {
				return sweetsOut{}, Internal("list sweets failed", err)
			}
			out := sweetsOut{Items: make([]sweetRow, 0, len(sweets))}
			for i := range sweets {
				out.Items = append(out.Items, toSweetRow(&sweets[i]))
			}
			return out, nil
		},
	})

	// --- POST /admin/v1/sweets 新增商品 ---
	type sweetIn struct {
		Name        string          `json:"name"        binding:"required,max=128"`
		Description string          `json:"description" binding:"required"`
		Price       decimal.Decimal `json:"price"       binding:"required"`
		Stock       *int            `json:"stock"       binding:"required"`
		Category    string          `json:"category"    binding:"required,max=64"`
		ImageURL    *string         `json:"image_url"   binding:"omitempty,max=512,url"`
	}
	toInput := func(in *sweetIn) service.SweetInput {
		return service.SweetInput{
			Name:        in.Name,
			Description: in.Description,
			Price:       in.Price,
			Stock:       *in.Stock,
			Category:    in.Category,
			ImageURL:    in.ImageURL,
		}
	}
	register(ez, Action[sweetIn, sweetRow]{
		Method: http.MethodPost,
		Path:   "/sweets",
		Binder: BindJSON,
		Handler: func(c *gin.Context, in *sweetIn) (sweetRow, error) {
			s, err := svc.Catalog.Create(c.Request.Context(), toInput(in))
			if err != nil {
				return sweetRow{}, err
			}
			return toSweetRow(s), nil
		},
	})

	// --- PUT /admin/v1/sweets/:id 整行替换 ---
	register(ez, Action[sweetIn, sweetRow]{
		Method: http.MethodPut,
		Path:   "/sweets/:id",
		Binder: BindJSON,
		Handler: func(c *gin.Context, in *sweetIn) (sweetRow, error) {
			s, err := svc.Catalog.Update(c.Request.Context(), c.Param("id"), toInput(in))
			if err != nil {
				return sweetRow{}, err
			}
			return toSweetRow(s), nil
		},
	})

	// --- DELETE /admin/v1/sweets/:id 不校验既有订单，历史靠快照 ---
	register(ez, Action[struct{}, gin.H]{
		Method: http.MethodDelete,
		Path:   "/sweets/:id",
		Binder: BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (gin.H, error) {
			id := c.Param("id")
			if err := svc.Catalog.Delete(c.Request.Context(), id); err != nil {
				return nil, err
			}
			return gin.H{"id": id}, nil
		},
	})

	// --- GET /admin/v1/purchases 全量订单 + 营收聚合 ---
	type ordersQ struct {
		Q string `form:"q"` // 商品名/买家邮箱/买家姓名
	}
	type orderRow struct {
		ID             string          `json:"id"`
		SweetID        string          `json:"sweet_id"`
		SweetName      string          `json:"sweet_name"`
		BuyerEmail     string          `json:"buyer_email"`
		BuyerName      string          `json:"buyer_name"`
		Quantity       int             `json:"quantity"`
		UnitPrice      decimal.Decimal `json:"unit_price"`
		TotalPrice     decimal.Decimal `json:"total_price"`
		PurchaseDate   time.Time       `json:"purchase_date"`
		SweetAvailable bool            `json:"sweet_available"`
	}
	type ordersOut struct {
		Summary service.OrderSummary `json:"summary"`
		Items   []orderRow           `json:"items"`
	}
	register(ez, Action[ordersQ, ordersOut]{
		Method: http.MethodGet,
		Path:   "/purchases",
		Binder: BindQuery,
		Handler: func(c *gin.Context, in *ordersQ) (ordersOut, error) {
			details, summary, err := svc.Orders.ListAll(c.Request.Context(), in.Q)
			if err != nil {
				return ordersOut{}, Internal("list orders failed", err)
			}
			out := ordersOut{Summary: summary, Items: make([]orderRow, 0, len(details))}
			for _, d := range details {
				row := orderRow{
					ID: d.ID, SweetID: d.SweetID, SweetName: d.SweetName,
					Quantity: d.Quantity, UnitPrice: d.UnitPrice,
					TotalPrice: d.TotalPrice, PurchaseDate: d.PurchaseDate,
					SweetAvailable: d.SweetAvailable(),
				}
				if d.Profile != nil {
					row.BuyerEmail = d.Profile.Email
					row.BuyerName = d.Profile.FullName
				}
				out.Items = append(out.Items, row)
			}
			return out, nil
		},
	})

	// --- GET /admin/v1/users 用户列表 ---
	type usersQ struct {
		Q      string `form:"q"`
		Offset int    `form:"offset,default=0"`
		Limit  int    `form:"limit,default=20"`
	}
	type userRow struct {
		ID        string    `json:"id"`
		Email     string    `json:"email"`
		FullName  string    `json:"full_name"`
		Role      string    `json:"role"`
		CreatedAt time.Time `json:"created_at"`
	}
	type usersOut struct {
		Total int64     `json:"total"`
		Items []userRow `json:"items"`
	}
	register(ez, Action[usersQ, usersOut]{
		Method: http.MethodGet,
		Path:   "/users",
		Binder: BindQuery,
		Handler: func(c *gin.Context, in *usersQ) (usersOut, error) {
			ps, total, err := svc.Profiles.List(c.Request.Context(), in.Q, in.Offset, in.Limit)
			if err != nil {
				return usersOut{}, Internal("list users failed", err)
			}
			out := usersOut{Total: total, Items: make([]userRow, 0, len(ps))}
			for _, p := range ps {
				out.Items = append(out.Items, userRow{
					ID: p.ID, Email: p.Email, FullName: p.FullName,
					Role: p.Role, CreatedAt: p.CreatedAt,
				})
			}
			return out, nil
		},
	})

	// --- POST /admin/v1/users/:id/promote / demote ---
	register(ez, Action[struct{}, gin.H]{
		Method: http.MethodPost,
		Path:   "/users/:id/promote",
		Binder: BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (gin.H, error) {
			id := c.Param("id")
			if err := svc.Profiles.Promote(c.Request.Context(), id); err != nil {
				return nil, err
			}
			return gin.H{"id": id, "role": "admin"}, nil
		},
	})
	register(ez, Action[struct{}, gin.H]{
		Method: http.MethodPost,
		Path:   "/users/:id/demote",
		Binder: BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (gin.H, error) {
			id := c.Param("id")
			if err := svc.Profiles.Demote(c.Request.Context(), id); err != nil {
				return nil, err
			}
			return gin.H{"id": id, "role": "user"}, nil
		},
	})
}
