package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"sweet-shop-api/internal/domain"
	mdw "sweet-shop-api/internal/transport/http/middleware"
)

type accountOut struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
}

type sweetRow struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Category    string          `json:"category"`
	ImageURL    *string         `json:"image_url"`
	CreatedAt   time.Time       `json:"created_at"`
}

func toSweetRow(s *domain.Sweet) sweetRow {
	return sweetRow{
		ID: s.ID, Name: s.Name, Description: s.Description,
		Price: s.Price, Stock: s.Stock, Category: s.Category,
		ImageURL: s.ImageURL, CreatedAt: s.CreatedAt,
	}
}

// mountStoreActions 用户端接口：public 无鉴权，authed 已过登录闸口
func mountStoreActions(public, authed *gin.RouterGroup, svc Services) {
	ezPublic := newEZ(public)
	ezAuth := newEZ(authed)

	// --- POST /auth/register ---
	type registerIn struct {
		Email    string `json:"email"     binding:"required,email"`
		Password string `json:"password"  binding:"required,min=6,max=72"`
		FullName string `json:"full_name" binding:"omitempty,max=128"`
	}
	type authOut struct {
		Token string     `json:"token"`
		User  accountOut `json:"user"`
	}
	register(ezPublic, Action[registerIn, authOut]{
		Method: http.MethodPost,
		Path:   "/auth/register",
		Binder: BindJSON,
		Handler: func(c *gin.Context, in *registerIn) (authOut, error) {
			a, tok, err := svc.Auth.Register(c.Request.Context(), in.Email, in.Password, in.FullName)
			if err != nil {
				return authOut{}, err
			}
			return authOut{Token: tok, User: accountOut{ID: a.ID, Email: a.Email, FullName: a.FullName}}, nil
		},
	})

	// --- POST /auth/login ---
	type loginIn struct {
		Email    string `json:"email"    binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	register(ezPublic, Action[loginIn, authOut]{
		Method: http.MethodPost,
		Path:   "/auth/login",
		Binder: BindJSON,
		Handler: func(c *gin.Context, in *loginIn) (authOut, error) {
			a, tok, err := svc.Auth.Login(c.Request.Context(), in.Email, in.Password)
			if err != nil {
				return authOut{}, err
			}
			return authOut{Token: tok, User: accountOut{ID: a.ID, Email: a.Email, FullName: a.FullName}}, nil
		},
	})

	// --- GET /me 闸口已把 profile 放进 context（首访时刚建好） ---
	register(ezAuth, Action[struct{}, *domain.Profile]{
		Method: http.MethodGet,
		Path:   "/me",
		Binder: BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (*domain.Profile, error) {
			p, ok := mdw.ProfileFrom(c)
			if !ok {
				return nil, Unauthorized("unauthorized")
			}
			return p, nil
		},
	})

	// --- GET /sweets 目录：q 子串搜 name/description，category 精确 ---
	type catalogQ struct {
		Q        string `form:"q"`
		Category string `form:"category"`
	}
	type catalogOut struct {
		Items []sweetRow `json:"items"`
	}
	register(ezAuth, Action[catalogQ, catalogOut]{
		Method: http.MethodGet,
		Path:   "/sweets",
		Binder: BindQuery,
		Handler: func(c *gin.Context, in *catalogQ) (catalogOut, error) {
			sweets, err := svc.Catalog.List(c.Request.Context(), in.Q, in.Category)
			if err != nil {
				return catalogOut{}, Internal("list sweets failed", err)
			}
			out := catalogOut{Items: make([]sweetRow, 0, len(sweets))}
			for i := range sweets {
				out.Items = append(out.Items, toSweetRow(&sweets[i]))
			}
			return out, nil
		},
	})

	// --- GET /sweets/:id ---
	register(ezAuth, Action[struct{}, sweetRow]{
		Method: http.MethodGet,
		Path:   "/sweets/:id",
		Binder: BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (sweetRow, error) {
			s, err := svc.Catalog.Get(c.Request.Context(), c.Param("id"))
			if err != nil {
				return sweetRow{}, err
			}
			return toSweetRow(s), nil
		},
	})

	// --- POST /sweets/:id/purchase 原子下单 ---
	type purchaseIn struct {
		Quantity int `json:"quantity" binding:"required"`
	}
	type purchaseOut struct {
		ID           string          `json:"id"`
		SweetID      string          `json:"sweet_id"`
		SweetName    string          `json:"sweet_name"`
		Quantity     int             `json:"quantity"`
		UnitPrice    decimal.Decimal `json:"unit_price"`
		TotalPrice   decimal.Decimal `json:"total_price"`
		PurchaseDate time.Time       `json:"purchase_date"`
	}
	register(ezAuth, Action[purchaseIn, purchaseOut]{
		Method: http.MethodPost,
		Path:   "/sweets/:id/purchase",
		Binder: BindJSON,
		Handler: func(c *gin.Context, in *purchaseIn) (purchaseOut, error) {
			uid := c.GetString(mdw.KeyUserID)
			p, err := svc.Purchases.Purchase(c.Request.Context(), uid, c.Param("id"), in.Quantity)
			if err != nil {
				return purchaseOut{}, err
			}
			return purchaseOut{
				ID: p.ID, SweetID: p.SweetID, SweetName: p.SweetName,
				Quantity: p.Quantity, UnitPrice: p.UnitPrice,
				TotalPrice: p.TotalPrice, PurchaseDate: p.PurchaseDate,
			}, nil
		},
	})

	// --- GET /purchases 我的历史（倒序）。商品被删后靠快照渲染 ---
	type historyRow struct {
		ID             string          `json:"id"`
		SweetID        string          `json:"sweet_id"`
		SweetName      string          `json:"sweet_name"`
		Quantity       int             `json:"quantity"`
		UnitPrice      decimal.Decimal `json:"unit_price"`
		TotalPrice     decimal.Decimal `json:"total_price"`
		PurchaseDate   time.Time       `json:"purchase_date"`
		SweetAvailable bool            `json:"sweet_available"`
		ImageURL       *string         `json:"image_url,omitempty"`
	}
	type historyOut struct {
		Items []historyRow `json:"items"`
	}
	register(ezAuth, Action[struct{}, historyOut]{
		Method: http.MethodGet,
		Path:   "/purchases",
		Binder: BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (historyOut, error) {
			uid := c.GetString(mdw.KeyUserID)
			details, err := svc.Purchases.History(c.Request.Context(), uid)
			if err != nil {
				return historyOut{}, Internal("list purchases failed", err)
			}
			out := historyOut{Items: make([]historyRow, 0, len(details))}
			for _, d := range details {
				row := historyRow{
					ID: d.ID, SweetID: d.SweetID, SweetName: d.SweetName,
					Quantity: d.Quantity, UnitPrice: d.UnitPrice,
					TotalPrice: d.TotalPrice, PurchaseDate: d.PurchaseDate,
					SweetAvailable: d.SweetAvailable(),
				}
				if d.Sweet != nil {
					row.ImageURL = d.Sweet.ImageURL
				}
				out.Items = append(out.Items, row)
			}
			return out, nil
		},
	})
}
