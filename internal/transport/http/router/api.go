package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"sweet-shop-api/internal/core/auth"
	"sweet-shop-api/internal/service"
	mdw "sweet-shop-api/internal/transport/http/middleware"
)

// Services 两个引擎共用的依赖集合
type Services struct {
	Auth      *service.AuthService
	Profiles  *service.ProfileService
	Catalog   *service.CatalogService
	Purchases *service.PurchaseService
	Orders    *service.OrderService
}

func baseMiddleware(r *gin.Engine, l *zap.Logger) {
	r.Use(
		mdw.RequestID(),
		mdw.RateLimit(200, 400),
		mdw.ConcurrencyLimit(300),
		mdw.MaxBodyBytes(16<<20),
		mdw.Timeout(10*time.Second),
		ginzap.RecoveryWithZap(l, true),
		cors.Default(),
		mdw.Metrics(),
		mdw.AccessLog(l),
	)
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// NewAPIEngine 用户端：注册/登录公开，其余走登录闸口（懒创建 profile）
func NewAPIEngine(l *zap.Logger, jwter *auth.JWTer, svc Services) *gin.Engine {
	r := gin.New()
	baseMiddleware(r, l)

	api := r.Group("/api/v1")

	authed := api.Group("")
	authed.Use(mdw.AuthJWT(jwter), mdw.RequireRole(svc.Profiles, ""))

	mountStoreActions(api, authed, svc)
	return r
}

// NewAdminEngine 管理端：整组要求 admin 角色
func NewAdminEngine(l *zap.Logger, jwter *auth.JWTer, svc Services) *gin.Engine {
	r := gin.New()
	baseMiddleware(r, l)

	admin := r.Group("/admin/v1")
	admin.Use(mdw.AuthJWT(jwter), mdw.RequireRole(svc.Profiles, "admin"))

	mountAdminActions(admin, svc)
	return r
}
