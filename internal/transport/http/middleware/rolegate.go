package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"sweet-shop-api/internal/domain"
	resp "sweet-shop-api/internal/transport/http/response"
)

const KeyProfile = "profile"

// ProfileResolver 取（或懒创建）身份对应的 profile
type ProfileResolver interface {
	Ensure(ctx context.Context, uid string) (*domain.Profile, error)
}

// RequireRole 全站唯一的授权闸口：解析后的身份在这里换取 profile
// （首次访问时懒创建，role=user），再按需要的角色放行。
// requireRole 为空表示只要求登录。通过后 profile 存入 context。
func RequireRole(pr ProfileResolver, requireRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.GetString(KeyUserID)
		if uid == "" {
			c.AbortWithStatusJSON(http.StatusOK, resp.Error(resp.CodeUnauthorized, "unauthorized"))
			return
		}
		p, err := pr.Ensure(c.Request.Context(), uid)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusOK, resp.Error(resp.CodeServerError, "profile unavailable"))
			return
		}
		if requireRole != "" && p.Role != requireRole {
			c.AbortWithStatusJSON(http.StatusOK, resp.Error(resp.CodeForbidden, "forbidden"))
			return
		}
		c.Set(KeyProfile, p)
		c.Next()
	}
}

// ProfileFrom 取 RequireRole 放入的 profile
func ProfileFrom(c *gin.Context) (*domain.Profile, bool) {
	v, ok := c.Get(KeyProfile)
	if !ok {
		return nil, false
	}
	p, ok := v.(*domain.Profile)
	return p, ok
}
