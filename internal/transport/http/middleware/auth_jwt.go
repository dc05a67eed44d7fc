package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"sweet-shop-api/internal/core/auth"
	resp "sweet-shop-api/internal/transport/http/response"
)

const (
	KeyUserID = "userId"
	KeyClaims = "claims"
)

// AuthJWT 只负责解析 Bearer token 并放入 userId；
// 角色判定交给 RequireRole（唯一的授权闸口）
func AuthJWT(j *auth.JWTer) gin.HandlerFunc {
	return func(c *gin.Context) {
		ah := c.GetHeader("Authorization")
		if !strings.HasPrefix(ah, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusOK, resp.Error(resp.CodeUnauthorized, "missing token"))
			return
		}
		claims, err := j.Parse(strings.TrimPrefix(ah, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusOK, resp.Error(resp.CodeUnauthorized, "invalid token"))
			return
		}
		c.Set(KeyUserID, claims.UID)
		c.Set(KeyClaims, claims)
		c.Next()
	}
}
