package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	jwtsvc "fileservice/internal/pkg/jwt"
	"fileservice/internal/pkg/response"
)

// Auth resolves the acting identity. The service normally sits behind the API
// gateway, which authenticates the caller and forwards X-User-Id and
// X-User-Role. For direct access (development, service-to-service without the
// gateway) a Bearer JWT signed with the shared secret is accepted instead.
func Auth(jwt *jwtsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if raw := c.GetHeader("X-User-Id"); raw != "" {
			userID, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid X-User-Id header")
				c.Abort()
				return
			}
			c.Set("user_id", userID)
			c.Set("role", c.GetHeader("X-User-Role"))
			c.Next()
			return
		}

		h := c.GetHeader("Authorization")
		if h == "" || !strings.HasPrefix(h, "Bearer ") {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Missing credentials")
			c.Abort()
			return
		}

		tokenStr := strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
		if jwt == nil || tokenStr == "" {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid token")
			c.Abort()
			return
		}

		claims, err := jwt.ValidateToken(tokenStr)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid token")
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("role", claims.Role)
		c.Next()
	}
}
