package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/zvrva/stayfinder/internal/domain"
	"github.com/zvrva/stayfinder/internal/service/auth"
)

const (
	ctxUserID = "user_id"
	ctxRole   = "role"
)

type TokenParser interface {
	ParseToken(token string) (*auth.Claims, error)
}

// AuthMiddleware validates the bearer token and stores the verified caller
// identity on the request context. Protected handlers read it from there and
// never re-derive it from ambient state.
func AuthMiddleware(parser TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization header required"})
			return
		}

		parts := strings.Split(header, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
			return
		}

		claims, err := parser.ParseToken(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set(ctxUserID, claims.UserID)
		c.Set(ctxRole, claims.Role)
		c.Next()
	}
}

// RequireRole guards routes reserved for hosts or guests. Runs after
// AuthMiddleware.
func RequireRole(role domain.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		got, exists := c.Get(ctxRole)
		if !exists || got != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": string(role) + " role required"})
			return
		}
		c.Next()
	}
}

func callerID(c *gin.Context) int64 {
	id, _ := c.Get(ctxUserID)
	v, _ := id.(int64)
	return v
}
