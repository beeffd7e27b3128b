package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"m42hub/internal/pkg"
)

const (
	ContextUserIDKey   = "user_id"
	ContextUsernameKey = "username"
	ContextRoleKey     = "role"
)

type AccessParser interface {
	ParseAccess(token string) (*pkg.Claims, error)
}

// SessionStore is the registry of active access tokens.
type SessionStore interface {
	Get(ctx context.Context, userID uint64) (string, error)
	Extend(ctx context.Context, userID uint64) error
}

// AuthMiddleware accepts a Bearer access token only if it is the user's
// currently registered session, then slides the session expiry.
func AuthMiddleware(parser AccessParser, sessions SessionStore, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"msg": "missing authorization header"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"msg": "invalid authorization format"})
			return
		}
		tokenStr := parts[1]

		claims, err := parser.ParseAccess(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"msg": "invalid or expired token"})
			return
		}

		current, err := sessions.Get(c.Request.Context(), claims.UserID)
		if err != nil || current != tokenStr {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"msg": "session expired or logged in elsewhere"})
			return
		}

		if err := sessions.Extend(c.Request.Context(), claims.UserID); err != nil {
			log.Warn("extend session failed", zap.Uint64("user_id", claims.UserID), zap.Error(err))
		}

		c.Set(ContextUserIDKey, claims.UserID)
		c.Set(ContextUsernameKey, claims.Username)
		c.Set(ContextRoleKey, claims.Role)
		c.Next()
	}
}

// UserID returns the authenticated caller; ok is false outside AuthMiddleware.
func UserID(c *gin.Context) (uint64, bool) {
	v, ok := c.Get(ContextUserIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint64)
	return id, ok
}
