package middleware

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/taskapp/taskapp-api/internal/constants"
	apierrors "github.com/taskapp/taskapp-api/internal/errors"
)

// RequireAuth rejects requests that carry no authenticated session. On
// success the session's user ID is copied into the gin context so handlers
// read it through GetUserID instead of touching the session again.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := sessions.Default(c).Get(constants.ContextKeyUserID)
		if userID == nil {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUserID, userID)
		c.Next()
	}
}

// GetUserID returns the authenticated user's ID from the gin context.
// Session stores may round-trip the value as a different integer type,
// so the common widths are normalized to uint64.
func GetUserID(c *gin.Context) (uint64, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}

	switch v := userID.(type) {
	case uint64:
		return v, true
	case uint:
		return uint64(v), true
	case int:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	default:
		return 0, false
	}
}
