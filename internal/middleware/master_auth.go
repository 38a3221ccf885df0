package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/taskapp/taskapp-api/internal/database"
	apierrors "github.com/taskapp/taskapp-api/internal/errors"
	"github.com/taskapp/taskapp-api/internal/models"
)

// RequireMasterRole gates an endpoint to users holding the master system
// role. Must run after RequireAuth. An authenticated user without the role
// gets 403, never 401.
func RequireMasterRole() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := GetUserID(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		var user models.User
		if err := database.GetDB().First(&user, userID).Error; err != nil {
			apierrors.Forbidden(c, "Master role required")
			c.Abort()
			return
		}

		if user.Role != models.SystemRoleMaster {
			apierrors.Forbidden(c, "Master role required")
			c.Abort()
			return
		}

		c.Next()
	}
}
