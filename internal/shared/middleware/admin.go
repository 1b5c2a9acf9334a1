package middleware

import (
	"github.com/gin-gonic/gin"

	"yamdb-backend/internal/shared/permissions"
	"yamdb-backend/internal/shared/response"
)

// RequireAdmin rejects callers that do not authorize as admin.
// Must run after Authenticate.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := GetIdentity(c)
		if !identity.IsAdmin() {
			response.Forbidden(c, "admin role required")
			c.Abort()
			return
		}

		c.Next()
	}
}

// AdminWritePublicRead allows read-only methods through for everyone
// and gates every other method on the admin role. Used on catalog
// resources.
func AdminWritePublicRead() gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed := permissions.Evaluate(permissions.PolicyAdminWritePublicRead, permissions.Input{
			Identity: GetIdentity(c),
			Method:   c.Request.Method,
		})
		if !allowed {
			response.Forbidden(c, "admin role required")
			c.Abort()
			return
		}

		c.Next()
	}
}
