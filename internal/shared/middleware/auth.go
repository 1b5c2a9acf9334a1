package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"yamdb-backend/internal/shared/permissions"
	"yamdb-backend/internal/shared/response"
	"yamdb-backend/pkg/jwt"
)

// Authenticate validates the bearer token and resolves the caller's
// current identity from the user directory. Requests without a valid
// token are rejected with 401.
func Authenticate(jwtManager *jwt.Manager, resolver IdentityResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := resolveBearer(c, jwtManager, resolver)
		if !ok {
			c.Abort()
			return
		}

		SetIdentity(c, identity)
		c.Next()
	}
}

// AuthenticateOptional resolves the caller identity when a bearer
// token is present, and leaves the request anonymous otherwise. Used
// on public read endpoints whose write siblings are gated.
func AuthenticateOptional(jwtManager *jwt.Manager, resolver IdentityResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") != "" {
			identity, ok := resolveBearer(c, jwtManager, resolver)
			if !ok {
				c.Abort()
				return
			}
			SetIdentity(c, identity)
		}
		c.Next()
	}
}

// resolveBearer extracts and validates the token, then loads the
// caller's current record. Writes the 401 response itself on failure.
func resolveBearer(c *gin.Context, jwtManager *jwt.Manager, resolver IdentityResolver) (permissions.Identity, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		response.Unauthorized(c, "missing authorization header")
		return permissions.Anonymous(), false
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		response.Unauthorized(c, "invalid authorization header format")
		return permissions.Anonymous(), false
	}

	claims, err := jwtManager.ValidateAccessToken(parts[1])
	if err != nil {
		response.Unauthorized(c, "invalid token")
		return permissions.Anonymous(), false
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		response.Unauthorized(c, "invalid user ID in token")
		return permissions.Anonymous(), false
	}

	identity, err := resolver.ResolveIdentity(c.Request.Context(), userID)
	if err != nil {
		response.Unauthorized(c, "unknown user")
		return permissions.Anonymous(), false
	}

	return identity, true
}
