package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"yamdb-backend/internal/shared/permissions"
)

const identityKey = "identity"

// IdentityResolver loads the caller's current directory record.
// Resolution happens on every authenticated request: roles are
// mutable, so the token never carries one.
type IdentityResolver interface {
	ResolveIdentity(ctx context.Context, userID uuid.UUID) (permissions.Identity, error)
}

// SetIdentity stores the caller identity in the request context.
func SetIdentity(c *gin.Context, identity permissions.Identity) {
	c.Set(identityKey, identity)
}

// GetIdentity returns the caller identity, or the anonymous identity
// when no auth middleware ran.
func GetIdentity(c *gin.Context) permissions.Identity {
	v, exists := c.Get(identityKey)
	if !exists {
		return permissions.Anonymous()
	}
	identity, ok := v.(permissions.Identity)
	if !ok {
		return permissions.Anonymous()
	}
	return identity
}
