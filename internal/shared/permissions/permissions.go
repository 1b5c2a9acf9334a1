// Package permissions holds the role/permission evaluator. Every
// authorization decision in the API goes through Evaluate: a pure
// function over the caller's identity, the HTTP method and (for
// object-level checks) the resource author. Decisions are computed
// per request and never cached, since a user's role can change
// between requests.
package permissions

import (
	"net/http"

	"github.com/google/uuid"
)

// Role is the coarse authorization level attached to a user.
type Role string

const (
	RoleUser      Role = "user"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
)

// Valid reports whether s names a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleModerator, RoleAdmin:
		return true
	}
	return false
}

// Identity describes the caller of a request. The zero value is an
// anonymous caller.
type Identity struct {
	ID            uuid.UUID
	Username      string
	Role          Role
	Superuser     bool
	Authenticated bool
}

// Anonymous is the identity of an unauthenticated caller.
func Anonymous() Identity {
	return Identity{}
}

// IsAdmin reports whether the caller authorizes as an administrator.
// Superusers always do, regardless of their stored role.
func (i Identity) IsAdmin() bool {
	return i.Authenticated && (i.Role == RoleAdmin || i.Superuser)
}

// IsModerator reports whether the caller's role is moderator.
func (i Identity) IsModerator() bool {
	return i.Authenticated && i.Role == RoleModerator
}

// CanAssignRole reports whether the caller may set a role field,
// either on another account or on their own profile. Plain users
// editing themselves have the role field silently ignored upstream.
func (i Identity) CanAssignRole() bool {
	return i.IsAdmin() || i.IsModerator()
}

// Policy selects the capability set a resource type is guarded with.
type Policy int

const (
	// PolicyAdminWritePublicRead guards catalog reference data
	// (categories, genres, titles): anyone may read, only
	// admin/superuser may write or delete.
	PolicyAdminWritePublicRead Policy = iota

	// PolicyAdminOnly guards the user directory: every method
	// requires admin/superuser.
	PolicyAdminOnly

	// PolicyOwnerOrStaffWrite guards reviews and comments: anyone
	// may read, authenticated callers may create, and mutation of an
	// existing object is limited to its author, moderators and admins.
	PolicyOwnerOrStaffWrite
)

// Input carries everything a single evaluation needs.
type Input struct {
	Identity Identity
	Method   string
	// ResourceAuthor is the author of the object being mutated, when
	// the check is object-level. Nil for collection-level checks.
	ResourceAuthor *uuid.UUID
}

// SafeMethod reports whether method is read-only.
func SafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}

// Evaluate runs a single-pass allow/deny decision for the given
// policy. Precedence follows the platform contract: safe methods on
// public resources first, then role gates, then ownership.
func Evaluate(p Policy, in Input) bool {
	switch p {
	case PolicyAdminWritePublicRead:
		if SafeMethod(in.Method) {
			return true
		}
		return in.Identity.IsAdmin()

	case PolicyAdminOnly:
		return in.Identity.IsAdmin()

	case PolicyOwnerOrStaffWrite:
		if SafeMethod(in.Method) {
			return true
		}
		if !in.Identity.Authenticated {
			return false
		}
		// Collection-level write (create): any authenticated user.
		if in.ResourceAuthor == nil {
			return true
		}
		// Object-level write: author, moderator or admin.
		if *in.ResourceAuthor == in.Identity.ID {
			return true
		}
		return in.Identity.IsModerator() || in.Identity.IsAdmin()
	}

	return false
}
