package permissions

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func identityWithRole(role Role) Identity {
	return Identity{
		ID:            uuid.New(),
		Username:      "someone",
		Role:          role,
		Authenticated: true,
	}
}

func TestEvaluate_AdminWritePublicRead(t *testing.T) {
	superuser := identityWithRole(RoleUser)
	superuser.Superuser = true

	tests := []struct {
		name     string
		identity Identity
		method   string
		want     bool
	}{
		{"anonymous read", Anonymous(), http.MethodGet, true},
		{"anonymous write", Anonymous(), http.MethodPost, false},
		{"plain user write", identityWithRole(RoleUser), http.MethodPost, false},
		{"moderator write", identityWithRole(RoleModerator), http.MethodDelete, false},
		{"admin write", identityWithRole(RoleAdmin), http.MethodPost, true},
		{"superuser with plain role writes", superuser, http.MethodDelete, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(PolicyAdminWritePublicRead, Input{Identity: tt.identity, Method: tt.method})
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEvaluate_AdminOnly(t *testing.T) {
	tests := []struct {
		name     string
		identity Identity
		method   string
		want     bool
	}{
		{"anonymous read", Anonymous(), http.MethodGet, false},
		{"plain user read", identityWithRole(RoleUser), http.MethodGet, false},
		{"moderator read", identityWithRole(RoleModerator), http.MethodGet, false},
		{"admin read", identityWithRole(RoleAdmin), http.MethodGet, true},
		{"admin write", identityWithRole(RoleAdmin), http.MethodDelete, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(PolicyAdminOnly, Input{Identity: tt.identity, Method: tt.method})
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEvaluate_OwnerOrStaffWrite(t *testing.T) {
	author := identityWithRole(RoleUser)
	stranger := identityWithRole(RoleUser)
	moderator := identityWithRole(RoleModerator)
	admin := identityWithRole(RoleAdmin)

	tests := []struct {
		name     string
		identity Identity
		method   string
		author   *uuid.UUID
		want     bool
	}{
		{"anonymous read", Anonymous(), http.MethodGet, nil, true},
		{"anonymous create", Anonymous(), http.MethodPost, nil, false},
		{"authenticated create", stranger, http.MethodPost, nil, true},
		{"author edits own", author, http.MethodPatch, &author.ID, true},
		{"stranger edits other's", stranger, http.MethodPatch, &author.ID, false},
		{"stranger deletes other's", stranger, http.MethodDelete, &author.ID, false},
		{"moderator edits other's", moderator, http.MethodPatch, &author.ID, true},
		{"admin deletes other's", admin, http.MethodDelete, &author.ID, true},
		{"anonymous reads object", Anonymous(), http.MethodGet, &author.ID, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(PolicyOwnerOrStaffWrite, Input{
				Identity:       tt.identity,
				Method:         tt.method,
				ResourceAuthor: tt.author,
			})
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIdentityHelpers(t *testing.T) {
	admin := identityWithRole(RoleAdmin)
	assert.True(t, admin.IsAdmin())
	assert.True(t, admin.CanAssignRole())

	moderator := identityWithRole(RoleModerator)
	assert.False(t, moderator.IsAdmin())
	assert.True(t, moderator.IsModerator())
	assert.True(t, moderator.CanAssignRole())

	user := identityWithRole(RoleUser)
	assert.False(t, user.CanAssignRole())

	// A role is only meaningful on an authenticated identity.
	unauthenticated := Identity{Role: RoleAdmin}
	assert.False(t, unauthenticated.IsAdmin())

	assert.True(t, Role("moderator").Valid())
	assert.False(t, Role("root").Valid())
}
