package model

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSignupRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     SignupRequest
		wantErr bool
	}{
		{"valid", SignupRequest{Username: "john.doe", Email: "john@example.com"}, false},
		{"username with allowed symbols", SignupRequest{Username: "a+b@c_d-e", Email: "x@example.com"}, false},
		{"missing username", SignupRequest{Email: "john@example.com"}, true},
		{"missing email", SignupRequest{Username: "john"}, true},
		{"bad email", SignupRequest{Username: "john", Email: "not-an-email"}, true},
		{"username too short", SignupRequest{Username: "j", Email: "j@example.com"}, true},
		{"username too long", SignupRequest{Username: strings.Repeat("a", 151), Email: "a@example.com"}, true},
		{"username with space", SignupRequest{Username: "john doe", Email: "john@example.com"}, true},
		{"username with slash", SignupRequest{Username: "john/doe", Email: "john@example.com"}, true},
		{"reserved username", SignupRequest{Username: "me", Email: "me@example.com"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCreateUserRequestValidate_Role(t *testing.T) {
	valid := "moderator"
	req := CreateUserRequest{Username: "mod", Email: "mod@example.com", Role: &valid}
	assert.NoError(t, req.Validate())

	invalid := "root"
	req.Role = &invalid
	assert.Error(t, req.Validate())
}

func TestUpdateUserRequestValidate(t *testing.T) {
	longBio := strings.Repeat("b", BioMaxLength+1)
	assert.Error(t, UpdateUserRequest{Bio: &longBio}.Validate())

	okBio := "about me"
	assert.NoError(t, UpdateUserRequest{Bio: &okBio}.Validate())

	// Empty patch is a no-op, not an error.
	assert.NoError(t, UpdateUserRequest{}.Validate())
}

func TestListUsersRequestNormalize(t *testing.T) {
	req := ListUsersRequest{Page: 0, Limit: 500}
	req.Normalize()
	assert.Equal(t, 1, req.Page)
	assert.Equal(t, 20, req.Limit)

	req = ListUsersRequest{Page: 3, Limit: 50}
	req.Normalize()
	assert.Equal(t, 3, req.Page)
	assert.Equal(t, 50, req.Limit)
}

func TestUserCodeExpired(t *testing.T) {
	now := time.Now()

	u := &User{}
	assert.True(t, u.CodeExpired(now), "user without a code counts as expired")

	hash := "some-hash"
	expires := now.Add(time.Hour)
	u.ConfirmationCodeHash = &hash
	u.ConfirmationExpiresAt = &expires
	assert.False(t, u.CodeExpired(now))

	past := now.Add(-time.Hour)
	u.ConfirmationExpiresAt = &past
	assert.True(t, u.CodeExpired(now))
}
