package model

import (
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"yamdb-backend/internal/shared/permissions"
)

var usernameRegex = regexp.MustCompile(UsernamePattern)

func forbiddenUsernameValues() []interface{} {
	values := make([]interface{}, 0, len(ForbiddenUsernames))
	for _, name := range ForbiddenUsernames {
		values = append(values, name)
	}
	return values
}

func usernameRules() []validation.Rule {
	return []validation.Rule{
		validation.Required,
		validation.Length(UsernameMinLength, UsernameMaxLength),
		validation.Match(usernameRegex).Error("username may contain only letters, digits and @ . + - _"),
		validation.NotIn(forbiddenUsernameValues()...).Error("this username is not allowed"),
	}
}

// =====================================================
// AUTH DTOs
// =====================================================

// SignupRequest registers a user and requests a confirmation code.
type SignupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

func (r SignupRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, usernameRules()...),
		validation.Field(&r.Email, validation.Required, validation.Length(0, EmailMaxLength), is.EmailFormat),
	)
}

type SignupResponse struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// TokenRequest exchanges a confirmation code for an access token.
type TokenRequest struct {
	Username         string `json:"username"`
	ConfirmationCode string `json:"confirmation_code"`
}

func (r TokenRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, usernameRules()...),
		validation.Field(&r.ConfirmationCode, validation.Required),
	)
}

type TokenResponse struct {
	Token string `json:"token"`
}

// =====================================================
// DIRECTORY DTOs
// =====================================================

// CreateUserRequest is the admin-only account creation payload.
type CreateUserRequest struct {
	Username  string  `json:"username"`
	Email     string  `json:"email"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Bio       string  `json:"bio"`
	Role      *string `json:"role"`
}

func (r CreateUserRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, usernameRules()...),
		validation.Field(&r.Email, validation.Required, validation.Length(0, EmailMaxLength), is.EmailFormat),
		validation.Field(&r.FirstName, validation.Length(0, NameMaxLength)),
		validation.Field(&r.LastName, validation.Length(0, NameMaxLength)),
		validation.Field(&r.Bio, validation.Length(0, BioMaxLength)),
		validation.Field(&r.Role, validation.In("user", "moderator", "admin")),
	)
}

// UpdateUserRequest patches an account. Nil fields are left alone.
// Username and email stay immutable through this endpoint; identity
// changes go through signup.
type UpdateUserRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Bio       *string `json:"bio"`
	Role      *string `json:"role"`
}

func (r UpdateUserRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.FirstName, validation.Length(0, NameMaxLength)),
		validation.Field(&r.LastName, validation.Length(0, NameMaxLength)),
		validation.Field(&r.Bio, validation.Length(0, BioMaxLength)),
		validation.Field(&r.Role, validation.In("user", "moderator", "admin")),
	)
}

// ListUsersRequest pages through the directory.
type ListUsersRequest struct {
	Search string `form:"search"`
	Page   int    `form:"page"`
	Limit  int    `form:"limit"`
}

func (r *ListUsersRequest) Normalize() {
	if r.Page < 1 {
		r.Page = 1
	}
	if r.Limit < 1 || r.Limit > 100 {
		r.Limit = 20
	}
}

// UserResponse is the directory projection exposed over the API.
type UserResponse struct {
	Username  string           `json:"username"`
	Email     string           `json:"email"`
	FirstName string           `json:"first_name"`
	LastName  string           `json:"last_name"`
	Bio       string           `json:"bio"`
	Role      permissions.Role `json:"role"`
}

func NewUserResponse(u *User) *UserResponse {
	return &UserResponse{
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Bio:       u.Bio,
		Role:      u.Role,
	}
}
