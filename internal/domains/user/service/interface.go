package service

import (
	"context"

	"github.com/google/uuid"

	"yamdb-backend/internal/domains/user/model"
	"yamdb-backend/internal/shared/permissions"
)

type UserService interface {
	// Signup registers (or re-registers) an account and dispatches a
	// fresh confirmation code by email. Re-signup with the exact same
	// (username, email) pair rotates the code; any other identity
	// overlap is rejected.
	Signup(ctx context.Context, req model.SignupRequest) (*model.SignupResponse, error)

	// IssueToken exchanges (username, code) for a bearer access token
	// and marks the account confirmed.
	IssueToken(ctx context.Context, req model.TokenRequest) (*model.TokenResponse, error)

	// Admin directory operations.
	Create(ctx context.Context, req model.CreateUserRequest) (*model.UserResponse, error)
	GetByUsername(ctx context.Context, username string) (*model.UserResponse, error)
	List(ctx context.Context, req model.ListUsersRequest) ([]model.UserResponse, int, error)
	Update(ctx context.Context, username string, req model.UpdateUserRequest) (*model.UserResponse, error)
	Delete(ctx context.Context, username string) error

	// Self-profile operations. UpdateProfile ignores the role field
	// unless the caller already holds an elevated role.
	GetProfile(ctx context.Context, userID uuid.UUID) (*model.UserResponse, error)
	UpdateProfile(ctx context.Context, identity permissions.Identity, req model.UpdateUserRequest) (*model.UserResponse, error)

	// ResolveIdentity backs the auth middleware; it reads the current
	// role on every call.
	ResolveIdentity(ctx context.Context, userID uuid.UUID) (permissions.Identity, error)
}
