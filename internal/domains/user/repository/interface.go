package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"yamdb-backend/internal/domains/user/model"
)

type UserRepository interface {
	// Create inserts a new account. Uniqueness of username and email
	// is enforced by the storage layer; violations map to the domain
	// taken-errors.
	Create(ctx context.Context, u *model.User) error

	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)

	// List pages through the directory, optionally filtering by a
	// username/email substring.
	List(ctx context.Context, search string, page, limit int) ([]*model.User, int, error)

	// Update persists profile fields and role.
	Update(ctx context.Context, u *model.User) error

	// Delete removes the account; authored reviews and comments go
	// with it (storage-level cascade).
	Delete(ctx context.Context, username string) error

	// SetConfirmationCode replaces the active confirmation code hash.
	SetConfirmationCode(ctx context.Context, id uuid.UUID, hash string, sentAt, expiresAt time.Time) error

	// MarkConfirmed flags the account confirmed, clears the code and
	// stamps the login time.
	MarkConfirmed(ctx context.Context, id uuid.UUID, loginAt time.Time) error
}
