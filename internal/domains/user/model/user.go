package model

import (
	"time"

	"github.com/google/uuid"

	"yamdb-backend/internal/shared/permissions"
)

const (
	UsernameMinLength = 2
	UsernameMaxLength = 150
	EmailMaxLength    = 254
	NameMaxLength     = 150
	BioMaxLength      = 250

	// ConfirmationCodeTTL bounds how long a signup code stays valid.
	ConfirmationCodeTTL = 24 * time.Hour
)

// UsernamePattern is the allowed username alphabet.
const UsernamePattern = `^[\w.@+-]+$`

// ForbiddenUsernames are reserved by routing ("me" is the
// self-profile endpoint).
var ForbiddenUsernames = []string{"me"}

// User is a directory account. The confirmation code is stored as a
// bcrypt hash with at most one active value; each signup attempt
// replaces it.
type User struct {
	ID        uuid.UUID        `json:"id" db:"id"`
	Username  string           `json:"username" db:"username"`
	Email     string           `json:"email" db:"email"`
	FirstName string           `json:"first_name" db:"first_name"`
	LastName  string           `json:"last_name" db:"last_name"`
	Bio       string           `json:"bio" db:"bio"`
	Role      permissions.Role `json:"role" db:"role"`

	// Superuser bypasses role checks; set out of band, never via API.
	IsSuperuser bool `json:"-" db:"is_superuser"`

	// Confirmation flow
	IsConfirmed           bool       `json:"-" db:"is_confirmed"`
	ConfirmationCodeHash  *string    `json:"-" db:"confirmation_code_hash"`
	ConfirmationSentAt    *time.Time `json:"-" db:"confirmation_sent_at"`
	ConfirmationExpiresAt *time.Time `json:"-" db:"confirmation_expires_at"`

	LastLoginAt *time.Time `json:"-" db:"last_login_at"`
	CreatedAt   time.Time  `json:"-" db:"created_at"`
	UpdatedAt   time.Time  `json:"-" db:"updated_at"`
}

// Identity projects the account into the authorization model.
func (u *User) Identity() permissions.Identity {
	return permissions.Identity{
		ID:            u.ID,
		Username:      u.Username,
		Role:          u.Role,
		Superuser:     u.IsSuperuser,
		Authenticated: true,
	}
}

// CodeExpired reports whether the active confirmation code is past
// its expiry. A user without a code counts as expired.
func (u *User) CodeExpired(now time.Time) bool {
	if u.ConfirmationCodeHash == nil || u.ConfirmationExpiresAt == nil {
		return true
	}
	return now.After(*u.ConfirmationExpiresAt)
}
