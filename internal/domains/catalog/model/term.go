package model

import (
	"github.com/google/uuid"
)

const (
	NameMaxLength = 256
	SlugMaxLength = 50
)

// SlugPattern restricts slugs to URL-safe characters.
const SlugPattern = `^[-a-zA-Z0-9_]+$`

// Term is a slug-addressed reference entry. Categories and genres
// share the exact same shape and rules; only the table differs.
type Term struct {
	ID   uuid.UUID `json:"-" db:"id"`
	Name string    `json:"name" db:"name"`
	Slug string    `json:"slug" db:"slug"`
}
