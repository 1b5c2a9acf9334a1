package repository

import (
	"context"

	"github.com/google/uuid"

	"yamdb-backend/internal/domains/title/model"
)

type TitleRepository interface {
	// Create inserts the title and its genre join rows in one
	// transaction.
	Create(ctx context.Context, t *model.Title, categoryID uuid.UUID, genreIDs []uuid.UUID) error

	// GetByID reads a title with its derived rating, category and
	// genres. Backed by the cache layer.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Title, error)

	// List applies the catalog filters and returns a page plus the
	// total match count. Every row carries the derived rating.
	List(ctx context.Context, req model.ListTitlesRequest) ([]model.Title, int, error)

	// Update persists scalar fields and, when genreIDs is non-nil,
	// replaces the genre join set.
	Update(ctx context.Context, t *model.Title, categoryID *uuid.UUID, genreIDs []uuid.UUID) error

	// Delete removes the title; reviews and their comments cascade.
	Delete(ctx context.Context, id uuid.UUID) error

	// Exists reports whether the title is present, without touching
	// the cache.
	Exists(ctx context.Context, id uuid.UUID) (bool, error)

	// InvalidateCache drops the cached read model for a title. Called
	// by the review thread whenever a score changes.
	InvalidateCache(ctx context.Context, id uuid.UUID) error
}
