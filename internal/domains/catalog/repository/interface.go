package repository

import (
	"context"

	"yamdb-backend/internal/domains/catalog/model"
)

// CatalogRepository stores the two slug-addressed reference tables.
type CatalogRepository interface {
	// Categories
	CreateCategory(ctx context.Context, t *model.Term) error
	ListCategories(ctx context.Context, search string, page, limit int) ([]model.Term, int, error)
	GetCategoryBySlug(ctx context.Context, slug string) (*model.Term, error)
	// DeleteCategory detaches dependent titles (category set to null)
	// via the storage layer; the titles themselves persist.
	DeleteCategory(ctx context.Context, slug string) error

	// Genres
	CreateGenre(ctx context.Context, t *model.Term) error
	ListGenres(ctx context.Context, search string, page, limit int) ([]model.Term, int, error)
	// GetGenresBySlugs resolves slugs to terms, preserving request
	// order. Unknown slugs are simply absent from the result.
	GetGenresBySlugs(ctx context.Context, slugs []string) ([]model.Term, error)
	DeleteGenre(ctx context.Context, slug string) error
}
