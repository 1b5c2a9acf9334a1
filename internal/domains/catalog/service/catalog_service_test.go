package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yamdb-backend/internal/domains/catalog/model"
)

// fakeCatalogRepository stores terms per collection, enforcing slug
// uniqueness the way the real indexes do.
type fakeCatalogRepository struct {
	categories map[string]model.Term
	genres     map[string]model.Term
}

func newFakeCatalogRepository() *fakeCatalogRepository {
	return &fakeCatalogRepository{
		categories: make(map[string]model.Term),
		genres:     make(map[string]model.Term),
	}
}

func (f *fakeCatalogRepository) createTerm(terms map[string]model.Term, t *model.Term) error {
	if _, ok := terms[t.Slug]; ok {
		return model.ErrSlugTaken
	}
	t.ID = uuid.New()
	terms[t.Slug] = *t
	return nil
}

func (f *fakeCatalogRepository) CreateCategory(_ context.Context, t *model.Term) error {
	return f.createTerm(f.categories, t)
}

func (f *fakeCatalogRepository) ListCategories(_ context.Context, _ string, _, _ int) ([]model.Term, int, error) {
	out := make([]model.Term, 0, len(f.categories))
	for _, t := range f.categories {
		out = append(out, t)
	}
	return out, len(out), nil
}

func (f *fakeCatalogRepository) GetCategoryBySlug(_ context.Context, slug string) (*model.Term, error) {
	t, ok := f.categories[slug]
	if !ok {
		return nil, model.ErrCategoryNotFound
	}
	return &t, nil
}

func (f *fakeCatalogRepository) DeleteCategory(_ context.Context, slug string) error {
	if _, ok := f.categories[slug]; !ok {
		return model.ErrCategoryNotFound
	}
	delete(f.categories, slug)
	return nil
}

func (f *fakeCatalogRepository) CreateGenre(_ context.Context, t *model.Term) error {
	return f.createTerm(f.genres, t)
}

func (f *fakeCatalogRepository) ListGenres(_ context.Context, _ string, _, _ int) ([]model.Term, int, error) {
	out := make([]model.Term, 0, len(f.genres))
	for _, t := range f.genres {
		out = append(out, t)
	}
	return out, len(out), nil
}

func (f *fakeCatalogRepository) GetGenresBySlugs(_ context.Context, slugs []string) ([]model.Term, error) {
	var out []model.Term
	for _, slug := range slugs {
		if t, ok := f.genres[slug]; ok {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeCatalogRepository) DeleteGenre(_ context.Context, slug string) error {
	if _, ok := f.genres[slug]; !ok {
		return model.ErrGenreNotFound
	}
	delete(f.genres, slug)
	return nil
}

func TestCreateCategory(t *testing.T) {
	svc := NewCatalogService(newFakeCatalogRepository())
	ctx := context.Background()

	term, err := svc.CreateCategory(ctx, model.CreateTermRequest{Name: "Movies", Slug: "movies"})
	require.NoError(t, err)
	assert.Equal(t, "movies", term.Slug)

	// Slugs are unique within a collection.
	_, err = svc.CreateCategory(ctx, model.CreateTermRequest{Name: "Films", Slug: "movies"})
	assert.ErrorIs(t, err, model.ErrSlugTaken)
}

func TestCreateCategory_InvalidSlug(t *testing.T) {
	svc := NewCatalogService(newFakeCatalogRepository())

	_, err := svc.CreateCategory(context.Background(), model.CreateTermRequest{Name: "Movies", Slug: "has space"})
	assert.Error(t, err)
}

func TestCategoriesAndGenresAreSeparate(t *testing.T) {
	svc := NewCatalogService(newFakeCatalogRepository())
	ctx := context.Background()

	_, err := svc.CreateCategory(ctx, model.CreateTermRequest{Name: "Drama", Slug: "drama"})
	require.NoError(t, err)

	// The same slug is free in the other collection.
	_, err = svc.CreateGenre(ctx, model.CreateTermRequest{Name: "Drama", Slug: "drama"})
	assert.NoError(t, err)

	require.NoError(t, svc.DeleteGenre(ctx, "drama"))
	assert.ErrorIs(t, svc.DeleteGenre(ctx, "drama"), model.ErrGenreNotFound)

	terms, total, err := svc.ListCategories(ctx, model.ListTermsRequest{})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Len(t, terms, 1)
}
