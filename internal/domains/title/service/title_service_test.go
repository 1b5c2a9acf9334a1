package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogmodel "yamdb-backend/internal/domains/catalog/model"
	"yamdb-backend/internal/domains/title/model"
)

// fakeCatalogRepository resolves slugs from fixed term sets.
type fakeCatalogRepository struct {
	categories map[string]catalogmodel.Term
	genres     map[string]catalogmodel.Term
}

func newFakeCatalogRepository() *fakeCatalogRepository {
	return &fakeCatalogRepository{
		categories: map[string]catalogmodel.Term{
			"movie": {ID: uuid.New(), Name: "Movie", Slug: "movie"},
		},
		genres: map[string]catalogmodel.Term{
			"drama":  {ID: uuid.New(), Name: "Drama", Slug: "drama"},
			"comedy": {ID: uuid.New(), Name: "Comedy", Slug: "comedy"},
		},
	}
}

func (f *fakeCatalogRepository) CreateCategory(context.Context, *catalogmodel.Term) error {
	return nil
}

func (f *fakeCatalogRepository) ListCategories(context.Context, string, int, int) ([]catalogmodel.Term, int, error) {
	return nil, 0, nil
}

func (f *fakeCatalogRepository) GetCategoryBySlug(_ context.Context, slug string) (*catalogmodel.Term, error) {
	term, ok := f.categories[slug]
	if !ok {
		return nil, catalogmodel.ErrCategoryNotFound
	}
	return &term, nil
}

func (f *fakeCatalogRepository) DeleteCategory(context.Context, string) error { return nil }

func (f *fakeCatalogRepository) CreateGenre(context.Context, *catalogmodel.Term) error { return nil }

func (f *fakeCatalogRepository) ListGenres(context.Context, string, int, int) ([]catalogmodel.Term, int, error) {
	return nil, 0, nil
}

func (f *fakeCatalogRepository) GetGenresBySlugs(_ context.Context, slugs []string) ([]catalogmodel.Term, error) {
	// One term per match, like the ANY(slugs) query in the real repository.
	seen := make(map[string]struct{}, len(slugs))
	var out []catalogmodel.Term
	for _, slug := range slugs {
		if _, dup := seen[slug]; dup {
			continue
		}
		seen[slug] = struct{}{}
		if term, ok := f.genres[slug]; ok {
			out = append(out, term)
		}
	}
	return out, nil
}

func (f *fakeCatalogRepository) DeleteGenre(context.Context, string) error { return nil }

// memTitleRepository stores titles in memory.
type memTitleRepository struct {
	titles map[uuid.UUID]*model.Title
}

func newMemTitleRepository() *memTitleRepository {
	return &memTitleRepository{titles: make(map[uuid.UUID]*model.Title)}
}

func (m *memTitleRepository) Create(_ context.Context, t *model.Title, _ uuid.UUID, _ []uuid.UUID) error {
	clone := *t
	m.titles[t.ID] = &clone
	return nil
}

func (m *memTitleRepository) GetByID(_ context.Context, id uuid.UUID) (*model.Title, error) {
	t, ok := m.titles[id]
	if !ok {
		return nil, model.ErrTitleNotFound
	}
	clone := *t
	return &clone, nil
}

func (m *memTitleRepository) List(context.Context, model.ListTitlesRequest) ([]model.Title, int, error) {
	out := make([]model.Title, 0, len(m.titles))
	for _, t := range m.titles {
		out = append(out, *t)
	}
	return out, len(out), nil
}

func (m *memTitleRepository) Update(_ context.Context, t *model.Title, _ *uuid.UUID, _ []uuid.UUID) error {
	if _, ok := m.titles[t.ID]; !ok {
		return model.ErrTitleNotFound
	}
	clone := *t
	m.titles[t.ID] = &clone
	return nil
}

func (m *memTitleRepository) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.titles[id]; !ok {
		return model.ErrTitleNotFound
	}
	delete(m.titles, id)
	return nil
}

func (m *memTitleRepository) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	_, ok := m.titles[id]
	return ok, nil
}

func (m *memTitleRepository) InvalidateCache(context.Context, uuid.UUID) error { return nil }

func TestCreateTitle(t *testing.T) {
	svc := NewTitleService(newMemTitleRepository(), newFakeCatalogRepository())

	title, err := svc.Create(context.Background(), model.CreateTitleRequest{
		Name:     "The Long Walk",
		Year:     1979,
		Category: "movie",
		Genre:    []string{"drama", "comedy"},
	})
	require.NoError(t, err)
	require.NotNil(t, title.Category)
	assert.Equal(t, "movie", title.Category.Slug)
	require.Len(t, title.Genres, 2)
	assert.Nil(t, title.Rating, "a fresh title has no reviews yet")
}

func TestCreateTitle_DuplicateGenreSlugs(t *testing.T) {
	svc := NewTitleService(newMemTitleRepository(), newFakeCatalogRepository())

	title, err := svc.Create(context.Background(), model.CreateTitleRequest{
		Name:     "Twice Told",
		Year:     1995,
		Category: "movie",
		Genre:    []string{"drama", "drama", "comedy"},
	})
	require.NoError(t, err, "repeating a known slug is not an error")
	require.Len(t, title.Genres, 2)
	assert.Equal(t, "drama", title.Genres[0].Slug)
	assert.Equal(t, "comedy", title.Genres[1].Slug)
}

func TestCreateTitle_UnknownSlugs(t *testing.T) {
	svc := NewTitleService(newMemTitleRepository(), newFakeCatalogRepository())
	ctx := context.Background()

	_, err := svc.Create(ctx, model.CreateTitleRequest{
		Name: "X", Year: 2000, Category: "podcast", Genre: []string{"drama"},
	})
	var unknown *model.UnknownSlugsError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "category", unknown.Field)

	_, err = svc.Create(ctx, model.CreateTitleRequest{
		Name: "X", Year: 2000, Category: "movie", Genre: []string{"drama", "noir"},
	})
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "genre", unknown.Field)
	assert.Equal(t, []string{"noir"}, unknown.Slugs)
}

func TestCreateTitle_YearInFuture(t *testing.T) {
	svc := NewTitleService(newMemTitleRepository(), newFakeCatalogRepository())

	_, err := svc.Create(context.Background(), model.CreateTitleRequest{
		Name:     "From the future",
		Year:     time.Now().Year() + 1,
		Category: "movie",
		Genre:    []string{"drama"},
	})
	assert.Error(t, err)
}

func TestUpdateTitle_Partial(t *testing.T) {
	svc := NewTitleService(newMemTitleRepository(), newFakeCatalogRepository())
	ctx := context.Background()

	title, err := svc.Create(ctx, model.CreateTitleRequest{
		Name: "Original", Year: 1990, Category: "movie", Genre: []string{"drama"},
	})
	require.NoError(t, err)

	name := "Renamed"
	updated, err := svc.Update(ctx, title.ID, model.UpdateTitleRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
	assert.Equal(t, 1990, updated.Year)
	require.Len(t, updated.Genres, 1, "untouched genre set survives a partial update")

	genres := []string{"comedy"}
	updated, err = svc.Update(ctx, title.ID, model.UpdateTitleRequest{Genre: &genres})
	require.NoError(t, err)
	require.Len(t, updated.Genres, 1)
	assert.Equal(t, "comedy", updated.Genres[0].Slug)
}

func TestUpdateTitle_NotFound(t *testing.T) {
	svc := NewTitleService(newMemTitleRepository(), newFakeCatalogRepository())

	name := "x"
	_, err := svc.Update(context.Background(), uuid.New(), model.UpdateTitleRequest{Name: &name})
	assert.ErrorIs(t, err, model.ErrTitleNotFound)
}

func TestDeleteTitle(t *testing.T) {
	svc := NewTitleService(newMemTitleRepository(), newFakeCatalogRepository())
	ctx := context.Background()

	title, err := svc.Create(ctx, model.CreateTitleRequest{
		Name: "Doomed", Year: 2001, Category: "movie", Genre: []string{"drama"},
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, title.ID))
	assert.ErrorIs(t, svc.Delete(ctx, title.ID), model.ErrTitleNotFound)
}
