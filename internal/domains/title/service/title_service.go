package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	catalogmodel "yamdb-backend/internal/domains/catalog/model"
	catalogrepo "yamdb-backend/internal/domains/catalog/repository"
	"yamdb-backend/internal/domains/title/model"
	"yamdb-backend/internal/domains/title/repository"
)

type titleService struct {
	repo    repository.TitleRepository
	catalog catalogrepo.CatalogRepository
}

func NewTitleService(repo repository.TitleRepository, catalog catalogrepo.CatalogRepository) TitleService {
	return &titleService{repo: repo, catalog: catalog}
}

func (s *titleService) Create(ctx context.Context, req model.CreateTitleRequest) (*model.Title, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	category, err := s.resolveCategory(ctx, req.Category)
	if err != nil {
		return nil, err
	}

	genres, err := s.resolveGenres(ctx, req.Genre)
	if err != nil {
		return nil, err
	}

	title := &model.Title{
		ID:          uuid.New(),
		Name:        req.Name,
		Year:        req.Year,
		Description: req.Description,
		Category:    category,
		Genres:      genres,
	}

	if err := s.repo.Create(ctx, title, category.ID, termIDs(genres)); err != nil {
		return nil, err
	}

	return title, nil
}

func (s *titleService) GetByID(ctx context.Context, id uuid.UUID) (*model.Title, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *titleService) List(ctx context.Context, req model.ListTitlesRequest) ([]model.Title, int, error) {
	req.Normalize()
	return s.repo.List(ctx, req)
}

func (s *titleService) Update(ctx context.Context, id uuid.UUID, req model.UpdateTitleRequest) (*model.Title, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	title, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		title.Name = *req.Name
	}
	if req.Year != nil {
		title.Year = *req.Year
	}
	if req.Description != nil {
		title.Description = *req.Description
	}

	var categoryID *uuid.UUID
	if req.Category != nil {
		category, err := s.resolveCategory(ctx, *req.Category)
		if err != nil {
			return nil, err
		}
		title.Category = category
		categoryID = &category.ID
	}

	// A nil slice leaves the existing genre set untouched.
	var genreIDs []uuid.UUID
	if req.Genre != nil {
		genres, err := s.resolveGenres(ctx, *req.Genre)
		if err != nil {
			return nil, err
		}
		title.Genres = genres
		genreIDs = termIDs(genres)
	}

	if err := s.repo.Update(ctx, title, categoryID, genreIDs); err != nil {
		return nil, err
	}

	return s.repo.GetByID(ctx, id)
}

func (s *titleService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *titleService) resolveCategory(ctx context.Context, slug string) (*catalogmodel.Term, error) {
	category, err := s.catalog.GetCategoryBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, catalogmodel.ErrCategoryNotFound) {
			return nil, &model.UnknownSlugsError{Field: "category", Slugs: []string{slug}}
		}
		return nil, err
	}
	return category, nil
}

func (s *titleService) resolveGenres(ctx context.Context, slugs []string) ([]catalogmodel.Term, error) {
	slugs = dedupeSlugs(slugs)

	genres, err := s.catalog.GetGenresBySlugs(ctx, slugs)
	if err != nil {
		return nil, err
	}

	if len(genres) != len(slugs) {
		known := make(map[string]struct{}, len(genres))
		for _, g := range genres {
			known[g.Slug] = struct{}{}
		}
		var missing []string
		for _, slug := range slugs {
			if _, ok := known[slug]; !ok {
				missing = append(missing, slug)
			}
		}
		return nil, &model.UnknownSlugsError{Field: "genre", Slugs: missing}
	}

	return genres, nil
}

// dedupeSlugs drops repeated slugs, keeping first appearance order.
// Clients may send the same genre twice; the join set stores it once.
func dedupeSlugs(slugs []string) []string {
	seen := make(map[string]struct{}, len(slugs))
	out := make([]string, 0, len(slugs))
	for _, slug := range slugs {
		if _, ok := seen[slug]; ok {
			continue
		}
		seen[slug] = struct{}{}
		out = append(out, slug)
	}
	return out
}

func termIDs(terms []catalogmodel.Term) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(terms))
	for _, t := range terms {
		ids = append(ids, t.ID)
	}
	return ids
}
