package service

import (
	"context"

	"yamdb-backend/internal/domains/catalog/model"
	"yamdb-backend/internal/domains/catalog/repository"
)

type CatalogService interface {
	CreateCategory(ctx context.Context, req model.CreateTermRequest) (*model.Term, error)
	ListCategories(ctx context.Context, req model.ListTermsRequest) ([]model.Term, int, error)
	DeleteCategory(ctx context.Context, slug string) error

	CreateGenre(ctx context.Context, req model.CreateTermRequest) (*model.Term, error)
	ListGenres(ctx context.Context, req model.ListTermsRequest) ([]model.Term, int, error)
	DeleteGenre(ctx context.Context, slug string) error
}

type catalogService struct {
	repo repository.CatalogRepository
}

func NewCatalogService(repo repository.CatalogRepository) CatalogService {
	return &catalogService{repo: repo}
}

func (s *catalogService) CreateCategory(ctx context.Context, req model.CreateTermRequest) (*model.Term, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	t := &model.Term{Name: req.Name, Slug: req.Slug}
	if err := s.repo.CreateCategory(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *catalogService) ListCategories(ctx context.Context, req model.ListTermsRequest) ([]model.Term, int, error) {
	req.Normalize()
	return s.repo.ListCategories(ctx, req.Search, req.Page, req.Limit)
}

func (s *catalogService) DeleteCategory(ctx context.Context, slug string) error {
	return s.repo.DeleteCategory(ctx, slug)
}

func (s *catalogService) CreateGenre(ctx context.Context, req model.CreateTermRequest) (*model.Term, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	t := &model.Term{Name: req.Name, Slug: req.Slug}
	if err := s.repo.CreateGenre(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *catalogService) ListGenres(ctx context.Context, req model.ListTermsRequest) ([]model.Term, int, error) {
	req.Normalize()
	return s.repo.ListGenres(ctx, req.Search, req.Page, req.Limit)
}

func (s *catalogService) DeleteGenre(ctx context.Context, slug string) error {
	return s.repo.DeleteGenre(ctx, slug)
}
