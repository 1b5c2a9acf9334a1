package service

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"yamdb-backend/internal/domains/review/model"
	"yamdb-backend/internal/domains/review/repository"
	titlemodel "yamdb-backend/internal/domains/title/model"
	titlerepo "yamdb-backend/internal/domains/title/repository"
	"yamdb-backend/internal/shared/permissions"
)

type reviewService struct {
	repo   repository.ReviewRepository
	titles titlerepo.TitleRepository
}

func NewReviewService(repo repository.ReviewRepository, titles titlerepo.TitleRepository) ReviewService {
	return &reviewService{repo: repo, titles: titles}
}

func (s *reviewService) CreateReview(ctx context.Context, identity permissions.Identity, titleID uuid.UUID, req model.CreateReviewRequest) (*model.Review, error) {
	if err := s.requireTitle(ctx, titleID); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	review := &model.Review{
		ID:       uuid.New(),
		TitleID:  titleID,
		AuthorID: identity.ID,
		Author:   identity.Username,
		Text:     req.Text,
		Score:    *req.Score,
		PubDate:  time.Now().UTC(),
	}

	if err := s.repo.CreateReview(ctx, review); err != nil {
		return nil, err
	}

	// A new score shifts the title's mean rating.
	_ = s.titles.InvalidateCache(ctx, titleID)

	return review, nil
}

func (s *reviewService) GetReview(ctx context.Context, titleID, reviewID uuid.UUID) (*model.Review, error) {
	if err := s.requireTitle(ctx, titleID); err != nil {
		return nil, err
	}
	return s.repo.GetReview(ctx, titleID, reviewID)
}

func (s *reviewService) ListReviews(ctx context.Context, titleID uuid.UUID, req model.ListRequest) ([]model.Review, int, error) {
	if err := s.requireTitle(ctx, titleID); err != nil {
		return nil, 0, err
	}
	req.Normalize()
	return s.repo.ListReviews(ctx, titleID, req.Page, req.Limit)
}

func (s *reviewService) UpdateReview(ctx context.Context, identity permissions.Identity, titleID, reviewID uuid.UUID, req model.UpdateReviewRequest) (*model.Review, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	review, err := s.repo.GetReview(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}

	if !s.canMutate(identity, http.MethodPatch, review.AuthorID) {
		return nil, model.ErrPermissionDenied
	}

	scoreChanged := false
	if req.Text != nil {
		review.Text = *req.Text
	}
	if req.Score != nil && *req.Score != review.Score {
		review.Score = *req.Score
		scoreChanged = true
	}

	if err := s.repo.UpdateReview(ctx, review); err != nil {
		return nil, err
	}

	if scoreChanged {
		_ = s.titles.InvalidateCache(ctx, titleID)
	}

	return review, nil
}

func (s *reviewService) DeleteReview(ctx context.Context, identity permissions.Identity, titleID, reviewID uuid.UUID) error {
	review, err := s.repo.GetReview(ctx, titleID, reviewID)
	if err != nil {
		return err
	}

	if !s.canMutate(identity, http.MethodDelete, review.AuthorID) {
		return model.ErrPermissionDenied
	}

	if err := s.repo.DeleteReview(ctx, titleID, reviewID); err != nil {
		return err
	}

	_ = s.titles.InvalidateCache(ctx, titleID)
	return nil
}

func (s *reviewService) CreateComment(ctx context.Context, identity permissions.Identity, titleID, reviewID uuid.UUID, req model.CreateCommentRequest) (*model.Comment, error) {
	if _, err := s.GetReview(ctx, titleID, reviewID); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	comment := &model.Comment{
		ID:       uuid.New(),
		ReviewID: reviewID,
		AuthorID: identity.ID,
		Author:   identity.Username,
		Text:     req.Text,
		PubDate:  time.Now().UTC(),
	}

	if err := s.repo.CreateComment(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *reviewService) GetComment(ctx context.Context, titleID, reviewID, commentID uuid.UUID) (*model.Comment, error) {
	if _, err := s.GetReview(ctx, titleID, reviewID); err != nil {
		return nil, err
	}
	return s.repo.GetComment(ctx, reviewID, commentID)
}

func (s *reviewService) ListComments(ctx context.Context, titleID, reviewID uuid.UUID, req model.ListRequest) ([]model.Comment, int, error) {
	if _, err := s.GetReview(ctx, titleID, reviewID); err != nil {
		return nil, 0, err
	}
	req.Normalize()
	return s.repo.ListComments(ctx, reviewID, req.Page, req.Limit)
}

func (s *reviewService) UpdateComment(ctx context.Context, identity permissions.Identity, titleID, reviewID, commentID uuid.UUID, req model.UpdateCommentRequest) (*model.Comment, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	comment, err := s.GetComment(ctx, titleID, reviewID, commentID)
	if err != nil {
		return nil, err
	}

	if !s.canMutate(identity, http.MethodPatch, comment.AuthorID) {
		return nil, model.ErrPermissionDenied
	}

	if req.Text != nil {
		comment.Text = *req.Text
	}

	if err := s.repo.UpdateComment(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *reviewService) DeleteComment(ctx context.Context, identity permissions.Identity, titleID, reviewID, commentID uuid.UUID) error {
	comment, err := s.GetComment(ctx, titleID, reviewID, commentID)
	if err != nil {
		return err
	}

	if !s.canMutate(identity, http.MethodDelete, comment.AuthorID) {
		return model.ErrPermissionDenied
	}

	return s.repo.DeleteComment(ctx, reviewID, commentID)
}

func (s *reviewService) requireTitle(ctx context.Context, titleID uuid.UUID) error {
	exists, err := s.titles.Exists(ctx, titleID)
	if err != nil {
		return err
	}
	if !exists {
		return titlemodel.ErrTitleNotFound
	}
	return nil
}

func (s *reviewService) canMutate(identity permissions.Identity, method string, authorID uuid.UUID) bool {
	return permissions.Evaluate(permissions.PolicyOwnerOrStaffWrite, permissions.Input{
		Identity:       identity,
		Method:         method,
		ResourceAuthor: &authorID,
	})
}
