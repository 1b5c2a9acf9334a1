package service

import (
	"context"

	"github.com/google/uuid"

	"yamdb-backend/internal/domains/review/model"
	"yamdb-backend/internal/shared/permissions"
)

type ReviewService interface {
	CreateReview(ctx context.Context, identity permissions.Identity, titleID uuid.UUID, req model.CreateReviewRequest) (*model.Review, error)
	GetReview(ctx context.Context, titleID, reviewID uuid.UUID) (*model.Review, error)
	ListReviews(ctx context.Context, titleID uuid.UUID, req model.ListRequest) ([]model.Review, int, error)
	UpdateReview(ctx context.Context, identity permissions.Identity, titleID, reviewID uuid.UUID, req model.UpdateReviewRequest) (*model.Review, error)
	DeleteReview(ctx context.Context, identity permissions.Identity, titleID, reviewID uuid.UUID) error

	CreateComment(ctx context.Context, identity permissions.Identity, titleID, reviewID uuid.UUID, req model.CreateCommentRequest) (*model.Comment, error)
	GetComment(ctx context.Context, titleID, reviewID, commentID uuid.UUID) (*model.Comment, error)
	ListComments(ctx context.Context, titleID, reviewID uuid.UUID, req model.ListRequest) ([]model.Comment, int, error)
	UpdateComment(ctx context.Context, identity permissions.Identity, titleID, reviewID, commentID uuid.UUID, req model.UpdateCommentRequest) (*model.Comment, error)
	DeleteComment(ctx context.Context, identity permissions.Identity, titleID, reviewID, commentID uuid.UUID) error
}
