package repository

import (
	"context"

	"github.com/google/uuid"

	"yamdb-backend/internal/domains/review/model"
)

// ReviewRepository stores review threads and their comments. Every
// object-level read is scoped by the parent ids from the URL, so a
// review fetched under the wrong title is simply not found.
type ReviewRepository interface {
	CreateReview(ctx context.Context, review *model.Review) error
	GetReview(ctx context.Context, titleID, reviewID uuid.UUID) (*model.Review, error)
	ListReviews(ctx context.Context, titleID uuid.UUID, page, limit int) ([]model.Review, int, error)
	UpdateReview(ctx context.Context, review *model.Review) error
	DeleteReview(ctx context.Context, titleID, reviewID uuid.UUID) error

	CreateComment(ctx context.Context, comment *model.Comment) error
	GetComment(ctx context.Context, reviewID, commentID uuid.UUID) (*model.Comment, error)
	ListComments(ctx context.Context, reviewID uuid.UUID, page, limit int) ([]model.Comment, int, error)
	UpdateComment(ctx context.Context, comment *model.Comment) error
	DeleteComment(ctx context.Context, reviewID, commentID uuid.UUID) error
}
