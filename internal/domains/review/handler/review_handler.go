package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"yamdb-backend/internal/domains/review/model"
	"yamdb-backend/internal/domains/review/service"
	titlemodel "yamdb-backend/internal/domains/title/model"
	"yamdb-backend/internal/shared/middleware"
	"yamdb-backend/internal/shared/response"
)

type ReviewHandler struct {
	reviewService service.ReviewService
}

func NewReviewHandler(reviewService service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// ListReviews handles GET /api/v1/titles/:id/reviews
func (h *ReviewHandler) ListReviews(c *gin.Context) {
	titleID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req model.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}
	req.Normalize()

	reviews, total, err := h.reviewService.ListReviews(c.Request.Context(), titleID, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, reviews, &response.Meta{
		Page:  req.Page,
		Limit: req.Limit,
		Total: total,
	})
}

// CreateReview handles POST /api/v1/titles/:id/reviews
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	titleID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req model.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	review, err := h.reviewService.CreateReview(c.Request.Context(), middleware.GetIdentity(c), titleID, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, review)
}

// GetReview handles GET /api/v1/titles/:id/reviews/:review_id
func (h *ReviewHandler) GetReview(c *gin.Context) {
	titleID, reviewID, ok := reviewPath(c)
	if !ok {
		return
	}

	review, err := h.reviewService.GetReview(c.Request.Context(), titleID, reviewID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, review)
}

// UpdateReview handles PATCH /api/v1/titles/:id/reviews/:review_id
func (h *ReviewHandler) UpdateReview(c *gin.Context) {
	titleID, reviewID, ok := reviewPath(c)
	if !ok {
		return
	}

	var req model.UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	review, err := h.reviewService.UpdateReview(c.Request.Context(), middleware.GetIdentity(c), titleID, reviewID, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, review)
}

// DeleteReview handles DELETE /api/v1/titles/:id/reviews/:review_id
func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	titleID, reviewID, ok := reviewPath(c)
	if !ok {
		return
	}

	if err := h.reviewService.DeleteReview(c.Request.Context(), middleware.GetIdentity(c), titleID, reviewID); err != nil {
		h.handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ListComments handles GET /api/v1/titles/:id/reviews/:review_id/comments
func (h *ReviewHandler) ListComments(c *gin.Context) {
	titleID, reviewID, ok := reviewPath(c)
	if !ok {
		return
	}

	var req model.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}
	req.Normalize()

	comments, total, err := h.reviewService.ListComments(c.Request.Context(), titleID, reviewID, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, comments, &response.Meta{
		Page:  req.Page,
		Limit: req.Limit,
		Total: total,
	})
}

// CreateComment handles POST /api/v1/titles/:id/reviews/:review_id/comments
func (h *ReviewHandler) CreateComment(c *gin.Context) {
	titleID, reviewID, ok := reviewPath(c)
	if !ok {
		return
	}

	var req model.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	comment, err := h.reviewService.CreateComment(c.Request.Context(), middleware.GetIdentity(c), titleID, reviewID, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, comment)
}

// GetComment handles GET /api/v1/titles/:id/reviews/:review_id/comments/:comment_id
func (h *ReviewHandler) GetComment(c *gin.Context) {
	titleID, reviewID, commentID, ok := commentPath(c)
	if !ok {
		return
	}

	comment, err := h.reviewService.GetComment(c.Request.Context(), titleID, reviewID, commentID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, comment)
}

// UpdateComment handles PATCH /api/v1/titles/:id/reviews/:review_id/comments/:comment_id
func (h *ReviewHandler) UpdateComment(c *gin.Context) {
	titleID, reviewID, commentID, ok := commentPath(c)
	if !ok {
		return
	}

	var req model.UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	comment, err := h.reviewService.UpdateComment(c.Request.Context(), middleware.GetIdentity(c), titleID, reviewID, commentID, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, comment)
}

// DeleteComment handles DELETE /api/v1/titles/:id/reviews/:review_id/comments/:comment_id
func (h *ReviewHandler) DeleteComment(c *gin.Context) {
	titleID, reviewID, commentID, ok := commentPath(c)
	if !ok {
		return
	}

	if err := h.reviewService.DeleteComment(c.Request.Context(), middleware.GetIdentity(c), titleID, reviewID, commentID); err != nil {
		h.handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ReplaceDisabled handles PUT on reviews and comments.
func (h *ReviewHandler) ReplaceDisabled(c *gin.Context) {
	response.MethodNotAllowed(c, "Use PATCH for partial updates")
}

func pathID(c *gin.Context, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		response.NotFound(c, "Not found")
		return uuid.Nil, false
	}
	return id, true
}

func reviewPath(c *gin.Context) (titleID, reviewID uuid.UUID, ok bool) {
	if titleID, ok = pathID(c, "id"); !ok {
		return
	}
	reviewID, ok = pathID(c, "review_id")
	return
}

func commentPath(c *gin.Context) (titleID, reviewID, commentID uuid.UUID, ok bool) {
	if titleID, reviewID, ok = reviewPath(c); !ok {
		return
	}
	commentID, ok = pathID(c, "comment_id")
	return
}

func (h *ReviewHandler) handleError(c *gin.Context, err error) {
	var validationErrs validation.Errors
	if errors.As(err, &validationErrs) {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "validation failed", validationErrs)
		return
	}

	switch {
	case errors.Is(err, titlemodel.ErrTitleNotFound):
		response.NotFound(c, "Title not found")
	case errors.Is(err, model.ErrReviewNotFound):
		response.NotFound(c, "Review not found")
	case errors.Is(err, model.ErrCommentNotFound):
		response.NotFound(c, "Comment not found")
	case errors.Is(err, model.ErrAlreadyReviewed):
		response.Conflict(c, "You have already reviewed this title")
	case errors.Is(err, model.ErrPermissionDenied):
		response.Forbidden(c, "You do not have permission to modify this resource")
	default:
		response.InternalServerError(c, "An unexpected error occurred")
	}
}
