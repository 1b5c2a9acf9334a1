package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"yamdb-backend/internal/domains/catalog/model"
	"yamdb-backend/internal/domains/catalog/service"
	"yamdb-backend/internal/shared/response"
)

// CatalogHandler serves /categories and /genres. The two collections
// behave identically, so the endpoints share their plumbing.
type CatalogHandler struct {
	service service.CatalogService
}

func NewCatalogHandler(service service.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: service}
}

// =====================================================
// CATEGORIES
// =====================================================

// ListCategories handles GET /categories
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	h.list(c, h.service.ListCategories)
}

// CreateCategory handles POST /categories
func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	h.create(c, h.service.CreateCategory)
}

// DeleteCategory handles DELETE /categories/:slug
func (h *CatalogHandler) DeleteCategory(c *gin.Context) {
	h.delete(c, h.service.DeleteCategory)
}

// =====================================================
// GENRES
// =====================================================

// ListGenres handles GET /genres
func (h *CatalogHandler) ListGenres(c *gin.Context) {
	h.list(c, h.service.ListGenres)
}

// CreateGenre handles POST /genres
func (h *CatalogHandler) CreateGenre(c *gin.Context) {
	h.create(c, h.service.CreateGenre)
}

// DeleteGenre handles DELETE /genres/:slug
func (h *CatalogHandler) DeleteGenre(c *gin.Context) {
	h.delete(c, h.service.DeleteGenre)
}

// RetrieveDisabled answers the intentionally disabled single-item GET
// on both collections.
func (h *CatalogHandler) RetrieveDisabled(c *gin.Context) {
	response.MethodNotAllowed(c, "single-item retrieval is not supported")
}

// Shared plumbing

func (h *CatalogHandler) list(c *gin.Context, fn func(ctx context.Context, req model.ListTermsRequest) ([]model.Term, int, error)) {
	var req model.ListTermsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "invalid query parameters")
		return
	}
	req.Normalize()

	terms, total, err := fn(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	if terms == nil {
		terms = []model.Term{}
	}
	response.SuccessWithMeta(c, http.StatusOK, terms, &response.Meta{
		Page:  req.Page,
		Limit: req.Limit,
		Total: total,
	})
}

func (h *CatalogHandler) create(c *gin.Context, fn func(ctx context.Context, req model.CreateTermRequest) (*model.Term, error)) {
	var req model.CreateTermRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	term, err := fn(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, term)
}

func (h *CatalogHandler) delete(c *gin.Context, fn func(ctx context.Context, slug string) error) {
	if err := fn(c.Request.Context(), c.Param("slug")); err != nil {
		h.handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *CatalogHandler) handleError(c *gin.Context, err error) {
	var vErrs validation.Errors
	if errors.As(err, &vErrs) {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "validation failed", vErrs)
		return
	}

	switch {
	case errors.Is(err, model.ErrCategoryNotFound), errors.Is(err, model.ErrGenreNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, model.ErrSlugTaken):
		response.Conflict(c, err.Error())
	default:
		response.InternalServerError(c, "internal server error")
	}
}
