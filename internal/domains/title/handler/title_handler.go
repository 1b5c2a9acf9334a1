package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"yamdb-backend/internal/domains/title/model"
	"yamdb-backend/internal/domains/title/service"
	"yamdb-backend/internal/shared/response"
)

type TitleHandler struct {
	titleService service.TitleService
}

func NewTitleHandler(titleService service.TitleService) *TitleHandler {
	return &TitleHandler{titleService: titleService}
}

// List handles GET /api/v1/titles
func (h *TitleHandler) List(c *gin.Context) {
	var req model.ListTitlesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}
	req.Normalize()

	titles, total, err := h.titleService.List(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, titles, &response.Meta{
		Page:  req.Page,
		Limit: req.Limit,
		Total: total,
	})
}

// Get handles GET /api/v1/titles/:id
func (h *TitleHandler) Get(c *gin.Context) {
	id, ok := h.titleID(c)
	if !ok {
		return
	}

	title, err := h.titleService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, title)
}

// Create handles POST /api/v1/titles
func (h *TitleHandler) Create(c *gin.Context) {
	var req model.CreateTitleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	title, err := h.titleService.Create(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, title)
}

// Update handles PATCH /api/v1/titles/:id
func (h *TitleHandler) Update(c *gin.Context) {
	id, ok := h.titleID(c)
	if !ok {
		return
	}

	var req model.UpdateTitleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	title, err := h.titleService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, title)
}

// Delete handles DELETE /api/v1/titles/:id
func (h *TitleHandler) Delete(c *gin.Context) {
	id, ok := h.titleID(c)
	if !ok {
		return
	}

	if err := h.titleService.Delete(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ReplaceDisabled handles PUT /api/v1/titles/:id. Full replacement is
// not offered; clients patch instead.
func (h *TitleHandler) ReplaceDisabled(c *gin.Context) {
	response.MethodNotAllowed(c, "Use PATCH for partial updates")
}

// titleID parses the path id. A malformed id is indistinguishable
// from a missing title.
func (h *TitleHandler) titleID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.NotFound(c, "Title not found")
		return uuid.Nil, false
	}
	return id, true
}

func (h *TitleHandler) handleError(c *gin.Context, err error) {
	var validationErrs validation.Errors
	if errors.As(err, &validationErrs) {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "validation failed", validationErrs)
		return
	}

	var unknownSlugs *model.UnknownSlugsError
	if errors.As(err, &unknownSlugs) {
		response.BadRequest(c, unknownSlugs.Error())
		return
	}

	switch {
	case errors.Is(err, model.ErrTitleNotFound):
		response.NotFound(c, "Title not found")
	default:
		response.InternalServerError(c, "An unexpected error occurred")
	}
}
