package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"yamdb-backend/internal/domains/user/model"
	"yamdb-backend/internal/domains/user/service"
	"yamdb-backend/internal/shared/middleware"
	"yamdb-backend/internal/shared/response"
)

// UserHandler serves the auth endpoints and the user directory.
type UserHandler struct {
	service service.UserService
}

func NewUserHandler(service service.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// =====================================================
// AUTH ENDPOINTS
// =====================================================

// Signup handles POST /auth/signup
func (h *UserHandler) Signup(c *gin.Context) {
	var req model.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	resp, err := h.service.Signup(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	// 200, not 201: re-signup of an existing identity is a code
	// refresh, not a new resource.
	response.Success(c, http.StatusOK, resp)
}

// Token handles POST /auth/token
func (h *UserHandler) Token(c *gin.Context) {
	var req model.TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	resp, err := h.service.IssueToken(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// =====================================================
// SELF-PROFILE ENDPOINTS
// =====================================================

// GetProfile handles GET /users/me
func (h *UserHandler) GetProfile(c *gin.Context) {
	identity := middleware.GetIdentity(c)

	resp, err := h.service.GetProfile(c.Request.Context(), identity.ID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// UpdateProfile handles PATCH /users/me
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	identity := middleware.GetIdentity(c)

	var req model.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	resp, err := h.service.UpdateProfile(c.Request.Context(), identity, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// =====================================================
// ADMIN DIRECTORY ENDPOINTS
// =====================================================

// List handles GET /users
func (h *UserHandler) List(c *gin.Context) {
	var req model.ListUsersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "invalid query parameters")
		return
	}
	req.Normalize()

	users, total, err := h.service.List(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, users, &response.Meta{
		Page:  req.Page,
		Limit: req.Limit,
		Total: total,
	})
}

// Create handles POST /users
func (h *UserHandler) Create(c *gin.Context) {
	var req model.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	resp, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp)
}

// Get handles GET /users/:username
func (h *UserHandler) Get(c *gin.Context) {
	resp, err := h.service.GetByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// Update handles PATCH /users/:username
func (h *UserHandler) Update(c *gin.Context) {
	var req model.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	resp, err := h.service.Update(c.Request.Context(), c.Param("username"), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// Delete handles DELETE /users/:username
func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("username")); err != nil {
		h.handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// handleError maps domain errors to HTTP responses.
func (h *UserHandler) handleError(c *gin.Context, err error) {
	var vErrs validation.Errors
	if errors.As(err, &vErrs) {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "validation failed", vErrs)
		return
	}

	switch {
	case errors.Is(err, model.ErrUserNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, model.ErrUsernameTaken),
		errors.Is(err, model.ErrEmailTaken):
		response.BadRequest(c, err.Error())
	case errors.Is(err, model.ErrInvalidCode),
		errors.Is(err, model.ErrExpiredCode):
		response.BadRequest(c, err.Error())
	default:
		response.InternalServerError(c, "internal server error")
	}
}
