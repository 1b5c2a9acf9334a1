package model

import "errors"

// Error codes
const (
	ErrCodeReviewNotFound   = "RVW001"
	ErrCodeCommentNotFound  = "RVW002"
	ErrCodeAlreadyReviewed  = "RVW003"
	ErrCodePermissionDenied = "RVW004"
)

var (
	ErrReviewNotFound   = errors.New("review not found")
	ErrCommentNotFound  = errors.New("comment not found")
	ErrAlreadyReviewed  = errors.New("user has already reviewed this title")
	ErrPermissionDenied = errors.New("permission denied")
)
