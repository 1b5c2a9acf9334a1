package model

import "errors"

// Error codes
const (
	ErrCodeCategoryNotFound = "CAT001"
	ErrCodeGenreNotFound    = "CAT002"
	ErrCodeSlugTaken        = "CAT003"
)

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrGenreNotFound    = errors.New("genre not found")
	ErrSlugTaken        = errors.New("slug already exists")
)
