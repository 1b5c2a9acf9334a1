package model

import (
	"errors"
	"fmt"
	"strings"
)

// Error codes
const (
	ErrCodeTitleNotFound = "TTL001"
	ErrCodeUnknownSlugs  = "TTL002"
	ErrCodeYearInFuture  = "TTL003"
)

var (
	ErrTitleNotFound = errors.New("title not found")
	ErrYearInFuture  = errors.New("year must not exceed the current year")
)

// UnknownSlugsError reports which category/genre slugs a create or
// update referenced that do not exist.
type UnknownSlugsError struct {
	Field string
	Slugs []string
}

func (e *UnknownSlugsError) Error() string {
	return fmt.Sprintf("unknown %s slugs: %s", e.Field, strings.Join(e.Slugs, ", "))
}
