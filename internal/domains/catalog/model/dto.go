package model

import (
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var slugRegex = regexp.MustCompile(SlugPattern)

// CreateTermRequest creates a category or genre.
type CreateTermRequest struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func (r CreateTermRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, NameMaxLength)),
		validation.Field(&r.Slug,
			validation.Required,
			validation.Length(1, SlugMaxLength),
			validation.Match(slugRegex).Error("slug may contain only letters, digits, hyphens and underscores"),
		),
	)
}

// ListTermsRequest pages through categories or genres with an
// optional name search.
type ListTermsRequest struct {
	Search string `form:"search"`
	Page   int    `form:"page"`
	Limit  int    `form:"limit"`
}

func (r *ListTermsRequest) Normalize() {
	if r.Page < 1 {
		r.Page = 1
	}
	if r.Limit < 1 || r.Limit > 100 {
		r.Limit = 20
	}
}
