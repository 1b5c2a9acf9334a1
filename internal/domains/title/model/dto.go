package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// CreateTitleRequest creates a title. Category and genre reference
// existing slugs.
type CreateTitleRequest struct {
	Name        string   `json:"name"`
	Year        int      `json:"year"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Genre       []string `json:"genre"`
}

func (r CreateTitleRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, NameMaxLength)),
		validation.Field(&r.Year,
			validation.Required,
			validation.Max(time.Now().Year()).Error("year must not exceed the current year"),
		),
		validation.Field(&r.Category, validation.Required),
		validation.Field(&r.Genre, validation.Required, validation.Length(1, 0)),
	)
}

// UpdateTitleRequest partially updates a title. Nil fields are left
// alone; full replacement is deliberately not offered so a patch can
// never clear the genre set by accident.
type UpdateTitleRequest struct {
	Name        *string   `json:"name"`
	Year        *int      `json:"year"`
	Description *string   `json:"description"`
	Category    *string   `json:"category"`
	Genre       *[]string `json:"genre"`
}

func (r UpdateTitleRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Length(1, NameMaxLength)),
		validation.Field(&r.Year,
			validation.Max(time.Now().Year()).Error("year must not exceed the current year"),
		),
	)
}

// ListTitlesRequest filters and pages the catalog.
type ListTitlesRequest struct {
	Name     string `form:"name"`     // case-insensitive substring
	Genre    string `form:"genre"`    // exact genre slug
	Category string `form:"category"` // exact category slug
	Year     *int   `form:"year"`     // exact year
	Page     int    `form:"page"`
	Limit    int    `form:"limit"`
}

func (r *ListTitlesRequest) Normalize() {
	if r.Page < 1 {
		r.Page = 1
	}
	if r.Limit < 1 || r.Limit > 100 {
		r.Limit = 20
	}
}
