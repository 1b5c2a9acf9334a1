package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// CreateReviewRequest posts a review. Score is a pointer so that an
// explicit zero survives binding.
type CreateReviewRequest struct {
	Text  string `json:"text"`
	Score *int   `json:"score"`
}

func (r CreateReviewRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Text, validation.Required, validation.Length(1, TextMaxLength)),
		validation.Field(&r.Score, validation.NotNil, validation.Min(ScoreMin), validation.Max(ScoreMax)),
	)
}

// UpdateReviewRequest partially updates a review.
type UpdateReviewRequest struct {
	Text  *string `json:"text"`
	Score *int    `json:"score"`
}

func (r UpdateReviewRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Text, validation.Length(1, TextMaxLength)),
		validation.Field(&r.Score, validation.Min(ScoreMin), validation.Max(ScoreMax)),
	)
}

// CreateCommentRequest posts a comment under a review.
type CreateCommentRequest struct {
	Text string `json:"text"`
}

func (r CreateCommentRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Text, validation.Required, validation.Length(1, TextMaxLength)),
	)
}

// UpdateCommentRequest partially updates a comment.
type UpdateCommentRequest struct {
	Text *string `json:"text"`
}

func (r UpdateCommentRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Text, validation.Length(1, TextMaxLength)),
	)
}

// ListRequest pages a review or comment thread.
type ListRequest struct {
	Page  int `form:"page"`
	Limit int `form:"limit"`
}

func (r *ListRequest) Normalize() {
	if r.Page < 1 {
		r.Page = 1
	}
	if r.Limit < 1 || r.Limit > 100 {
		r.Limit = 20
	}
}
