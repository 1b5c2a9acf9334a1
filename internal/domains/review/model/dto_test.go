package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func intp(v int) *int { return &v }

func TestCreateReviewRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     CreateReviewRequest
		wantErr bool
	}{
		{"valid", CreateReviewRequest{Text: "good", Score: intp(7)}, false},
		{"lowest score", CreateReviewRequest{Text: "awful", Score: intp(0)}, false},
		{"highest score", CreateReviewRequest{Text: "perfect", Score: intp(10)}, false},
		{"score too high", CreateReviewRequest{Text: "x", Score: intp(11)}, true},
		{"score negative", CreateReviewRequest{Text: "x", Score: intp(-1)}, true},
		{"missing score", CreateReviewRequest{Text: "x"}, true},
		{"missing text", CreateReviewRequest{Score: intp(5)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestUpdateReviewRequestValidate(t *testing.T) {
	assert.NoError(t, UpdateReviewRequest{}.Validate())
	assert.Error(t, UpdateReviewRequest{Score: intp(12)}.Validate())
	assert.NoError(t, UpdateReviewRequest{Score: intp(0)}.Validate())
}

func TestCreateCommentRequestValidate(t *testing.T) {
	assert.NoError(t, CreateCommentRequest{Text: "fair point"}.Validate())
	assert.Error(t, CreateCommentRequest{}.Validate())
}
