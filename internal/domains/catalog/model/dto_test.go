package model

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreateTermRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     CreateTermRequest
		wantErr bool
	}{
		{"valid", CreateTermRequest{Name: "Movies", Slug: "movies"}, false},
		{"slug with dash and underscore", CreateTermRequest{Name: "Sci-Fi", Slug: "sci-fi_2"}, false},
		{"missing name", CreateTermRequest{Slug: "movies"}, true},
		{"missing slug", CreateTermRequest{Name: "Movies"}, true},
		{"slug with space", CreateTermRequest{Name: "Movies", Slug: "mov ies"}, true},
		{"slug with unicode", CreateTermRequest{Name: "Movies", Slug: "фильмы"}, true},
		{"slug too long", CreateTermRequest{Name: "Movies", Slug: strings.Repeat("a", 51)}, true},
		{"name too long", CreateTermRequest{Name: strings.Repeat("n", 257), Slug: "ok"}, true},
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

func TestListTermsRequestNormalize(t *testing.T) {
	req := ListTermsRequest{}
	req.Normalize()
	assert.Equal(t, 1, req.Page)
	assert.Equal(t, 20, req.Limit)
}
