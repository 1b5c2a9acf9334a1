package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	catalog "yamdb-backend/internal/domains/catalog/model"
)

const NameMaxLength = 256

// Title is a reviewable work. Rating is derived at read time from
// the review scores and is nil until the first review lands.
type Title struct {
	ID          uuid.UUID      `json:"id"`
	Name        string         `json:"name"`
	Year        int            `json:"year"`
	Rating      *float64       `json:"rating"`
	Description string         `json:"description"`
	Category    *catalog.Term  `json:"category"`
	Genres      []catalog.Term `json:"genre"`
}

// RoundRating converts the raw numeric mean coming out of the
// aggregate into the API representation, rounded to two decimals.
func RoundRating(avg decimal.NullDecimal) *float64 {
	if !avg.Valid {
		return nil
	}
	rounded := avg.Decimal.Round(2).InexactFloat64()
	return &rounded
}
