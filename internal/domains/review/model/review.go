package model

import (
	"time"

	"github.com/google/uuid"
)

const TextMaxLength = 5000

// Score bounds for a review.
const (
	ScoreMin = 0
	ScoreMax = 10
)

// Review is one user's opinion of a title. A user holds at most one
// review per title; the constraint lives in storage.
type Review struct {
	ID       uuid.UUID `json:"id"`
	TitleID  uuid.UUID `json:"-"`
	AuthorID uuid.UUID `json:"-"`
	Author   string    `json:"author"`
	Text     string    `json:"text"`
	Score    int       `json:"score"`
	PubDate  time.Time `json:"pub_date"`
}

// Comment is a reply in a review's thread.
type Comment struct {
	ID       uuid.UUID `json:"id"`
	ReviewID uuid.UUID `json:"-"`
	AuthorID uuid.UUID `json:"-"`
	Author   string    `json:"author"`
	Text     string    `json:"text"`
	PubDate  time.Time `json:"pub_date"`
}
