package domain

import (
	"errors"
	"time"
)

var ErrGameNotFound = errors.New("game not found")
var ErrDuplicateGame = errors.New("game already exists")

// Game is a title in the shared collection. Any authenticated user can add
// one; only the user who added it may edit or remove it.
type Game struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	Title       string    `json:"title" bson:"title"`
	Developer   string    `json:"developer" bson:"developer"`
	Genres      []string  `json:"genres" bson:"genres"`
	Platforms   []string  `json:"platforms" bson:"platforms"`
	ReleaseYear int       `json:"release_year" bson:"release_year"`
	CoverURL    string    `json:"cover_url,omitempty" bson:"cover_url,omitempty"`
	CreatedBy   string    `json:"created_by" bson:"created_by"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}
