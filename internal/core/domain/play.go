package domain

import (
	"errors"
	"time"
)

var ErrPlayNotFound = errors.New("play not found")

// Play records a single session of a user playing a game. Plays are strictly
// owner-scoped: reads and writes require the caller to be the owning user.
type Play struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	UserID      string    `json:"user_id" bson:"user_id"`
	GameID      string    `json:"game_id" bson:"game_id"`
	PlayedAt    time.Time `json:"played_at" bson:"played_at"`
	DurationMin int       `json:"duration_min" bson:"duration_min"`
	// Rating is 1-10; zero means unrated.
	Rating    int       `json:"rating,omitempty" bson:"rating,omitempty"`
	Notes     string    `json:"notes,omitempty" bson:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}
