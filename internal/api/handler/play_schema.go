package handler

import (
	"time"

	"github.com/playlog/playlog-api/internal/core/domain"
)

type recordPlayRequest struct {
	GameID      string    `json:"game_id" validate:"required"`
	PlayedAt    time.Time `json:"played_at,omitempty"`
	DurationMin int       `json:"duration_min,omitempty" validate:"omitempty,gte=0"`
	Rating      int       `json:"rating,omitempty" validate:"omitempty,gte=1,lte=10"`
	Notes       string    `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

type updatePlayRequest struct {
	PlayedAt    time.Time `json:"played_at,omitempty"`
	DurationMin int       `json:"duration_min,omitempty" validate:"omitempty,gte=0"`
	Rating      int       `json:"rating,omitempty" validate:"omitempty,gte=1,lte=10"`
	Notes       string    `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

type importPlaysRequest struct {
	Plays []recordPlayRequest `json:"plays" validate:"required,min=1,max=500,dive"`
}

type importPlaysResponse struct {
	Accepted int `json:"accepted"`
}

type playResponse struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	GameID      string    `json:"game_id"`
	PlayedAt    time.Time `json:"played_at"`
	DurationMin int       `json:"duration_min"`
	Rating      int       `json:"rating,omitempty"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type playListResponse struct {
	Items      []playResponse `json:"items"`
	Total      int64          `json:"total"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
	TotalPages int            `json:"total_pages"`
}

func toPlayResponse(p *domain.Play) playResponse {
	return playResponse{
		ID:          p.ID,
		UserID:      p.UserID,
		GameID:      p.GameID,
		PlayedAt:    p.PlayedAt,
		DurationMin: p.DurationMin,
		Rating:      p.Rating,
		Notes:       p.Notes,
		CreatedAt:   p.CreatedAt,
	}
}
