package handler

import (
	"time"

	"github.com/playlog/playlog-api/internal/core/domain"
)

type createGameRequest struct {
	Title       string   `json:"title" validate:"required,min=1,max=200"`
	Developer   string   `json:"developer,omitempty" validate:"omitempty,max=200"`
	Genres      []string `json:"genres,omitempty"`
	Platforms   []string `json:"platforms,omitempty"`
	ReleaseYear int      `json:"release_year,omitempty" validate:"omitempty,gte=1950,lte=2100"`
	CoverURL    string   `json:"cover_url,omitempty" validate:"omitempty,url"`
}

type updateGameRequest struct {
	Title       string   `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Developer   string   `json:"developer,omitempty" validate:"omitempty,max=200"`
	Genres      []string `json:"genres,omitempty"`
	Platforms   []string `json:"platforms,omitempty"`
	ReleaseYear int      `json:"release_year,omitempty" validate:"omitempty,gte=1950,lte=2100"`
	CoverURL    string   `json:"cover_url,omitempty" validate:"omitempty,url"`
}

type gameResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Developer   string    `json:"developer,omitempty"`
	Genres      []string  `json:"genres,omitempty"`
	Platforms   []string  `json:"platforms,omitempty"`
	ReleaseYear int       `json:"release_year,omitempty"`
	CoverURL    string    `json:"cover_url,omitempty"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type gameListResponse struct {
	Items      []gameResponse `json:"items"`
	Total      int64          `json:"total"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
	TotalPages int            `json:"total_pages"`
}

func toGameResponse(g *domain.Game) gameResponse {
	return gameResponse{
		ID:          g.ID,
		Title:       g.Title,
		Developer:   g.Developer,
		Genres:      g.Genres,
		Platforms:   g.Platforms,
		ReleaseYear: g.ReleaseYear,
		CoverURL:    g.CoverURL,
		CreatedBy:   g.CreatedBy,
		CreatedAt:   g.CreatedAt,
		UpdatedAt:   g.UpdatedAt,
	}
}
