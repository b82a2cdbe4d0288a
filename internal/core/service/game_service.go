package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/playlog/playlog-api/internal/core/domain"
	"github.com/playlog/playlog-api/internal/core/ports"
)

const maxListLimit = 100

type gameService struct {
	repo   ports.GameRepository
	logger zerolog.Logger
}

// NewGameService returns a GameService implementation.
func NewGameService(repo ports.GameRepository, logger zerolog.Logger) ports.GameService {
	return &gameService{repo: repo, logger: logger}
}

func (s *gameService) Create(ctx context.Context, input ports.CreateGameInput) (*domain.Game, error) {
	if input.Title == "" || input.UserID == "" {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now().UTC()
	game, err := s.repo.Create(ctx, &domain.Game{
		Title:       input.Title,
		Developer:   input.Developer,
		Genres:      input.Genres,
		Platforms:   input.Platforms,
		ReleaseYear: input.ReleaseYear,
		CoverURL:    input.CoverURL,
		CreatedBy:   input.UserID,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		s.logger.Error().Err(err).Str("title", input.Title).Msg("failed to create game")
		return nil, err
	}

	s.logger.Info().Str("game_id", game.ID).Str("title", game.Title).Msg("game created")
	return game, nil
}

func (s *gameService) Get(ctx context.Context, id string) (*domain.Game, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *gameService) List(ctx context.Context, filter ports.ListGamesFilter) (*ports.ListGamesResult, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit <= 0 || filter.Limit > maxListLimit {
		filter.Limit = maxListLimit
	}

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(filter.Limit) - 1) / int64(filter.Limit))
	return &ports.ListGamesResult{
		Items:      items,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
	}, nil
}

func (s *gameService) Update(ctx context.Context, id, userID string, input ports.UpdateGameInput) (*domain.Game, error) {
	game, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if game.CreatedBy != userID {
		return nil, domain.ErrForbidden
	}

	if input.Title != "" {
		game.Title = input.Title
	}
	if input.Developer != "" {
		game.Developer = input.Developer
	}
	if input.Genres != nil {
		game.Genres = input.Genres
	}
	if input.Platforms != nil {
		game.Platforms = input.Platforms
	}
	if input.ReleaseYear != 0 {
		game.ReleaseYear = input.ReleaseYear
	}
	if input.CoverURL != "" {
		game.CoverURL = input.CoverURL
	}
	game.UpdatedAt = time.Now().UTC()

	return s.repo.Update(ctx, game)
}

func (s *gameService) Delete(ctx context.Context, id, userID string) error {
	game, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if game.CreatedBy != userID {
		return domain.ErrForbidden
	}
	return s.repo.Delete(ctx, id)
}
