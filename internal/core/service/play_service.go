package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/playlog/playlog-api/internal/core/domain"
	"github.com/playlog/playlog-api/internal/core/ports"
)

type playService struct {
	plays  ports.PlayRepository
	games  ports.GameRepository
	logger zerolog.Logger
}

// NewPlayService returns a PlayService implementation.
func NewPlayService(plays ports.PlayRepository, games ports.GameRepository, logger zerolog.Logger) ports.PlayService {
	return &playService{plays: plays, games: games, logger: logger}
}

// Record persists a play session after checking the referenced game exists.
func (s *playService) Record(ctx context.Context, input ports.RecordPlayInput) (*domain.Play, error) {
	if input.UserID == "" || input.GameID == "" {
		return nil, domain.ErrInvalidInput
	}
	if input.Rating < 0 || input.Rating > 10 {
		return nil, domain.ErrInvalidInput
	}

	if _, err := s.games.FindByID(ctx, input.GameID); err != nil {
		return nil, err
	}

	playedAt := input.PlayedAt
	if playedAt.IsZero() {
		playedAt = time.Now().UTC()
	}

	play, err := s.plays.Create(ctx, &domain.Play{
		UserID:      input.UserID,
		GameID:      input.GameID,
		PlayedAt:    playedAt,
		DurationMin: input.DurationMin,
		Rating:      input.Rating,
		Notes:       input.Notes,
		CreatedAt:   time.Now().UTC(),
	})
	if err != nil {
		s.logger.Error().Err(err).Str("game_id", input.GameID).Msg("failed to record play")
		return nil, err
	}

	s.logger.Info().
		Str("play_id", play.ID).
		Str("user_id", play.UserID).
		Str("game_id", play.GameID).
		Msg("play recorded")
	return play, nil
}

func (s *playService) Get(ctx context.Context, id, callerID string) (*domain.Play, error) {
	play, err := s.plays.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if play.UserID != callerID {
		return nil, domain.ErrForbidden
	}
	return play, nil
}

func (s *playService) List(ctx context.Context, filter ports.ListPlaysFilter) (*ports.ListPlaysResult, error) {
	if filter.UserID == "" {
		return nil, domain.ErrInvalidInput
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit <= 0 || filter.Limit > maxListLimit {
		filter.Limit = maxListLimit
	}

	items, total, err := s.plays.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(filter.Limit) - 1) / int64(filter.Limit))
	return &ports.ListPlaysResult{
		Items:      items,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
	}, nil
}

func (s *playService) Update(ctx context.Context, id, callerID string, input ports.UpdatePlayInput) (*domain.Play, error) {
	play, err := s.plays.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if play.UserID != callerID {
		return nil, domain.ErrForbidden
	}
	if input.Rating < 0 || input.Rating > 10 {
		return nil, domain.ErrInvalidInput
	}

	if !input.PlayedAt.IsZero() {
		play.PlayedAt = input.PlayedAt
	}
	if input.DurationMin != 0 {
		play.DurationMin = input.DurationMin
	}
	if input.Rating != 0 {
		play.Rating = input.Rating
	}
	if input.Notes != "" {
		play.Notes = input.Notes
	}

	return s.plays.Update(ctx, play)
}

func (s *playService) Delete(ctx context.Context, id, callerID string) error {
	play, err := s.plays.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if play.UserID != callerID {
		return domain.ErrForbidden
	}
	return s.plays.Delete(ctx, id)
}
