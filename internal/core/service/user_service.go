package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/playlog/playlog-api/internal/core/domain"
	"github.com/playlog/playlog-api/internal/core/ports"
)

type userService struct {
	users  ports.UserRepository
	tokens ports.RefreshTokenRepository
	plays  ports.PlayRepository
	logger zerolog.Logger
}

// NewUserService returns a UserService implementation.
func NewUserService(
	users ports.UserRepository,
	tokens ports.RefreshTokenRepository,
	plays ports.PlayRepository,
	logger zerolog.Logger,
) ports.UserService {
	return &userService{users: users, tokens: tokens, plays: plays, logger: logger}
}

func (s *userService) Get(ctx context.Context, userID string) (*domain.User, error) {
	return s.users.FindByID(ctx, userID)
}

func (s *userService) Update(ctx context.Context, userID string, input ports.UpdateUserInput) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.Username != "" {
		user.Username = input.Username
	}
	if input.Email != "" {
		user.Email = input.Email
	}
	user.UpdatedAt = time.Now().UTC()

	updated, err := s.users.Update(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", userID).Msg("profile updated")
	return updated, nil
}

// Delete removes the account and cascades: the user's refresh tokens are
// revoked and their plays removed before the user row itself goes.
func (s *userService) Delete(ctx context.Context, userID string) error {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return err
	}

	if err := s.tokens.DeleteByUserID(ctx, userID); err != nil {
		return err
	}
	if err := s.plays.DeleteByUserID(ctx, userID); err != nil {
		return err
	}
	if err := s.users.Delete(ctx, userID); err != nil {
		return err
	}

	s.logger.Info().Str("user_id", userID).Msg("account deleted")
	return nil
}
