package service

import (
	"context"
	"fmt"

	"storefront/internal/model"
	"storefront/internal/repository"

	"github.com/rs/zerolog"
)

// userService implements UserService.
type userService struct {
	userRepo repository.UserRepository
	logger   zerolog.Logger
}

// NewUserService creates a new user service.
func NewUserService(userRepo repository.UserRepository, logger zerolog.Logger) UserService {
	return &userService{
		userRepo: userRepo,
		logger:   logger.With().Str("service", "user").Logger(),
	}
}

// SignIn upserts the user row for a verified external identity.
func (s *userService) SignIn(ctx context.Context, upsert model.UserUpsert) (*model.User, error) {
	if upsert.OpenID == "" {
		return nil, model.NewDomainError(model.ErrCodeValidation, "open id is required")
	}

	if err := s.userRepo.Upsert(ctx, upsert); err != nil {
		s.logger.Error().Err(err).Str("open_id", upsert.OpenID).Msg("failed to upsert user")
		return nil, fmt.Errorf("failed to sign in: %w", err)
	}

	user, err := s.userRepo.GetByOpenID(ctx, upsert.OpenID)
	if err != nil {
		s.logger.Error().Err(err).Str("open_id", upsert.OpenID).Msg("failed to load user after upsert")
		return nil, fmt.Errorf("failed to sign in: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("user missing after upsert")
	}

	s.logger.Info().
		Str("open_id", user.OpenID).
		Str("role", user.Role).
		Msg("user signed in")

	return user, nil
}

// GetByOpenID resolves a user by external identity. Storage failures degrade
// to an absent result so public pages stay reachable.
func (s *userService) GetByOpenID(ctx context.Context, openID string) (*model.User, error) {
	if openID == "" {
		return nil, nil
	}

	user, err := s.userRepo.GetByOpenID(ctx, openID)
	if err != nil {
		s.logger.Warn().Err(err).Str("open_id", openID).Msg("user lookup failed, treating as anonymous")
		return nil, nil
	}

	return user, nil
}
