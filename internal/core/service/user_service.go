package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/playlistify/music-api/internal/core/domain"
	"github.com/playlistify/music-api/internal/core/ports"
)

type UserService struct {
	repo      ports.UserRepository
	validator *CredentialValidator
	log       zerolog.Logger
}

func NewUserService(repo ports.UserRepository, validator *CredentialValidator, log zerolog.Logger) *UserService {
	if validator == nil {
		validator = NewCredentialValidator(0)
	}
	return &UserService{repo: repo, validator: validator, log: log}
}

func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *UserService) List(ctx context.Context, filter ports.ListUsersFilter) ([]*domain.User, error) {
	if filter.Role != "" && !domain.ValidRole(filter.Role) {
		return nil, fmt.Errorf("%w: unknown role %q", domain.ErrInvalidInput, filter.Role)
	}
	filter.Limit, filter.Skip = page(filter.Limit, filter.Skip)
	return s.repo.List(ctx, filter)
}

// UpdateSelf patches the caller's own record. The id comes from the verified
// profile and a role change is never applied.
func (s *UserService) UpdateSelf(ctx context.Context, profile domain.SecurityProfile, patch domain.UserPatch) error {
	if profile.ID == "" {
		return domain.ErrUnauthorized
	}
	patch.Role = nil
	return s.update(ctx, profile.ID, patch)
}

// UpdateByID patches any user; callers must have been authorized as admin.
func (s *UserService) UpdateByID(ctx context.Context, id string, patch domain.UserPatch) error {
	if patch.Role != nil && !domain.ValidRole(*patch.Role) {
		return fmt.Errorf("%w: unknown role %q", domain.ErrInvalidInput, *patch.Role)
	}
	return s.update(ctx, id, patch)
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("user_id", id).Msg("user deleted")
	return nil
}

func (s *UserService) update(ctx context.Context, id string, patch domain.UserPatch) error {
	if patch.Email != nil {
		email := normalizeEmail(*patch.Email)
		if err := s.validator.ValidateEmail(email); err != nil {
			return err
		}
		patch.Email = &email
	}
	if patch.Empty() {
		// still report a missing user
		_, err := s.repo.FindByID(ctx, id)
		return err
	}
	return s.repo.Update(ctx, id, patch)
}
