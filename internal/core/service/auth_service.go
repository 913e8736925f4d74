package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/playlistify/music-api/internal/core/domain"
	"github.com/playlistify/music-api/internal/core/ports"
	"github.com/playlistify/music-api/internal/pkg/metrics"
)

// AuthService implements sign-up, credential verification and login.
type AuthService struct {
	users     ports.UserRepository
	hasher    ports.PasswordHasher
	tokens    ports.TokenService
	validator *CredentialValidator
	throttle  ports.LoginThrottle // optional
	log       zerolog.Logger
}

func NewAuthService(
	users ports.UserRepository,
	hasher ports.PasswordHasher,
	tokens ports.TokenService,
	validator *CredentialValidator,
	throttle ports.LoginThrottle,
	log zerolog.Logger,
) *AuthService {
	if validator == nil {
		validator = NewCredentialValidator(0)
	}
	return &AuthService{
		users:     users,
		hasher:    hasher,
		tokens:    tokens,
		validator: validator,
		throttle:  throttle,
		log:       log,
	}
}

// SignUp creates an account with the given role. The role always comes from
// the caller of SignUp, never from client input.
func (s *AuthService) SignUp(ctx context.Context, input ports.SignUpInput, role string) (*domain.User, error) {
	if !domain.ValidRole(role) {
		return nil, fmt.Errorf("sign up: %w: unknown role %q", domain.ErrInvalidInput, role)
	}

	email := normalizeEmail(input.Email)
	if err := s.validator.Validate(email, input.Password); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("sign up: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		Name:              input.Name,
		PhotoPath:         input.PhotoPath,
		Age:               input.Age,
		Email:             email,
		Role:              role,
		FavoritePlaylists: []string{},
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	created, err := s.users.Create(ctx, user, hash)
	if err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			return nil, err
		}
		return nil, fmt.Errorf("sign up: %w", err)
	}

	metrics.SignupsTotal.WithLabelValues(role).Inc()
	s.log.Info().Str("user_id", created.ID).Str("role", role).Msg("user signed up")

	return created, nil
}

// VerifyCredentials returns the user owning email when password matches its
// stored credential. Unknown email, missing credential and wrong password all
// yield domain.ErrInvalidCredentials.
func (s *AuthService) VerifyCredentials(ctx context.Context, email, password string) (*domain.User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("verify credentials: %w", err)
	}

	creds, err := s.users.FindCredentials(ctx, user.ID)
	if err != nil {
		if errors.Is(err, domain.ErrCredentialsNotFound) || errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("verify credentials: %w", err)
	}

	if !s.hasher.Check(password, creds.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	return user, nil
}

// ConvertToUserProfile projects a user onto the identity carried by tokens.
func (s *AuthService) ConvertToUserProfile(user *domain.User) domain.SecurityProfile {
	return domain.SecurityProfile{ID: user.ID, Role: user.Role}
}

// Login verifies the credentials and issues a bearer token.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	key := normalizeEmail(email)

	if s.throttle != nil && key != "" {
		blocked, err := s.throttle.Blocked(ctx, key)
		if err != nil {
			s.log.Warn().Err(err).Msg("login throttle check failed, continuing")
		} else if blocked {
			metrics.LoginAttemptsTotal.WithLabelValues("throttled").Inc()
			return "", domain.ErrTooManyAttempts
		}
	}

	user, err := s.VerifyCredentials(ctx, email, password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.LoginAttemptsTotal.WithLabelValues("invalid_credentials").Inc()
			s.recordFailure(ctx, key)
		} else {
			metrics.LoginAttemptsTotal.WithLabelValues("error").Inc()
		}
		return "", err
	}

	if s.throttle != nil {
		if err := s.throttle.Reset(ctx, key); err != nil {
			s.log.Warn().Err(err).Str("user_id", user.ID).Msg("failed to reset login throttle")
		}
	}

	token, err := s.tokens.Issue(s.ConvertToUserProfile(user))
	if err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues("error").Inc()
		return "", fmt.Errorf("login: %w", err)
	}

	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	s.log.Info().Str("user_id", user.ID).Msg("user logged in")

	return token, nil
}

func (s *AuthService) recordFailure(ctx context.Context, key string) {
	if s.throttle == nil || key == "" {
		return
	}
	if err := s.throttle.RecordFailure(ctx, key); err != nil {
		s.log.Warn().Err(err).Msg("failed to record login failure")
	}
}
