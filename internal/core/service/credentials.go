package service

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/playlistify/music-api/internal/core/domain"
)

const defaultPasswordMinLength = 8

// CredentialValidator enforces the format rules applied before sign-up.
type CredentialValidator struct {
	v           *validator.Validate
	minLength   int
	passwordTag string
}

// NewCredentialValidator returns a validator requiring passwords of at least
// minLength characters. A non-positive minLength selects the default of 8.
func NewCredentialValidator(minLength int) *CredentialValidator {
	if minLength <= 0 {
		minLength = defaultPasswordMinLength
	}
	return &CredentialValidator{
		v:           validator.New(),
		minLength:   minLength,
		passwordTag: fmt.Sprintf("required,min=%d", minLength),
	}
}

// Validate fails with domain.ErrInvalidCredentialsFormat when the email is
// not a valid address or the password is too short.
func (cv *CredentialValidator) Validate(email, password string) error {
	if err := cv.ValidateEmail(email); err != nil {
		return err
	}
	if err := cv.v.Var(password, cv.passwordTag); err != nil {
		return fmt.Errorf("%w: password must be at least %d characters", domain.ErrInvalidCredentialsFormat, cv.minLength)
	}
	return nil
}

// ValidateEmail checks the address format only.
func (cv *CredentialValidator) ValidateEmail(email string) error {
	if err := cv.v.Var(email, "required,email"); err != nil {
		return fmt.Errorf("%w: email must be a valid email", domain.ErrInvalidCredentialsFormat)
	}
	return nil
}

// normalizeEmail is the canonical form used for storage, lookup and throttling.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
