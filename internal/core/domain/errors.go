package domain

import "errors"

var (
	ErrInvalidCredentialsFormat = errors.New("invalid credentials format")
	ErrInvalidInput             = errors.New("invalid input")
	// ErrInvalidCredentials is returned for every failed login so callers
	// cannot tell an unknown email from a wrong password.
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUnauthorized       = errors.New("unauthenticated")
	ErrForbidden          = errors.New("access forbidden")
	ErrTooManyAttempts    = errors.New("too many failed login attempts")

	ErrEmailTaken          = errors.New("email value is already taken")
	ErrUserNotFound        = errors.New("user not found")
	ErrCredentialsNotFound = errors.New("credentials not found")

	ErrSongNotFound     = errors.New("song not found")
	ErrPlaylistNotFound = errors.New("playlist not found")
)
