package ports

import (
	"context"

	"github.com/playlistify/music-api/internal/core/domain"
)

// PasswordHasher hashes and checks passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	// Check reports whether password matches hash. It never fails; a
	// malformed hash is simply a mismatch.
	Check(password, hash string) bool
}

// TokenService issues and verifies bearer tokens.
type TokenService interface {
	Issue(profile domain.SecurityProfile) (string, error)
	// Verify returns domain.ErrUnauthorized for any invalid, malformed or
	// expired token.
	Verify(token string) (domain.SecurityProfile, error)
}

// Authorizer decides whether a profile may run an operation.
type Authorizer interface {
	Authorize(profile domain.SecurityProfile, allowedRoles ...string) error
}

// LoginThrottle tracks failed logins per key (the normalised email).
type LoginThrottle interface {
	Blocked(ctx context.Context, key string) (bool, error)
	RecordFailure(ctx context.Context, key string) error
	Reset(ctx context.Context, key string) error
}
