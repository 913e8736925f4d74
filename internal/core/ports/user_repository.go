package ports

import (
	"context"

	"github.com/playlistify/music-api/internal/core/domain"
)

// ListUsersFilter carries the query parameters for listing users.
type ListUsersFilter struct {
	Role  string // optional
	Limit int
	Skip  int
}

// UserRepository defines persistence operations for users and their stored
// credential.
type UserRepository interface {
	// Create inserts the user together with its password hash in one write.
	// Returns domain.ErrEmailTaken when the email is already registered.
	Create(ctx context.Context, user *domain.User, passwordHash string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// FindCredentials loads the stored credential of a user.
	// Returns domain.ErrCredentialsNotFound when none is attached.
	FindCredentials(ctx context.Context, userID string) (*domain.Credentials, error)
	List(ctx context.Context, filter ListUsersFilter) ([]*domain.User, error)
	Update(ctx context.Context, id string, patch domain.UserPatch) error
	Delete(ctx context.Context, id string) error
	// IncrementCounters adds to the submitted-songs and created-playlists counters.
	IncrementCounters(ctx context.Context, id string, songs, playlists int) error
}
