package ports

import (
	"context"

	"github.com/playlistify/music-api/internal/core/domain"
)

// UserService defines the account operations behind /users.
type UserService interface {
	Get(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context, filter ListUsersFilter) ([]*domain.User, error)
	// UpdateSelf applies patch to the caller's own record; any role change is dropped.
	UpdateSelf(ctx context.Context, profile domain.SecurityProfile, patch domain.UserPatch) error
	UpdateByID(ctx context.Context, id string, patch domain.UserPatch) error
	Delete(ctx context.Context, id string) error
}
