package ports

import (
	"context"

	"github.com/playlistify/music-api/internal/core/domain"
)

// ListPlaylistsFilter carries the query parameters for listing and counting playlists.
type ListPlaylistsFilter struct {
	Owner string
	Tag   string
	Name  string // case-insensitive substring
	Limit int
	Skip  int
}

// PlaylistRepository defines persistence operations for playlists.
type PlaylistRepository interface {
	Create(ctx context.Context, playlist *domain.Playlist) (*domain.Playlist, error)
	FindByID(ctx context.Context, id string) (*domain.Playlist, error)
	List(ctx context.Context, filter ListPlaylistsFilter) ([]*domain.Playlist, error)
	Count(ctx context.Context, filter ListPlaylistsFilter) (int64, error)
	Update(ctx context.Context, id string, patch domain.PlaylistPatch, owner string) error
	Replace(ctx context.Context, playlist *domain.Playlist) error
	Delete(ctx context.Context, id string) error
}

// PlaylistService defines the playlist use cases.
type PlaylistService interface {
	Create(ctx context.Context, profile domain.SecurityProfile, playlist domain.Playlist) (*domain.Playlist, error)
	Get(ctx context.Context, id string) (*domain.Playlist, error)
	List(ctx context.Context, filter ListPlaylistsFilter) ([]*domain.Playlist, error)
	Count(ctx context.Context, filter ListPlaylistsFilter) (int64, error)
	Update(ctx context.Context, profile domain.SecurityProfile, id string, patch domain.PlaylistPatch) error
	Replace(ctx context.Context, profile domain.SecurityProfile, id string, playlist domain.Playlist) error
	Delete(ctx context.Context, profile domain.SecurityProfile, id string) error
}
