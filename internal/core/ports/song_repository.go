package ports

import (
	"context"

	"github.com/playlistify/music-api/internal/core/domain"
)

// ListSongsFilter carries the query parameters for listing and counting songs.
type ListSongsFilter struct {
	Owner string
	Genre string
	Album string
	Title string // case-insensitive substring
	Limit int
	Skip  int
}

// SongRepository defines persistence operations for songs.
type SongRepository interface {
	Create(ctx context.Context, song *domain.Song) (*domain.Song, error)
	FindByID(ctx context.Context, id string) (*domain.Song, error)
	List(ctx context.Context, filter ListSongsFilter) ([]*domain.Song, error)
	Count(ctx context.Context, filter ListSongsFilter) (int64, error)
	// Update applies patch and sets the owner field.
	Update(ctx context.Context, id string, patch domain.SongPatch, owner string) error
	Replace(ctx context.Context, song *domain.Song) error
	Delete(ctx context.Context, id string) error
}

// SongService defines the song use cases. Writes take the caller's profile
// so the owner field can be stamped from it.
type SongService interface {
	Create(ctx context.Context, profile domain.SecurityProfile, song domain.Song) (*domain.Song, error)
	Get(ctx context.Context, id string) (*domain.Song, error)
	List(ctx context.Context, filter ListSongsFilter) ([]*domain.Song, error)
	Count(ctx context.Context, filter ListSongsFilter) (int64, error)
	Update(ctx context.Context, profile domain.SecurityProfile, id string, patch domain.SongPatch) error
	Replace(ctx context.Context, profile domain.SecurityProfile, id string, song domain.Song) error
	Delete(ctx context.Context, profile domain.SecurityProfile, id string) error
}
