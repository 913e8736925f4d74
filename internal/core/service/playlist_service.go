package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/playlistify/music-api/internal/core/domain"
	"github.com/playlistify/music-api/internal/core/ports"
	"github.com/playlistify/music-api/internal/pkg/metrics"
)

type PlaylistService struct {
	repo     ports.PlaylistRepository
	activity ports.ActivityPublisher
	logger   zerolog.Logger
}

func NewPlaylistService(repo ports.PlaylistRepository, activity ports.ActivityPublisher, logger zerolog.Logger) *PlaylistService {
	if activity == nil {
		activity = discardActivity{}
	}
	return &PlaylistService{repo: repo, activity: activity, logger: logger}
}

// Create stores a new playlist owned by the caller, whatever owner the input carries.
func (s *PlaylistService) Create(ctx context.Context, profile domain.SecurityProfile, playlist domain.Playlist) (*domain.Playlist, error) {
	if profile.ID == "" {
		return nil, domain.ErrUnauthorized
	}
	if err := checkAttributes(playlist.Attributes); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	playlist.ID = ""
	playlist.Owner = profile.ID
	playlist.CreatedAt = now
	playlist.UpdatedAt = now
	if playlist.Tags == nil {
		playlist.Tags = []string{}
	}
	if playlist.Songs == nil {
		playlist.Songs = []domain.PlaylistSong{}
	}

	created, err := s.repo.Create(ctx, &playlist)
	if err != nil {
		s.logger.Error().Err(err).Str("owner", profile.ID).Msg("failed to create playlist")
		return nil, err
	}

	s.activity.Enqueue(ports.ActivityEvent{UserID: profile.ID, Kind: ports.ActivityPlaylistCreated})
	metrics.CatalogWritesTotal.WithLabelValues("playlist", "create").Inc()
	s.logger.Info().Str("playlist_id", created.ID).Str("owner", created.Owner).Msg("playlist created")

	return created, nil
}

func (s *PlaylistService) Get(ctx context.Context, id string) (*domain.Playlist, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *PlaylistService) List(ctx context.Context, filter ports.ListPlaylistsFilter) ([]*domain.Playlist, error) {
	filter.Limit, filter.Skip = page(filter.Limit, filter.Skip)
	return s.repo.List(ctx, filter)
}

func (s *PlaylistService) Count(ctx context.Context, filter ports.ListPlaylistsFilter) (int64, error) {
	return s.repo.Count(ctx, filter)
}

func (s *PlaylistService) Update(ctx context.Context, profile domain.SecurityProfile, id string, patch domain.PlaylistPatch) error {
	if err := checkAttributes(patch.Attributes); err != nil {
		return err
	}
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := authorizeOwner(profile, existing.Owner); err != nil {
		return err
	}
	if err := s.repo.Update(ctx, id, patch, profile.ID); err != nil {
		return err
	}
	metrics.CatalogWritesTotal.WithLabelValues("playlist", "update").Inc()
	return nil
}

func (s *PlaylistService) Replace(ctx context.Context, profile domain.SecurityProfile, id string, playlist domain.Playlist) error {
	if err := checkAttributes(playlist.Attributes); err != nil {
		return err
	}
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := authorizeOwner(profile, existing.Owner); err != nil {
		return err
	}

	playlist.ID = id
	playlist.Owner = profile.ID
	playlist.CreatedAt = existing.CreatedAt
	playlist.UpdatedAt = time.Now().UTC()
	if playlist.Tags == nil {
		playlist.Tags = []string{}
	}
	if playlist.Songs == nil {
		playlist.Songs = []domain.PlaylistSong{}
	}

	if err := s.repo.Replace(ctx, &playlist); err != nil {
		return err
	}
	metrics.CatalogWritesTotal.WithLabelValues("playlist", "replace").Inc()
	return nil
}

func (s *PlaylistService) Delete(ctx context.Context, profile domain.SecurityProfile, id string) error {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := authorizeOwner(profile, existing.Owner); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	metrics.CatalogWritesTotal.WithLabelValues("playlist", "delete").Inc()
	s.logger.Info().Str("playlist_id", id).Str("by", profile.ID).Msg("playlist deleted")
	return nil
}

func checkAttributes(attrs map[string]string) error {
	if len(attrs) > domain.MaxPlaylistAttributes {
		return fmt.Errorf("%w: at most %d attributes allowed", domain.ErrInvalidInput, domain.MaxPlaylistAttributes)
	}
	return nil
}
