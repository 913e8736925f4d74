package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/playlistify/music-api/internal/core/domain"
	"github.com/playlistify/music-api/internal/core/ports"
	"github.com/playlistify/music-api/internal/pkg/metrics"
)

type SongService struct {
	repo     ports.SongRepository
	activity ports.ActivityPublisher
	logger   zerolog.Logger
}

func NewSongService(repo ports.SongRepository, activity ports.ActivityPublisher, logger zerolog.Logger) *SongService {
	if activity == nil {
		activity = discardActivity{}
	}
	return &SongService{repo: repo, activity: activity, logger: logger}
}

// Create stores a new song owned by the caller. Any owner present in song is
// overwritten with profile.ID.
func (s *SongService) Create(ctx context.Context, profile domain.SecurityProfile, song domain.Song) (*domain.Song, error) {
	if profile.ID == "" {
		return nil, domain.ErrUnauthorized
	}

	now := time.Now().UTC()
	song.ID = ""
	song.Owner = profile.ID
	song.CreatedAt = now
	song.UpdatedAt = now

	created, err := s.repo.Create(ctx, &song)
	if err != nil {
		s.logger.Error().Err(err).Str("owner", profile.ID).Msg("failed to create song")
		return nil, err
	}

	s.activity.Enqueue(ports.ActivityEvent{UserID: profile.ID, Kind: ports.ActivitySongSubmitted})
	metrics.CatalogWritesTotal.WithLabelValues("song", "create").Inc()
	s.logger.Info().Str("song_id", created.ID).Str("owner", created.Owner).Msg("song created")

	return created, nil
}

func (s *SongService) Get(ctx context.Context, id string) (*domain.Song, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *SongService) List(ctx context.Context, filter ports.ListSongsFilter) ([]*domain.Song, error) {
	filter.Limit, filter.Skip = page(filter.Limit, filter.Skip)
	return s.repo.List(ctx, filter)
}

func (s *SongService) Count(ctx context.Context, filter ports.ListSongsFilter) (int64, error) {
	return s.repo.Count(ctx, filter)
}

// Update patches a song and stamps the caller as its owner.
func (s *SongService) Update(ctx context.Context, profile domain.SecurityProfile, id string, patch domain.SongPatch) error {
	if err := s.authorize(ctx, profile, id); err != nil {
		return err
	}
	if err := s.repo.Update(ctx, id, patch, profile.ID); err != nil {
		return err
	}
	metrics.CatalogWritesTotal.WithLabelValues("song", "update").Inc()
	return nil
}

// Replace overwrites every field of a song; the owner is stamped from the caller.
func (s *SongService) Replace(ctx context.Context, profile domain.SecurityProfile, id string, song domain.Song) error {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := authorizeOwner(profile, existing.Owner); err != nil {
		return err
	}

	song.ID = id
	song.Owner = profile.ID
	song.CreatedAt = existing.CreatedAt
	song.UpdatedAt = time.Now().UTC()

	if err := s.repo.Replace(ctx, &song); err != nil {
		return err
	}
	metrics.CatalogWritesTotal.WithLabelValues("song", "replace").Inc()
	return nil
}

func (s *SongService) Delete(ctx context.Context, profile domain.SecurityProfile, id string) error {
	if err := s.authorize(ctx, profile, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	metrics.CatalogWritesTotal.WithLabelValues("song", "delete").Inc()
	s.logger.Info().Str("song_id", id).Str("by", profile.ID).Msg("song deleted")
	return nil
}

func (s *SongService) authorize(ctx context.Context, profile domain.SecurityProfile, id string) error {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	return authorizeOwner(profile, existing.Owner)
}

type discardActivity struct{}

func (discardActivity) Enqueue(ports.ActivityEvent) {}
