package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/playlistify/music-api/internal/core/domain"
	"github.com/playlistify/music-api/internal/core/ports"
	"github.com/playlistify/music-api/internal/pkg/metrics"
)

type activityService struct {
	users ports.UserRepository
	log   zerolog.Logger
}

// NewActivityService returns an ActivityService that maintains the per-user
// submission counters.
func NewActivityService(users ports.UserRepository, log zerolog.Logger) ports.ActivityService {
	return &activityService{users: users, log: log}
}

// Process applies one event to the user's counters. Events for users deleted
// in the meantime are dropped.
func (s *activityService) Process(ctx context.Context, event ports.ActivityEvent) error {
	var songs, playlists int
	switch event.Kind {
	case ports.ActivitySongSubmitted:
		songs = 1
	case ports.ActivityPlaylistCreated:
		playlists = 1
	default:
		metrics.ActivityProcessedTotal.WithLabelValues(string(event.Kind), "error").Inc()
		return fmt.Errorf("process activity: unknown kind %q", event.Kind)
	}

	if err := s.users.IncrementCounters(ctx, event.UserID, songs, playlists); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.log.Debug().Str("user_id", event.UserID).Str("kind", string(event.Kind)).Msg("activity for missing user dropped")
			return nil
		}
		metrics.ActivityProcessedTotal.WithLabelValues(string(event.Kind), "error").Inc()
		return fmt.Errorf("process activity: %w", err)
	}

	metrics.ActivityProcessedTotal.WithLabelValues(string(event.Kind), "ok").Inc()
	s.log.Debug().Str("user_id", event.UserID).Str("kind", string(event.Kind)).Msg("activity processed")
	return nil
}
