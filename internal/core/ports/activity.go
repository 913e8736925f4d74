package ports

import "context"

// ActivityKind names a user action that moves one of the user's counters.
type ActivityKind string

const (
	ActivitySongSubmitted   ActivityKind = "song_submitted"
	ActivityPlaylistCreated ActivityKind = "playlist_created"
)

// ActivityEvent is queued by the catalog services after a successful write.
type ActivityEvent struct {
	UserID string
	Kind   ActivityKind
}

// ActivityPublisher accepts events for asynchronous processing.
type ActivityPublisher interface {
	Enqueue(event ActivityEvent)
}

// ActivityService applies a single activity event.
type ActivityService interface {
	Process(ctx context.Context, event ActivityEvent) error
}
