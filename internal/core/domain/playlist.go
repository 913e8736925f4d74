package domain

import "time"

// MaxPlaylistAttributes bounds the free-form attribute map of a playlist.
const MaxPlaylistAttributes = 32

// PlaylistSong is a reference to a song inside a playlist.
type PlaylistSong struct {
	SongID string `json:"song_id"`
	Title  string `json:"title,omitempty"`
}

// Playlist is an ordered collection of songs owned by a user.
type Playlist struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	Tags       []string          `json:"tags"`
	Songs      []PlaylistSong    `json:"songs"`
	Owner      string            `json:"owner"`
	Attributes map[string]string `json:"attributes,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

// PlaylistPatch carries a partial playlist update.
type PlaylistPatch struct {
	Name       *string
	Tags       []string
	Songs      []PlaylistSong
	Attributes map[string]string
}
