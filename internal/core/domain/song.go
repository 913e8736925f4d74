package domain

import "time"

// Song is a track submitted by a user.
type Song struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Album       string    `json:"album"`
	Genre       string    `json:"genre"`
	YoutubeLink string    `json:"youtube_link,omitempty"`
	SpotifyLink string    `json:"spotify_link,omitempty"`
	Owner       string    `json:"owner"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// SongPatch carries a partial song update.
type SongPatch struct {
	Title       *string
	Album       *string
	Genre       *string
	YoutubeLink *string
	SpotifyLink *string
}
