package handler

import (
	"github.com/playlistify/music-api/internal/core/domain"
	"github.com/playlistify/music-api/internal/core/ports"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Users ---

type nameRequest struct {
	First  string `json:"first"  validate:"required"`
	Middle string `json:"middle"`
	Last   string `json:"last"`
}

func (n nameRequest) toDomain() domain.Name {
	return domain.Name{First: n.First, Middle: n.Middle, Last: n.Last}
}

// signUpRequest accepts either a flat body or the nested
// {"user": {...}, "userCredentials": {"password": ...}} form. Neither has a
// role field; the endpoint decides the role. Email and password format are
// checked by the auth service.
type signUpRequest struct {
	User            *signUpUser        `json:"user"            validate:"-"`
	UserCredentials *signUpCredentials `json:"userCredentials" validate:"-"`

	Name      nameRequest `json:"name"       validate:"required"`
	PhotoPath string      `json:"photo_path"`
	Age       int         `json:"age"        validate:"gte=0,lte=150"`
	Email     string      `json:"email"`
	Password  string      `json:"password"`
}

type signUpUser struct {
	Name      nameRequest `json:"name"`
	PhotoPath string      `json:"photoPath"`
	Age       int         `json:"age"`
	Email     string      `json:"email"`
}

type signUpCredentials struct {
	Password string `json:"password"`
}

// flatten moves the nested form into the flat fields so both shapes are
// validated by the same rules. Nested values win.
func (r *signUpRequest) flatten() {
	if u := r.User; u != nil {
		r.Name = u.Name
		r.PhotoPath = u.PhotoPath
		r.Age = u.Age
		r.Email = u.Email
	}
	if r.UserCredentials != nil {
		r.Password = r.UserCredentials.Password
	}
	r.User, r.UserCredentials = nil, nil
}

func (r signUpRequest) toInput() ports.SignUpInput {
	return ports.SignUpInput{
		Name:      r.Name.toDomain(),
		PhotoPath: r.PhotoPath,
		Age:       r.Age,
		Email:     r.Email,
		Password:  r.Password,
	}
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

type updateUserRequest struct {
	Name              *nameRequest `json:"name"               validate:"omitempty"`
	PhotoPath         *string      `json:"photo_path"`
	Age               *int         `json:"age"                validate:"omitempty,gte=0,lte=150"`
	Email             *string      `json:"email"`
	Role              *string      `json:"role"               validate:"omitempty,oneof=admin user"`
	FavoritePlaylists []string     `json:"favorite_playlists"`
}

func (r updateUserRequest) toPatch() domain.UserPatch {
	patch := domain.UserPatch{
		PhotoPath:         r.PhotoPath,
		Age:               r.Age,
		Email:             r.Email,
		Role:              r.Role,
		FavoritePlaylists: r.FavoritePlaylists,
	}
	if r.Name != nil {
		n := r.Name.toDomain()
		patch.Name = &n
	}
	return patch
}

type listUsersQuery struct {
	Role  string `query:"role"`
	Limit int    `query:"limit"`
	Skip  int    `query:"skip"`
}

// --- Songs ---

// songRequest is the body of POST and PUT. Any owner sent by the client is
// ignored.
type songRequest struct {
	Title       string `json:"title"        validate:"required"`
	Album       string `json:"album"        validate:"required"`
	Genre       string `json:"genre"`
	YoutubeLink string `json:"youtube_link" validate:"omitempty,url"`
	SpotifyLink string `json:"spotify_link" validate:"omitempty,url"`
}

func (r songRequest) toDomain() domain.Song {
	return domain.Song{
		Title:       r.Title,
		Album:       r.Album,
		Genre:       r.Genre,
		YoutubeLink: r.YoutubeLink,
		SpotifyLink: r.SpotifyLink,
	}
}

type songPatchRequest struct {
	Title       *string `json:"title"        validate:"omitempty,min=1"`
	Album       *string `json:"album"        validate:"omitempty,min=1"`
	Genre       *string `json:"genre"`
	YoutubeLink *string `json:"youtube_link" validate:"omitempty,url"`
	SpotifyLink *string `json:"spotify_link" validate:"omitempty,url"`
}

func (r songPatchRequest) toPatch() domain.SongPatch {
	return domain.SongPatch{
		Title:       r.Title,
		Album:       r.Album,
		Genre:       r.Genre,
		YoutubeLink: r.YoutubeLink,
		SpotifyLink: r.SpotifyLink,
	}
}

type listSongsQuery struct {
	Owner string `query:"owner"`
	Genre string `query:"genre"`
	Album string `query:"album"`
	Title string `query:"title"`
	Limit int    `query:"limit"`
	Skip  int    `query:"skip"`
}

// --- Playlists ---

type playlistSongRequest struct {
	SongID string `json:"song_id" validate:"required"`
	Title  string `json:"title"`
}

type playlistRequest struct {
	Name       string                `json:"name"       validate:"required"`
	Tags       []string              `json:"tags"       validate:"required,dive,required"`
	Songs      []playlistSongRequest `json:"songs"      validate:"required,dive"`
	Attributes map[string]string     `json:"attributes" validate:"omitempty,max=32"`
}

func toPlaylistSongs(in []playlistSongRequest) []domain.PlaylistSong {
	if in == nil {
		return nil
	}
	out := make([]domain.PlaylistSong, 0, len(in))
	for _, s := range in {
		out = append(out, domain.PlaylistSong{SongID: s.SongID, Title: s.Title})
	}
	return out
}

func (r playlistRequest) toDomain() domain.Playlist {
	return domain.Playlist{
		Name:       r.Name,
		Tags:       r.Tags,
		Songs:      toPlaylistSongs(r.Songs),
		Attributes: r.Attributes,
	}
}

type playlistPatchRequest struct {
	Name       *string               `json:"name"       validate:"omitempty,min=1"`
	Tags       []string              `json:"tags"       validate:"omitempty,dive,required"`
	Songs      []playlistSongRequest `json:"songs"      validate:"omitempty,dive"`
	Attributes map[string]string     `json:"attributes" validate:"omitempty,max=32"`
}

func (r playlistPatchRequest) toPatch() domain.PlaylistPatch {
	return domain.PlaylistPatch{
		Name:       r.Name,
		Tags:       r.Tags,
		Songs:      toPlaylistSongs(r.Songs),
		Attributes: r.Attributes,
	}
}

type listPlaylistsQuery struct {
	Owner string `query:"owner"`
	Tag   string `query:"tag"`
	Name  string `query:"name"`
	Limit int    `query:"limit"`
	Skip  int    `query:"skip"`
}

type countResponse struct {
	Count int64 `json:"count"`
}
