package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/playlistify/music-api/internal/core/domain"
	"github.com/playlistify/music-api/internal/core/ports"
)

var discardLogger = zerolog.Nop()

// ---------------------------------------------------------------------------
// In-memory user repository
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	users      map[string]*domain.User
	hashes     map[string]string
	seq        int
	createErr  error
	findErr    error
	creates    int
	emailLooks int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{
		users:  make(map[string]*domain.User),
		hashes: make(map[string]string),
	}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User, passwordHash string) (*domain.User, error) {
	r.creates++
	if r.createErr != nil {
		return nil, r.createErr
	}
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrEmailTaken
		}
	}
	r.seq++
	created := cloneUser(user)
	created.ID = fmt.Sprintf("user-%d", r.seq)
	r.users[created.ID] = cloneUser(created)
	if passwordHash != "" {
		r.hashes[created.ID] = passwordHash
	}
	return created, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.emailLooks++
	if r.findErr != nil {
		return nil, r.findErr
	}
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindCredentials(_ context.Context, userID string) (*domain.Credentials, error) {
	if _, ok := r.users[userID]; !ok {
		return nil, domain.ErrUserNotFound
	}
	hash, ok := r.hashes[userID]
	if !ok {
		return nil, domain.ErrCredentialsNotFound
	}
	return &domain.Credentials{UserID: userID, PasswordHash: hash}, nil
}

func (r *stubUserRepo) List(_ context.Context, f ports.ListUsersFilter) ([]*domain.User, error) {
	var out []*domain.User
	for _, u := range r.users {
		if f.Role != "" && u.Role != f.Role {
			continue
		}
		out = append(out, cloneUser(u))
	}
	return out, nil
}

func (r *stubUserRepo) Update(_ context.Context, id string, p domain.UserPatch) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	if p.Email != nil {
		for otherID, other := range r.users {
			if otherID != id && other.Email == *p.Email {
				return domain.ErrEmailTaken
			}
		}
		u.Email = *p.Email
	}
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.PhotoPath != nil {
		u.PhotoPath = *p.PhotoPath
	}
	if p.Age != nil {
		u.Age = *p.Age
	}
	if p.Role != nil {
		u.Role = *p.Role
	}
	if p.FavoritePlaylists != nil {
		u.FavoritePlaylists = p.FavoritePlaylists
	}
	return nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	delete(r.hashes, id)
	return nil
}

func (r *stubUserRepo) IncrementCounters(_ context.Context, id string, songs, playlists int) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.NumberOfSongsSubmitted += songs
	u.NumberOfPlaylistsCreated += playlists
	return nil
}

// ---------------------------------------------------------------------------
// Token service, throttle and activity stubs
// ---------------------------------------------------------------------------

type stubTokens struct {
	issued []domain.SecurityProfile
	err    error
}

func (s *stubTokens) Issue(p domain.SecurityProfile) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.issued = append(s.issued, p)
	return "token-" + p.ID, nil
}

func (s *stubTokens) Verify(token string) (domain.SecurityProfile, error) {
	for _, p := range s.issued {
		if token == "token-"+p.ID {
			return p, nil
		}
	}
	return domain.SecurityProfile{}, domain.ErrUnauthorized
}

type stubThrottle struct {
	limit    int
	failures map[string]int
	checkErr error
	resets   int
}

func newStubThrottle(limit int) *stubThrottle {
	return &stubThrottle{limit: limit, failures: make(map[string]int)}
}

func (t *stubThrottle) Blocked(_ context.Context, key string) (bool, error) {
	if t.checkErr != nil {
		return false, t.checkErr
	}
	return t.failures[key] >= t.limit, nil
}

func (t *stubThrottle) RecordFailure(_ context.Context, key string) error {
	t.failures[key]++
	return nil
}

func (t *stubThrottle) Reset(_ context.Context, key string) error {
	t.resets++
	delete(t.failures, key)
	return nil
}

type recordingActivity struct {
	events []ports.ActivityEvent
}

func (r *recordingActivity) Enqueue(e ports.ActivityEvent) {
	r.events = append(r.events, e)
}

// ---------------------------------------------------------------------------
// In-memory song and playlist repositories
// ---------------------------------------------------------------------------

type stubSongRepo struct {
	songs          map[string]*domain.Song
	seq            int
	createErr      error
	lastPatchOwner string
}

func newStubSongRepo() *stubSongRepo {
	return &stubSongRepo{songs: make(map[string]*domain.Song)}
}

func (r *stubSongRepo) Create(_ context.Context, s *domain.Song) (*domain.Song, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	r.seq++
	clone := *s
	clone.ID = fmt.Sprintf("song-%d", r.seq)
	stored := clone
	r.songs[clone.ID] = &stored
	return &clone, nil
}

func (r *stubSongRepo) FindByID(_ context.Context, id string) (*domain.Song, error) {
	s, ok := r.songs[id]
	if !ok {
		return nil, domain.ErrSongNotFound
	}
	clone := *s
	return &clone, nil
}

func (r *stubSongRepo) List(_ context.Context, f ports.ListSongsFilter) ([]*domain.Song, error) {
	var out []*domain.Song
	for _, s := range r.songs {
		if f.Owner != "" && s.Owner != f.Owner {
			continue
		}
		if f.Title != "" && !strings.Contains(strings.ToLower(s.Title), strings.ToLower(f.Title)) {
			continue
		}
		clone := *s
		out = append(out, &clone)
	}
	if len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (r *stubSongRepo) Count(ctx context.Context, f ports.ListSongsFilter) (int64, error) {
	f.Limit = len(r.songs)
	out, _ := r.List(ctx, f)
	return int64(len(out)), nil
}

func (r *stubSongRepo) Update(_ context.Context, id string, p domain.SongPatch, owner string) error {
	s, ok := r.songs[id]
	if !ok {
		return domain.ErrSongNotFound
	}
	if p.Title != nil {
		s.Title = *p.Title
	}
	if p.Album != nil {
		s.Album = *p.Album
	}
	if p.Genre != nil {
		s.Genre = *p.Genre
	}
	s.Owner = owner
	r.lastPatchOwner = owner
	return nil
}

func (r *stubSongRepo) Replace(_ context.Context, s *domain.Song) error {
	if _, ok := r.songs[s.ID]; !ok {
		return domain.ErrSongNotFound
	}
	clone := *s
	r.songs[s.ID] = &clone
	return nil
}

func (r *stubSongRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.songs[id]; !ok {
		return domain.ErrSongNotFound
	}
	delete(r.songs, id)
	return nil
}

type stubPlaylistRepo struct {
	playlists map[string]*domain.Playlist
	seq       int
}

func newStubPlaylistRepo() *stubPlaylistRepo {
	return &stubPlaylistRepo{playlists: make(map[string]*domain.Playlist)}
}

func (r *stubPlaylistRepo) Create(_ context.Context, p *domain.Playlist) (*domain.Playlist, error) {
	r.seq++
	clone := *p
	clone.ID = fmt.Sprintf("playlist-%d", r.seq)
	stored := clone
	r.playlists[clone.ID] = &stored
	return &clone, nil
}

func (r *stubPlaylistRepo) FindByID(_ context.Context, id string) (*domain.Playlist, error) {
	p, ok := r.playlists[id]
	if !ok {
		return nil, domain.ErrPlaylistNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubPlaylistRepo) List(_ context.Context, f ports.ListPlaylistsFilter) ([]*domain.Playlist, error) {
	var out []*domain.Playlist
	for _, p := range r.playlists {
		if f.Owner != "" && p.Owner != f.Owner {
			continue
		}
		clone := *p
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubPlaylistRepo) Count(ctx context.Context, f ports.ListPlaylistsFilter) (int64, error) {
	out, _ := r.List(ctx, f)
	return int64(len(out)), nil
}

func (r *stubPlaylistRepo) Update(_ context.Context, id string, patch domain.PlaylistPatch, owner string) error {
	p, ok := r.playlists[id]
	if !ok {
		return domain.ErrPlaylistNotFound
	}
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Tags != nil {
		p.Tags = patch.Tags
	}
	if patch.Songs != nil {
		p.Songs = patch.Songs
	}
	if patch.Attributes != nil {
		p.Attributes = patch.Attributes
	}
	p.Owner = owner
	return nil
}

func (r *stubPlaylistRepo) Replace(_ context.Context, p *domain.Playlist) error {
	if _, ok := r.playlists[p.ID]; !ok {
		return domain.ErrPlaylistNotFound
	}
	clone := *p
	r.playlists[p.ID] = &clone
	return nil
}

func (r *stubPlaylistRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.playlists[id]; !ok {
		return domain.ErrPlaylistNotFound
	}
	delete(r.playlists, id)
	return nil
}
