package handler

import (
	"context"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/playlistify/music-api/internal/api/middleware"
	"github.com/playlistify/music-api/internal/core/domain"
	"github.com/playlistify/music-api/internal/core/ports"
)

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

// newJSONContext builds a context for method/target with an optional JSON body
// and, when profile is non-nil, the profile the Auth middleware would set.
func newJSONContext(e *echo.Echo, method, target, body string, profile *domain.SecurityProfile) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if profile != nil {
		c.Set(middleware.ProfileKey, *profile)
	}
	return c, rec
}

type stubAuthService struct {
	signUpFn func(ctx context.Context, in ports.SignUpInput, role string) (*domain.User, error)
	loginFn  func(ctx context.Context, email, password string) (string, error)
}

func (s *stubAuthService) SignUp(ctx context.Context, in ports.SignUpInput, role string) (*domain.User, error) {
	return s.signUpFn(ctx, in, role)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (string, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) VerifyCredentials(context.Context, string, string) (*domain.User, error) {
	return nil, domain.ErrInvalidCredentials
}

func (s *stubAuthService) ConvertToUserProfile(u *domain.User) domain.SecurityProfile {
	return domain.SecurityProfile{ID: u.ID, Role: u.Role}
}

type stubUserService struct {
	getFn        func(ctx context.Context, id string) (*domain.User, error)
	listFn       func(ctx context.Context, f ports.ListUsersFilter) ([]*domain.User, error)
	updateSelfFn func(ctx context.Context, p domain.SecurityProfile, patch domain.UserPatch) error
	updateByIDFn func(ctx context.Context, id string, patch domain.UserPatch) error
	deleteFn     func(ctx context.Context, id string) error
}

func (s *stubUserService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.getFn(ctx, id)
}

func (s *stubUserService) List(ctx context.Context, f ports.ListUsersFilter) ([]*domain.User, error) {
	return s.listFn(ctx, f)
}

func (s *stubUserService) UpdateSelf(ctx context.Context, p domain.SecurityProfile, patch domain.UserPatch) error {
	return s.updateSelfFn(ctx, p, patch)
}

func (s *stubUserService) UpdateByID(ctx context.Context, id string, patch domain.UserPatch) error {
	return s.updateByIDFn(ctx, id, patch)
}

func (s *stubUserService) Delete(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

type stubSongService struct {
	createFn  func(ctx context.Context, p domain.SecurityProfile, s domain.Song) (*domain.Song, error)
	getFn     func(ctx context.Context, id string) (*domain.Song, error)
	listFn    func(ctx context.Context, f ports.ListSongsFilter) ([]*domain.Song, error)
	countFn   func(ctx context.Context, f ports.ListSongsFilter) (int64, error)
	updateFn  func(ctx context.Context, p domain.SecurityProfile, id string, patch domain.SongPatch) error
	replaceFn func(ctx context.Context, p domain.SecurityProfile, id string, s domain.Song) error
	deleteFn  func(ctx context.Context, p domain.SecurityProfile, id string) error
}

func (s *stubSongService) Create(ctx context.Context, p domain.SecurityProfile, song domain.Song) (*domain.Song, error) {
	return s.createFn(ctx, p, song)
}

func (s *stubSongService) Get(ctx context.Context, id string) (*domain.Song, error) {
	return s.getFn(ctx, id)
}

func (s *stubSongService) List(ctx context.Context, f ports.ListSongsFilter) ([]*domain.Song, error) {
	return s.listFn(ctx, f)
}

func (s *stubSongService) Count(ctx context.Context, f ports.ListSongsFilter) (int64, error) {
	return s.countFn(ctx, f)
}

func (s *stubSongService) Update(ctx context.Context, p domain.SecurityProfile, id string, patch domain.SongPatch) error {
	return s.updateFn(ctx, p, id, patch)
}

func (s *stubSongService) Replace(ctx context.Context, p domain.SecurityProfile, id string, song domain.Song) error {
	return s.replaceFn(ctx, p, id, song)
}

func (s *stubSongService) Delete(ctx context.Context, p domain.SecurityProfile, id string) error {
	return s.deleteFn(ctx, p, id)
}

type stubPlaylistService struct {
	createFn  func(ctx context.Context, p domain.SecurityProfile, pl domain.Playlist) (*domain.Playlist, error)
	getFn     func(ctx context.Context, id string) (*domain.Playlist, error)
	listFn    func(ctx context.Context, f ports.ListPlaylistsFilter) ([]*domain.Playlist, error)
	countFn   func(ctx context.Context, f ports.ListPlaylistsFilter) (int64, error)
	updateFn  func(ctx context.Context, p domain.SecurityProfile, id string, patch domain.PlaylistPatch) error
	replaceFn func(ctx context.Context, p domain.SecurityProfile, id string, pl domain.Playlist) error
	deleteFn  func(ctx context.Context, p domain.SecurityProfile, id string) error
}

func (s *stubPlaylistService) Create(ctx context.Context, p domain.SecurityProfile, pl domain.Playlist) (*domain.Playlist, error) {
	return s.createFn(ctx, p, pl)
}

func (s *stubPlaylistService) Get(ctx context.Context, id string) (*domain.Playlist, error) {
	return s.getFn(ctx, id)
}

func (s *stubPlaylistService) List(ctx context.Context, f ports.ListPlaylistsFilter) ([]*domain.Playlist, error) {
	return s.listFn(ctx, f)
}

func (s *stubPlaylistService) Count(ctx context.Context, f ports.ListPlaylistsFilter) (int64, error) {
	return s.countFn(ctx, f)
}

func (s *stubPlaylistService) Update(ctx context.Context, p domain.SecurityProfile, id string, patch domain.PlaylistPatch) error {
	return s.updateFn(ctx, p, id, patch)
}

func (s *stubPlaylistService) Replace(ctx context.Context, p domain.SecurityProfile, id string, pl domain.Playlist) error {
	return s.replaceFn(ctx, p, id, pl)
}

func (s *stubPlaylistService) Delete(ctx context.Context, p domain.SecurityProfile, id string) error {
	return s.deleteFn(ctx, p, id)
}
