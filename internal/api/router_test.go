package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/playlistify/music-api/internal/core/domain"
	"github.com/playlistify/music-api/internal/core/ports"
	"github.com/playlistify/music-api/internal/core/service"
	"github.com/playlistify/music-api/internal/infrastructure/auth"
)

type fakeAuth struct {
	signUpErr error
	loginErr  error
}

func (f *fakeAuth) SignUp(_ context.Context, in ports.SignUpInput, role string) (*domain.User, error) {
	if f.signUpErr != nil {
		return nil, f.signUpErr
	}
	return &domain.User{ID: "new", Email: in.Email, Role: role, Name: in.Name}, nil
}

func (f *fakeAuth) Login(context.Context, string, string) (string, error) {
	if f.loginErr != nil {
		return "", f.loginErr
	}
	return "token", nil
}

func (f *fakeAuth) VerifyCredentials(context.Context, string, string) (*domain.User, error) {
	return nil, domain.ErrInvalidCredentials
}

func (f *fakeAuth) ConvertToUserProfile(u *domain.User) domain.SecurityProfile {
	return domain.SecurityProfile{ID: u.ID, Role: u.Role}
}

type fakeSongs struct {
	ports.SongService
	count   int64
	getErr  error
	deleted string
}

func (f *fakeSongs) Count(context.Context, ports.ListSongsFilter) (int64, error) {
	return f.count, nil
}

func (f *fakeSongs) Get(_ context.Context, id string) (*domain.Song, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return &domain.Song{ID: id}, nil
}

func (f *fakeSongs) Delete(_ context.Context, p domain.SecurityProfile, id string) error {
	if p.ID != "u1" {
		return domain.ErrForbidden
	}
	f.deleted = id
	return nil
}

type fakeUsers struct {
	ports.UserService
}

func (fakeUsers) Get(_ context.Context, id string) (*domain.User, error) {
	if id == "missing" {
		return nil, domain.ErrUserNotFound
	}
	return &domain.User{ID: id, Role: domain.RoleUser}, nil
}

type routerFixture struct {
	e      *echo.Echo
	tokens *auth.JWTService
	auth   *fakeAuth
	songs  *fakeSongs
}

func (f *routerFixture) do(t *testing.T, method, target, body, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	f.e.ServeHTTP(rec, req)
	return rec
}

func newFixture(t *testing.T) *routerFixture {
	t.Helper()
	tokens, err := auth.NewJWTService("router-test-secret", time.Hour)
	require.NoError(t, err)

	f := &routerFixture{tokens: tokens, auth: &fakeAuth{}, songs: &fakeSongs{count: 3}}
	f.e = NewRouter(Deps{
		Log:     zerolog.Nop(),
		Auth:    f.auth,
		Users:   fakeUsers{},
		Songs:   f.songs,
		Tokens:  tokens,
		Gate:    service.NewRoleGate(),
		Metrics: prometheus.NewRegistry(),
	})
	return f
}

func (f *routerFixture) token(t *testing.T, id, role string) string {
	t.Helper()
	tok, err := f.tokens.Issue(domain.SecurityProfile{ID: id, Role: role})
	require.NoError(t, err)
	return tok
}

func errorBody(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body.Error
}

func TestRouter_Health(t *testing.T) {
	f := newFixture(t)
	rec := f.do(t, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}

func TestRouter_Metrics(t *testing.T) {
	f := newFixture(t)
	f.do(t, http.MethodGet, "/health", "", "")

	rec := f.do(t, http.MethodGet, "/metrics", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "playlist_requests_total")
}

func TestRouter_PublicReads(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodGet, "/songs/count", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"count":3}`, rec.Body.String())

	f.songs.getErr = domain.ErrSongNotFound
	rec = f.do(t, http.MethodGet, "/songs/abc", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "song not found", errorBody(t, rec))
}

func TestRouter_Authentication(t *testing.T) {
	f := newFixture(t)

	cases := []struct {
		name  string
		token string
	}{
		{"missing token", ""},
		{"garbage token", "not-a-jwt"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := f.do(t, http.MethodGet, "/users/me", "", tc.token)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}

	other, err := auth.NewJWTService("another-secret", time.Hour)
	require.NoError(t, err)
	forged, err := other.Issue(domain.SecurityProfile{ID: "u1", Role: domain.RoleAdmin})
	require.NoError(t, err)
	rec := f.do(t, http.MethodGet, "/users/u1", "", forged)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_AdminRoutes(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodGet, "/users/u2", "", f.token(t, "u1", domain.RoleUser))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "access forbidden", errorBody(t, rec))

	rec = f.do(t, http.MethodGet, "/users/u2", "", f.token(t, "a1", domain.RoleAdmin))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodGet, "/users/missing", "", f.token(t, "a1", domain.RoleAdmin))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	body := `{"name":{"first":"Root"},"email":"root@example.com","password":"Secret123!"}`
	rec = f.do(t, http.MethodPost, "/users/sign-up/admin", body, f.token(t, "u1", domain.RoleUser))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = f.do(t, http.MethodPost, "/users/sign-up/admin", body, f.token(t, "a1", domain.RoleAdmin))
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"role":"admin"`)
}

func TestRouter_SignUpErrorMapping(t *testing.T) {
	body := `{"name":{"first":"Ana"},"email":"ana@example.com","password":"Secret123!"}`

	cases := []struct {
		name string
		err  error
		code int
		msg  string
	}{
		{"format", domain.ErrInvalidCredentialsFormat, http.StatusUnprocessableEntity, "invalid credentials format"},
		{"taken", domain.ErrEmailTaken, http.StatusConflict, "email value is already taken"},
		{"unexpected", errors.New("mongo: connection reset"), http.StatusInternalServerError, "internal server error"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			f.auth.signUpErr = tc.err

			rec := f.do(t, http.MethodPost, "/users/sign-up", body, "")
			assert.Equal(t, tc.code, rec.Code)
			assert.Equal(t, tc.msg, errorBody(t, rec))
		})
	}
}

func TestRouter_LoginErrorMapping(t *testing.T) {
	f := newFixture(t)
	body := `{"email":"ana@example.com","password":"wrong"}`

	f.auth.loginErr = domain.ErrInvalidCredentials
	rec := f.do(t, http.MethodPost, "/users/login", body, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "invalid email or password", errorBody(t, rec))

	f.auth.loginErr = domain.ErrTooManyAttempts
	rec = f.do(t, http.MethodPost, "/users/login", body, "")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestRouter_OwnershipOnDelete(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodDelete, "/songs/s1", "", f.token(t, "u2", domain.RoleUser))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = f.do(t, http.MethodDelete, "/songs/s1", "", f.token(t, "u1", domain.RoleUser))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "s1", f.songs.deleted)
}
