package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/playlistify/music-api/internal/core/domain"
)

type stubTokens struct {
	profiles map[string]domain.SecurityProfile
}

func (s stubTokens) Issue(domain.SecurityProfile) (string, error) {
	return "", errors.New("not implemented")
}

func (s stubTokens) Verify(token string) (domain.SecurityProfile, error) {
	p, ok := s.profiles[token]
	if !ok {
		return domain.SecurityProfile{}, domain.ErrUnauthorized
	}
	return p, nil
}

var tokens = stubTokens{profiles: map[string]domain.SecurityProfile{
	"good-admin": {ID: "a1", Role: domain.RoleAdmin},
	"good-user":  {ID: "u1", Role: domain.RoleUser},
}}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer good-admin")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := Auth(tokens)(func(c echo.Context) error {
		called = true
		p, ok := Profile(c)
		if !ok {
			t.Fatalf("profile not set")
		}
		if p.ID != "a1" || p.Role != domain.RoleAdmin {
			t.Fatalf("unexpected profile %+v", p)
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthMiddleware_Rejects(t *testing.T) {
	cases := map[string]string{
		"missing header":  "",
		"wrong scheme":    "Token good-admin",
		"no token":        "Bearer ",
		"unknown token":   "Bearer forged",
		"scheme only":     "Bearer",
		"lowercase basic": "basic dXNlcjpwYXNz",
	}

	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			handler := Auth(tokens)(func(c echo.Context) error {
				t.Fatalf("should not reach next")
				return nil
			})

			if err := handler(c); err != nil {
				e.HTTPErrorHandler(err, c)
			}
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", rec.Code)
			}
		})
	}
}

func TestAuthMiddleware_CaseInsensitiveScheme(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "bearer good-user")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Auth(tokens)(func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
}
