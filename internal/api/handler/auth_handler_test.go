package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/playlistify/music-api/internal/core/domain"
	"github.com/playlistify/music-api/internal/core/ports"
)

func TestAuthHandler_SignUp_Success(t *testing.T) {
	e := newEcho()
	stub := &stubAuthService{
		signUpFn: func(ctx context.Context, in ports.SignUpInput, role string) (*domain.User, error) {
			if role != domain.RoleUser {
				t.Fatalf("expected role user, got %s", role)
			}
			if in.Email != "alice@example.com" || in.Password != "password1" || in.Name.First != "Alice" || in.Age != 29 {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &domain.User{ID: "u1", Email: in.Email, Role: role, Name: in.Name}, nil
		},
	}
	h := NewAuthHandler(stub)

	// a client-supplied role is not part of the request model
	body := `{"name":{"first":"Alice"},"age":29,"email":"alice@example.com","password":"password1","role":"admin"}`
	c, rec := newJSONContext(e, http.MethodPost, "/users/sign-up", body, nil)

	if err := h.SignUp(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["id"] != "u1" || resp["role"] != "user" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
	for _, forbidden := range []string{"password", "password_hash", "credentials"} {
		if _, ok := resp[forbidden]; ok {
			t.Fatalf("response must not contain %q", forbidden)
		}
	}
}

func TestAuthHandler_SignUpAdmin_UsesAdminRole(t *testing.T) {
	e := newEcho()
	var gotRole string
	stub := &stubAuthService{
		signUpFn: func(ctx context.Context, in ports.SignUpInput, role string) (*domain.User, error) {
			gotRole = role
			return &domain.User{ID: "a1", Role: role}, nil
		},
	}
	h := NewAuthHandler(stub)

	body := `{"name":{"first":"Root"},"age":40,"email":"root@example.com","password":"password1"}`
	c, rec := newJSONContext(e, http.MethodPost, "/users/sign-up/admin", body, &domain.SecurityProfile{ID: "a0", Role: domain.RoleAdmin})

	if err := h.SignUpAdmin(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated || gotRole != domain.RoleAdmin {
		t.Fatalf("expected 201 with admin role, got %d / %s", rec.Code, gotRole)
	}
}

func TestAuthHandler_SignUp_Errors(t *testing.T) {
	cases := []struct {
		name    string
		body    string
		svcErr  error
		wantErr error
		code    int
	}{
		{"email taken", `{"name":{"first":"A"},"age":1,"email":"a@example.com","password":"password1"}`, domain.ErrEmailTaken, domain.ErrEmailTaken, 0},
		{"bad format", `{"name":{"first":"A"},"age":1,"email":"nope","password":"x"}`, domain.ErrInvalidCredentialsFormat, domain.ErrInvalidCredentialsFormat, 0},
		{"missing first name", `{"name":{},"age":1,"email":"a@example.com","password":"password1"}`, nil, domain.ErrInvalidInput, 0},
		{"negative age", `{"name":{"first":"A"},"age":-1,"email":"a@example.com","password":"password1"}`, nil, domain.ErrInvalidInput, 0},
		{"malformed json", `{"name":`, nil, nil, http.StatusBadRequest},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := newEcho()
			called := false
			stub := &stubAuthService{
				signUpFn: func(ctx context.Context, in ports.SignUpInput, role string) (*domain.User, error) {
					called = true
					return nil, tc.svcErr
				},
			}
			h := NewAuthHandler(stub)
			c, _ := newJSONContext(e, http.MethodPost, "/users/sign-up", tc.body, nil)

			err := h.SignUp(c)
			if err == nil {
				t.Fatalf("expected error")
			}
			if tc.wantErr != nil && !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
			if tc.code != 0 {
				var he *echo.HTTPError
				if !errors.As(err, &he) || he.Code != tc.code {
					t.Fatalf("expected HTTP %d, got %v", tc.code, err)
				}
			}
			if tc.svcErr == nil && called {
				t.Fatalf("service must not be called on request errors")
			}
		})
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	e := newEcho()
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (string, error) {
			if email != "alice@example.com" || password != "password1" {
				t.Fatalf("unexpected credentials %s/%s", email, password)
			}
			return "jwt-token", nil
		},
	}
	h := NewAuthHandler(stub)
	c, rec := newJSONContext(e, http.MethodPost, "/users/login", `{"email":"alice@example.com","password":"password1"}`, nil)

	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp tokenResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Token != "jwt-token" {
		t.Fatalf("unexpected token %q", resp.Token)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	e := newEcho()
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (string, error) {
			return "", domain.ErrInvalidCredentials
		},
	}
	h := NewAuthHandler(stub)
	c, _ := newJSONContext(e, http.MethodPost, "/users/login", `{"email":"","password":""}`, nil)

	if err := h.Login(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthHandler_SignUp_NestedBody(t *testing.T) {
	e := newEcho()
	var got ports.SignUpInput
	var gotRole string
	stub := &stubAuthService{
		signUpFn: func(ctx context.Context, in ports.SignUpInput, role string) (*domain.User, error) {
			got, gotRole = in, role
			return &domain.User{ID: "u2", Email: in.Email, Role: role, Name: in.Name}, nil
		},
	}
	h := NewAuthHandler(stub)

	body := `{"user":{"name":{"first":"Yabsra","middle":"A","last":"Barsebo"},"photoPath":"p.png","age":22,"email":"y@example.com","role":"admin"},` +
		`"userCredentials":{"password":"password1"}}`
	c, rec := newJSONContext(e, http.MethodPost, "/users/sign-up", body, nil)

	if err := h.SignUp(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if gotRole != domain.RoleUser {
		t.Fatalf("role must come from the endpoint, got %s", gotRole)
	}
	want := ports.SignUpInput{
		Name:      domain.Name{First: "Yabsra", Middle: "A", Last: "Barsebo"},
		PhotoPath: "p.png",
		Age:       22,
		Email:     "y@example.com",
		Password:  "password1",
	}
	if got != want {
		t.Fatalf("unexpected input:\n got %+v\nwant %+v", got, want)
	}
}

func TestAuthHandler_SignUpAdmin_NestedBody(t *testing.T) {
	e := newEcho()
	var got ports.SignUpInput
	var gotRole string
	h := NewAuthHandler(&stubAuthService{
		signUpFn: func(ctx context.Context, in ports.SignUpInput, role string) (*domain.User, error) {
			got, gotRole = in, role
			return &domain.User{ID: "a2", Email: in.Email, Role: role}, nil
		},
	})

	body := `{"user":{"name":{"first":"Root"},"email":"root@example.com"},"userCredentials":{"password":"password1"}}`
	c, _ := newJSONContext(e, http.MethodPost, "/users/sign-up/admin", body, adminProfile)

	if err := h.SignUpAdmin(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if gotRole != domain.RoleAdmin || got.Email != "root@example.com" || got.Password != "password1" {
		t.Fatalf("unexpected call: role=%s input=%+v", gotRole, got)
	}
}

func TestAuthHandler_SignUp_NestedBodyValidated(t *testing.T) {
	e := newEcho()
	h := NewAuthHandler(&stubAuthService{
		signUpFn: func(ctx context.Context, in ports.SignUpInput, role string) (*domain.User, error) {
			t.Fatalf("service must not be called")
			return nil, nil
		},
	})

	body := `{"user":{"name":{},"email":"y@example.com"},"userCredentials":{"password":"password1"}}`
	c, _ := newJSONContext(e, http.MethodPost, "/users/sign-up", body, nil)

	if err := h.SignUp(c); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
