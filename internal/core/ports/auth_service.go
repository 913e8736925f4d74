package ports

import (
	"context"

	"github.com/playlistify/music-api/internal/core/domain"
)

// SignUpInput carries the data of a new account. Any role sent by the client
// is not part of it; the role is chosen by the endpoint.
type SignUpInput struct {
	Name      domain.Name
	PhotoPath string
	Age       int
	Email     string
	Password  string
}

type AuthService interface {
	SignUp(ctx context.Context, input SignUpInput, role string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, error)
	VerifyCredentials(ctx context.Context, email, password string) (*domain.User, error)
	ConvertToUserProfile(user *domain.User) domain.SecurityProfile
}
