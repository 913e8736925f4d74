package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/playlistify/music-api/internal/core/domain"
)

const defaultTokenTTL = 6 * time.Hour

// Claims are the JWT claims of an access token. The subject is the user id.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// JWTService implements ports.TokenService with HS256-signed JWTs.
type JWTService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewJWTService builds a token service. Tokens expire ttl after issuance;
// a non-positive ttl selects the 6h default.
func NewJWTService(secret string, ttl time.Duration) (*JWTService, error) {
	if secret == "" {
		return nil, errors.New("jwt secret must be provided")
	}
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &JWTService{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// TTL returns the validity window of issued tokens.
func (s *JWTService) TTL() time.Duration {
	return s.ttl
}

// Issue signs a token carrying the profile's id and role.
func (s *JWTService) Issue(profile domain.SecurityProfile) (string, error) {
	if profile.ID == "" {
		return "", errors.New("issue token: profile id is empty")
	}

	now := s.now()
	claims := Claims{
		Role: profile.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   profile.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify checks signature and expiry and recovers the profile. Every failure
// is reported as domain.ErrUnauthorized.
func (s *JWTService) Verify(token string) (domain.SecurityProfile, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims,
		func(*jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !parsed.Valid {
		return domain.SecurityProfile{}, domain.ErrUnauthorized
	}
	if claims.Subject == "" || !domain.ValidRole(claims.Role) {
		return domain.SecurityProfile{}, domain.ErrUnauthorized
	}

	return domain.SecurityProfile{ID: claims.Subject, Role: claims.Role}, nil
}
