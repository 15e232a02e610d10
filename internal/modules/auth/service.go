package auth

import (
	"context"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

const RoleAdmin = "admin"

type tokenIssuer interface {
	GenerateToken(email, role string) (string, error)
}

// Service authenticates the single staff account configured through the
// environment. Sessions are stateless JWTs; logout is the client dropping
// the token.
type Service struct {
	adminEmail   string
	passwordHash string
	jwt          tokenIssuer
	tokenTTL     time.Duration
}

func NewService(adminEmail, passwordHash string, jwt tokenIssuer, tokenTTL time.Duration) *Service {
	return &Service{
		adminEmail:   strings.ToLower(strings.TrimSpace(adminEmail)),
		passwordHash: passwordHash,
		jwt:          jwt,
		tokenTTL:     tokenTTL,
	}
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	if s.adminEmail == "" || s.passwordHash == "" {
		return nil, ErrNotConfigured
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email != s.adminEmail {
		// still burn a bcrypt comparison so the response time does not
		// reveal whether the email exists
		_ = bcrypt.CompareHashAndPassword([]byte(s.passwordHash), []byte(req.Password))
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(s.passwordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwt.GenerateToken(email, RoleAdmin)
	if err != nil {
		return nil, err
	}
	return &LoginResponse{
		Token:     token,
		Email:     email,
		Role:      RoleAdmin,
		ExpiresIn: int64(s.tokenTTL.Seconds()),
	}, nil
}

// HashPassword is used by the seeding tool to produce ADMIN_PASSWORD_HASH.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
