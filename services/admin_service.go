//go:generate go run go.uber.org/mock/mockgen -source=admin_service.go -destination=../mocks/mock_admin_service.go -package=mocks
package services

import (
	"econ-lab/auth"
	"econ-lab/errors"
	"log/slog"
	"time"
)

type Authenticator interface {
	Authenticate(c auth.Credentials) error
}

type TokenIssuer interface {
	GenerateToken(username string, roles []string, ttl time.Duration) (string, error)
}

type IAdminService interface {
	Login(username, password string) (Token, error)
}

type Token string

func (t Token) String() string {
	return string(t)
}

const adminRole = "admin"

type AdminService struct {
	admin  Authenticator
	issuer TokenIssuer
	ttl    time.Duration
	log    *slog.Logger
}

func NewAdminService(admin Authenticator, issuer TokenIssuer, ttl time.Duration, log *slog.Logger) IAdminService {
	return &AdminService{admin: admin, issuer: issuer, ttl: ttl, log: log}
}

// Login checks the admin credentials and issues a REST token for them.
func (s *AdminService) Login(username, password string) (Token, error) {
	if err := s.admin.Authenticate(auth.Credentials{Username: username, Password: password}); err != nil {
		s.log.Warn("Admin login rejected", "username", username)
		return "", errors.ErrInvalidCredentials
	}
	token, err := s.issuer.GenerateToken(username, []string{adminRole}, s.ttl)
	if err != nil {
		s.log.Error("Token generation failed", "error", err)
		return "", errors.ErrTokenGeneration
	}
	return Token(token), nil
}
