package services

import (
	"crypto/subtle"
	"errors"

	"golang.org/x/crypto/bcrypt"
)

var ErrPasswordNotConfigured = errors.New("ADMIN_PASSWORD ist nicht konfiguriert")

// AuthService checks the admin panel password against the server-side
// secret. When a bcrypt hash is configured it wins over the plaintext
// variant; plaintext comparison is constant-time.
type AuthService struct {
	Password     string
	PasswordHash string
}

func (s *AuthService) VerifyPassword(password string) (bool, error) {
	if s.PasswordHash != "" {
		err := bcrypt.CompareHashAndPassword([]byte(s.PasswordHash), []byte(password))
		return err == nil, nil
	}
	if s.Password == "" {
		return false, ErrPasswordNotConfigured
	}
	return subtle.ConstantTimeCompare([]byte(s.Password), []byte(password)) == 1, nil
}
