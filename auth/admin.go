package auth

import (
	"crypto/subtle"
	"econ-lab/errors"
	"fmt"
)

// Admin is the single operator account. The password is hashed once when
// the settings are loaded and never kept in clear.
type Admin struct {
	Username string
	hash     string
}

// NewAdmin hashes password. An empty password yields an account that
// accepts no login, which is what an open (no auth level) server gets.
func NewAdmin(username, password string) (*Admin, error) {
	admin := &Admin{Username: username}
	if password == "" {
		return admin, nil
	}
	hash, err := HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hashing admin password failed: %w", err)
	}
	admin.hash = hash
	return admin, nil
}

func (a *Admin) HasPassword() bool {
	return a.hash != ""
}

// Authenticate returns ErrInvalidCredentials for any mismatch so callers
// cannot tell a wrong username from a wrong password.
func (a *Admin) Authenticate(c Credentials) error {
	if err := ValidateCredentials(c); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrInvalidCredentials, err)
	}
	if !a.HasPassword() {
		return errors.ErrInvalidCredentials
	}
	userOK := subtle.ConstantTimeCompare([]byte(c.Username), []byte(a.Username)) == 1
	match, err := ComparePassword(c.Password, a.hash)
	if err != nil || !match || !userOK {
		return errors.ErrInvalidCredentials
	}
	return nil
}
