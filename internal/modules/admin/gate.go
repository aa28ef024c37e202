// README: Static-password admin gate checked with bcrypt; no sessions or tokens.
package admin

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUnauthorized = errors.New("admin password rejected")
	ErrGateDisabled = errors.New("admin access not configured")
)

type Gate struct {
	hash []byte
}

// NewGate prefers a ready bcrypt hash. A plain password is hashed once at
// startup. With neither the gate stays closed for everyone.
func NewGate(passwordHash, password string) (*Gate, error) {
	switch {
	case passwordHash != "":
		if _, err := bcrypt.Cost([]byte(passwordHash)); err != nil {
			return nil, fmt.Errorf("admin password hash: %w", err)
		}
		return &Gate{hash: []byte(passwordHash)}, nil
	case password != "":
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash admin password: %w", err)
		}
		return &Gate{hash: hash}, nil
	}
	return &Gate{}, nil
}

func (g *Gate) Enabled() bool {
	return len(g.hash) > 0
}

func (g *Gate) Verify(password string) error {
	if !g.Enabled() {
		return ErrGateDisabled
	}
	if password == "" {
		return ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword(g.hash, []byte(password)); err != nil {
		return ErrUnauthorized
	}
	return nil
}
