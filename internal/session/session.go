// Package session issues and parses the bearer tokens handed out on login.
package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/SergeyParamoshkin/news/internal/model"
)

var ErrInvalidToken = errors.New("invalid or expired token")

const (
	ModeJWT    = "jwt"
	ModeLegacy = "legacy"
)

// Issuer turns a user into a token and a token back into a user id. Parse
// does not check that the user still exists.
type Issuer interface {
	Issue(u model.User) (string, error)
	Parse(token string) (int64, error)
}

// New returns the issuer for mode. secret and ttl only apply to ModeJWT.
func New(mode, secret string, ttl time.Duration) (Issuer, error) {
	switch mode {
	case "", ModeJWT:
		if secret == "" {
			return nil, errors.New("jwt secret is empty")
		}

		return NewJWT([]byte(secret), ttl), nil
	case ModeLegacy:
		return Legacy{}, nil
	default:
		return nil, fmt.Errorf("unknown token mode %q", mode)
	}
}
