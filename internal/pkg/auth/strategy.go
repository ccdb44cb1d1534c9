package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenMissing   = errors.New("auth token missing")
	ErrTokenMalformed = errors.New("auth token malformed")
	ErrTokenExpired   = errors.New("auth token expired")
)

// Claims is the signed claim set carried by a session token. Claims are
// trusted for the token lifetime without re-reading the credential store, so
// role changes take effect on the next login.
type Claims struct {
	Identifier string `json:"identifier"`
	Role       string `json:"role"`
	jwt.RegisteredClaims
}

// UserID returns the account identifier the token was issued for.
func (c *Claims) UserID() string {
	return c.Subject
}

// Strategy describes session token creation and verification.
type Strategy interface {
	IssueToken(userID, identifier, role string) (string, error)
	ParseToken(token string) (*Claims, error)
	Name() string
}

type Options struct {
	TTL time.Duration
}
