package test

import (
	"errors"

	pkgAuth "github.com/ashmarov/ticketgate/internal/pkg/auth"
)

// HasherStub provides deterministic hashing for tests.
type HasherStub struct {
	HashFn    func(string) (string, error)
	CompareFn func(string, string) error
}

// Hash returns a predictable hash for the supplied password.
func (h HasherStub) Hash(password string) (string, error) {
	if h.HashFn != nil {
		return h.HashFn(password)
	}
	return "hash:" + password, nil
}

// Compare validates password against stored hash.
func (h HasherStub) Compare(hash string, password string) error {
	if h.CompareFn != nil {
		return h.CompareFn(hash, password)
	}
	if hash != "hash:"+password {
		return errors.New("mismatch")
	}
	return nil
}

// StrategyStub implements the token strategy with configurable behaviour.
type StrategyStub struct {
	IssueFn func(userID, identifier, role string) (string, error)
	ParseFn func(string) (*pkgAuth.Claims, error)
}

// IssueToken delegates to the override or returns a static token.
func (s StrategyStub) IssueToken(userID, identifier, role string) (string, error) {
	if s.IssueFn != nil {
		return s.IssueFn(userID, identifier, role)
	}
	return "token-" + userID, nil
}

// ParseToken delegates to the override or rejects everything.
func (s StrategyStub) ParseToken(token string) (*pkgAuth.Claims, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	return nil, pkgAuth.ErrTokenMalformed
}

func (s StrategyStub) Name() string { return "stub" }

// AdminClaims returns claims for a seeded admin session.
func AdminClaims() *pkgAuth.Claims {
	return &pkgAuth.Claims{Identifier: "admin@example.com", Role: "admin"}
}

// PassengerClaims returns claims for a seeded passenger session.
func PassengerClaims() *pkgAuth.Claims {
	return &pkgAuth.Claims{Identifier: "user@example.com", Role: "passenger"}
}
