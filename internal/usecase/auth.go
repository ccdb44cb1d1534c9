package usecase

import (
	"context"
	"errors"
	"strings"

	domainErrors "github.com/ashmarov/ticketgate/internal/domain/errors"
	"github.com/ashmarov/ticketgate/internal/domain/model"
	"github.com/ashmarov/ticketgate/internal/domain/repository"
	pkgAuth "github.com/ashmarov/ticketgate/internal/pkg/auth"
)

// AuthUseCase validates credentials and manages session tokens.
type AuthUseCase struct {
	users  repository.CredentialRepository
	hasher pkgAuth.PasswordHasher
	tokens pkgAuth.Strategy
}

// NewAuthUseCase constructs AuthUseCase.
func NewAuthUseCase(users repository.CredentialRepository, hasher pkgAuth.PasswordHasher, strategy pkgAuth.Strategy) *AuthUseCase {
	return &AuthUseCase{users: users, hasher: hasher, tokens: strategy}
}

// Authenticate checks credentials and returns the account with a signed
// session token. An unknown identifier and a wrong password produce the same
// ErrInvalidCredentials so callers cannot enumerate accounts. When
// expectedRole is non-empty it is compared against the stored role after the
// password check; a mismatch yields ErrRoleMismatch.
func (u *AuthUseCase) Authenticate(ctx context.Context, identifier, password string, expectedRole model.Role) (*model.User, string, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || password == "" {
		return nil, "", domainErrors.ErrInvalidInput
	}

	usr, err := u.users.GetByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, "", domainErrors.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := u.hasher.Compare(usr.PasswordHash, password); err != nil {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	if expectedRole != "" && usr.Role != expectedRole {
		return nil, "", domainErrors.ErrRoleMismatch
	}

	token, err := u.tokens.IssueToken(usr.ID, usr.Email, string(usr.Role))
	if err != nil {
		return nil, "", err
	}

	return usr, token, nil
}

// VerifyToken validates a presented token and returns the embedded claims
// unchanged; the credential store is not consulted again.
func (u *AuthUseCase) VerifyToken(token string) (*pkgAuth.Claims, error) {
	if token == "" {
		return nil, pkgAuth.ErrTokenMissing
	}
	return u.tokens.ParseToken(token)
}

// GetByID fetches an account by identifier.
func (u *AuthUseCase) GetByID(ctx context.Context, id string) (*model.User, error) {
	return u.users.GetByID(ctx, id)
}
