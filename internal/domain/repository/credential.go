package repository

import (
	"context"

	"github.com/ashmarov/ticketgate/internal/domain/model"
)

// CredentialRepository describes persistence operations for accounts.
type CredentialRepository interface {
	Create(ctx context.Context, user *model.User) (*model.User, error)
	// GetByIdentifier resolves an account by email or username through a
	// single lookup; the first match wins.
	GetByIdentifier(ctx context.Context, identifier string) (*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
}
