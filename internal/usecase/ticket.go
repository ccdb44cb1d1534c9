package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ashmarov/ticketgate/internal/config"
	domainErrors "github.com/ashmarov/ticketgate/internal/domain/errors"
	"github.com/ashmarov/ticketgate/internal/domain/model"
	"github.com/ashmarov/ticketgate/internal/domain/repository"
	pkgAuth "github.com/ashmarov/ticketgate/internal/pkg/auth"
)

// TicketUseCase drives the ticket lifecycle: issuance, listing, read-only
// verification and the active-to-used scan transition.
type TicketUseCase struct {
	tickets repository.TicketRepository
	scope   config.ListScope
}

// NewTicketUseCase constructs TicketUseCase.
func NewTicketUseCase(tickets repository.TicketRepository, scope config.ListScope) *TicketUseCase {
	if scope == "" {
		scope = config.ListScopeAll
	}
	return &TicketUseCase{tickets: tickets, scope: scope}
}

// Issue creates a fresh active ticket for the given owner. Only admin callers
// may issue; retried calls create distinct tickets since the contract carries
// no idempotency key.
func (u *TicketUseCase) Issue(ctx context.Context, claims *pkgAuth.Claims, ownerEmail string) (*model.Ticket, error) {
	if claims == nil || claims.Role != string(model.RoleAdmin) {
		return nil, domainErrors.ErrForbidden
	}
	if !ValidateOwnerIdentifier(ownerEmail) {
		return nil, domainErrors.ErrInvalidInput
	}

	ticket := &model.Ticket{
		ID:         uuid.NewString(),
		OwnerEmail: ownerEmail,
		Status:     model.TicketStatusActive,
		IssuedAt:   time.Now().UTC(),
	}
	return u.tickets.Create(ctx, ticket)
}

// List returns tickets newest-issued first. With the owner scope configured,
// non-admin callers only see their own tickets; admins always see the full set.
func (u *TicketUseCase) List(ctx context.Context, claims *pkgAuth.Claims) ([]model.Ticket, error) {
	if u.scope == config.ListScopeOwner && claims != nil && claims.Role != string(model.RoleAdmin) {
		return u.tickets.ListByOwner(ctx, claims.Identifier)
	}
	return u.tickets.List(ctx)
}

// Verify reports whether the ticket is still valid for travel. Read-only: it
// never changes ticket state.
func (u *TicketUseCase) Verify(ctx context.Context, id string) (bool, *model.Ticket, error) {
	ticket, err := u.tickets.GetByID(ctx, id)
	if err != nil {
		return false, nil, err
	}
	return ticket.Status == model.TicketStatusActive, ticket, nil
}

// Scan transitions the ticket to used. A re-scan is an idempotent no-op: the
// current record comes back with alreadyUsed true and ScannedAt untouched.
// The store's conditional update guarantees exactly one concurrent caller
// observes the first scan.
func (u *TicketUseCase) Scan(ctx context.Context, id string) (*model.Ticket, bool, error) {
	ticket, transitioned, err := u.tickets.MarkUsed(ctx, id)
	if err != nil {
		return nil, false, err
	}
	return ticket, !transitioned, nil
}

// CountByStatus exposes ticket totals for monitoring.
func (u *TicketUseCase) CountByStatus(ctx context.Context) (map[model.TicketStatus]int64, error) {
	return u.tickets.CountByStatus(ctx)
}
