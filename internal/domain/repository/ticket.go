package repository

import (
	"context"

	"github.com/ashmarov/ticketgate/internal/domain/model"
)

// TicketRepository describes persistence operations for tickets.
type TicketRepository interface {
	Create(ctx context.Context, ticket *model.Ticket) (*model.Ticket, error)
	GetByID(ctx context.Context, id string) (*model.Ticket, error)
	// List returns all tickets, newest-issued first.
	List(ctx context.Context) ([]model.Ticket, error)
	// ListByOwner returns tickets owned by the given identifier, newest first.
	ListByOwner(ctx context.Context, owner string) ([]model.Ticket, error)
	// MarkUsed performs the conditional active-to-used transition. The bool
	// result reports whether this call performed the transition: under
	// concurrent calls for one id, exactly one caller sees true, the rest
	// receive the already-used record and false. Missing ids yield
	// errors.ErrNotFound.
	MarkUsed(ctx context.Context, id string) (*model.Ticket, bool, error)
	CountByStatus(ctx context.Context) (map[model.TicketStatus]int64, error)
}
