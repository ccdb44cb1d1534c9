package handlers

import (
	"context"

	"github.com/ashmarov/ticketgate/internal/domain/model"
	pkgAuth "github.com/ashmarov/ticketgate/internal/pkg/auth"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Login(ctx context.Context, identifier, password string, role model.Role) (*model.User, string, error)
	VerifyToken(token string) (*pkgAuth.Claims, error)
}

// TicketFacade encapsulates ticket operations exposed via HTTP.
type TicketFacade interface {
	IssueTicket(ctx context.Context, claims *pkgAuth.Claims, ownerEmail string) (*model.Ticket, error)
	Tickets(ctx context.Context, claims *pkgAuth.Claims) ([]model.Ticket, error)
	VerifyTicket(ctx context.Context, id string) (bool, *model.Ticket, error)
	ScanTicket(ctx context.Context, id string) (*model.Ticket, bool, error)
}

// StatusFacade reports backend availability.
type StatusFacade interface {
	HealthCheck(ctx context.Context) error
}

// TicketingFacade aggregates the full set of operations used across handlers.
type TicketingFacade interface {
	AuthFacade
	TicketFacade
	StatusFacade
}
