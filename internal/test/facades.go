package test

import (
	"context"
	"time"

	"github.com/ashmarov/ticketgate/internal/domain/model"
	pkgAuth "github.com/ashmarov/ticketgate/internal/pkg/auth"
)

// AuthFacadeStub provides controllable behaviour for auth endpoints.
type AuthFacadeStub struct {
	LoginFn       func(context.Context, string, string, model.Role) (*model.User, string, error)
	VerifyTokenFn func(string) (*pkgAuth.Claims, error)
}

// Login delegates to the override or accepts any credentials.
func (s AuthFacadeStub) Login(ctx context.Context, identifier, password string, role model.Role) (*model.User, string, error) {
	if s.LoginFn != nil {
		return s.LoginFn(ctx, identifier, password, role)
	}
	user := &model.User{ID: "user-1", Email: identifier, Username: identifier, Role: model.RolePassenger}
	return user, "stub-token", nil
}

// VerifyToken delegates to the override or returns passenger claims.
func (s AuthFacadeStub) VerifyToken(token string) (*pkgAuth.Claims, error) {
	if s.VerifyTokenFn != nil {
		return s.VerifyTokenFn(token)
	}
	if token == "" {
		return nil, pkgAuth.ErrTokenMissing
	}
	return PassengerClaims(), nil
}

// TicketFacadeStub simulates ticket operations.
type TicketFacadeStub struct {
	IssueFn  func(context.Context, *pkgAuth.Claims, string) (*model.Ticket, error)
	ListFn   func(context.Context, *pkgAuth.Claims) ([]model.Ticket, error)
	VerifyFn func(context.Context, string) (bool, *model.Ticket, error)
	ScanFn   func(context.Context, string) (*model.Ticket, bool, error)
}

// IssueTicket delegates to the override or returns a fresh active ticket.
func (s TicketFacadeStub) IssueTicket(ctx context.Context, claims *pkgAuth.Claims, owner string) (*model.Ticket, error) {
	if s.IssueFn != nil {
		return s.IssueFn(ctx, claims, owner)
	}
	return &model.Ticket{ID: "ticket-1", OwnerEmail: owner, Status: model.TicketStatusActive, IssuedAt: time.Unix(0, 0)}, nil
}

// Tickets returns configured tickets.
func (s TicketFacadeStub) Tickets(ctx context.Context, claims *pkgAuth.Claims) ([]model.Ticket, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, claims)
	}
	return []model.Ticket{{ID: "ticket-1", Status: model.TicketStatusActive}}, nil
}

// VerifyTicket reports configured validity.
func (s TicketFacadeStub) VerifyTicket(ctx context.Context, id string) (bool, *model.Ticket, error) {
	if s.VerifyFn != nil {
		return s.VerifyFn(ctx, id)
	}
	return true, &model.Ticket{ID: id, Status: model.TicketStatusActive}, nil
}

// ScanTicket returns the configured scan outcome.
func (s TicketFacadeStub) ScanTicket(ctx context.Context, id string) (*model.Ticket, bool, error) {
	if s.ScanFn != nil {
		return s.ScanFn(ctx, id)
	}
	now := time.Unix(0, 0)
	return &model.Ticket{ID: id, Status: model.TicketStatusUsed, ScannedAt: &now}, false, nil
}

// TicketingFacadeStub aggregates all facade stubs for router level tests.
type TicketingFacadeStub struct {
	AuthFacadeStub
	TicketFacadeStub
	HealthFn func(context.Context) error
}

// HealthCheck reports configured storage health.
func (s TicketingFacadeStub) HealthCheck(ctx context.Context) error {
	if s.HealthFn != nil {
		return s.HealthFn(ctx)
	}
	return nil
}
