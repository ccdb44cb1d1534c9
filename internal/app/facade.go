package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/ashmarov/ticketgate/internal/adapter/notifier"
	"github.com/ashmarov/ticketgate/internal/domain/model"
	pkgAuth "github.com/ashmarov/ticketgate/internal/pkg/auth"
	"github.com/ashmarov/ticketgate/internal/storage"
	"github.com/ashmarov/ticketgate/internal/usecase"
)

const notifyTimeout = 5 * time.Second

// TicketingFacade aggregates the use cases behind a single application surface
// consumed by HTTP handlers and background workers.
type TicketingFacade struct {
	auth     *usecase.AuthUseCase
	tickets  *usecase.TicketUseCase
	notifier notifier.Client
	store    storage.Store
	logger   *slog.Logger
}

func NewTicketingFacade(auth *usecase.AuthUseCase, tickets *usecase.TicketUseCase, client notifier.Client, store storage.Store, logger *slog.Logger) *TicketingFacade {
	return &TicketingFacade{auth: auth, tickets: tickets, notifier: client, store: store, logger: logger}
}

func (f *TicketingFacade) Login(ctx context.Context, identifier, password string, role model.Role) (*model.User, string, error) {
	return f.auth.Authenticate(ctx, identifier, password, role)
}

func (f *TicketingFacade) VerifyToken(token string) (*pkgAuth.Claims, error) {
	return f.auth.VerifyToken(token)
}

func (f *TicketingFacade) IssueTicket(ctx context.Context, claims *pkgAuth.Claims, ownerEmail string) (*model.Ticket, error) {
	return f.tickets.Issue(ctx, claims, ownerEmail)
}

func (f *TicketingFacade) Tickets(ctx context.Context, claims *pkgAuth.Claims) ([]model.Ticket, error) {
	return f.tickets.List(ctx, claims)
}

func (f *TicketingFacade) VerifyTicket(ctx context.Context, id string) (bool, *model.Ticket, error) {
	return f.tickets.Verify(ctx, id)
}

// ScanTicket performs the gate transition and, on a winning scan, publishes
// the event to the configured notifier without blocking the caller.
func (f *TicketingFacade) ScanTicket(ctx context.Context, id string) (*model.Ticket, bool, error) {
	ticket, alreadyUsed, err := f.tickets.Scan(ctx, id)
	if err != nil {
		return nil, false, err
	}
	if !alreadyUsed {
		f.publishScan(ticket)
	}
	return ticket, alreadyUsed, nil
}

func (f *TicketingFacade) publishScan(ticket *model.Ticket) {
	event := notifier.NewScanEvent(ticket)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()
		if err := f.notifier.Notify(ctx, event); err != nil {
			f.logger.Error("scan notification failed",
				slog.String("ticket", event.TicketID),
				slog.String("error", err.Error()),
			)
		}
	}()
}

func (f *TicketingFacade) HealthCheck(ctx context.Context) error {
	return f.store.HealthCheck(ctx)
}
