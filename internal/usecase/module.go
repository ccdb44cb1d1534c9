package usecase

import (
	"go.uber.org/fx"

	"github.com/ashmarov/ticketgate/internal/config"
	"github.com/ashmarov/ticketgate/internal/domain/repository"
)

// Module provides core business use cases to the fx container.
var Module = fx.Provide(
	NewAuthUseCase,
	newTicketUseCase,
)

type ticketParams struct {
	fx.In

	Tickets repository.TicketRepository
	Config  *config.Config
}

func newTicketUseCase(p ticketParams) *TicketUseCase {
	return NewTicketUseCase(p.Tickets, p.Config.TicketListScope)
}
