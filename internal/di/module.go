package di

import (
	"go.uber.org/fx"

	"github.com/ashmarov/ticketgate/internal/adapter/notifier"
	"github.com/ashmarov/ticketgate/internal/app"
	"github.com/ashmarov/ticketgate/internal/config"
	"github.com/ashmarov/ticketgate/internal/logger"
	"github.com/ashmarov/ticketgate/internal/pkg/auth"
	"github.com/ashmarov/ticketgate/internal/server/http/handlers"
	"github.com/ashmarov/ticketgate/internal/server/http/router"
	"github.com/ashmarov/ticketgate/internal/storage"
	"github.com/ashmarov/ticketgate/internal/usecase"
	"github.com/ashmarov/ticketgate/internal/worker"
)

// Module assembles the full application graph; opts allow tests to replace
// individual pieces.
func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		storage.Module,
		notifier.Module,
		usecase.Module,
		fx.Provide(
			func(s storage.Store) worker.Store { return s },
			func(f *app.TicketingFacade) handlers.TicketingFacade { return f },
		),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
