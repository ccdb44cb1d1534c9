package storage

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/ashmarov/ticketgate/internal/config"
	"github.com/ashmarov/ticketgate/internal/domain/repository"
	"github.com/ashmarov/ticketgate/internal/storage/memory"
	"github.com/ashmarov/ticketgate/internal/storage/postgres"
)

// Module selects the storage backend at startup and wires the repository
// adapters. An empty DSN picks the in-memory store; both backends expose
// the same contract.
var Module = fx.Options(
	fx.Provide(newStore),
	fx.Provide(
		func(s Store) repository.CredentialRepository { return s.Users() },
		func(s Store) repository.TicketRepository { return s.Tickets() },
	),
	fx.Invoke(registerLifecycle),
)

type storeParams struct {
	fx.In

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

func newStore(p storeParams) (Store, error) {
	if p.Config.DatabaseURI == "" {
		p.Logger.Info("no database configured, using in-memory storage")
		return memory.New(p.Logger), nil
	}
	p.Logger.Info("using postgresql storage")
	return postgres.New(p.Ctx, p.Config.DatabaseURI, p.Logger)
}

func registerLifecycle(lc fx.Lifecycle, store Store) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			store.Close()
			return nil
		},
	})
}
