package notifier

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/ashmarov/ticketgate/internal/config"
)

// Module exposes notifier client implementation to fx graph.
var Module = fx.Provide(newClient)

type clientParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newClient(p clientParams) (Client, error) {
	if p.Config.NotifyAddress == "" {
		return NoopClient{}, nil
	}
	return NewHTTPClient(p.Config.NotifyAddress, p.Logger)
}
