package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/fx"

	"github.com/ashmarov/ticketgate/internal/config"
	domainErrors "github.com/ashmarov/ticketgate/internal/domain/errors"
	"github.com/ashmarov/ticketgate/internal/domain/model"
	"github.com/ashmarov/ticketgate/internal/domain/repository"
	pkgAuth "github.com/ashmarov/ticketgate/internal/pkg/auth"
	"github.com/ashmarov/ticketgate/internal/worker"
)

// Module wires application services, runtime components, and lifecycle hooks.
var Module = fx.Options(
	fx.Provide(
		NewTicketingFacade,
		newHTTPServer,
		newStoreMonitor,
	),
	fx.Invoke(
		seedUsers,
		registerLifecycle,
	),
)

type serverParams struct {
	fx.In

	Config *config.Config
	Router *gin.Engine
}

func newHTTPServer(p serverParams) *http.Server {
	return &http.Server{
		Addr:    p.Config.RunAddress,
		Handler: p.Router,
	}
}

type monitorParams struct {
	fx.In

	Store  worker.Store
	Config *config.Config
	Logger *slog.Logger
}

func newStoreMonitor(p monitorParams) *worker.StoreMonitor {
	return worker.NewStoreMonitor(p.Store, p.Config.MonitorInterval, p.Logger)
}

type seedParams struct {
	fx.In

	Config *config.Config
	Users  repository.CredentialRepository
	Hasher pkgAuth.PasswordHasher
	Logger *slog.Logger
}

// seedUsers provisions the built-in demo accounts when enabled. Existing
// accounts are left untouched.
func seedUsers(p seedParams) error {
	if !p.Config.SeedUsers {
		return nil
	}

	accounts := []struct {
		email    string
		username string
		password string
		role     model.Role
	}{
		{email: "admin@example.com", username: "admin", password: "AdminPass1", role: model.RoleAdmin},
		{email: "user@example.com", username: "user", password: "UserPass1", role: model.RolePassenger},
	}

	ctx := context.Background()
	for _, account := range accounts {
		hash, err := p.Hasher.Hash(account.password)
		if err != nil {
			return err
		}
		_, err = p.Users.Create(ctx, &model.User{
			ID:           uuid.NewString(),
			Email:        account.email,
			Username:     account.username,
			Role:         account.role,
			PasswordHash: hash,
		})
		if err != nil {
			if errors.Is(err, domainErrors.ErrAlreadyExists) {
				continue
			}
			return err
		}
		p.Logger.Info("seeded account", slog.String("email", account.email), slog.String("role", string(account.role)))
	}
	return nil
}

type lifecycleParams struct {
	fx.In

	Lifecycle  fx.Lifecycle
	Shutdowner fx.Shutdowner
	Logger     *slog.Logger
	Server     *http.Server
	Monitor    *worker.StoreMonitor
	Config     *config.Config
}

func registerLifecycle(p lifecycleParams) {
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			p.Logger.Info("starting ticketgate", slog.String("addr", p.Server.Addr))
			p.Monitor.Start(ctx)
			go func() {
				if err := p.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					p.Logger.Error("http server terminated", slog.String("error", err.Error()))
					_ = p.Shutdowner.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			p.Monitor.Stop()

			shutdownCtx := ctx
			cancel := func() {}
			if _, ok := ctx.Deadline(); !ok {
				shutdownCtx, cancel = context.WithTimeout(ctx, p.Config.ShutdownTimeout)
			}
			defer cancel()

			if err := p.Server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			p.Logger.Info("ticketgate stopped")
			return nil
		},
	})
}
