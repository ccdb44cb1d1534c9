package app

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ashmarov/ticketgate/internal/config"
	"github.com/ashmarov/ticketgate/internal/domain/model"
	testhelpers "github.com/ashmarov/ticketgate/internal/test"
	"github.com/ashmarov/ticketgate/internal/worker"
)

func newTestMonitor() *worker.StoreMonitor {
	return worker.NewStoreMonitor(newStoreStub(), 0, testLogger())
}

func TestNewHTTPServer(t *testing.T) {
	cfg := &config.Config{RunAddress: ":9999"}
	router := gin.New()
	server := newHTTPServer(serverParams{Config: cfg, Router: router})
	if server.Addr != ":9999" {
		t.Fatalf("expected address :9999, got %q", server.Addr)
	}
	if server.Handler != router {
		t.Fatalf("expected handler to be router")
	}
}

func TestNewStoreMonitorUsesConfig(t *testing.T) {
	monitor := newStoreMonitor(monitorParams{
		Store:  newStoreStub(),
		Config: &config.Config{MonitorInterval: time.Minute},
		Logger: testLogger(),
	})
	if monitor == nil {
		t.Fatal("expected monitor instance")
	}
}

func TestSeedUsersCreatesAccounts(t *testing.T) {
	users := testhelpers.NewCredentialRepositoryStub()
	params := seedParams{
		Config: &config.Config{SeedUsers: true},
		Users:  users,
		Hasher: testhelpers.HasherStub{},
		Logger: testLogger(),
	}

	if err := seedUsers(params); err != nil {
		t.Fatalf("seed: %v", err)
	}

	admin, ok := users.ByIdentifier["admin@example.com"]
	if !ok || admin.Role != model.RoleAdmin {
		t.Fatalf("expected seeded admin, got %+v", admin)
	}
	if admin.PasswordHash != "hash:AdminPass1" {
		t.Fatalf("unexpected admin hash %q", admin.PasswordHash)
	}
	passenger, ok := users.ByIdentifier["user@example.com"]
	if !ok || passenger.Role != model.RolePassenger {
		t.Fatalf("expected seeded passenger, got %+v", passenger)
	}

	// Seeding again must not fail on existing accounts.
	if err := seedUsers(params); err != nil {
		t.Fatalf("repeated seed: %v", err)
	}
}

func TestSeedUsersDisabled(t *testing.T) {
	users := testhelpers.NewCredentialRepositoryStub()
	err := seedUsers(seedParams{
		Config: &config.Config{SeedUsers: false},
		Users:  users,
		Hasher: testhelpers.HasherStub{},
		Logger: testLogger(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(users.ByID) != 0 {
		t.Fatalf("expected no accounts, got %d", len(users.ByID))
	}
}

func TestSeedUsersPropagatesErrors(t *testing.T) {
	users := testhelpers.NewCredentialRepositoryStub()
	users.Err = errors.New("storage down")
	err := seedUsers(seedParams{
		Config: &config.Config{SeedUsers: true},
		Users:  users,
		Hasher: testhelpers.HasherStub{},
		Logger: testLogger(),
	})
	if err == nil {
		t.Fatal("expected error from repository")
	}
}

func TestRegisterLifecycleStartStop(t *testing.T) {
	recorder := &testhelpers.LifecycleRecorder{}
	shutdowner := &testhelpers.ShutdownerStub{Called: make(chan struct{}, 1)}
	server := &http.Server{Addr: "127.0.0.1:0", Handler: http.NewServeMux()}

	registerLifecycle(lifecycleParams{
		Lifecycle:  recorder,
		Shutdowner: shutdowner,
		Logger:     testLogger(),
		Server:     server,
		Monitor:    newTestMonitor(),
		Config:     &config.Config{ShutdownTimeout: 100 * time.Millisecond},
	})

	if len(recorder.Hooks) != 1 {
		t.Fatalf("expected one hook registered, got %d", len(recorder.Hooks))
	}

	hook := recorder.Hooks[0]
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := hook.OnStart(ctx); err != nil {
		t.Fatalf("on start failed: %v", err)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = hook.OnStop(context.Background())
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("expected on stop to finish")
	}
}

func TestRegisterLifecycleShutdownOnServerError(t *testing.T) {
	recorder := &testhelpers.LifecycleRecorder{}
	shutdowner := &testhelpers.ShutdownerStub{Called: make(chan struct{}, 1)}

	registerLifecycle(lifecycleParams{
		Lifecycle:  recorder,
		Shutdowner: shutdowner,
		Logger:     testLogger(),
		Server:     &http.Server{Addr: "bad addr"},
		Monitor:    newTestMonitor(),
		Config:     &config.Config{ShutdownTimeout: time.Second},
	})

	hook := recorder.Hooks[0]
	if err := hook.OnStart(context.Background()); err != nil {
		t.Fatalf("on start returned error: %v", err)
	}

	select {
	case <-shutdowner.Called:
	case <-time.After(time.Second):
		t.Fatal("expected shutdown to be triggered on server error")
	}

	_ = hook.OnStop(context.Background())
}
