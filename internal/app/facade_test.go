package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/ashmarov/ticketgate/internal/adapter/notifier"
	"github.com/ashmarov/ticketgate/internal/config"
	domainErrors "github.com/ashmarov/ticketgate/internal/domain/errors"
	"github.com/ashmarov/ticketgate/internal/domain/model"
	"github.com/ashmarov/ticketgate/internal/domain/repository"
	pkgAuth "github.com/ashmarov/ticketgate/internal/pkg/auth"
	testhelpers "github.com/ashmarov/ticketgate/internal/test"
	"github.com/ashmarov/ticketgate/internal/usecase"
)

type notifierRecorder struct {
	events chan notifier.ScanEvent
	err    error
}

func newNotifierRecorder() *notifierRecorder {
	return &notifierRecorder{events: make(chan notifier.ScanEvent, 8)}
}

func (n *notifierRecorder) Notify(_ context.Context, event notifier.ScanEvent) error {
	if n.err != nil {
		return n.err
	}
	n.events <- event
	return nil
}

type storeStub struct {
	users     *testhelpers.CredentialRepositoryStub
	tickets   *testhelpers.TicketRepositoryStub
	healthErr error
}

func newStoreStub() *storeStub {
	return &storeStub{
		users:   testhelpers.NewCredentialRepositoryStub(),
		tickets: testhelpers.NewTicketRepositoryStub(),
	}
}

func (s *storeStub) Users() repository.CredentialRepository { return s.users }
func (s *storeStub) Tickets() repository.TicketRepository   { return s.tickets }
func (s *storeStub) HealthCheck(context.Context) error      { return s.healthErr }
func (s *storeStub) Close()                                 {}

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func newTestFacade(t *testing.T) (*TicketingFacade, *storeStub, *notifierRecorder) {
	t.Helper()
	store := newStoreStub()
	store.users.ByIdentifier["admin@example.com"] = &model.User{
		ID: "admin-1", Email: "admin@example.com", Username: "admin",
		Role: model.RoleAdmin, PasswordHash: "hash:AdminPass1",
	}
	store.users.ByIdentifier["admin"] = store.users.ByIdentifier["admin@example.com"]
	store.users.ByID["admin-1"] = store.users.ByIdentifier["admin@example.com"]

	strategy := testhelpers.StrategyStub{
		ParseFn: func(token string) (*pkgAuth.Claims, error) {
			if token == "token-admin-1" {
				return testhelpers.AdminClaims(), nil
			}
			return nil, pkgAuth.ErrTokenMalformed
		},
	}

	auth := usecase.NewAuthUseCase(store.users, testhelpers.HasherStub{}, strategy)
	tickets := usecase.NewTicketUseCase(store.tickets, config.ListScopeAll)
	recorder := newNotifierRecorder()
	facade := NewTicketingFacade(auth, tickets, recorder, store, testLogger())
	return facade, store, recorder
}

func TestFacadeLoginIssuesToken(t *testing.T) {
	facade, _, _ := newTestFacade(t)

	user, token, err := facade.Login(context.Background(), "admin@example.com", "AdminPass1", model.RoleAdmin)
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if user.ID != "admin-1" || token != "token-admin-1" {
		t.Fatalf("unexpected login result %q for %+v", token, user)
	}

	if _, _, err := facade.Login(context.Background(), "admin@example.com", "wrong", model.RoleAdmin); !errors.Is(err, domainErrors.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestFacadeVerifyToken(t *testing.T) {
	facade, _, _ := newTestFacade(t)

	claims, err := facade.VerifyToken("token-admin-1")
	if err != nil {
		t.Fatalf("verify token: %v", err)
	}
	if claims.Role != "admin" {
		t.Fatalf("unexpected claims %+v", claims)
	}

	if _, err := facade.VerifyToken("garbage"); !errors.Is(err, pkgAuth.ErrTokenMalformed) {
		t.Fatalf("expected ErrTokenMalformed, got %v", err)
	}
}

func TestFacadeIssueAndListTickets(t *testing.T) {
	facade, _, _ := newTestFacade(t)

	ticket, err := facade.IssueTicket(context.Background(), testhelpers.AdminClaims(), "user@example.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if ticket.Status != model.TicketStatusActive {
		t.Fatalf("expected active ticket, got %s", ticket.Status)
	}

	listed, err := facade.Tickets(context.Background(), testhelpers.AdminClaims())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(listed) != 1 || listed[0].ID != ticket.ID {
		t.Fatalf("unexpected listing %+v", listed)
	}

	valid, found, err := facade.VerifyTicket(context.Background(), ticket.ID)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if !valid || found.ID != ticket.ID {
		t.Fatalf("expected valid ticket, got valid=%v %+v", valid, found)
	}
}

func TestFacadeScanPublishesWinningScanOnly(t *testing.T) {
	facade, _, recorder := newTestFacade(t)

	ticket, err := facade.IssueTicket(context.Background(), testhelpers.AdminClaims(), "user@example.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	scanned, alreadyUsed, err := facade.ScanTicket(context.Background(), ticket.ID)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if alreadyUsed {
		t.Fatal("first scan should transition the ticket")
	}

	select {
	case event := <-recorder.events:
		if event.TicketID != ticket.ID || event.Owner != "user@example.com" {
			t.Fatalf("unexpected event %+v", event)
		}
		if scanned.ScannedAt == nil || !event.ScannedAt.Equal(*scanned.ScannedAt) {
			t.Fatalf("event scan time mismatch: %v vs %v", event.ScannedAt, scanned.ScannedAt)
		}
	case <-time.After(time.Second):
		t.Fatal("expected scan event")
	}

	if _, alreadyUsed, err = facade.ScanTicket(context.Background(), ticket.ID); err != nil || !alreadyUsed {
		t.Fatalf("expected repeated scan to report already used, got %v %v", alreadyUsed, err)
	}

	select {
	case event := <-recorder.events:
		t.Fatalf("unexpected event for repeated scan: %+v", event)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestFacadeScanNotFound(t *testing.T) {
	facade, _, _ := newTestFacade(t)

	if _, _, err := facade.ScanTicket(context.Background(), "missing"); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestFacadeScanLogsNotifierFailure(t *testing.T) {
	logged := make(chan struct{}, 1)
	handler := slog.NewJSONHandler(io.Discard, &slog.HandlerOptions{ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
		if a.Key == slog.LevelKey && a.Value.Any() == slog.LevelError {
			select {
			case logged <- struct{}{}:
			default:
			}
		}
		return a
	}})

	store := newStoreStub()
	recorder := newNotifierRecorder()
	recorder.err = errors.New("unreachable")
	auth := usecase.NewAuthUseCase(store.users, testhelpers.HasherStub{}, testhelpers.StrategyStub{})
	tickets := usecase.NewTicketUseCase(store.tickets, config.ListScopeAll)
	facade := NewTicketingFacade(auth, tickets, recorder, store, slog.New(handler))

	ticket, err := facade.IssueTicket(context.Background(), testhelpers.AdminClaims(), "user@example.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, _, err := facade.ScanTicket(context.Background(), ticket.ID); err != nil {
		t.Fatalf("scan: %v", err)
	}

	select {
	case <-logged:
	case <-time.After(time.Second):
		t.Fatal("expected notifier failure to be logged")
	}
}

func TestFacadeHealthCheck(t *testing.T) {
	facade, store, _ := newTestFacade(t)

	if err := facade.HealthCheck(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	store.healthErr = errors.New("down")
	if err := facade.HealthCheck(context.Background()); err == nil {
		t.Fatal("expected health error")
	}
}
