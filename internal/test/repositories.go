package test

import (
	"context"
	"sync"
	"time"

	domainErrors "github.com/ashmarov/ticketgate/internal/domain/errors"
	"github.com/ashmarov/ticketgate/internal/domain/model"
)

// CredentialRepositoryStub stores accounts in-memory for tests.
type CredentialRepositoryStub struct {
	ByIdentifier map[string]*model.User
	ByID         map[string]*model.User
	Err          error
}

// NewCredentialRepositoryStub constructs a stub repository with initialized maps.
func NewCredentialRepositoryStub() *CredentialRepositoryStub {
	return &CredentialRepositoryStub{
		ByIdentifier: make(map[string]*model.User),
		ByID:         make(map[string]*model.User),
	}
}

// Create registers an account unless one of its identifiers is taken.
func (s *CredentialRepositoryStub) Create(ctx context.Context, user *model.User) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.ByIdentifier == nil {
		s.ByIdentifier = make(map[string]*model.User)
	}
	if s.ByID == nil {
		s.ByID = make(map[string]*model.User)
	}
	if _, exists := s.ByIdentifier[user.Email]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	if _, exists := s.ByIdentifier[user.Username]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	stored := *user
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now()
	}
	s.ByIdentifier[stored.Email] = &stored
	s.ByIdentifier[stored.Username] = &stored
	s.ByID[stored.ID] = &stored
	return &stored, nil
}

// GetByIdentifier resolves an account by email or username.
func (s *CredentialRepositoryStub) GetByIdentifier(ctx context.Context, identifier string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByIdentifier[identifier]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches an account by id or returns not found.
func (s *CredentialRepositoryStub) GetByID(ctx context.Context, id string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByID[id]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// TicketRepositoryStub keeps tickets in-memory and lets tests override any
// operation via function fields.
type TicketRepositoryStub struct {
	CreateFn        func(context.Context, *model.Ticket) (*model.Ticket, error)
	GetByIDFn       func(context.Context, string) (*model.Ticket, error)
	ListFn          func(context.Context) ([]model.Ticket, error)
	ListByOwnerFn   func(context.Context, string) ([]model.Ticket, error)
	MarkUsedFn      func(context.Context, string) (*model.Ticket, bool, error)
	CountByStatusFn func(context.Context) (map[model.TicketStatus]int64, error)

	mu      sync.Mutex
	tickets map[string]*model.Ticket
	order   []string
}

// NewTicketRepositoryStub constructs a stub with initialized state.
func NewTicketRepositoryStub() *TicketRepositoryStub {
	return &TicketRepositoryStub{tickets: make(map[string]*model.Ticket)}
}

// Seed stores a ticket directly, bypassing Create overrides.
func (s *TicketRepositoryStub) Seed(ticket *model.Ticket) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.tickets == nil {
		s.tickets = make(map[string]*model.Ticket)
	}
	copied := *ticket
	s.tickets[copied.ID] = &copied
	s.order = append(s.order, copied.ID)
}

// Len reports the number of stored tickets.
func (s *TicketRepositoryStub) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tickets)
}

// Create stores the ticket or delegates to the override.
func (s *TicketRepositoryStub) Create(ctx context.Context, ticket *model.Ticket) (*model.Ticket, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, ticket)
	}
	s.Seed(ticket)
	copied := *ticket
	return &copied, nil
}

// GetByID returns the stored ticket or not found.
func (s *TicketRepositoryStub) GetByID(ctx context.Context, id string) (*model.Ticket, error) {
	if s.GetByIDFn != nil {
		return s.GetByIDFn(ctx, id)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if ticket, ok := s.tickets[id]; ok {
		copied := *ticket
		return &copied, nil
	}
	return nil, domainErrors.ErrNotFound
}

// List returns stored tickets newest first.
func (s *TicketRepositoryStub) List(ctx context.Context) ([]model.Ticket, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	result := make([]model.Ticket, 0, len(s.order))
	for i := len(s.order) - 1; i >= 0; i-- {
		result = append(result, *s.tickets[s.order[i]])
	}
	return result, nil
}

// ListByOwner filters stored tickets by owner, newest first.
func (s *TicketRepositoryStub) ListByOwner(ctx context.Context, owner string) ([]model.Ticket, error) {
	if s.ListByOwnerFn != nil {
		return s.ListByOwnerFn(ctx, owner)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []model.Ticket
	for i := len(s.order) - 1; i >= 0; i-- {
		if t := s.tickets[s.order[i]]; t.OwnerEmail == owner {
			result = append(result, *t)
		}
	}
	return result, nil
}

// MarkUsed performs the conditional transition under the stub lock.
func (s *TicketRepositoryStub) MarkUsed(ctx context.Context, id string) (*model.Ticket, bool, error) {
	if s.MarkUsedFn != nil {
		return s.MarkUsedFn(ctx, id)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	ticket, ok := s.tickets[id]
	if !ok {
		return nil, false, domainErrors.ErrNotFound
	}
	if ticket.Status == model.TicketStatusUsed {
		copied := *ticket
		return &copied, false, nil
	}
	now := time.Now()
	ticket.Status = model.TicketStatusUsed
	ticket.ScannedAt = &now
	copied := *ticket
	return &copied, true, nil
}

// CountByStatus tallies stored tickets.
func (s *TicketRepositoryStub) CountByStatus(ctx context.Context) (map[model.TicketStatus]int64, error) {
	if s.CountByStatusFn != nil {
		return s.CountByStatusFn(ctx)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	counts := make(map[model.TicketStatus]int64)
	for _, t := range s.tickets {
		counts[t.Status]++
	}
	return counts, nil
}
