package memory

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	domainErrors "github.com/ashmarov/ticketgate/internal/domain/errors"
	"github.com/ashmarov/ticketgate/internal/domain/model"
	"github.com/ashmarov/ticketgate/internal/domain/repository"
)

// Storage is the in-memory repository facade. It mirrors the PostgreSQL
// storage contract, including the conditional-update guarantee for scans,
// and is selected when no database DSN is configured.
type Storage struct {
	mu      sync.Mutex
	users   map[string]*model.User
	byEmail map[string]string
	byName  map[string]string
	tickets map[string]*model.Ticket
	issued  []string
	logger  *slog.Logger
}

type credentialRepository struct {
	storage *Storage
}

type ticketRepository struct {
	storage *Storage
}

// New creates an empty in-memory storage.
func New(logger *slog.Logger) *Storage {
	return &Storage{
		users:   make(map[string]*model.User),
		byEmail: make(map[string]string),
		byName:  make(map[string]string),
		tickets: make(map[string]*model.Ticket),
		logger:  logger,
	}
}

// Close releases nothing; present for storage contract symmetry.
func (s *Storage) Close() {}

// HealthCheck always succeeds for the in-process store.
func (s *Storage) HealthCheck(ctx context.Context) error {
	return ctx.Err()
}

// Factory methods for domain repositories.
func (s *Storage) Users() repository.CredentialRepository {
	return &credentialRepository{storage: s}
}

func (s *Storage) Tickets() repository.TicketRepository {
	return &ticketRepository{storage: s}
}

// --- CredentialRepository implementation ---

func (r *credentialRepository) Create(ctx context.Context, user *model.User) (*model.User, error) {
	s := r.storage
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.byEmail[user.Email]; taken {
		return nil, domainErrors.ErrAlreadyExists
	}
	if _, taken := s.byName[user.Username]; taken {
		return nil, domainErrors.ErrAlreadyExists
	}

	stored := *user
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now().UTC()
	}
	s.users[stored.ID] = &stored
	s.byEmail[stored.Email] = stored.ID
	s.byName[stored.Username] = stored.ID

	copied := stored
	return &copied, nil
}

func (r *credentialRepository) GetByIdentifier(ctx context.Context, identifier string) (*model.User, error) {
	s := r.storage
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.byEmail[identifier]
	if !ok {
		id, ok = s.byName[identifier]
	}
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	copied := *s.users[id]
	return &copied, nil
}

func (r *credentialRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	s := r.storage
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

// --- TicketRepository implementation ---

func (r *ticketRepository) Create(ctx context.Context, ticket *model.Ticket) (*model.Ticket, error) {
	s := r.storage
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.tickets[ticket.ID]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	stored := *ticket
	s.tickets[stored.ID] = &stored
	s.issued = append(s.issued, stored.ID)

	copied := stored
	return &copied, nil
}

func (r *ticketRepository) GetByID(ctx context.Context, id string) (*model.Ticket, error) {
	s := r.storage
	s.mu.Lock()
	defer s.mu.Unlock()

	ticket, ok := s.tickets[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	copied := copyTicket(ticket)
	return &copied, nil
}

func (r *ticketRepository) List(ctx context.Context) ([]model.Ticket, error) {
	return r.list(func(*model.Ticket) bool { return true })
}

func (r *ticketRepository) ListByOwner(ctx context.Context, owner string) ([]model.Ticket, error) {
	return r.list(func(t *model.Ticket) bool { return t.OwnerEmail == owner })
}

func (r *ticketRepository) list(match func(*model.Ticket) bool) ([]model.Ticket, error) {
	s := r.storage
	s.mu.Lock()
	defer s.mu.Unlock()

	var result []model.Ticket
	for i := len(s.issued) - 1; i >= 0; i-- {
		if t := s.tickets[s.issued[i]]; match(t) {
			result = append(result, copyTicket(t))
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].IssuedAt.After(result[j].IssuedAt)
	})
	return result, nil
}

// MarkUsed performs the active-to-used transition under the store lock, so
// concurrent scans of one id serialize and exactly one caller wins.
func (r *ticketRepository) MarkUsed(ctx context.Context, id string) (*model.Ticket, bool, error) {
	s := r.storage
	s.mu.Lock()
	defer s.mu.Unlock()

	ticket, ok := s.tickets[id]
	if !ok {
		return nil, false, domainErrors.ErrNotFound
	}
	if ticket.Status == model.TicketStatusUsed {
		copied := copyTicket(ticket)
		return &copied, false, nil
	}

	now := time.Now().UTC()
	ticket.Status = model.TicketStatusUsed
	ticket.ScannedAt = &now

	copied := copyTicket(ticket)
	return &copied, true, nil
}

func (r *ticketRepository) CountByStatus(ctx context.Context) (map[model.TicketStatus]int64, error) {
	s := r.storage
	s.mu.Lock()
	defer s.mu.Unlock()

	counts := make(map[model.TicketStatus]int64)
	for _, t := range s.tickets {
		counts[t.Status]++
	}
	return counts, nil
}

func copyTicket(t *model.Ticket) model.Ticket {
	copied := *t
	if t.ScannedAt != nil {
		at := *t.ScannedAt
		copied.ScannedAt = &at
	}
	return copied
}
