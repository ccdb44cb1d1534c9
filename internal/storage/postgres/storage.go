package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/ashmarov/ticketgate/internal/domain/errors"
	"github.com/ashmarov/ticketgate/internal/domain/model"
	"github.com/ashmarov/ticketgate/internal/domain/repository"
)

// DB is the subset of pgxpool.Pool used by the storage layer; narrow enough
// for pgxmock to stand in during tests.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
	Close()
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	db     DB
	logger *slog.Logger
}

// newPgxPool is a seam for tests to substitute the connection pool.
var newPgxPool = func(ctx context.Context, cfg *pgxpool.Config) (DB, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
}

type credentialRepository struct {
	storage *Storage
}

type ticketRepository struct {
	storage *Storage
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := newPgxPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{db: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.db != nil {
		s.db.Close()
	}
}

// Factory methods for domain repositories.
func (s *Storage) Users() repository.CredentialRepository {
	return &credentialRepository{storage: s}
}

func (s *Storage) Tickets() repository.TicketRepository {
	return &ticketRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
            id TEXT PRIMARY KEY,
            email TEXT UNIQUE NOT NULL,
            username TEXT UNIQUE NOT NULL,
            role TEXT NOT NULL,
            password_hash TEXT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS tickets (
            id TEXT PRIMARY KEY,
            owner_email TEXT NOT NULL,
            status TEXT NOT NULL,
            issued_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            scanned_at TIMESTAMPTZ
        )`,
		`CREATE INDEX IF NOT EXISTS idx_tickets_issued ON tickets(issued_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_tickets_owner ON tickets(owner_email, issued_at DESC)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

// --- CredentialRepository implementation ---

func (r *credentialRepository) Create(ctx context.Context, user *model.User) (*model.User, error) {
	const query = `INSERT INTO users (id, email, username, role, password_hash)
                   VALUES ($1, $2, $3, $4, $5) RETURNING created_at`
	stored := *user
	err := r.storage.db.QueryRow(ctx, query, user.ID, user.Email, user.Username, user.Role, user.PasswordHash).Scan(&stored.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	return &stored, nil
}

func (r *credentialRepository) GetByIdentifier(ctx context.Context, identifier string) (*model.User, error) {
	const query = `SELECT id, email, username, role, password_hash, created_at
                   FROM users WHERE email=$1 OR username=$1 LIMIT 1`
	return r.scanUser(r.storage.db.QueryRow(ctx, query, identifier))
}

func (r *credentialRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	const query = `SELECT id, email, username, role, password_hash, created_at
                   FROM users WHERE id=$1`
	return r.scanUser(r.storage.db.QueryRow(ctx, query, id))
}

func (r *credentialRepository) scanUser(row pgx.Row) (*model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Email, &u.Username, &u.Role, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// --- TicketRepository implementation ---

func (r *ticketRepository) Create(ctx context.Context, ticket *model.Ticket) (*model.Ticket, error) {
	const query = `INSERT INTO tickets (id, owner_email, status, issued_at)
                   VALUES ($1, $2, $3, $4) RETURNING issued_at`
	stored := *ticket
	err := r.storage.db.QueryRow(ctx, query, ticket.ID, ticket.OwnerEmail, ticket.Status, ticket.IssuedAt).Scan(&stored.IssuedAt)
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

func (r *ticketRepository) GetByID(ctx context.Context, id string) (*model.Ticket, error) {
	const query = `SELECT id, owner_email, status, issued_at, scanned_at
                   FROM tickets WHERE id=$1`
	var t model.Ticket
	err := r.storage.db.QueryRow(ctx, query, id).Scan(&t.ID, &t.OwnerEmail, &t.Status, &t.IssuedAt, &t.ScannedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *ticketRepository) List(ctx context.Context) ([]model.Ticket, error) {
	const query = `SELECT id, owner_email, status, issued_at, scanned_at
                   FROM tickets ORDER BY issued_at DESC`
	return r.queryTickets(ctx, query)
}

func (r *ticketRepository) ListByOwner(ctx context.Context, owner string) ([]model.Ticket, error) {
	const query = `SELECT id, owner_email, status, issued_at, scanned_at
                   FROM tickets WHERE owner_email=$1 ORDER BY issued_at DESC`
	return r.queryTickets(ctx, query, owner)
}

func (r *ticketRepository) queryTickets(ctx context.Context, query string, args ...any) ([]model.Ticket, error) {
	rows, err := r.storage.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Ticket
	for rows.Next() {
		var t model.Ticket
		if err := rows.Scan(&t.ID, &t.OwnerEmail, &t.Status, &t.IssuedAt, &t.ScannedAt); err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// MarkUsed relies on a conditional update so exactly one concurrent scanner
// wins the active-to-used transition; losers read the committed used row.
func (r *ticketRepository) MarkUsed(ctx context.Context, id string) (*model.Ticket, bool, error) {
	const query = `UPDATE tickets SET status=$1, scanned_at=NOW()
                   WHERE id=$2 AND status=$3
                   RETURNING id, owner_email, status, issued_at, scanned_at`
	var t model.Ticket
	err := r.storage.db.QueryRow(ctx, query, model.TicketStatusUsed, id, model.TicketStatusActive).
		Scan(&t.ID, &t.OwnerEmail, &t.Status, &t.IssuedAt, &t.ScannedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			existing, err := r.GetByID(ctx, id)
			if err != nil {
				return nil, false, err
			}
			return existing, false, nil
		}
		return nil, false, err
	}
	return &t, true, nil
}

func (r *ticketRepository) CountByStatus(ctx context.Context) (map[model.TicketStatus]int64, error) {
	const query = `SELECT status, COUNT(*) FROM tickets GROUP BY status`
	rows, err := r.storage.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[model.TicketStatus]int64)
	for rows.Next() {
		var status model.TicketStatus
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return counts, nil
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.db.Ping(ctx)
}

// Logger returns storage logger.
func (s *Storage) Logger() *slog.Logger {
	return s.logger
}
