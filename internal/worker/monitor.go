package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/ashmarov/ticketgate/internal/domain/model"
	"github.com/ashmarov/ticketgate/internal/domain/repository"
)

// Store exposes the subset of storage functionality required by the monitor.
type Store interface {
	HealthCheck(ctx context.Context) error
	Tickets() repository.TicketRepository
}

// StoreMonitor periodically pings the storage backend and reports ticket
// population by status, so operators can watch gate throughput in the logs.
type StoreMonitor struct {
	store    Store
	interval time.Duration
	logger   *slog.Logger

	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewStoreMonitor constructs the monitor. A non-positive interval disables it.
func NewStoreMonitor(store Store, interval time.Duration, logger *slog.Logger) *StoreMonitor {
	return &StoreMonitor{
		store:    store,
		interval: interval,
		logger:   logger,
	}
}

// Start launches the background loop.
func (m *StoreMonitor) Start(ctx context.Context) {
	if m.interval <= 0 {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	m.cancel = cancel

	m.wg.Add(1)
	go m.run(runCtx)
}

// Stop waits for the loop to finish.
func (m *StoreMonitor) Stop() {
	m.mu.Lock()
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	m.mu.Unlock()

	m.wg.Wait()
}

func (m *StoreMonitor) run(ctx context.Context) {
	defer m.wg.Done()
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.observe(ctx)
		}
	}
}

func (m *StoreMonitor) observe(ctx context.Context) {
	if err := m.store.HealthCheck(ctx); err != nil {
		m.logger.Error("storage health check failed", slog.String("error", err.Error()))
		return
	}

	counts, err := m.store.Tickets().CountByStatus(ctx)
	if err != nil {
		m.logger.Error("ticket count failed", slog.String("error", err.Error()))
		return
	}

	m.logger.Info("storage healthy",
		slog.Int64("active_tickets", counts[model.TicketStatusActive]),
		slog.Int64("used_tickets", counts[model.TicketStatusUsed]),
	)
}
