package storage

import (
	"context"

	"github.com/ashmarov/ticketgate/internal/domain/repository"
)

// Store is the full storage capability set: the repository factory plus
// lifecycle and health concerns. Both backends satisfy it.
type Store interface {
	repository.Factory
	HealthCheck(ctx context.Context) error
	Close()
}
