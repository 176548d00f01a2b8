package repository

import (
	"context"

	"asanaflow/yoga-app/internal/domain"
)

// Error constants for repository layer
var (
	ErrNotFound    = RepositoryError("not found")
	ErrPersistence = RepositoryError("persistence failed")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// SessionRepository defines the interface for interacting with stored
// yoga sessions. Sessions are immutable once created; the only mutation
// is whole-record deletion.
type SessionRepository interface {
	Create(ctx context.Context, session *domain.YogaSession) error
	GetByID(ctx context.Context, id string) (*domain.YogaSession, error)
	GetAll(ctx context.Context) ([]domain.YogaSession, error)
	// Delete removes a session by id. Deleting an id that does not exist
	// is a no-op, mirroring filter-then-persist semantics.
	Delete(ctx context.Context, id string) error
}
