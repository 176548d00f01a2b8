package service

import (
	"context"
	"errors"
	"fmt"

	"asanaflow/yoga-app/internal/catalog"
	"asanaflow/yoga-app/internal/domain"
	"asanaflow/yoga-app/internal/generator"
	"asanaflow/yoga-app/internal/repository"
)

// --- Error Definitions ---
var (
	ErrSessionNotFound = errors.New("session not found")
	ErrInvalidInput    = errors.New("session input validation failed")
)

// Duration bounds enforced on every generation request, in minutes.
const (
	MinDurationMinutes = 5
	MaxDurationMinutes = 60
)

// --- Service Interface ---
type SessionService interface {
	Generate(ctx context.Context, input domain.UserInput) (*domain.YogaSession, error)
	GetSession(ctx context.Context, id string) (*domain.YogaSession, error)
	ListSessions(ctx context.Context) ([]domain.YogaSession, error)
	DeleteSession(ctx context.Context, id string) error
}

// --- Service Implementation ---

// sessionService implements the SessionService interface. Generation reads
// the catalog but never the store; only persistence operations touch the
// repository.
type sessionService struct {
	catalog     *catalog.Catalog
	gen         *generator.Generator
	sessionRepo repository.SessionRepository
}

// NewSessionService creates a new instance of sessionService.
func NewSessionService(cat *catalog.Catalog, gen *generator.Generator, sessionRepo repository.SessionRepository) SessionService {
	return &sessionService{
		catalog:     cat,
		gen:         gen,
		sessionRepo: sessionRepo,
	}
}

// Generate validates the input, generates a session over the catalog, and
// persists it. An empty catalog fails with generator.ErrEmptyCatalog and
// nothing is persisted.
func (s *sessionService) Generate(ctx context.Context, input domain.UserInput) (*domain.YogaSession, error) {
	// The form layer defaults the level; requests arriving without one get
	// the same default here.
	if input.Level == "" {
		input.Level = domain.DifficultyBeginner
	}
	if err := validateInput(input); err != nil {
		return nil, err
	}

	session, err := s.gen.Generate(input, s.catalog.All())
	if err != nil {
		return nil, err
	}

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func validateInput(input domain.UserInput) error {
	if input.DurationMinutes < MinDurationMinutes || input.DurationMinutes > MaxDurationMinutes {
		return fmt.Errorf("%w: duration must be between %d and %d minutes",
			ErrInvalidInput, MinDurationMinutes, MaxDurationMinutes)
	}
	if !input.Level.Valid() {
		return fmt.Errorf("%w: unknown level %q", ErrInvalidInput, input.Level)
	}
	if input.Goal != "" && !input.Goal.Valid() {
		return fmt.Errorf("%w: unknown goal %q", ErrInvalidInput, input.Goal)
	}
	if input.Energy != "" && !input.Energy.Valid() {
		return fmt.Errorf("%w: unknown energy level %q", ErrInvalidInput, input.Energy)
	}
	return nil
}

// GetSession retrieves a single stored session.
func (s *sessionService) GetSession(ctx context.Context, id string) (*domain.YogaSession, error) {
	session, err := s.sessionRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return session, nil
}

// ListSessions retrieves all stored sessions, newest first.
func (s *sessionService) ListSessions(ctx context.Context) ([]domain.YogaSession, error) {
	return s.sessionRepo.GetAll(ctx)
}

// DeleteSession removes a stored session. Deleting an unknown id succeeds.
func (s *sessionService) DeleteSession(ctx context.Context, id string) error {
	return s.sessionRepo.Delete(ctx, id)
}
