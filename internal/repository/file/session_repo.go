// Package file implements the session repository as a single JSON file
// holding the serialized array of every stored session, read once at
// startup and rewritten in full on each insert or delete.
package file

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"sort"
	"sync"

	"asanaflow/yoga-app/internal/domain"
	"asanaflow/yoga-app/internal/repository"
)

type fileSessionRepository struct {
	mu       sync.Mutex
	path     string
	sessions []domain.YogaSession
}

// NewSessionRepository loads the session blob at path. A missing file
// starts an empty store; unparseable content is discarded with a logged
// diagnostic and the store also starts empty.
func NewSessionRepository(path string) repository.SessionRepository {
	r := &fileSessionRepository{path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("WARN: Failed to read session store %s: %v", path, err)
		}
		return r
	}

	if err := json.Unmarshal(data, &r.sessions); err != nil {
		log.Printf("WARN: Session store %s is corrupt, starting empty: %v", path, err)
		r.sessions = nil
	}
	return r
}

// Create appends the session and rewrites the store file.
func (r *fileSessionRepository) Create(ctx context.Context, session *domain.YogaSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions = append(r.sessions, *session)
	return r.persist()
}

// GetByID returns the stored session with the given id.
func (r *fileSessionRepository) GetByID(ctx context.Context, id string) (*domain.YogaSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.sessions {
		if r.sessions[i].ID == id {
			s := r.sessions[i]
			return &s, nil
		}
	}
	return nil, repository.ErrNotFound
}

// GetAll returns every stored session, newest first.
func (r *fileSessionRepository) GetAll(ctx context.Context) ([]domain.YogaSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]domain.YogaSession, len(r.sessions))
	copy(out, r.sessions)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// Delete filters the session out of the list and rewrites the store file.
func (r *fileSessionRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.sessions[:0]
	removed := false
	for _, s := range r.sessions {
		if s.ID == id {
			removed = true
			continue
		}
		kept = append(kept, s)
	}
	r.sessions = kept
	if !removed {
		return nil
	}
	return r.persist()
}

// persist writes the full session array to disk. Caller holds the lock.
func (r *fileSessionRepository) persist() error {
	data, err := json.Marshal(r.sessions)
	if err != nil {
		return err
	}
	if err := os.WriteFile(r.path, data, 0o644); err != nil {
		log.Printf("ERROR: Failed to write session store %s: %v", r.path, err)
		return repository.ErrPersistence
	}
	return nil
}
