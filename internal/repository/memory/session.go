package memory

import (
	"context"
	"sync"

	"github.com/dayflow-hr/hrms-backend-go/internal/domain/auth"
)

// SessionRepository keeps sessions in process memory.
type SessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]auth.Session
}

func NewSessionRepository() *SessionRepository {
	return &SessionRepository{sessions: make(map[string]auth.Session)}
}

func (r *SessionRepository) Save(ctx context.Context, s auth.Session) error {
	r.mu.Lock()
	r.sessions[s.ID] = s
	r.mu.Unlock()
	return nil
}

func (r *SessionRepository) Get(ctx context.Context, id string) (auth.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	if !ok {
		return auth.Session{}, auth.ErrSessionNotFound
	}
	return s, nil
}

func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	delete(r.sessions, id)
	r.mu.Unlock()
	return nil
}
