package memory

import (
	"context"
	"sync"
	"time"

	"github.com/workaholic/backend/domain"
	"github.com/workaholic/backend/repository"
)

type sessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]domain.Session
	ttl      time.Duration
}

// NewSessionRepository returns the default in-process session store. State is
// an explicit, injected value rather than package-level; everything here is
// lost on restart, which the surrounding auth design accepts.
func NewSessionRepository(ttl time.Duration) repository.SessionRepository {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &sessionRepository{
		sessions: make(map[string]domain.Session),
		ttl:      ttl,
	}
}

func (r *sessionRepository) Get(_ context.Context, token string) (*domain.Session, error) {
	r.mu.RLock()
	session, ok := r.sessions[token]
	r.mu.RUnlock()
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	if session.IsExpired(time.Now()) {
		r.mu.Lock()
		delete(r.sessions, token)
		r.mu.Unlock()
		return nil, domain.ErrSessionNotFound
	}
	out := session
	return &out, nil
}

func (r *sessionRepository) Save(_ context.Context, session *domain.Session) error {
	if session == nil || session.Token == "" || session.Username == "" {
		return domain.ErrInvalidPayload
	}
	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now()
	}
	if session.ExpiresAt.Before(session.CreatedAt) {
		session.ExpiresAt = session.CreatedAt.Add(r.ttl)
	}

	r.mu.Lock()
	r.sessions[session.Token] = *session
	r.mu.Unlock()
	return nil
}

func (r *sessionRepository) Delete(_ context.Context, token string) error {
	r.mu.Lock()
	delete(r.sessions, token)
	r.mu.Unlock()
	return nil
}
