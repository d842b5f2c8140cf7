package repository

import (
	"context"

	"github.com/workaholic/backend/domain"
)

// SessionRepository stores bearer-token sessions. Two implementations exist:
// an in-process map (default, lost on restart) and a Redis-backed store.
type SessionRepository interface {
	Get(ctx context.Context, token string) (*domain.Session, error)
	Save(ctx context.Context, session *domain.Session) error
	Delete(ctx context.Context, token string) error
}
