package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/workaholic/backend/domain"
	"github.com/workaholic/backend/repository"
)

type UseCase struct {
	users    repository.UserRepository
	sessions repository.SessionRepository
	ttl      time.Duration
	logger   *zap.Logger
}

func New(users repository.UserRepository, sessions repository.SessionRepository, ttl time.Duration, logger *zap.Logger) *UseCase {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		users:    users,
		sessions: sessions,
		ttl:      ttl,
		logger:   logger,
	}
}

func (uc *UseCase) Signup(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return domain.ErrInvalidPayload
	}
	return uc.users.Create(ctx, &domain.User{Username: username, Password: password})
}

// Login compares the stored plaintext password and issues an opaque session
// token. The plaintext comparison mirrors the user directory contract; it is
// a documented weakness, not something this layer fixes.
func (uc *UseCase) Login(ctx context.Context, username, password string) (*domain.Session, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidPayload
	}

	user, err := uc.users.GetByUsername(ctx, username)
	if err != nil {
		if domain.IsDomainError(err, domain.ErrCodeNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, err
	}
	if user.Password != password {
		return nil, domain.ErrUnauthorized
	}

	session := &domain.Session{
		Token:     uuid.NewString(),
		Username:  username,
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(uc.ttl),
	}
	if err := uc.sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (uc *UseCase) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return uc.sessions.Delete(ctx, token)
}

// Resolve maps a bearer token back to its session, expiring lazily.
func (uc *UseCase) Resolve(ctx context.Context, token string) (*domain.Session, error) {
	session, err := uc.sessions.Get(ctx, token)
	if err != nil {
		return nil, err
	}
	if session.IsExpired(time.Now()) {
		_ = uc.sessions.Delete(ctx, token)
		return nil, domain.ErrSessionNotFound
	}
	return session, nil
}

// CheckLogin confirms the session's user still exists in the directory.
func (uc *UseCase) CheckLogin(ctx context.Context, username string) (*domain.User, error) {
	return uc.users.GetByUsername(ctx, username)
}
