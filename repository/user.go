package repository

import (
	"context"

	"github.com/workaholic/backend/domain"
)

type UserRepository interface {
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) error
	// UpdatePushTokens persists whichever token pointers are non-nil and
	// leaves the others untouched.
	UpdatePushTokens(ctx context.Context, username string, deviceToken, expoPushToken *string) error
}
