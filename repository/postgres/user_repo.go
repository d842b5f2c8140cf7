package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/workaholic/backend/domain"
	"github.com/workaholic/backend/repository"
)

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository instantiates a Postgres-backed user repository.
func NewUserRepository(pool *pgxpool.Pool) repository.UserRepository {
	return &userRepository{pool: pool}
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	const query = `
	SELECT username, password, COALESCE(device_token, ''), COALESCE(expo_push_token, ''), created_at, updated_at
	FROM users
	WHERE username = $1
	`
	row := r.pool.QueryRow(ctx, query, username)

	var user domain.User
	if err := row.Scan(&user.Username, &user.Password, &user.DeviceToken, &user.ExpoPushToken, &user.CreatedAt, &user.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	return &user, nil
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	if user == nil || user.Username == "" || user.Password == "" {
		return domain.ErrInvalidPayload
	}

	const query = `
	INSERT INTO users (username, password)
	VALUES ($1, $2)
	ON CONFLICT (username) DO NOTHING
	RETURNING created_at, updated_at
	`
	if err := r.pool.QueryRow(ctx, query, user.Username, user.Password).Scan(&user.CreatedAt, &user.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrUserExists
		}
		return err
	}
	return nil
}

func (r *userRepository) UpdatePushTokens(ctx context.Context, username string, deviceToken, expoPushToken *string) error {
	const query = `
	UPDATE users
	SET device_token = COALESCE($2, device_token),
		expo_push_token = COALESCE($3, expo_push_token),
		updated_at = NOW()
	WHERE username = $1
	`
	tag, err := r.pool.Exec(ctx, query, username, deviceToken, expoPushToken)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}
