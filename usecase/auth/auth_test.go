package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/workaholic/backend/domain"
	"github.com/workaholic/backend/repository/memory"
)

type fakeUserRepo struct {
	users map[string]domain.User
}

func (f *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	user, ok := f.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &user, nil
}

func (f *fakeUserRepo) Create(ctx context.Context, user *domain.User) error {
	if _, ok := f.users[user.Username]; ok {
		return domain.ErrUserExists
	}
	f.users[user.Username] = *user
	return nil
}

func (f *fakeUserRepo) UpdatePushTokens(ctx context.Context, username string, deviceToken, expoPushToken *string) error {
	return nil
}

func newUseCase() (*UseCase, *fakeUserRepo) {
	users := &fakeUserRepo{users: map[string]domain.User{}}
	return New(users, memory.NewSessionRepository(time.Hour), time.Hour, nil), users
}

func TestSignupAndLogin(t *testing.T) {
	uc, _ := newUseCase()
	ctx := context.Background()

	if err := uc.Signup(ctx, "alice", "secret"); err != nil {
		t.Fatalf("signup: %v", err)
	}

	session, err := uc.Login(ctx, "alice", "secret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if session.Token == "" {
		t.Fatal("login must issue a token")
	}

	resolved, err := uc.Resolve(ctx, session.Token)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if resolved.Username != "alice" {
		t.Fatalf("username = %q, want alice", resolved.Username)
	}
}

func TestSignupDuplicate(t *testing.T) {
	uc, _ := newUseCase()
	ctx := context.Background()

	if err := uc.Signup(ctx, "alice", "secret"); err != nil {
		t.Fatalf("signup: %v", err)
	}
	if err := uc.Signup(ctx, "alice", "other"); !domain.IsDomainError(err, domain.ErrCodeConflict) {
		t.Fatalf("duplicate signup: got %v, want conflict", err)
	}
}

func TestSignupMissingFields(t *testing.T) {
	uc, _ := newUseCase()
	ctx := context.Background()

	if err := uc.Signup(ctx, "", "secret"); !errors.Is(err, domain.ErrInvalidPayload) {
		t.Fatalf("missing username: got %v", err)
	}
	if err := uc.Signup(ctx, "alice", ""); !errors.Is(err, domain.ErrInvalidPayload) {
		t.Fatalf("missing password: got %v", err)
	}
}

func TestLoginRejections(t *testing.T) {
	uc, _ := newUseCase()
	ctx := context.Background()

	if err := uc.Signup(ctx, "alice", "secret"); err != nil {
		t.Fatalf("signup: %v", err)
	}

	// An unknown user and a wrong password are indistinguishable to the
	// caller.
	if _, err := uc.Login(ctx, "ghost", "secret"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("unknown user: got %v", err)
	}
	if _, err := uc.Login(ctx, "alice", "wrong"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("wrong password: got %v", err)
	}
}

func TestLogoutInvalidatesSession(t *testing.T) {
	uc, _ := newUseCase()
	ctx := context.Background()

	if err := uc.Signup(ctx, "alice", "secret"); err != nil {
		t.Fatalf("signup: %v", err)
	}
	session, err := uc.Login(ctx, "alice", "secret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	if err := uc.Logout(ctx, session.Token); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, err := uc.Resolve(ctx, session.Token); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("resolve after logout: got %v", err)
	}

	// Logging out with no token is a no-op.
	if err := uc.Logout(ctx, ""); err != nil {
		t.Fatalf("empty logout: %v", err)
	}
}

func TestConcurrentLoginsAreIndependent(t *testing.T) {
	uc, _ := newUseCase()
	ctx := context.Background()

	if err := uc.Signup(ctx, "alice", "secret"); err != nil {
		t.Fatalf("signup: %v", err)
	}

	first, err := uc.Login(ctx, "alice", "secret")
	if err != nil {
		t.Fatalf("first login: %v", err)
	}
	second, err := uc.Login(ctx, "alice", "secret")
	if err != nil {
		t.Fatalf("second login: %v", err)
	}
	if first.Token == second.Token {
		t.Fatal("each login must issue a distinct token")
	}

	if err := uc.Logout(ctx, first.Token); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, err := uc.Resolve(ctx, second.Token); err != nil {
		t.Fatalf("second session must survive: %v", err)
	}
}

func TestCheckLogin(t *testing.T) {
	uc, users := newUseCase()
	ctx := context.Background()

	if err := uc.Signup(ctx, "alice", "secret"); err != nil {
		t.Fatalf("signup: %v", err)
	}

	user, err := uc.CheckLogin(ctx, "alice")
	if err != nil {
		t.Fatalf("checklogin: %v", err)
	}
	if user.Username != "alice" {
		t.Fatalf("username = %q", user.Username)
	}

	delete(users.users, "alice")
	if _, err := uc.CheckLogin(ctx, "alice"); !domain.IsDomainError(err, domain.ErrCodeNotFound) {
		t.Fatalf("deleted user: got %v", err)
	}
}
