package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/workaholic/backend/domain"
	"github.com/workaholic/backend/repository"
	"github.com/workaholic/backend/usecase/notify"
)

type staticHealth bool

func (h staticHealth) IsOnline() bool { return bool(h) }

// blockingTaskRepo parks ListScheduled until release is closed so a pass can
// be held in flight.
type blockingTaskRepo struct {
	entered chan struct{}
	release chan struct{}
	err     error
}

func (r *blockingTaskRepo) GetByID(ctx context.Context, username, id string) (*domain.Task, error) {
	return nil, domain.ErrTaskNotFound
}

func (r *blockingTaskRepo) List(ctx context.Context, filter repository.TaskFilter) ([]domain.Task, error) {
	return nil, nil
}

func (r *blockingTaskRepo) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	return task, nil
}

func (r *blockingTaskRepo) Update(ctx context.Context, task *domain.Task) error { return nil }

func (r *blockingTaskRepo) Delete(ctx context.Context, username, id string) error { return nil }

func (r *blockingTaskRepo) ListScheduled(ctx context.Context, filter repository.ScheduleFilter) ([]domain.Task, error) {
	if r.entered != nil {
		close(r.entered)
		r.entered = nil
	}
	if r.release != nil {
		<-r.release
	}
	return nil, r.err
}

type emptyUserRepo struct{}

func (emptyUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func (emptyUserRepo) Create(ctx context.Context, user *domain.User) error { return nil }

func (emptyUserRepo) UpdatePushTokens(ctx context.Context, username string, deviceToken, expoPushToken *string) error {
	return nil
}

func newTestScheduler(repo repository.TaskRepository, health ConnectionHealth) *NotificationScheduler {
	pipeline := notify.New(repo, emptyUserRepo{}, nil, nil, nil, nil, zap.NewNop(), notify.Options{})
	return NewNotificationScheduler(pipeline, health, zap.NewNop(), SchedulerConfig{Interval: time.Minute})
}

func TestRunPassSkipsWhileInFlight(t *testing.T) {
	repo := &blockingTaskRepo{
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
	ns := newTestScheduler(repo, staticHealth(true))

	firstDone := make(chan int, 1)
	go func() {
		firstDone <- ns.RunPass(context.Background())
	}()

	select {
	case <-repo.entered:
	case <-time.After(2 * time.Second):
		t.Fatal("first pass never reached the store")
	}

	if got := ns.RunPass(context.Background()); got != -1 {
		t.Fatalf("overlapping pass returned %d, want -1", got)
	}

	close(repo.release)
	select {
	case got := <-firstDone:
		if got != 0 {
			t.Fatalf("first pass returned %d, want 0", got)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("first pass never finished")
	}

	// The guard resets once the pass completes.
	if got := ns.RunPass(context.Background()); got != 0 {
		t.Fatalf("follow-up pass returned %d, want 0", got)
	}
}

func TestRunPassSkipsWhenOffline(t *testing.T) {
	repo := &blockingTaskRepo{}
	ns := newTestScheduler(repo, staticHealth(false))

	if got := ns.RunPass(context.Background()); got != -1 {
		t.Fatalf("offline pass returned %d, want -1", got)
	}
}

func TestRunPassSurvivesStoreError(t *testing.T) {
	repo := &blockingTaskRepo{err: errors.New("connection refused")}
	ns := newTestScheduler(repo, staticHealth(true))

	if got := ns.RunPass(context.Background()); got != 0 {
		t.Fatalf("failing pass returned %d, want 0", got)
	}
	// The guard must be released after a failure too.
	repo.err = nil
	if got := ns.RunPass(context.Background()); got != 0 {
		t.Fatalf("pass after failure returned %d, want 0", got)
	}
}

func TestRunPassNilMonitor(t *testing.T) {
	repo := &blockingTaskRepo{}
	ns := newTestScheduler(repo, nil)

	if got := ns.RunPass(context.Background()); got != 0 {
		t.Fatalf("pass without monitor returned %d, want 0", got)
	}
}
