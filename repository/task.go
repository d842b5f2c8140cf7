package repository

import (
	"context"

	"github.com/workaholic/backend/domain"
)

// TaskFilter narrows owner-scoped task listings.
type TaskFilter struct {
	Username string
	Status   string
	Limit    int
	Offset   int
}

// ScheduleFilter selects candidate tasks for the due-task scan. It is the
// only task query that is not owner-scoped: the scan runs across all users.
// The coarse SQL filter keeps weekday-recurring tasks out; exact window
// matching happens in the notify use case.
type ScheduleFilter struct {
	// Status restricts candidates to a single status; empty scans
	// every status (the unfiltered revision's behavior).
	Status string
	Limit  int
}

type TaskRepository interface {
	GetByID(ctx context.Context, username, id string) (*domain.Task, error)
	List(ctx context.Context, filter TaskFilter) ([]domain.Task, error)
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
	// Update replaces every mutable field; edits are full replace, not patch.
	Update(ctx context.Context, task *domain.Task) error
	Delete(ctx context.Context, username, id string) error
	ListScheduled(ctx context.Context, filter ScheduleFilter) ([]domain.Task, error)
}
