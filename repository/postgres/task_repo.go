package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/workaholic/backend/domain"
	"github.com/workaholic/backend/repository"
)

type taskRepository struct {
	pool *pgxpool.Pool
	loc  *time.Location
}

// NewTaskRepository returns a Postgres-backed implementation of TaskRepository.
// Rows are normalized to the repeat-descriptor schema on the way out, so the
// legacy task_time column never leaks past this layer unconverted.
func NewTaskRepository(pool *pgxpool.Pool, loc *time.Location) repository.TaskRepository {
	if loc == nil {
		loc = time.Local
	}
	return &taskRepository{pool: pool, loc: loc}
}

const taskColumns = `id, username, title, description, status, priority, repeat, days, dates, due_time, task_time, created_at, updated_at`

func (r *taskRepository) GetByID(ctx context.Context, username, id string) (*domain.Task, error) {
	const query = `
	SELECT ` + taskColumns + `
	FROM tasks
	WHERE id = $1 AND username = $2
	`
	row := r.pool.QueryRow(ctx, query, id, username)
	return r.scanTask(row)
}

func (r *taskRepository) List(ctx context.Context, filter repository.TaskFilter) ([]domain.Task, error) {
	const query = `
	SELECT ` + taskColumns + `
	FROM tasks
	WHERE username = $1
	  AND ($2 = '' OR status = $2)
	ORDER BY created_at DESC
	LIMIT $3 OFFSET $4
	`
	rows, err := r.pool.Query(ctx, query, filter.Username, filter.Status, clampLimit(filter.Limit), filter.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.collect(rows)
}

func (r *taskRepository) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	if task == nil || task.Username == "" {
		return nil, domain.ErrInvalidPayload
	}
	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	task.Normalize(r.loc)

	const query = `
	INSERT INTO tasks (id, username, title, description, status, priority, repeat, days, dates, due_time, task_time)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	RETURNING created_at, updated_at
	`
	if err := r.pool.QueryRow(ctx, query,
		task.ID,
		task.Username,
		task.Title,
		task.Description,
		task.Status,
		task.Priority,
		task.Repeat,
		marshalList(task.Days),
		marshalList(task.Dates),
		task.Time,
		nullTimePtr(task.TaskTime),
	).Scan(&task.CreatedAt, &task.UpdatedAt); err != nil {
		return nil, err
	}

	return task, nil
}

func (r *taskRepository) Update(ctx context.Context, task *domain.Task) error {
	if task == nil || task.ID == "" || task.Username == "" {
		return domain.ErrInvalidPayload
	}
	task.Normalize(r.loc)

	const query = `
	UPDATE tasks
	SET title = $3,
		description = $4,
		status = $5,
		priority = $6,
		repeat = $7,
		days = $8,
		dates = $9,
		due_time = $10,
		task_time = $11,
		updated_at = NOW()
	WHERE id = $1 AND username = $2
	RETURNING updated_at
	`
	if err := r.pool.QueryRow(ctx, query,
		task.ID,
		task.Username,
		task.Title,
		task.Description,
		task.Status,
		task.Priority,
		task.Repeat,
		marshalList(task.Days),
		marshalList(task.Dates),
		task.Time,
		nullTimePtr(task.TaskTime),
	).Scan(&task.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrTaskNotFound
		}
		return err
	}

	return nil
}

func (r *taskRepository) Delete(ctx context.Context, username, id string) error {
	const query = `DELETE FROM tasks WHERE id = $1 AND username = $2`
	tag, err := r.pool.Exec(ctx, query, id, username)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func (r *taskRepository) ListScheduled(ctx context.Context, filter repository.ScheduleFilter) ([]domain.Task, error) {
	const query = `
	SELECT ` + taskColumns + `
	FROM tasks
	WHERE ($1 = '' OR status = $1)
	  AND (task_time IS NOT NULL OR repeat IN ('once', 'date'))
	ORDER BY created_at
	LIMIT $2
	`
	limit := filter.Limit
	if limit <= 0 {
		limit = 1000
	}
	rows, err := r.pool.Query(ctx, query, filter.Status, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.collect(rows)
}

func (r *taskRepository) collect(rows pgx.Rows) ([]domain.Task, error) {
	var tasks []domain.Task
	for rows.Next() {
		task, err := r.scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *task)
	}
	return tasks, rows.Err()
}

func (r *taskRepository) scanTask(row interface {
	Scan(dest ...interface{}) error
}) (*domain.Task, error) {
	var task domain.Task
	var (
		days     []byte
		dates    []byte
		taskTime *time.Time
	)

	if err := row.Scan(
		&task.ID,
		&task.Username,
		&task.Title,
		&task.Description,
		&task.Status,
		&task.Priority,
		&task.Repeat,
		&days,
		&dates,
		&task.Time,
		&taskTime,
		&task.CreatedAt,
		&task.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, err
	}

	if len(days) > 0 {
		_ = json.Unmarshal(days, &task.Days)
	}
	if len(dates) > 0 {
		_ = json.Unmarshal(dates, &task.Dates)
	}
	task.TaskTime = taskTime
	task.Normalize(r.loc)

	return &task, nil
}

func clampLimit(limit int) int {
	if limit <= 0 || limit > 100 {
		return 100
	}
	return limit
}
