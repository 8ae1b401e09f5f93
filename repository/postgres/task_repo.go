package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fastygo/planner/domain"
	"github.com/fastygo/planner/repository"
)

const taskColumns = `id, user_id, title, description, due_date, due_time, priority, category_id,
	completed, completed_at, completed_on_time, created_at, updated_at`

type taskRepository struct {
	pool *pgxpool.Pool
}

// NewTaskRepository returns a Postgres-backed implementation of TaskRepository.
func NewTaskRepository(pool *pgxpool.Pool) repository.TaskRepository {
	return &taskRepository{pool: pool}
}

func (r *taskRepository) List(ctx context.Context, ownerID string) ([]domain.Task, error) {
	query := `
	SELECT ` + taskColumns + `
	FROM tasks
	WHERE user_id = $1
	ORDER BY created_at DESC
	`
	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	return collectTasks(rows)
}

func (r *taskRepository) ListTimedPending(ctx context.Context, from, to time.Time) ([]domain.Task, error) {
	query := `
	SELECT ` + taskColumns + `
	FROM tasks
	WHERE NOT completed
	  AND due_time IS NOT NULL
	  AND due_date BETWEEN $1 AND $2
	ORDER BY due_date, due_time
	`
	rows, err := r.pool.Query(ctx, query, pgDate(domain.DateOf(from)), pgDate(domain.DateOf(to)))
	if err != nil {
		return nil, err
	}
	return collectTasks(rows)
}

func (r *taskRepository) Insert(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	if task == nil {
		return nil, domain.ErrInvalidPayload
	}
	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	task.Normalize()

	query := `
	INSERT INTO tasks (id, user_id, title, description, due_date, due_time, priority, category_id,
		completed, completed_at, completed_on_time)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	RETURNING ` + taskColumns

	row := r.pool.QueryRow(ctx, query,
		task.ID,
		task.OwnerID,
		task.Title,
		task.Description,
		pgDate(task.DueDate),
		pgTime(task.DueTime),
		string(task.Priority),
		nullString(task.CategoryID),
		task.Completed,
		task.CompletedAt,
		task.CompletedOnTime,
	)
	return scanTask(row)
}

func (r *taskRepository) Update(ctx context.Context, ownerID, id string, patch domain.TaskPatch) (*domain.Task, error) {
	sets, args := patchAssignments(patch)
	sets = append(sets, "updated_at = NOW()")
	args = append([]interface{}{id, ownerID}, args...)

	query := fmt.Sprintf(`
	UPDATE tasks
	SET %s
	WHERE id = $1 AND user_id = $2
	RETURNING %s
	`, strings.Join(sets, ",\n\t\t"), taskColumns)

	return scanTask(r.pool.QueryRow(ctx, query, args...))
}

func (r *taskRepository) Delete(ctx context.Context, ownerID, id string) error {
	const query = `DELETE FROM tasks WHERE id = $1 AND user_id = $2`
	tag, err := r.pool.Exec(ctx, query, id, ownerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

// patchAssignments renders the SET list of a patch. Placeholders start at $3
// because $1 and $2 carry the task and owner ids.
func patchAssignments(p domain.TaskPatch) ([]string, []interface{}) {
	var (
		sets []string
		args []interface{}
	)
	add := func(column string, value interface{}) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)+2))
	}

	if p.Title != nil {
		add("title", strings.TrimSpace(*p.Title))
	}
	if p.Description != nil {
		add("description", *p.Description)
	}
	if p.DueDate != nil {
		add("due_date", pgDate(*p.DueDate))
		if !p.DueDate.Valid {
			add("due_time", pgtype.Time{})
		}
	}
	if p.DueTime != nil && (p.DueDate == nil || p.DueDate.Valid) {
		add("due_time", pgTime(*p.DueTime))
	}
	if p.Priority != nil {
		add("priority", string(*p.Priority))
	}
	if p.CategoryID != nil {
		add("category_id", nullString(*p.CategoryID))
	}
	if p.Completed != nil {
		add("completed", *p.Completed)
		if !*p.Completed {
			add("completed_at", nil)
			add("completed_on_time", nil)
		}
	}
	if p.Completed == nil || *p.Completed {
		if p.CompletedAt != nil {
			add("completed_at", *p.CompletedAt)
		}
		if p.CompletedOnTime != nil {
			add("completed_on_time", *p.CompletedOnTime)
		}
	}
	return sets, args
}

func collectTasks(rows pgx.Rows) ([]domain.Task, error) {
	defer rows.Close()

	tasks := make([]domain.Task, 0)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *task)
	}
	return tasks, rows.Err()
}

func scanTask(row scanner) (*domain.Task, error) {
	var (
		task     domain.Task
		due      pgtype.Date
		dueTime  pgtype.Time
		priority string
		category *string
	)

	if err := row.Scan(
		&task.ID,
		&task.OwnerID,
		&task.Title,
		&task.Description,
		&due,
		&dueTime,
		&priority,
		&category,
		&task.Completed,
		&task.CompletedAt,
		&task.CompletedOnTime,
		&task.CreatedAt,
		&task.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		if isCheckViolation(err) {
			return nil, domain.WrapError(domain.ErrCodeInvalid, "task violates field constraints", err)
		}
		return nil, err
	}

	task.DueDate = fromPgDate(due)
	task.DueTime = fromPgTime(dueTime)
	task.Priority = domain.Priority(priority)
	if category != nil {
		task.CategoryID = *category
	}
	task.Normalize()
	return &task, nil
}
