package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/emsworks/employment-service/internal/domain"
)

// TaskFilter narrows task listings.
type TaskFilter struct {
	AssignedTo *string
	Status     *domain.TaskStatus
	Priority   *domain.TaskPriority
	Page       Page
}

// TaskRepository persists tasks.
type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) error
	Update(ctx context.Context, task *domain.Task) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	List(ctx context.Context, filter TaskFilter) ([]domain.Task, int, error)
}

type taskRepository struct {
	db DBTX
}

// NewTaskRepository builds the repository.
func NewTaskRepository(db DBTX) TaskRepository {
	return &taskRepository{db: db}
}

const taskColumns = `id, title, description, assigned_to, assigned_by, priority, status, due_date, completed_at,
        created_at, updated_at`

func (r *taskRepository) Create(ctx context.Context, task *domain.Task) error {
	const query = `
        INSERT INTO tasks (title, description, assigned_to, assigned_by, priority, status, due_date, completed_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING id, created_at, updated_at`
	return r.db.QueryRow(ctx, query,
		task.Title,
		task.Description,
		task.AssignedTo,
		task.AssignedBy,
		task.Priority,
		task.Status,
		task.DueDate,
		task.CompletedAt,
	).Scan(&task.ID, &task.CreatedAt, &task.UpdatedAt)
}

func (r *taskRepository) Update(ctx context.Context, task *domain.Task) error {
	const query = `
        UPDATE tasks SET title=$1, description=$2, assigned_to=$3, priority=$4, status=$5, due_date=$6,
            completed_at=$7, updated_at=NOW()
        WHERE id=$8
        RETURNING updated_at`
	return r.db.QueryRow(ctx, query,
		task.Title,
		task.Description,
		task.AssignedTo,
		task.Priority,
		task.Status,
		task.DueDate,
		task.CompletedAt,
		task.ID,
	).Scan(&task.UpdatedAt)
}

func (r *taskRepository) Delete(ctx context.Context, id string) error {
	return affectedOrNoRows(r.db.Exec(ctx, `DELETE FROM tasks WHERE id=$1`, id))
}

func (r *taskRepository) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	task, err := scanTask(r.db.QueryRow(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id=$1`, id))
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *taskRepository) List(ctx context.Context, filter TaskFilter) ([]domain.Task, int, error) {
	var where whereBuilder
	if filter.AssignedTo != nil {
		where.add("assigned_to=$%d", *filter.AssignedTo)
	}
	if filter.Status != nil {
		where.add("status=$%d", *filter.Status)
	}
	if filter.Priority != nil {
		where.add("priority=$%d", *filter.Priority)
	}

	listSQL, countSQL := where.paged(`SELECT `+taskColumns+` FROM tasks`, `SELECT COUNT(*) FROM tasks`,
		"due_date ASC NULLS LAST, created_at DESC", filter.Page)
	total, err := count(ctx, r.db, countSQL, where.args)
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Query(ctx, listSQL, where.args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	result := []domain.Task{}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, 0, err
		}
		result = append(result, task)
	}
	return result, total, rows.Err()
}

func scanTask(row pgx.Row) (domain.Task, error) {
	var task domain.Task
	err := row.Scan(
		&task.ID,
		&task.Title,
		&task.Description,
		&task.AssignedTo,
		&task.AssignedBy,
		&task.Priority,
		&task.Status,
		&task.DueDate,
		&task.CompletedAt,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	return task, err
}
