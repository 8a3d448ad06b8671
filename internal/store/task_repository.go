package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/chepyr/go-todo-app/internal/models"
)

// TaskRepository persists tasks in a SQL database. The same statements work
// for both lib/pq and go-sqlite3.
type TaskRepository struct {
	db *sql.DB
}

func NewTaskRepository(db *sql.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Create(ctx context.Context, task *models.Task) error {
	query := `INSERT INTO tasks (owner_id, title, description, is_complete, created_at, updated_at)
	 VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`

	return r.db.QueryRowContext(
		ctx, query, task.OwnerID, task.Title, task.Description, task.IsComplete,
		task.CreatedAt, task.UpdatedAt,
	).Scan(&task.ID)
}

func (r *TaskRepository) GetByID(ctx context.Context, id, ownerID int64) (*models.Task, error) {
	query := `SELECT id, owner_id, title, description, is_complete, created_at, updated_at
	 FROM tasks WHERE id = $1 AND owner_id = $2`

	task := &models.Task{}
	err := r.db.QueryRowContext(ctx, query, id, ownerID).Scan(
		&task.ID, &task.OwnerID, &task.Title, &task.Description, &task.IsComplete,
		&task.CreatedAt, &task.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTaskNotFound
	}
	if err != nil {
		return nil, err
	}
	return task, nil
}

func (r *TaskRepository) ListByOwner(ctx context.Context, ownerID int64) ([]*models.Task, error) {
	query := `SELECT id, owner_id, title, description, is_complete, created_at, updated_at
	 FROM tasks WHERE owner_id = $1 ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := make([]*models.Task, 0)
	for rows.Next() {
		task := &models.Task{}
		if err := rows.Scan(
			&task.ID, &task.OwnerID, &task.Title, &task.Description, &task.IsComplete,
			&task.CreatedAt, &task.UpdatedAt,
		); err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *TaskRepository) Update(ctx context.Context, task *models.Task) error {
	query := `UPDATE tasks SET title = $1, description = $2, is_complete = $3, updated_at = $4
	 WHERE id = $5 AND owner_id = $6`

	result, err := r.db.ExecContext(
		ctx, query, task.Title, task.Description, task.IsComplete, task.UpdatedAt,
		task.ID, task.OwnerID,
	)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrTaskNotFound
	}
	return nil
}

func (r *TaskRepository) Delete(ctx context.Context, id, ownerID int64) error {
	query := `DELETE FROM tasks WHERE id = $1 AND owner_id = $2`

	result, err := r.db.ExecContext(ctx, query, id, ownerID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrTaskNotFound
	}
	return nil
}
