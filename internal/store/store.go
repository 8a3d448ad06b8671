package store

import (
	"context"
	"errors"

	"github.com/chepyr/go-todo-app/internal/models"
)

var (
	// ErrTaskNotFound is returned when a task id does not exist for the
	// given owner. A task owned by someone else yields the same error so
	// that lookups never reveal existence to a non-owner.
	ErrTaskNotFound = errors.New("task not found")

	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("email already registered")
)

// TaskStore is the persistence boundary for tasks. Every lookup is scoped by
// owner id; the in-memory implementation used by the CLI stores everything
// under owner 0.
type TaskStore interface {
	Create(ctx context.Context, task *models.Task) error
	GetByID(ctx context.Context, id, ownerID int64) (*models.Task, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]*models.Task, error)
	Update(ctx context.Context, task *models.Task) error
	Delete(ctx context.Context, id, ownerID int64) error
}

// UserStore is the persistence boundary for users.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
}
