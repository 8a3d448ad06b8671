package service

import (
	"context"
	"time"

	"github.com/chepyr/go-todo-app/internal/models"
	"github.com/chepyr/go-todo-app/internal/store"
)

// TaskService implements the task CRUD rules on top of a TaskStore. It owns
// field validation; the store owns id assignment and owner scoping.
type TaskService struct {
	store store.TaskStore
}

func NewTaskService(s store.TaskStore) *TaskService {
	return &TaskService{store: s}
}

func (s *TaskService) Create(ctx context.Context, ownerID int64, title, description string) (*models.Task, error) {
	title, err := models.ValidateTitle(title)
	if err != nil {
		return nil, err
	}
	if err := models.ValidateDescription(description); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	task := &models.Task{
		OwnerID:     ownerID,
		Title:       title,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.store.Create(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *TaskService) Get(ctx context.Context, ownerID, id int64) (*models.Task, error) {
	return s.store.GetByID(ctx, id, ownerID)
}

// List returns the owner's tasks in ascending id order. No tasks is an empty
// slice, not an error.
func (s *TaskService) List(ctx context.Context, ownerID int64) ([]*models.Task, error) {
	return s.store.ListByOwner(ctx, ownerID)
}

// Update applies only the supplied fields; a nil pointer keeps the prior
// value. Changed fields are validated with the same rules as Create.
func (s *TaskService) Update(ctx context.Context, ownerID, id int64, title, description *string) (*models.Task, error) {
	task, err := s.store.GetByID(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	if title != nil {
		trimmed, err := models.ValidateTitle(*title)
		if err != nil {
			return nil, err
		}
		task.Title = trimmed
	}
	if description != nil {
		if err := models.ValidateDescription(*description); err != nil {
			return nil, err
		}
		task.Description = *description
	}
	task.UpdatedAt = time.Now().UTC()

	if err := s.store.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// SetComplete sets the completion flag to exactly the requested value.
// Repeating the same value is not an error.
func (s *TaskService) SetComplete(ctx context.Context, ownerID, id int64, complete bool) (*models.Task, error) {
	task, err := s.store.GetByID(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	task.IsComplete = complete
	task.UpdatedAt = time.Now().UTC()

	if err := s.store.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *TaskService) Delete(ctx context.Context, ownerID, id int64) error {
	return s.store.Delete(ctx, id, ownerID)
}
