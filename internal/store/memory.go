package store

import (
	"context"
	"sort"
	"sync"

	"github.com/chepyr/go-todo-app/internal/models"
)

// MemoryTaskStore keeps tasks in an in-process map. It backs the CLI phase
// and the handler tests. Ids start at 1, only go up, and are never handed
// out again after a delete. Tasks go in and out by value, so a record only
// changes through Create, Update, and Delete.
type MemoryTaskStore struct {
	mutex  sync.Mutex
	tasks  map[int64]*models.Task
	nextID int64
}

func NewMemoryTaskStore() *MemoryTaskStore {
	return &MemoryTaskStore{
		tasks:  make(map[int64]*models.Task),
		nextID: 1,
	}
}

func (s *MemoryTaskStore) Create(ctx context.Context, task *models.Task) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	task.ID = s.nextID
	s.nextID++
	stored := *task
	s.tasks[stored.ID] = &stored
	return nil
}

func (s *MemoryTaskStore) GetByID(ctx context.Context, id, ownerID int64) (*models.Task, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	task, exists := s.tasks[id]
	if !exists || task.OwnerID != ownerID {
		return nil, ErrTaskNotFound
	}
	found := *task
	return &found, nil
}

func (s *MemoryTaskStore) ListByOwner(ctx context.Context, ownerID int64) ([]*models.Task, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	tasks := make([]*models.Task, 0, len(s.tasks))
	for _, task := range s.tasks {
		if task.OwnerID == ownerID {
			listed := *task
			tasks = append(tasks, &listed)
		}
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].ID < tasks[j].ID })
	return tasks, nil
}

func (s *MemoryTaskStore) Update(ctx context.Context, task *models.Task) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	existing, exists := s.tasks[task.ID]
	if !exists || existing.OwnerID != task.OwnerID {
		return ErrTaskNotFound
	}
	stored := *task
	s.tasks[stored.ID] = &stored
	return nil
}

func (s *MemoryTaskStore) Delete(ctx context.Context, id, ownerID int64) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	task, exists := s.tasks[id]
	if !exists || task.OwnerID != ownerID {
		return ErrTaskNotFound
	}
	delete(s.tasks, id)
	return nil
}
