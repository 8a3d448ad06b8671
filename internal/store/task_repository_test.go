package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/chepyr/go-todo-app/internal/models"
)

func insertTestUser(t *testing.T, db *sql.DB, email string) int64 {
	t.Helper()
	repo := NewUserRepository(db)
	now := time.Now().UTC()
	user := &models.User{
		Email:        email,
		PasswordHash: "not-a-real-hash",
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := repo.Create(context.Background(), user); err != nil {
		t.Fatalf("insert user: %v", err)
	}
	return user.ID
}

func TestTaskRepository_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	ownerID := insertTestUser(t, db, "owner@example.com")
	repo := NewTaskRepository(db)

	now := time.Now().UTC()
	task := &models.Task{
		OwnerID:     ownerID,
		Title:       "Buy groceries",
		Description: "milk, bread, eggs",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := repo.Create(ctx, task); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if task.ID < 1 {
		t.Fatalf("Expected positive id, got %d", task.ID)
	}

	got, err := repo.GetByID(ctx, task.ID, ownerID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Title != task.Title || got.Description != task.Description {
		t.Errorf("Round trip mismatch: got %+v", got)
	}
	if got.IsComplete {
		t.Error("New task should not be complete")
	}
}

func TestTaskRepository_OwnerScoping(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	alice := insertTestUser(t, db, "alice@example.com")
	bob := insertTestUser(t, db, "bob@example.com")
	repo := NewTaskRepository(db)

	now := time.Now().UTC()
	task := &models.Task{OwnerID: alice, Title: "Secret", CreatedAt: now, UpdatedAt: now}
	if err := repo.Create(ctx, task); err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Bob addressing Alice's task id must get the same answer as a missing id.
	if _, err := repo.GetByID(ctx, task.ID, bob); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("GetByID: expected ErrTaskNotFound, got %v", err)
	}
	if err := repo.Delete(ctx, task.ID, bob); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("Delete: expected ErrTaskNotFound, got %v", err)
	}
	hijack := &models.Task{ID: task.ID, OwnerID: bob, Title: "Hijack", UpdatedAt: now}
	if err := repo.Update(ctx, hijack); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("Update: expected ErrTaskNotFound, got %v", err)
	}

	tasks, err := repo.ListByOwner(ctx, bob)
	if err != nil {
		t.Fatalf("ListByOwner: %v", err)
	}
	if len(tasks) != 0 {
		t.Errorf("Expected no tasks for bob, got %d", len(tasks))
	}

	// The task is untouched for its owner.
	got, err := repo.GetByID(ctx, task.ID, alice)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Title != "Secret" {
		t.Errorf("Expected title %q, got %q", "Secret", got.Title)
	}
}

func TestTaskRepository_ListOrderedByID(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	ownerID := insertTestUser(t, db, "owner@example.com")
	repo := NewTaskRepository(db)

	now := time.Now().UTC()
	for _, title := range []string{"first", "second", "third"} {
		task := &models.Task{OwnerID: ownerID, Title: title, CreatedAt: now, UpdatedAt: now}
		if err := repo.Create(ctx, task); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	tasks, err := repo.ListByOwner(ctx, ownerID)
	if err != nil {
		t.Fatalf("ListByOwner: %v", err)
	}
	if len(tasks) != 3 {
		t.Fatalf("Expected 3 tasks, got %d", len(tasks))
	}
	for i := 1; i < len(tasks); i++ {
		if tasks[i].ID <= tasks[i-1].ID {
			t.Errorf("Expected ascending ids, got %d after %d", tasks[i].ID, tasks[i-1].ID)
		}
	}
}

func TestTaskRepository_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	ownerID := insertTestUser(t, db, "owner@example.com")
	repo := NewTaskRepository(db)

	now := time.Now().UTC()
	task := &models.Task{OwnerID: ownerID, Title: "Old", Description: "old", CreatedAt: now, UpdatedAt: now}
	if err := repo.Create(ctx, task); err != nil {
		t.Fatalf("Create: %v", err)
	}

	task.Title = "New"
	task.IsComplete = true
	task.UpdatedAt = time.Now().UTC()
	if err := repo.Update(ctx, task); err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, err := repo.GetByID(ctx, task.ID, ownerID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Title != "New" || !got.IsComplete {
		t.Errorf("Update not persisted: %+v", got)
	}

	if err := repo.Delete(ctx, task.ID, ownerID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := repo.GetByID(ctx, task.ID, ownerID); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("Expected ErrTaskNotFound after delete, got %v", err)
	}
	// Deleting again reports not found.
	if err := repo.Delete(ctx, task.ID, ownerID); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("Expected ErrTaskNotFound on second delete, got %v", err)
	}
}
