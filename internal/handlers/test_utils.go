package handlers

import (
	"context"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/chepyr/go-todo-app/internal/auth"
	"github.com/chepyr/go-todo-app/internal/models"
	"github.com/chepyr/go-todo-app/internal/service"
	"github.com/chepyr/go-todo-app/internal/store"
)

const testJWTSecret = "test-secret-32-bytes-long-1234567890"

type MockUserStore struct {
	mutex     sync.Mutex
	users     map[string]*models.User
	nextID    int64
	createErr error
}

func NewMockUserStore() *MockUserStore {
	return &MockUserStore{users: make(map[string]*models.User), nextID: 1}
}

func (m *MockUserStore) Create(ctx context.Context, user *models.User) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.createErr != nil {
		return m.createErr
	}
	if _, exists := m.users[user.Email]; exists {
		return store.ErrEmailTaken
	}
	user.ID = m.nextID
	m.nextID++
	m.users[user.Email] = user
	return nil
}

func (m *MockUserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	user, exists := m.users[email]
	if !exists {
		return nil, store.ErrUserNotFound
	}
	return user, nil
}

func (m *MockUserStore) GetByID(ctx context.Context, id int64) (*models.User, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	for _, user := range m.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, store.ErrUserNotFound
}

// SetupMockUser seeds the store with one active user and returns the record.
func SetupMockUser(userStore *MockUserStore, email, password string) *models.User {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	now := time.Now().UTC()
	user := &models.User{
		Email:        email,
		PasswordHash: string(hash),
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	_ = userStore.Create(context.Background(), user)
	return user
}

// newTestHandler wires a Handler over in-memory stores, the way the server
// main wires one over SQL repositories.
func newTestHandler(userStore *MockUserStore) *Handler {
	return &Handler{
		Users:  service.NewUserService(userStore),
		Tasks:  service.NewTaskService(store.NewMemoryTaskStore()),
		Tokens: auth.NewTokenManager(testJWTSecret, time.Hour),
	}
}
