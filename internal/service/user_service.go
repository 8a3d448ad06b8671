package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/chepyr/go-todo-app/internal/models"
	"github.com/chepyr/go-todo-app/internal/store"
)

// ErrInvalidCredentials covers unknown email, inactive account, and wrong
// password alike, so a failed login never reveals which condition was hit.
var ErrInvalidCredentials = errors.New("invalid email or password")

const minPasswordLength = 8

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// UserService handles registration and authentication. Password hashing is
// delegated to bcrypt; hashes never leave this package except inside the
// User record.
type UserService struct {
	store store.UserStore
}

func NewUserService(s store.UserStore) *UserService {
	return &UserService{store: s}
}

func (s *UserService) Register(ctx context.Context, email, password, firstName, lastName string) (*models.User, error) {
	if !emailPattern.MatchString(email) {
		return nil, &models.ValidationError{Message: "Invalid email"}
	}
	if len(password) < minPasswordLength {
		return nil, &models.ValidationError{
			Message: fmt.Sprintf("Password must be at least %d characters long", minPasswordLength),
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &models.User{
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    firstName,
		LastName:     lastName,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.store.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.store.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (s *UserService) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return s.store.GetByID(ctx, id)
}
