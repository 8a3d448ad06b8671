package models

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	MaxTitleLength       = 200
	MaxDescriptionLength = 1000
)

// ValidationError reports a rejected field value. The message is safe to show
// to the end user.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

type Task struct {
	ID          int64     `json:"id"`
	OwnerID     int64     `json:"owner_id,omitempty"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	IsComplete  bool      `json:"is_complete"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ValidateTitle trims surrounding whitespace and checks the length bounds.
// Lengths are counted in characters, not bytes.
func ValidateTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", &ValidationError{Message: "Title cannot be empty"}
	}
	if n := utf8.RuneCountInString(title); n > MaxTitleLength {
		return "", &ValidationError{
			Message: fmt.Sprintf("Title must be %d characters or less (got %d)", MaxTitleLength, n),
		}
	}
	return title, nil
}

func ValidateDescription(description string) error {
	if n := utf8.RuneCountInString(description); n > MaxDescriptionLength {
		return &ValidationError{
			Message: fmt.Sprintf("Description must be %d characters or less (got %d)", MaxDescriptionLength, n),
		}
	}
	return nil
}
