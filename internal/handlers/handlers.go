package handlers

import (
	"encoding/json"
	"mime"
	"net/http"

	"github.com/chepyr/go-todo-app/internal/auth"
	"github.com/chepyr/go-todo-app/internal/models"
	"github.com/chepyr/go-todo-app/internal/service"
)

const maxBodyBytes = 1 << 20 // 1MB

type Handler struct {
	Users       *service.UserService
	Tasks       *service.TaskService
	Tokens      *auth.TokenManager
	RateLimiter Limiter
	Hub         *EventHub
}

type contextKey string

const userContextKey contextKey = "current_user"

// userFrom returns the authenticated user placed in the request context by
// RequireAuth.
func userFrom(r *http.Request) (*models.User, bool) {
	user, ok := r.Context().Value(userContextKey).(*models.User)
	return user, ok
}

type errorResponse struct {
	Error string `json:"error"`
}

func sendError(w http.ResponseWriter, message string, status int) {
	sendJSON(w, status, errorResponse{Error: message})
}

func sendJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func isJSONContentType(r *http.Request) bool {
	ct := r.Header.Get("Content-Type")
	if ct == "" {
		return true
	}
	mediaType, _, err := mime.ParseMediaType(ct)
	return err == nil && mediaType == "application/json"
}
