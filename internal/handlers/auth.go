package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/chepyr/go-todo-app/internal/models"
	"github.com/chepyr/go-todo-app/internal/service"
	"github.com/chepyr/go-todo-app/internal/store"
)

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		sendError(w, "Use POST method", http.StatusMethodNotAllowed)
		return
	}

	clientIP := r.RemoteAddr
	if h.RateLimiter != nil && !h.RateLimiter.Allow(clientIP) {
		log.Printf("Rate limit exceeded for IP: %s", clientIP)
		sendError(w, "Too many register attempts. Please try again later.", http.StatusTooManyRequests)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	var input struct {
		Email     string `json:"email"`
		Password  string `json:"password"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		sendError(w, "Bad JSON", http.StatusBadRequest)
		return
	}

	user, err := h.Users.Register(r.Context(), input.Email, input.Password, input.FirstName, input.LastName)
	if err != nil {
		var validationErr *models.ValidationError
		switch {
		case errors.As(err, &validationErr):
			sendError(w, validationErr.Message, http.StatusBadRequest)
		case errors.Is(err, store.ErrEmailTaken):
			sendError(w, "Email already registered", http.StatusConflict)
		default:
			log.Printf("Error registering user: %v", err)
			sendError(w, "Cannot save user", http.StatusInternalServerError)
		}
		return
	}

	log.Printf("User registered: %s", user.Email)
	sendJSON(w, http.StatusCreated, user)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		sendError(w, "Use POST method for login", http.StatusMethodNotAllowed)
		return
	}

	clientIP := r.RemoteAddr
	if h.RateLimiter != nil && !h.RateLimiter.Allow(clientIP) {
		log.Printf("Rate limit exceeded for IP: %s", clientIP)
		sendError(w, "Too many login attempts. Please try again later.", http.StatusTooManyRequests)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		sendError(w, "Bad JSON", http.StatusBadRequest)
		return
	}

	user, err := h.Users.Authenticate(r.Context(), input.Email, input.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			sendError(w, "Invalid email or password", http.StatusUnauthorized)
			return
		}
		log.Printf("Error authenticating %s: %v", input.Email, err)
		sendError(w, "Cannot authenticate", http.StatusInternalServerError)
		return
	}

	token, err := h.Tokens.Issue(user.ID, 0)
	if err != nil {
		log.Printf("Error generating token: %v", err)
		sendError(w, "Cannot create token", http.StatusInternalServerError)
		return
	}

	log.Printf("User logged in: %s", user.Email)
	sendJSON(w, http.StatusOK, map[string]any{
		"access_token": token,
		"token_type":   "bearer",
	})
}

// Logout exists for API symmetry. Tokens are stateless, so there is nothing
// to invalidate server-side.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		sendError(w, "Use POST method", http.StatusMethodNotAllowed)
		return
	}
	sendJSON(w, http.StatusOK, map[string]string{"message": "Successfully logged out"})
}
