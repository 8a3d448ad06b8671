package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

/*
RequireAuth verifies the bearer token, resolves it to a live user through the
user service, and puts the user into the request context. Every failure mode
(missing header, bad signature, expired token, unknown or inactive user)
answers with the same 401.
*/
func (h *Handler) RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			sendError(w, "Missing Authorization header", http.StatusUnauthorized)
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		userID, err := h.Tokens.Verify(tokenString)
		if err != nil {
			sendError(w, "Invalid token", http.StatusUnauthorized)
			return
		}

		user, err := h.Users.GetByID(r.Context(), userID)
		if err != nil || !user.IsActive {
			sendError(w, "Invalid token", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, user)
		next(w, r.WithContext(ctx))
	}
}

// WithRequestID assigns an X-Request-ID when the client did not send one and
// echoes it on the response for log correlation.
func WithRequestID(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
			r.Header.Set("X-Request-ID", requestID)
		}
		w.Header().Set("X-Request-ID", requestID)
		next(w, r)
	}
}

// LogRequests writes one line per request in the form the rest of the server
// logs use.
func LogRequests(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Printf("%s %s from %s", r.Method, r.URL.Path, r.RemoteAddr)
		next(w, r)
	}
}
