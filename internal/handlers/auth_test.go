package handlers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestRegister(t *testing.T) {
	tests := []struct {
		name           string
		method         string
		body           string
		seedEmail      string
		rateLimitAllow bool
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "Successful registration",
			method:         http.MethodPost,
			body:           `{"email": "test@example.com", "password": "strongpass", "first_name": "Test"}`,
			rateLimitAllow: true,
			expectedStatus: http.StatusCreated,
			expectedBody:   `"email":"test@example.com"`,
		},
		{
			name:           "Invalid method (GET instead of POST)",
			method:         http.MethodGet,
			body:           ``,
			rateLimitAllow: true,
			expectedStatus: http.StatusMethodNotAllowed,
			expectedBody:   `"error":"Use POST method"`,
		},
		{
			name:           "Invalid JSON",
			method:         http.MethodPost,
			body:           `{"email": "test@example.com", "password": }`,
			rateLimitAllow: true,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error":"Bad JSON"`,
		},
		{
			name:           "Invalid email format",
			method:         http.MethodPost,
			body:           `{"email": "invalid", "password": "strongpass"}`,
			rateLimitAllow: true,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error":"Invalid email"`,
		},
		{
			name:           "Password too short",
			method:         http.MethodPost,
			body:           `{"email": "test@example.com", "password": "abc"}`,
			rateLimitAllow: true,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error":"Password must be at least 8 characters long"`,
		},
		{
			name:           "Email already registered",
			method:         http.MethodPost,
			body:           `{"email": "taken@example.com", "password": "strongpass"}`,
			seedEmail:      "taken@example.com",
			rateLimitAllow: true,
			expectedStatus: http.StatusConflict,
			expectedBody:   `"error":"Email already registered"`,
		},
		{
			name:           "Rate limit exceeded",
			method:         http.MethodPost,
			body:           `{"email": "test@example.com", "password": "strongpass"}`,
			rateLimitAllow: false,
			expectedStatus: http.StatusTooManyRequests,
			expectedBody:   `"error":"Too many register attempts`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userStore := NewMockUserStore()
			if tt.seedEmail != "" {
				SetupMockUser(userStore, tt.seedEmail, "strongpass")
			}

			handler := newTestHandler(userStore)
			rl := NewFixedWindowLimiter(5, time.Minute)
			if !tt.rateLimitAllow {
				for i := 0; i < 5; i++ {
					rl.Allow("192.168.1.1:1234")
				}
			}
			handler.RateLimiter = rl

			req := httptest.NewRequest(tt.method, "/auth/register", bytes.NewBufferString(tt.body))
			req.RemoteAddr = "192.168.1.1:1234"
			rr := httptest.NewRecorder()

			handler.Register(rr, req)

			if rr.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d, body: %s", tt.expectedStatus, rr.Code, rr.Body.String())
			}
			if body := strings.TrimSpace(rr.Body.String()); !strings.Contains(body, tt.expectedBody) {
				t.Errorf("Expected body to contain %q, got %q", tt.expectedBody, body)
			}
		})
	}
}

// The password hash must never show up in the registration response.
func TestRegister_ResponseOmitsPasswordHash(t *testing.T) {
	handler := newTestHandler(NewMockUserStore())

	body := `{"email": "test@example.com", "password": "strongpass"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewBufferString(body))
	rr := httptest.NewRecorder()

	handler.Register(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d", rr.Code)
	}
	response := rr.Body.String()
	if strings.Contains(response, "password") || strings.Contains(response, "$2a$") {
		t.Errorf("Response leaks credential material: %s", response)
	}
	if !strings.Contains(response, `"is_active":true`) {
		t.Errorf("Expected is_active in response, got %s", response)
	}
}

func TestLogin(t *testing.T) {
	tests := []struct {
		name           string
		method         string
		body           string
		seedUser       bool
		inactive       bool
		rateLimitAllow bool
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "Success",
			method:         http.MethodPost,
			body:           `{"email": "test@example.com", "password": "strongpass"}`,
			seedUser:       true,
			rateLimitAllow: true,
			expectedStatus: http.StatusOK,
			expectedBody:   `"token_type":"bearer"`,
		},
		{
			name:           "Invalid method",
			method:         http.MethodGet,
			body:           ``,
			rateLimitAllow: true,
			expectedStatus: http.StatusMethodNotAllowed,
			expectedBody:   `"error":"Use POST method for login"`,
		},
		{
			name:           "Invalid JSON",
			method:         http.MethodPost,
			body:           `{"email": "test@example.com", "password": }`,
			rateLimitAllow: true,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error":"Bad JSON"`,
		},
		{
			name:           "User not found",
			method:         http.MethodPost,
			body:           `{"email": "nobody@example.com", "password": "strongpass"}`,
			rateLimitAllow: true,
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `"error":"Invalid email or password"`,
		},
		{
			name:           "Wrong password",
			method:         http.MethodPost,
			body:           `{"email": "test@example.com", "password": "wrongpass"}`,
			seedUser:       true,
			rateLimitAllow: true,
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `"error":"Invalid email or password"`,
		},
		{
			name:           "Inactive user",
			method:         http.MethodPost,
			body:           `{"email": "test@example.com", "password": "strongpass"}`,
			seedUser:       true,
			inactive:       true,
			rateLimitAllow: true,
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `"error":"Invalid email or password"`,
		},
		{
			name:           "Rate limit exceeded",
			method:         http.MethodPost,
			body:           `{"email": "test@example.com", "password": "strongpass"}`,
			rateLimitAllow: false,
			expectedStatus: http.StatusTooManyRequests,
			expectedBody:   `"error":"Too many login attempts`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userStore := NewMockUserStore()
			if tt.seedUser {
				user := SetupMockUser(userStore, "test@example.com", "strongpass")
				if tt.inactive {
					user.IsActive = false
				}
			}

			handler := newTestHandler(userStore)
			rl := NewFixedWindowLimiter(5, time.Minute)
			if !tt.rateLimitAllow {
				for i := 0; i < 5; i++ {
					rl.Allow("192.168.1.1:1234")
				}
			}
			handler.RateLimiter = rl

			req := httptest.NewRequest(tt.method, "/auth/login", bytes.NewBufferString(tt.body))
			req.RemoteAddr = "192.168.1.1:1234"
			rr := httptest.NewRecorder()

			handler.Login(rr, req)

			if rr.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d, body: %s", tt.expectedStatus, rr.Code, rr.Body.String())
			}
			if body := strings.TrimSpace(rr.Body.String()); !strings.Contains(body, tt.expectedBody) {
				t.Errorf("Expected body to contain %q, got %q", tt.expectedBody, body)
			}
		})
	}
}

func TestLoginConcurrentRateLimit(t *testing.T) {
	userStore := NewMockUserStore()
	SetupMockUser(userStore, "test@example.com", "strongpass")
	handler := newTestHandler(userStore)
	handler.RateLimiter = NewFixedWindowLimiter(3, time.Minute)

	var wg sync.WaitGroup
	results := make([]int, 5)
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"email": "test@example.com", "password": "strongpass"}`))
			req.RemoteAddr = "192.168.1.1:1234"
			rr := httptest.NewRecorder()
			handler.Login(rr, req)
			results[i] = rr.Code
		}(i)
	}
	wg.Wait()

	allowed := 0
	for _, code := range results {
		if code == http.StatusOK {
			allowed++
		}
	}
	if allowed > 3 {
		t.Errorf("Expected at most 3 successes, got %d", allowed)
	}
}

func TestLogout(t *testing.T) {
	handler := newTestHandler(NewMockUserStore())

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	rr := httptest.NewRecorder()
	handler.Logout(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("Expected 200, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "Successfully logged out") {
		t.Errorf("Unexpected body: %s", rr.Body.String())
	}
}
