package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"github.com/chepyr/go-todo-app/internal/auth"
	"github.com/chepyr/go-todo-app/internal/config"
	"github.com/chepyr/go-todo-app/internal/handlers"
	"github.com/chepyr/go-todo-app/internal/service"
	"github.com/chepyr/go-todo-app/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	dbConn := initDB(cfg)
	defer func() {
		if err := dbConn.Close(); err != nil {
			log.Printf("Error closing database connection: %v", err)
		}
	}()

	handler := initHandler(cfg, dbConn)
	initRoutes(handler)

	server := &http.Server{Addr: ":" + cfg.ServerPort}
	startServer(server, cfg)
}

func initDB(cfg *config.Config) *sql.DB {
	dbConn, err := store.Connect(cfg.DatabaseDriver, cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := store.InitSchema(context.Background(), dbConn, cfg.DatabaseDriver); err != nil {
		log.Fatalf("Failed to initialize schema: %v", err)
	}
	return dbConn
}

func initHandler(cfg *config.Config, dbConn *sql.DB) *handlers.Handler {
	return &handlers.Handler{
		Users:  service.NewUserService(store.NewUserRepository(dbConn)),
		Tasks:  service.NewTaskService(store.NewTaskRepository(dbConn)),
		Tokens: auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL),
		// limit failed and successful auth attempts alike, per client IP
		RateLimiter: handlers.NewFixedWindowLimiter(cfg.AuthRateLimit, cfg.AuthRateWindow),
		Hub:         handlers.NewEventHub(),
	}
}

func initRoutes(h *handlers.Handler) {
	http.HandleFunc("/auth/register", wrap(h.Register))
	http.HandleFunc("/auth/login", wrap(h.Login))
	http.HandleFunc("/auth/logout", wrap(h.Logout))
	http.HandleFunc("/tasks", wrap(h.RequireAuth(h.HandleTasks)))
	http.HandleFunc("/tasks/", wrap(h.RequireAuth(h.HandleTaskByID)))
	http.HandleFunc("/ws", wrap(h.RequireAuth(h.HandleWS)))
}

func wrap(next http.HandlerFunc) http.HandlerFunc {
	return handlers.WithRequestID(handlers.LogRequests(next))
}

func startServer(server *http.Server, cfg *config.Config) {
	log.Printf("Starting server on :%s", cfg.ServerPort)

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}
	log.Println("Server stopped")
}
