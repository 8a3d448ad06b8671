package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/chepyr/go-todo-app/internal/models"
	"github.com/chepyr/go-todo-app/internal/store"
)

/*
handles routes:
- GET /tasks - list the caller's tasks
- POST /tasks - create a new task for the caller
*/
func (h *Handler) HandleTasks(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.listTasks(w, r)
	case http.MethodPost:
		h.createTask(w, r)
	default:
		sendError(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *Handler) listTasks(w http.ResponseWriter, r *http.Request) {
	user, ok := userFrom(r)
	if !ok {
		sendError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	tasks, err := h.Tasks.List(r.Context(), user.ID)
	if err != nil {
		log.Printf("Error listing tasks for user %d: %v", user.ID, err)
		sendError(w, "Failed to list tasks", http.StatusInternalServerError)
		return
	}
	sendJSON(w, http.StatusOK, tasks)
}

func (h *Handler) createTask(w http.ResponseWriter, r *http.Request) {
	user, ok := userFrom(r)
	if !ok {
		sendError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	if !isJSONContentType(r) {
		sendError(w, "Content-Type must be application/json", http.StatusBadRequest)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	var input struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		sendError(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}

	task, err := h.Tasks.Create(r.Context(), user.ID, input.Title, input.Description)
	if err != nil {
		var validationErr *models.ValidationError
		if errors.As(err, &validationErr) {
			sendError(w, validationErr.Message, http.StatusBadRequest)
			return
		}
		log.Printf("Error creating task for user %d: %v", user.ID, err)
		sendError(w, "Failed to create task", http.StatusInternalServerError)
		return
	}

	if h.Hub != nil {
		h.Hub.Broadcast(user.ID, "task_created", task)
	}
	w.Header().Set("Location", "/tasks/"+strconv.FormatInt(task.ID, 10))
	sendJSON(w, http.StatusCreated, task)
}

/*
routes:
- GET /tasks/{id},
- PUT/PATCH /tasks/{id},
- DELETE /tasks/{id}
*/
func (h *Handler) HandleTaskByID(w http.ResponseWriter, r *http.Request) {
	taskIDStr := r.URL.Path[len("/tasks/"):]
	if taskIDStr == "" {
		sendError(w, "task id is required", http.StatusBadRequest)
		return
	}
	taskID, err := strconv.ParseInt(taskIDStr, 10, 64)
	if err != nil || taskID < 1 {
		sendError(w, "task id must be a positive integer", http.StatusBadRequest)
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.getTaskByID(w, r, taskID)
	case http.MethodPut, http.MethodPatch:
		h.updateTaskByID(w, r, taskID)
	case http.MethodDelete:
		h.deleteTaskByID(w, r, taskID)
	default:
		sendError(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *Handler) getTaskByID(w http.ResponseWriter, r *http.Request, taskID int64) {
	user, ok := userFrom(r)
	if !ok {
		sendError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	task, err := h.Tasks.Get(r.Context(), user.ID, taskID)
	if err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			sendError(w, "Task not found", http.StatusNotFound)
			return
		}
		log.Printf("Error fetching task %d: %v", taskID, err)
		sendError(w, "Failed to fetch task", http.StatusInternalServerError)
		return
	}
	sendJSON(w, http.StatusOK, task)
}

func (h *Handler) updateTaskByID(w http.ResponseWriter, r *http.Request, taskID int64) {
	user, ok := userFrom(r)
	if !ok {
		sendError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	if !isJSONContentType(r) {
		sendError(w, "Content-Type must be application/json", http.StatusBadRequest)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	var input struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
		IsComplete  *bool   `json:"is_complete"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		sendError(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}

	var task *models.Task
	var err error

	if input.Title != nil || input.Description != nil {
		task, err = h.Tasks.Update(r.Context(), user.ID, taskID, input.Title, input.Description)
	}
	if err == nil && input.IsComplete != nil {
		task, err = h.Tasks.SetComplete(r.Context(), user.ID, taskID, *input.IsComplete)
	}
	if err == nil && task == nil {
		// Empty update body: return the current state.
		task, err = h.Tasks.Get(r.Context(), user.ID, taskID)
	}

	if err != nil {
		var validationErr *models.ValidationError
		switch {
		case errors.Is(err, store.ErrTaskNotFound):
			sendError(w, "Task not found", http.StatusNotFound)
		case errors.As(err, &validationErr):
			sendError(w, validationErr.Message, http.StatusBadRequest)
		default:
			log.Printf("Error updating task %d: %v", taskID, err)
			sendError(w, "Failed to update task", http.StatusInternalServerError)
		}
		return
	}

	if h.Hub != nil {
		h.Hub.Broadcast(user.ID, "task_updated", task)
	}
	sendJSON(w, http.StatusOK, task)
}

func (h *Handler) deleteTaskByID(w http.ResponseWriter, r *http.Request, taskID int64) {
	user, ok := userFrom(r)
	if !ok {
		sendError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if err := h.Tasks.Delete(r.Context(), user.ID, taskID); err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			sendError(w, "Task not found", http.StatusNotFound)
			return
		}
		log.Printf("Error deleting task %d: %v", taskID, err)
		sendError(w, "Failed to delete task", http.StatusInternalServerError)
		return
	}

	if h.Hub != nil {
		h.Hub.Broadcast(user.ID, "task_deleted", &models.Task{ID: taskID, OwnerID: user.ID})
	}
	w.WriteHeader(http.StatusNoContent)
}
