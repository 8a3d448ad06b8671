package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/chepyr/go-todo-app/internal/models"
)

// EventHub fans task change events out to the owner's open WebSocket
// connections. Connections are grouped by user id so one user's events never
// reach another user's sockets.
type EventHub struct {
	mutex       sync.Mutex
	connections map[int64]map[*websocket.Conn]bool
}

func NewEventHub() *EventHub {
	return &EventHub{connections: make(map[int64]map[*websocket.Conn]bool)}
}

func (hub *EventHub) add(ownerID int64, conn *websocket.Conn) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	if hub.connections[ownerID] == nil {
		hub.connections[ownerID] = make(map[*websocket.Conn]bool)
	}
	hub.connections[ownerID][conn] = true
}

func (hub *EventHub) remove(ownerID int64, conn *websocket.Conn) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	delete(hub.connections[ownerID], conn)
}

// Broadcast sends a task event to every connection the owner has open.
// Connections that fail to write are dropped.
func (hub *EventHub) Broadcast(ownerID int64, event string, task *models.Task) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()

	conns, exists := hub.connections[ownerID]
	if !exists {
		return
	}

	message, err := json.Marshal(map[string]any{
		"event":       event,
		"task_id":     task.ID,
		"title":       task.Title,
		"is_complete": task.IsComplete,
	})
	if err != nil {
		log.Printf("Failed to marshal task event: %v", err)
		return
	}

	for conn := range conns {
		if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
			log.Printf("Failed to send WebSocket message: %v", err)
			delete(conns, conn)
			conn.Close()
		}
	}
}

// HandleWS upgrades the connection and streams the caller's task events until
// the client goes away. Runs behind RequireAuth.
func (h *Handler) HandleWS(w http.ResponseWriter, r *http.Request) {
	user, ok := userFrom(r)
	if !ok {
		sendError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			return true // tighten for production deployments
		},
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	h.Hub.add(user.ID, conn)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			h.Hub.remove(user.ID, conn)
			conn.Close()
			return
		}
		// incoming messages are ignored; the stream is one-way
	}
}
