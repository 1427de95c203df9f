// Package notify fans stored notifications out to live websocket
// connections. Delivery here is best-effort; the notifications table is the
// source of truth.
package notify

import (
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/gigboard-dev/gigboard/internal/models"
)

const writeWait = 10 * time.Second

// Hub tracks open connections per user. A user may hold several (multiple
// tabs); a push goes to all of them.
type Hub struct {
	clients map[uint]map[*websocket.Conn]bool
	mu      sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[uint]map[*websocket.Conn]bool),
	}
}

func (h *Hub) Register(userID uint, conn *websocket.Conn) {
	h.mu.Lock()
	if h.clients[userID] == nil {
		h.clients[userID] = make(map[*websocket.Conn]bool)
	}
	h.clients[userID][conn] = true
	h.mu.Unlock()
}

func (h *Hub) Unregister(userID uint, conn *websocket.Conn) {
	h.mu.Lock()

	if clients, exists := h.clients[userID]; exists {
		delete(clients, conn)

		if len(clients) == 0 {
			delete(h.clients, userID)
		}
	}

	h.mu.Unlock()
}

// Push sends a notification to every open connection userID has. Failed
// connections are dropped from the registry.
func (h *Hub) Push(userID uint, n models.Notification) {
	h.mu.RLock()
	clients, exists := h.clients[userID]
	if !exists || len(clients) == 0 {
		h.mu.RUnlock()
		return
	}

	clientsCopy := make([]*websocket.Conn, 0, len(clients))
	for conn := range clients {
		clientsCopy = append(clientsCopy, conn)
	}
	h.mu.RUnlock()

	for _, conn := range clientsCopy {
		if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
			log.Printf("Failed to set write deadline for notification push: %v", err)
			continue
		}

		err := conn.WriteJSON(map[string]interface{}{
			"type":         "notification",
			"notification": n,
		})

		if err != nil {
			log.Printf("Failed to push notification to user %d: %v", userID, err)
			h.Unregister(userID, conn)
			conn.Close()
		}
	}
}
