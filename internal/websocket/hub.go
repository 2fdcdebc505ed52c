package websocket

import (
	"encoding/json"
	"sync"
)

// Event tells connected clients that a table changed; they respond by
// re-fetching the daily snapshot. No incremental patching.
type Event struct {
	Table  string `json:"table"`
	Action string `json:"action"`
}

// Tick carries the active session's elapsed seconds, pushed once per second
// while tracking.
type Tick struct {
	SessionID string `json:"session_id"`
	Elapsed   int64  `json:"elapsed_seconds"`
}

// Hub fans messages out to every connected client. The system is single-user,
// so there is one flat client set rather than per-user registries.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[*Client]struct{}),
	}
}

func (h *Hub) Register(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[client] = struct{}{}
}

func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, client)
}

func (h *Hub) BroadcastChange(event Event) {
	h.broadcast(map[string]any{"type": "change", "change": event})
}

func (h *Hub) BroadcastTick(tick Tick) {
	h.broadcast(map[string]any{"type": "tick", "tick": tick})
}

func (h *Hub) broadcast(message map[string]any) {
	payload, _ := json.Marshal(message)
	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.clients {
		select {
		case client.send <- payload:
		default:
		}
	}
}
