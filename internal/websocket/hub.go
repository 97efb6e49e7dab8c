package websocket

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/xelth-com/ploegwissel/internal/scoring"
)

// Event types pushed to tablets
const (
	EventState = "STATE"
	EventSaved = "SAVED"
)

// StateEvent follows every applied change
type StateEvent struct {
	Type        string             `json:"type"`
	Score       scoring.Completion `json:"score"`
	CompanyName string             `json:"companyName,omitempty"`
}

// SavedEvent follows every successful autosave
type SavedEvent struct {
	Type string    `json:"type"`
	At   time.Time `json:"at"`
}

// Hub maintains the set of active clients and broadcasts messages
type Hub struct {
	// Registered clients map: client ID -> Client
	clients map[string]*Client

	register   chan *Client
	unregister chan *Client

	// closed when Run returns
	done chan struct{}

	// Mutex for thread-safe access to clients map
	mu sync.RWMutex
}

// NewHub creates a new Hub instance
func NewHub() *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[string]*Client),
		done:       make(chan struct{}),
	}
}

// Run starts the hub's main loop. It returns when ctx is done, after
// disconnecting every client.
func (h *Hub) Run(ctx context.Context) error {
	defer close(h.done)
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.ID] = client
			h.mu.Unlock()
			log.Printf("📱 Tablet connected: %s", client.ID)

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client.ID]; ok {
				delete(h.clients, client.ID)
				close(client.send)
				log.Printf("📴 Tablet disconnected: %s", client.ID)
			}
			h.mu.Unlock()

		case <-ctx.Done():
			h.mu.Lock()
			for id, client := range h.clients {
				close(client.send)
				delete(h.clients, id)
			}
			h.mu.Unlock()
			return nil
		}
	}
}

// Count returns the number of connected clients
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Broadcast sends message to every client whose buffer has room and
// returns how many received it
func (h *Hub) Broadcast(message interface{}) int {
	jsonMsg, err := json.Marshal(message)
	if err != nil {
		log.Printf("Error marshaling message: %v", err)
		return 0
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	sent := 0
	for _, client := range h.clients {
		select {
		case client.send <- jsonMsg:
			sent++
		default:
			// Buffer full or client dead
		}
	}
	return sent
}

// PublishState announces a new completion score
func (h *Hub) PublishState(score scoring.Completion, companyName string) {
	h.Broadcast(StateEvent{Type: EventState, Score: score, CompanyName: companyName})
}

// PublishSaved announces a successful autosave
func (h *Hub) PublishSaved(at time.Time) {
	h.Broadcast(SavedEvent{Type: EventSaved, At: at})
}
