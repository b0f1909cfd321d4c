package websocket

import (
	"encoding/json"
	"log"
	"sync"

	"greenpatch/internal/models"
)

// MessageToSend defines the structure for sending a message to a specific user.
type MessageToSend struct {
	TargetName string
	Payload    []byte
}

// Notification tells a post author that someone engaged with their post.
type Notification struct {
	Type   string `json:"type"`
	Event  string `json:"event"`
	PostID int64  `json:"postId"`
	From   string `json:"from"`
}

// Hub maintains the set of active clients and broadcasts feed events.
type Hub struct {
	// Registered clients. Maps display name to a set of active client connections.
	Clients map[string]map[*Client]bool

	// Outbound feed events for every client.
	Broadcast chan []byte

	// Channel for sending messages to specific users.
	SendDirect chan *MessageToSend

	// Register requests from the clients.
	Register chan *Client

	// Unregister requests from clients.
	Unregister chan *Client

	done chan struct{}
	once sync.Once

	// Mutex to protect concurrent access to the clients map.
	mu sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		Broadcast:  make(chan []byte, 256),
		SendDirect: make(chan *MessageToSend, 64),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		Clients:    make(map[string]map[*Client]bool),
		done:       make(chan struct{}),
	}
}

// Run starts the hub's processing loop. It returns after Close.
func (h *Hub) Run() {
	log.Println("WebSocket Hub started.")
	for {
		select {
		case <-h.done:
			h.mu.Lock()
			for name, clients := range h.Clients {
				for client := range clients {
					close(client.Send)
				}
				delete(h.Clients, name)
			}
			h.mu.Unlock()
			log.Println("WebSocket Hub stopped.")
			return

		case client := <-h.Register:
			h.mu.Lock()
			if _, ok := h.Clients[client.Name]; !ok {
				h.Clients[client.Name] = make(map[*Client]bool)
			}
			h.Clients[client.Name][client] = true
			log.Printf("WebSocket Client %s registered for %q. Total connections: %d", client.ID, client.Name, len(h.Clients[client.Name]))
			h.mu.Unlock()

		case client := <-h.Unregister:
			h.mu.Lock()
			if clients, ok := h.Clients[client.Name]; ok {
				if _, clientOk := clients[client]; clientOk {
					delete(clients, client)
					close(client.Send)
					if len(clients) == 0 {
						delete(h.Clients, client.Name)
					}
					log.Printf("WebSocket Client %s unregistered for %q. Remaining connections: %d", client.ID, client.Name, len(clients))
				}
			}
			h.mu.Unlock()

		case message := <-h.Broadcast:
			h.mu.RLock()
			for _, clients := range h.Clients {
				for client := range clients {
					select {
					case client.Send <- message:
					default:
						log.Printf("Broadcast send buffer full for client %s", client.ID)
					}
				}
			}
			h.mu.RUnlock()

		case direct := <-h.SendDirect:
			h.mu.RLock()
			for client := range h.Clients[direct.TargetName] {
				select {
				case client.Send <- direct.Payload:
				default:
					log.Printf("Send channel full for client %s. Message dropped.", client.ID)
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Close stops Run and closes every client's send channel.
func (h *Hub) Close() {
	h.once.Do(func() { close(h.done) })
}

// ConnectionCount returns the number of live connections.
func (h *Hub) ConnectionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	n := 0
	for _, clients := range h.Clients {
		n += len(clients)
	}
	return n
}

// Publish queues a feed event for every client without blocking. When the
// event is someone else's engagement with a post, its author also gets a
// notification.
func (h *Hub) Publish(event models.FeedEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		log.Printf("WebSocket Hub: failed to encode %s event: %v", event.Type, err)
		return
	}
	select {
	case h.Broadcast <- payload:
	default:
		log.Printf("WebSocket Hub: broadcast queue full, dropping %s event", event.Type)
	}

	if author, ok := notifyAuthor(event); ok {
		note, _ := json.Marshal(Notification{Type: "notification", Event: event.Type, PostID: event.PostID, From: event.Actor})
		h.SendDirectMessage(author, note)
	}
}

func notifyAuthor(event models.FeedEvent) (string, bool) {
	if event.Type != models.EventPostUpdated || event.Post == nil || event.Actor == "" {
		return "", false
	}
	if event.Actor == event.Post.User {
		return "", false
	}
	return event.Post.User, true
}

// SendDirectMessage queues payload for every connection of the named user.
// The message is dropped when the queue is full.
func (h *Hub) SendDirectMessage(targetName string, payload []byte) {
	select {
	case h.SendDirect <- &MessageToSend{TargetName: targetName, Payload: payload}:
	default:
		log.Printf("WebSocket Hub: direct queue full, dropping message for %q", targetName)
	}
}
