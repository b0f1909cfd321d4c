package handlers

import (
	"log"
	"net/http"
	"slices"

	"greenpatch/internal/feed"
	"greenpatch/internal/websocket"

	ws "github.com/gorilla/websocket"
)

func (s *Server) upgrader() *ws.Upgrader {
	return &ws.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" || len(s.AllowedOrigins) == 0 {
				return true
			}
			return slices.Contains(s.AllowedOrigins, "*") || slices.Contains(s.AllowedOrigins, origin)
		},
	}
}

// HandleWebSocket upgrades a signed-in client and streams feed events to it.
// The session token is checked by the auth middleware (?token= is accepted).
func (s *Server) HandleWebSocket() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := actingName(r)
		if name == "" {
			name = feed.DefaultAuthor
		}

		conn, err := s.upgrader().Upgrade(w, r, nil)
		if err != nil {
			log.Printf("WebSocket upgrade failed for %q: %v", name, err)
			// Note: Cannot write HTTP error after upgrade attempt
			return
		}

		client := websocket.NewClient(s.Hub, name, conn)
		client.Hub.Register <- client

		go client.WritePump()
		go client.ReadPump()
	}
}
