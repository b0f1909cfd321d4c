package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"greenpatch/internal/engine"
	"greenpatch/internal/media"
	"greenpatch/internal/middleware"
	"greenpatch/internal/utils"
	"greenpatch/internal/websocket"
)

// Server holds all HTTP dependencies. Hub and Media may be nil, which
// disables the websocket and upload routes.
type Server struct {
	Engine         *engine.Engine
	Tokens         *middleware.TokenIssuer
	Hub            *websocket.Hub
	Media          media.Uploader
	Metrics        *utils.MetricsCollector
	AllowedOrigins []string
}

// NewServer creates a new Server instance with the given components
func NewServer(e *engine.Engine, tokens *middleware.TokenIssuer, hub *websocket.Hub, uploader media.Uploader, allowedOrigins []string) *Server {
	return &Server{
		Engine:         e,
		Tokens:         tokens,
		Hub:            hub,
		Media:          uploader,
		Metrics:        e.Metrics(),
		AllowedOrigins: allowedOrigins,
	}
}

// Routes registers every endpoint on a new mux.
func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", s.HandleHealth())
	mux.HandleFunc("/session", s.HandleSession())

	// Community feed
	mux.HandleFunc("/post", s.HandlePost())
	mux.HandleFunc("/post/vote", s.HandlePostVote())
	mux.HandleFunc("/post/react", s.HandlePostReact())
	mux.HandleFunc("/post/award", s.HandlePostAward())
	mux.HandleFunc("/comment", s.HandleComment())
	mux.HandleFunc("/comment/vote", s.HandleCommentVote())
	mux.HandleFunc("/comment/react", s.HandleCommentReact())

	// Garden and marketplace
	mux.HandleFunc("/crops", s.HandleCrops())
	mux.HandleFunc("/plants", s.HandlePlants())
	mux.HandleFunc("/marketplace", s.HandleMarketplace())
	mux.HandleFunc("/marketplace/orders", s.HandleOrders())

	// Rewards
	mux.HandleFunc("/rewards", s.HandleRewards())
	mux.HandleFunc("/rewards/challenge", s.HandleCompleteChallenge())

	if s.Media != nil {
		mux.HandleFunc("/media", s.HandleMediaUpload())
	}
	if s.Hub != nil {
		mux.HandleFunc("/ws", s.HandleWebSocket())
	}
	return mux
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

// writeError maps an AppError to its HTTP status. Other errors are 500s.
func writeError(w http.ResponseWriter, err error) {
	var appErr *utils.AppError
	if errors.As(err, &appErr) {
		writeJSON(w, utils.AppErrorToHTTPStatus(appErr.Code), map[string]string{
			"error": appErr.Message,
			"code":  appErr.Code,
		})
		return
	}
	log.Printf("Unexpected handler error: %v", err)
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, utils.NewAppError(utils.ErrInvalidInput, "Invalid request body", err))
		return false
	}
	return true
}

func methodNotAllowed(w http.ResponseWriter) {
	http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
}

// actingName is the display name from the session, or "" for anonymous
// requests.
func actingName(r *http.Request) string {
	name, _ := middleware.GetNameFromContext(r.Context())
	return name
}

func parseID(w http.ResponseWriter, raw, field string) (int64, bool) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		writeError(w, utils.NewAppError(utils.ErrInvalidInput, "Invalid "+field, err))
		return 0, false
	}
	return id, true
}
