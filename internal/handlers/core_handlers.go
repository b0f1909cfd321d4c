package handlers

import (
	"net/http"
	"strings"
	"time"

	"greenpatch/internal/engine/actors"
	"greenpatch/internal/feed"
	"greenpatch/internal/models"
	"greenpatch/internal/utils"
)

// SessionRequest picks the display name a client acts as.
type SessionRequest struct {
	Name string `json:"name"`
}

type SessionResponse struct {
	Token string `json:"token"`
	Name  string `json:"name"`
}

// CreatePostRequest represents a request to create a new post
type CreatePostRequest struct {
	Text   string   `json:"text"`
	Images []string `json:"images,omitempty"`
}

// VoteRequest is used for posts; CommentID is ignored there.
type VoteRequest struct {
	PostID    int64  `json:"postId"`
	CommentID string `json:"commentId,omitempty"`
	Direction string `json:"direction"`
}

type ReactRequest struct {
	PostID    int64  `json:"postId"`
	CommentID string `json:"commentId,omitempty"`
	Emoji     string `json:"emoji"`
}

type AwardRequest struct {
	PostID int64  `json:"postId"`
	Award  string `json:"award"`
}

// HandleHealth handles health check requests
func (s *Server) HandleHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			methodNotAllowed(w)
			return
		}

		result, err := s.Engine.Request(s.Engine.GetFeedActor(), &actors.GetCountsMsg{})
		if err != nil {
			writeError(w, err)
			return
		}

		body := map[string]interface{}{
			"status":      "healthy",
			"post_count":  result.(int),
			"server_time": time.Now(),
		}
		if s.Hub != nil {
			body["live_connections"] = s.Hub.ConnectionCount()
		}
		if s.Metrics != nil {
			body["metrics"] = s.Metrics.Snapshot()
		}
		writeJSON(w, http.StatusOK, body)
	}
}

// HandleSession issues a session token for a display name. An empty name
// signs in as the default author.
func (s *Server) HandleSession() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			methodNotAllowed(w)
			return
		}
		var req SessionRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		name := strings.TrimSpace(req.Name)
		if name == "" {
			name = feed.DefaultAuthor
		}
		token, err := s.Tokens.GenerateToken(name)
		if err != nil {
			writeError(w, utils.NewAppError(utils.ErrInvalidToken, "Failed to issue token", err))
			return
		}
		writeJSON(w, http.StatusOK, SessionResponse{Token: token, Name: name})
	}
}

// HandlePost handles post-related requests
func (s *Server) HandlePost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			if raw := r.URL.Query().Get("id"); raw != "" {
				id, ok := parseID(w, raw, "post ID")
				if !ok {
					return
				}
				result, err := s.Engine.Request(s.Engine.GetFeedActor(), &actors.GetPostMsg{PostID: id})
				if err != nil {
					writeError(w, err)
					return
				}
				writeJSON(w, http.StatusOK, result)
				return
			}

			sort := feed.ParseSortMode(r.URL.Query().Get("sort"))
			result, err := s.Engine.Request(s.Engine.GetFeedActor(), &actors.GetPostsMsg{Sort: sort})
			if err != nil {
				writeError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, result)

		case http.MethodPost:
			var req CreatePostRequest
			if !decodeJSON(w, r, &req) {
				return
			}
			if strings.TrimSpace(req.Text) == "" && len(req.Images) == 0 {
				writeError(w, utils.NewAppError(utils.ErrInvalidInput, "Post needs text or images", nil))
				return
			}
			result, err := s.Engine.Request(s.Engine.GetFeedActor(), &actors.CreatePostMsg{
				Author: actingName(r),
				Text:   req.Text,
				Images: req.Images,
			})
			if err != nil {
				writeError(w, err)
				return
			}
			writeJSON(w, http.StatusCreated, result)

		case http.MethodDelete:
			id, ok := parseID(w, r.URL.Query().Get("id"), "post ID")
			if !ok {
				return
			}
			result, err := s.Engine.Request(s.Engine.GetFeedActor(), &actors.DeletePostMsg{PostID: id, Requester: actingName(r)})
			if err != nil {
				writeError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, result)

		default:
			methodNotAllowed(w)
		}
	}
}

// HandlePostVote applies the acting user's vote toggle to a post.
func (s *Server) HandlePostVote() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			methodNotAllowed(w)
			return
		}
		var req VoteRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		dir, ok := parseDirection(w, req.Direction)
		if !ok {
			return
		}
		result, err := s.Engine.Request(s.Engine.GetFeedActor(), &actors.VotePostMsg{
			PostID:    req.PostID,
			Voter:     actingName(r),
			Direction: dir,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, result)
	}
}

func (s *Server) HandlePostReact() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			methodNotAllowed(w)
			return
		}
		var req ReactRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		if req.Emoji == "" {
			writeError(w, utils.NewAppError(utils.ErrInvalidInput, "Emoji is required", nil))
			return
		}
		result, err := s.Engine.Request(s.Engine.GetFeedActor(), &actors.ReactPostMsg{
			PostID: req.PostID,
			Emoji:  req.Emoji,
			Voter:  actingName(r),
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, result)
	}
}

func (s *Server) HandlePostAward() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			methodNotAllowed(w)
			return
		}
		var req AwardRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		if req.Award == "" {
			writeError(w, utils.NewAppError(utils.ErrInvalidInput, "Award is required", nil))
			return
		}
		result, err := s.Engine.Request(s.Engine.GetFeedActor(), &actors.AwardPostMsg{PostID: req.PostID, Award: req.Award})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, result)
	}
}

func parseDirection(w http.ResponseWriter, raw string) (models.VoteDirection, bool) {
	dir, err := models.ParseVoteDirection(raw)
	if err != nil || dir == models.VoteNone {
		writeError(w, utils.NewAppError(utils.ErrInvalidInput, "direction must be up or down", err))
		return "", false
	}
	return dir, true
}
