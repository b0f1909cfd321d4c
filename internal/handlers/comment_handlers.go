package handlers

import (
	"log"
	"net/http"
	"strings"

	"greenpatch/internal/engine/actors"
	"greenpatch/internal/utils"
)

// CreateCommentRequest represents a request to create a new comment
type CreateCommentRequest struct {
	PostID   int64    `json:"postId"`
	Text     string   `json:"text"`
	ParentID string   `json:"parentId,omitempty"` // Optional, for replies
	Images   []string `json:"images,omitempty"`
}

// HandleComment adds (POST) or removes (DELETE) comments
func (s *Server) HandleComment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			var req CreateCommentRequest
			if !decodeJSON(w, r, &req) {
				return
			}
			if strings.TrimSpace(req.Text) == "" && len(req.Images) == 0 {
				writeError(w, utils.NewAppError(utils.ErrInvalidInput, "Comment needs text or images", nil))
				return
			}

			log.Printf("Creating comment on post %d (parent %q)", req.PostID, req.ParentID)
			result, err := s.Engine.Request(s.Engine.GetFeedActor(), &actors.AddCommentMsg{
				PostID:   req.PostID,
				ParentID: req.ParentID,
				Author:   actingName(r),
				Text:     req.Text,
				Images:   req.Images,
			})
			if err != nil {
				writeError(w, err)
				return
			}
			writeJSON(w, http.StatusCreated, result)

		case http.MethodDelete:
			postID, ok := parseID(w, r.URL.Query().Get("postId"), "post ID")
			if !ok {
				return
			}
			commentID := r.URL.Query().Get("commentId")
			if commentID == "" {
				writeError(w, utils.NewAppError(utils.ErrInvalidInput, "commentId is required", nil))
				return
			}
			result, err := s.Engine.Request(s.Engine.GetFeedActor(), &actors.DeleteCommentMsg{
				PostID:    postID,
				CommentID: commentID,
				Requester: actingName(r),
			})
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

// HandleCommentVote applies the acting user's vote toggle to a comment.
func (s *Server) HandleCommentVote() http.HandlerFunc {
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
		result, err := s.Engine.Request(s.Engine.GetFeedActor(), &actors.VoteCommentMsg{
			PostID:    req.PostID,
			CommentID: req.CommentID,
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

func (s *Server) HandleCommentReact() http.HandlerFunc {
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
		result, err := s.Engine.Request(s.Engine.GetFeedActor(), &actors.ReactCommentMsg{
			PostID:    req.PostID,
			CommentID: req.CommentID,
			Emoji:     req.Emoji,
			Voter:     actingName(r),
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, result)
	}
}
