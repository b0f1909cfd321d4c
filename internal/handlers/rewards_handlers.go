package handlers

import (
	"net/http"

	"greenpatch/internal/engine/actors"
	"greenpatch/internal/feed"
	"greenpatch/internal/utils"
)

type CompleteChallengeRequest struct {
	ChallengeID string `json:"challengeId"`
}

func rewardsUser(r *http.Request) string {
	if name := actingName(r); name != "" {
		return name
	}
	return feed.DefaultAuthor
}

// HandleRewards returns points, challenges and badges of the acting user.
func (s *Server) HandleRewards() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			methodNotAllowed(w)
			return
		}
		result, err := s.Engine.Request(s.Engine.GetRewardsActor(), &actors.GetRewardsMsg{User: rewardsUser(r)})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, result)
	}
}

func (s *Server) HandleCompleteChallenge() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			methodNotAllowed(w)
			return
		}
		var req CompleteChallengeRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		if req.ChallengeID == "" {
			writeError(w, utils.NewAppError(utils.ErrInvalidInput, "challengeId is required", nil))
			return
		}
		result, err := s.Engine.Request(s.Engine.GetRewardsActor(), &actors.CompleteChallengeMsg{
			User:        rewardsUser(r),
			ChallengeID: req.ChallengeID,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, result)
	}
}
