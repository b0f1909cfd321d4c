package handlers

import (
	"net/http"
	"strings"

	"greenpatch/internal/engine/actors"
	"greenpatch/internal/models"
	"greenpatch/internal/utils"
)

// HandleCrops lists (GET), adds (POST) or patches (PUT ?id=) tracked crops.
func (s *Server) HandleCrops() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		garden := s.Engine.GetGardenActor()
		switch r.Method {
		case http.MethodGet:
			result, err := s.Engine.Request(garden, &actors.GetCropsMsg{})
			if err != nil {
				writeError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, result)

		case http.MethodPost:
			var crop models.Crop
			if !decodeJSON(w, r, &crop) {
				return
			}
			if strings.TrimSpace(crop.Name) == "" {
				writeError(w, utils.NewAppError(utils.ErrInvalidInput, "Crop name is required", nil))
				return
			}
			result, err := s.Engine.Request(garden, &actors.AddCropMsg{Crop: crop})
			if err != nil {
				writeError(w, err)
				return
			}
			writeJSON(w, http.StatusCreated, result)

		case http.MethodPut:
			id, ok := parseID(w, r.URL.Query().Get("id"), "crop ID")
			if !ok {
				return
			}
			var patch models.CropPatch
			if !decodeJSON(w, r, &patch) {
				return
			}
			result, err := s.Engine.Request(garden, &actors.UpdateCropMsg{CropID: id, Patch: patch})
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

// HandlePlants serves the grow guide, filtered by ?category= and ?q=.
func (s *Server) HandlePlants() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			methodNotAllowed(w)
			return
		}
		q := r.URL.Query()
		result, err := s.Engine.Request(s.Engine.GetGardenActor(), &actors.GetPlantsMsg{
			Category: q.Get("category"),
			Query:    q.Get("q"),
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, result)
	}
}
