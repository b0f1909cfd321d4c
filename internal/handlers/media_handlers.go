package handlers

import (
	"errors"
	"log"
	"net/http"

	"greenpatch/internal/media"
	"greenpatch/internal/utils"
)

type MediaResponse struct {
	URL string `json:"url"`
}

// HandleMediaUpload stores the multipart "image" field and returns its URL.
func (s *Server) HandleMediaUpload() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			methodNotAllowed(w)
			return
		}
		r.Body = http.MaxBytesReader(w, r.Body, media.MaxImageSize+1<<20)
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			writeError(w, utils.NewAppError(utils.ErrInvalidInput, "Invalid multipart upload", err))
			return
		}
		file, header, err := r.FormFile("image")
		if err != nil {
			writeError(w, utils.NewAppError(utils.ErrInvalidInput, "Missing image field", err))
			return
		}
		defer file.Close()

		url, err := s.Media.Upload(r.Context(), header.Header.Get("Content-Type"), file, header.Size)
		if err != nil {
			if errors.Is(err, media.ErrUnsupportedType) {
				writeError(w, utils.NewAppError(utils.ErrInvalidInput, err.Error(), err))
				return
			}
			log.Printf("Media upload failed: %v", err)
			writeError(w, utils.NewAppError(utils.ErrStorage, "Failed to store image", err))
			return
		}
		writeJSON(w, http.StatusCreated, MediaResponse{URL: url})
	}
}
