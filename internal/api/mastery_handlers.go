package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/vocapets/vocapets/internal/errors"
)

func (s *Server) handleSeedMastered(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProfileID string   `json:"profileId"`
		WordIDs   []string `json:"wordIds"`
	}
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	if err := s.MasteryService.SeedMastered(r.Context(), req.ProfileID, req.WordIDs); err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleReviewWord(w http.ResponseWriter, r *http.Request) {
	profileID := chi.URLParam(r, "profileID")
	wordID := chi.URLParam(r, "wordID")

	var req struct {
		Correct bool `json:"correct"`
	}
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	rec, err := s.MasteryService.Review(r.Context(), profileID, wordID, req.Correct)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, rec)
}

func (s *Server) handleDueWords(w http.ResponseWriter, r *http.Request) {
	profileID := chi.URLParam(r, "id")

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			handleError(w, r, errors.NewBadRequestError("invalid limit"))
			return
		}
		limit = n
	}

	records, err := s.MasteryService.DueWords(r.Context(), profileID, limit)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, records)
}
