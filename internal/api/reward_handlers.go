package api

import (
	"net/http"

	"github.com/vocapets/vocapets/internal/models"
)

func (s *Server) handleAwardStars(w http.ResponseWriter, r *http.Request) {
	var req models.AwardRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	breakdown, err := s.RewardService.AwardStars(r.Context(), req)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, breakdown)
}
