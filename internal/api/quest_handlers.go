package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vocapets/vocapets/internal/models"
)

func (s *Server) handleDailyQuests(w http.ResponseWriter, r *http.Request) {
	set, err := s.QuestService.GetDailyQuests(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, set)
}

func (s *Server) handleUpdateQuestProgress(w http.ResponseWriter, r *http.Request) {
	var req struct {
		QuestType string `json:"questType"`
		Value     int    `json:"value"`
	}
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	set, stars, err := s.QuestService.UpdateProgress(r.Context(), chi.URLParam(r, "id"), req.QuestType, req.Value)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]any{
		"quest":       set,
		"starsEarned": stars,
	})
}

func (s *Server) handleWeeklyChallenge(w http.ResponseWriter, r *http.Request) {
	challenge, daysLeft, err := s.QuestService.GetWeeklyChallenge(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	// The challenge record and daysLeft merge into one flat object.
	respondJSON(w, r, http.StatusOK, struct {
		*models.WeeklyChallenge
		DaysLeft int `json:"daysLeft"`
	}{challenge, daysLeft})
}

func (s *Server) handleClaimWeeklyReward(w http.ResponseWriter, r *http.Request) {
	rewards, err := s.QuestService.ClaimWeeklyReward(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]*models.WeeklyRewards{"rewards": rewards})
}
