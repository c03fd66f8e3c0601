package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vocapets/vocapets/internal/services"
)

type Server struct {
	RewardService  services.RewardService
	MasteryService services.MasteryService
	QuestService   services.QuestService
	ProfileService services.ProfileService
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)
	r.Use(securityHeadersMiddleware)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)

		r.Post("/award-stars", s.handleAwardStars)
		r.Post("/mastered-words", s.handleSeedMastered)
		r.Post("/mastered-words/{profileID}/{wordID}/review", s.handleReviewWord)

		r.Route("/profiles", func(r chi.Router) {
			r.Post("/", s.handleCreateProfile)
			r.Get("/{id}", s.handleGetProfile)
			r.Post("/{id}/pets", s.handleCreatePet)
			r.Get("/{id}/due-words", s.handleDueWords)
			r.Post("/{id}/check-login", s.handleCheckLogin)
			r.Get("/{id}/daily-quests", s.handleDailyQuests)
			r.Post("/{id}/update-quest-progress", s.handleUpdateQuestProgress)
			r.Get("/{id}/weekly-challenge", s.handleWeeklyChallenge)
			r.Post("/{id}/claim-weekly-reward", s.handleClaimWeeklyReward)
		})
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}
