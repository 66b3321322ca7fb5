package chat

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers chat routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/api/v1/chat", func(r chi.Router) {
		r.Get("/", h.Prompt)
		r.Get("/celeb", h.CelebDetails)
		r.Get("/player", h.PlayerDetails)
		r.Get("/achievements/player", h.PlayerAchievements)
	})
}
