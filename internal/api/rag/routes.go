package rag

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers RAG routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/api/v1/rag", func(r chi.Router) {
		r.Get("/question", h.Question)
		r.Get("/pgvector-question", h.DocumentQuestion)
	})
}
