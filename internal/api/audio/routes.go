package audio

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers audio routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/api/v1/audio", func(r chi.Router) {
		r.Get("/audio-to-text", h.TranscribeBundled)
		r.Post("/upload-audio-to-transcribe", h.Transcribe)
		r.Get("/text-to-audio/{prompt}", h.Speech)
	})
}
