package image

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers image routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/api/v1/image", func(r chi.Router) {
		r.Get("/image-to-text", h.DescribeBundledImage)
		r.Post("/describe-image", h.DescribeImage)
		r.Get("/{prompt}", h.GenerateImage)
	})
}
