package api

import (
	"net/http"
	"time"

	audioapi "github.com/futig/rag-assistant/internal/api/audio"
	chatapi "github.com/futig/rag-assistant/internal/api/chat"
	"github.com/futig/rag-assistant/internal/api/docs"
	imageapi "github.com/futig/rag-assistant/internal/api/image"
	"github.com/futig/rag-assistant/internal/api/middleware"
	ragapi "github.com/futig/rag-assistant/internal/api/rag"
	"github.com/futig/rag-assistant/internal/pkg/response"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

const requestTimeout = 60 * time.Second

// Handlers groups the HTTP handlers mounted by SetupRouter.
type Handlers struct {
	RAG   *ragapi.Handler
	Chat  *chatapi.Handler
	Image *imageapi.Handler
	Audio *audioapi.Handler
}

// SetupRouter creates and configures the HTTP router
func SetupRouter(h Handlers, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS)
	r.Use(chimiddleware.Timeout(requestTimeout))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		response.JSON(w, http.StatusOK, map[string]string{"status": "healthy"})
	})

	docs.RegisterRoutes(r)

	ragapi.RegisterRoutes(r, h.RAG)
	chatapi.RegisterRoutes(r, h.Chat)
	imageapi.RegisterRoutes(r, h.Image)
	audioapi.RegisterRoutes(r, h.Audio)

	return r
}
