package chat

import (
	"context"
	"net/http"

	"github.com/futig/rag-assistant/internal/pkg/logger"
	"github.com/futig/rag-assistant/internal/pkg/response"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

type Handler struct {
	usecase ChatUsecase
}

func NewHandler(usecase ChatUsecase) *Handler {
	return &Handler{usecase: usecase}
}

// Prompt handles GET /api/v1/chat
func (h *Handler) Prompt(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "Prompt")

	reply, err := h.usecase.Prompt(ctx, r.URL.Query().Get("message"))
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Text(w, http.StatusOK, reply)
}

// CelebDetails handles GET /api/v1/chat/celeb
func (h *Handler) CelebDetails(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "CelebDetails")

	name := r.URL.Query().Get("name")
	ctxzap.Debug(ctx, "requesting celebrity details", zap.String("name", name))

	reply, err := h.usecase.CelebDetails(ctx, name)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Text(w, http.StatusOK, reply)
}

// PlayerDetails handles GET /api/v1/chat/player
func (h *Handler) PlayerDetails(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "PlayerDetails")

	player, err := h.usecase.PlayerDetails(ctx, r.URL.Query().Get("name"))
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.JSON(w, http.StatusOK, player)
}

// PlayerAchievements handles GET /api/v1/chat/achievements/player
func (h *Handler) PlayerAchievements(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "PlayerAchievements")

	achievements, err := h.usecase.PlayerAchievements(ctx, r.URL.Query().Get("name"))
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	ctxzap.Info(ctx, "achievements received", zap.Int("count", len(achievements)))

	response.JSON(w, http.StatusOK, achievements)
}

func (h *Handler) respondError(ctx context.Context, w http.ResponseWriter, status int, message string, err error) {
	if err != nil {
		ctxzap.Error(ctx, message, zap.Error(err))
	} else {
		ctxzap.Warn(ctx, message)
	}
	response.Error(w, status, message)
}

func (h *Handler) handleUsecaseError(ctx context.Context, w http.ResponseWriter, err error) {
	status, message := response.StatusFor(err)
	h.respondError(ctx, w, status, message, err)
}
