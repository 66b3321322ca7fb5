package audio

import (
	"context"
	"io"
	"net/http"

	"github.com/futig/rag-assistant/internal/config"
	"github.com/futig/rag-assistant/internal/entity"
	"github.com/futig/rag-assistant/internal/pkg/logger"
	"github.com/futig/rag-assistant/internal/pkg/response"
	"github.com/futig/rag-assistant/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

const speechContentType = "audio/mpeg"

type Handler struct {
	usecase   MediaUsecase
	cfg       config.MediaConfig
	validator *validator.Validator
}

func NewHandler(usecase MediaUsecase, cfg config.MediaConfig, validator *validator.Validator) *Handler {
	return &Handler{
		usecase:   usecase,
		cfg:       cfg,
		validator: validator,
	}
}

// TranscribeBundled handles GET /api/v1/audio/audio-to-text
func (h *Handler) TranscribeBundled(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "TranscribeBundled")

	srt, err := h.usecase.TranscribeBundled(ctx)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Text(w, http.StatusOK, srt)
}

// Transcribe handles POST /api/v1/audio/upload-audio-to-transcribe
func (h *Handler) Transcribe(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "Transcribe")

	r.Body = http.MaxBytesReader(w, r.Body, h.cfg.MaxUploadSize)
	if err := r.ParseMultipartForm(h.cfg.MaxUploadSize); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid form data or size too large", err)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "file is required", err)
		return
	}
	defer file.Close()

	if err := h.validator.ValidateAudioFile(header); err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	language := r.FormValue("language")
	if language == "" {
		language = entity.LanguageEnglish
	}

	data, err := io.ReadAll(file)
	if err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "failed to read file", err)
		return
	}

	srt, err := h.usecase.Transcribe(ctx, entity.AudioInput{
		Filename: validator.SanitizeFilename(header.Filename),
		Data:     data,
		Language: language,
	})
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Text(w, http.StatusOK, srt)
}

// Speech handles GET /api/v1/audio/text-to-audio/{prompt} and returns an MP3 download
func (h *Handler) Speech(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "Speech")

	result, err := h.usecase.Speech(ctx, chi.URLParam(r, "prompt"))
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	ctxzap.Info(ctx, "speech generated",
		zap.String("filename", result.Filename),
		zap.Int("size", len(result.Data)),
	)

	response.Attachment(w, speechContentType, result.Filename, result.Data)
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
