package image

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

// DescribeBundledImage handles GET /api/v1/image/image-to-text
func (h *Handler) DescribeBundledImage(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "DescribeBundledImage")

	description, err := h.usecase.DescribeBundledImage(ctx)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Text(w, http.StatusOK, description)
}

// DescribeImage handles POST /api/v1/image/describe-image
func (h *Handler) DescribeImage(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "DescribeImage")

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

	if err := h.validator.ValidateImageFile(header); err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "failed to read file", err)
		return
	}

	ctxzap.Info(ctx, "image uploaded",
		zap.String("filename", header.Filename),
		zap.Int64("size", header.Size),
	)

	description, err := h.usecase.DescribeImage(ctx, entity.ImageInput{
		Filename:    validator.SanitizeFilename(header.Filename),
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	})
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Text(w, http.StatusOK, description)
}

// GenerateImage handles GET /api/v1/image/{prompt} and returns the image URL
func (h *Handler) GenerateImage(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "GenerateImage")

	url, err := h.usecase.GenerateImage(ctx, chi.URLParam(r, "prompt"))
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Text(w, http.StatusOK, url)
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
