package rag

import (
	"context"
	"net/http"

	"github.com/futig/rag-assistant/internal/entity"
	"github.com/futig/rag-assistant/internal/pkg/formatter"
	"github.com/futig/rag-assistant/internal/pkg/logger"
	"github.com/futig/rag-assistant/internal/pkg/response"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

type Handler struct {
	answerer   Answerer
	chat       ChatUsecase
	formatters *formatter.Factory
}

func NewHandler(answerer Answerer, chat ChatUsecase, formatters *formatter.Factory) *Handler {
	return &Handler{
		answerer:   answerer,
		chat:       chat,
		formatters: formatters,
	}
}

// Question handles GET /api/v1/rag/question and answers without retrieval
func (h *Handler) Question(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "Question")

	answer, err := h.chat.Prompt(ctx, r.URL.Query().Get("q"))
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Text(w, http.StatusOK, answer)
}

// DocumentQuestion handles GET /api/v1/rag/pgvector-question. The answer is
// plain text unless format asks for a md, pdf or docx download.
func (h *Handler) DocumentQuestion(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "DocumentQuestion")

	question := r.URL.Query().Get("q")
	format := entity.ResultFormat(r.URL.Query().Get("format"))
	if !format.IsValid() {
		h.respondError(ctx, w, http.StatusBadRequest, "format must be one of md, pdf, docx", nil)
		return
	}

	ctxzap.Info(ctx, "answering question from documents",
		zap.Int("question_length", len(question)),
		zap.String("format", string(format)),
	)

	answer, err := h.answerer.Answer(ctx, question)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	if format == entity.FormatText {
		response.Text(w, http.StatusOK, answer)
		return
	}

	f, err := h.formatters.Create(format)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	data, err := f.Format(entity.AnswerDocument{Question: question, Answer: answer})
	if err != nil {
		h.respondError(ctx, w, http.StatusInternalServerError, "failed to export answer", err)
		return
	}

	response.Attachment(w, f.ContentType(), formatter.Filename(question, f), data)
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
