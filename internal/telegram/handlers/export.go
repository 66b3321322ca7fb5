package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/futig/rag-assistant/internal/entity"
	"github.com/futig/rag-assistant/internal/pkg/formatter"
	"github.com/futig/rag-assistant/internal/pkg/logger"
	"github.com/futig/rag-assistant/internal/telegram/render"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// ExportHandler answers "/export <format> <question>" with a document.
type ExportHandler struct {
	BaseHandler
	bot        Sender
	answerer   Answerer
	formatters FormatterFactory
	logger     *zap.Logger
}

func NewExportHandler(bot Sender, answerer Answerer, formatters FormatterFactory, logger *zap.Logger) *ExportHandler {
	return &ExportHandler{
		BaseHandler: BaseHandler{
			command:       CommandExport,
			messageSender: NewMessageSender(bot, logger),
		},
		bot:        bot,
		answerer:   answerer,
		formatters: formatters,
		logger:     logger,
	}
}

func (h *ExportHandler) Handle(ctx context.Context, msg *Message) error {
	ctx = logger.WithAction(ctx, "TelegramExport")

	format, question, ok := strings.Cut(strings.TrimSpace(msg.Arguments), " ")
	question = strings.TrimSpace(question)
	if !ok || question == "" {
		return h.messageSender.Send(msg.ChatID, msg.MessageID, render.MsgExportUsage)
	}

	f, err := h.formatters.Create(entity.ResultFormat(strings.ToLower(format)))
	if err != nil {
		return h.messageSender.Send(msg.ChatID, msg.MessageID, render.MsgExportUsage)
	}

	typing := NewTypingNotifier(h.bot, msg.ChatID, h.logger)
	typing.Start(ctx)
	answer, err := h.answerer.Answer(ctx, question)
	typing.Stop()

	if err != nil {
		h.HandleError(ctx, msg, err)
		return nil
	}

	data, err := f.Format(entity.AnswerDocument{Question: question, Answer: answer})
	if err != nil {
		h.HandleError(ctx, msg, fmt.Errorf("format answer: %w", err))
		return nil
	}

	filename := formatter.Filename(question, f)
	ctxzap.Info(ctx, "answer exported",
		zap.String("format", format),
		zap.String("filename", filename),
		zap.Int("size", len(data)),
	)

	return h.messageSender.SendDocument(msg.ChatID, msg.MessageID, filename, data)
}
