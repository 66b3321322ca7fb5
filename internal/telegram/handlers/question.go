package handlers

import (
	"context"
	"strings"

	"github.com/futig/rag-assistant/internal/pkg/logger"
	"github.com/futig/rag-assistant/internal/telegram/render"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// QuestionHandler answers plain text messages from the document.
type QuestionHandler struct {
	BaseHandler
	bot      Sender
	answerer Answerer
	logger   *zap.Logger
}

func NewQuestionHandler(bot Sender, answerer Answerer, logger *zap.Logger) *QuestionHandler {
	return &QuestionHandler{
		BaseHandler: BaseHandler{
			command:       CommandQuestion,
			messageSender: NewMessageSender(bot, logger),
		},
		bot:      bot,
		answerer: answerer,
		logger:   logger,
	}
}

func (h *QuestionHandler) Handle(ctx context.Context, msg *Message) error {
	ctx = logger.WithAction(ctx, "TelegramQuestion")

	typing := NewTypingNotifier(h.bot, msg.ChatID, h.logger)
	typing.Start(ctx)
	answer, err := h.answerer.Answer(ctx, msg.Text)
	typing.Stop()

	if err != nil {
		h.HandleError(ctx, msg, err)
		return nil
	}

	ctxzap.Info(ctx, "question answered",
		zap.Int64("user_id", msg.UserID),
		zap.Int("answer_length", len(answer)),
	)

	if strings.TrimSpace(answer) == "" {
		answer = render.MsgNoAnswer
	}

	return h.messageSender.Send(msg.ChatID, msg.MessageID, answer)
}
