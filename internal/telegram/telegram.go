package telegram

import (
	"context"
	"fmt"

	"github.com/futig/rag-assistant/internal/config"
	"github.com/futig/rag-assistant/internal/telegram/bot"
	"github.com/futig/rag-assistant/internal/telegram/handlers"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// Bot is the main telegram bot interface
type Bot interface {
	Start(ctx context.Context) error
	Stop() error
}

// NewBot authorizes against the Bot API and registers the question and export handlers.
func NewBot(
	cfg *config.TelegramConfig,
	answerer handlers.Answerer,
	formatters handlers.FormatterFactory,
	logger *zap.Logger,
) (Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("create bot API: %w", err)
	}

	logger.Info("telegram bot authorized",
		zap.String("username", api.Self.UserName),
		zap.Int64("id", api.Self.ID),
	)

	b := bot.New(api, cfg, logger)
	b.RegisterHandler(handlers.NewQuestionHandler(api, answerer, logger))
	b.RegisterHandler(handlers.NewExportHandler(api, answerer, formatters, logger))

	logger.Info("telegram bot initialized successfully")

	return b, nil
}
