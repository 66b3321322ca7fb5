package bot

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/futig/rag-assistant/internal/config"
	"github.com/futig/rag-assistant/internal/telegram/handlers"
	"github.com/futig/rag-assistant/internal/telegram/middleware"
	"github.com/futig/rag-assistant/internal/telegram/render"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

const rateLimitCleanupInterval = 10 * time.Minute

var ErrShutdownTimeout = errors.New("shutdown timeout exceeded")

// API is the subset of *tgbotapi.BotAPI the bot runs on.
type API interface {
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// Bot represents the Telegram bot
type Bot struct {
	api         API
	cfg         *config.TelegramConfig
	handlers    map[string]handlers.Handler
	sender      *handlers.MessageSender
	logger      *zap.Logger
	loggingMW   *middleware.LoggingMiddleware
	recoveryMW  *middleware.RecoveryMiddleware
	rateLimitMW *middleware.RateLimiterMiddleware
	stopChan    chan struct{}
	stopOnce    sync.Once
	wg          sync.WaitGroup
}

// New creates a bot on top of an authorized API client
func New(api API, cfg *config.TelegramConfig, logger *zap.Logger) *Bot {
	return &Bot{
		api:         api,
		cfg:         cfg,
		handlers:    make(map[string]handlers.Handler),
		sender:      handlers.NewMessageSender(api, logger),
		logger:      logger,
		loggingMW:   middleware.NewLoggingMiddleware(logger),
		recoveryMW:  middleware.NewRecoveryMiddleware(logger, api),
		rateLimitMW: middleware.NewRateLimiterMiddleware(cfg.RateLimitPerMinute, cfg.RateLimitBurst, logger, api),
		stopChan:    make(chan struct{}),
	}
}

// RegisterHandler routes h.Command() to h. The empty command receives plain text.
func (b *Bot) RegisterHandler(h handlers.Handler) {
	b.handlers[h.Command()] = h
}

// Start starts the bot
func (b *Bot) Start(ctx context.Context) error {
	b.logger.Info("starting telegram bot")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.cfg.UpdateTimeout
	updates := b.api.GetUpdatesChan(u)

	ctx = ctxzap.ToContext(ctx, b.logger)

	go b.processUpdates(ctx, updates)
	go b.cleanupLoop(ctx)

	b.logger.Info("telegram bot started successfully")
	return nil
}

// Stop stops the bot gracefully with timeout
func (b *Bot) Stop() error {
	b.logger.Info("stopping telegram bot")

	b.stopOnce.Do(func() {
		close(b.stopChan)
		b.api.StopReceivingUpdates()
	})

	done := make(chan struct{})
	go func() {
		b.wg.Wait()
		close(done)
	}()

	shutdownTimeout := time.Duration(b.cfg.ShutdownTimeout) * time.Second
	select {
	case <-done:
		b.logger.Info("all handlers completed gracefully")
	case <-time.After(shutdownTimeout):
		b.logger.Warn("shutdown timeout exceeded, some handlers may not have completed",
			zap.Duration("timeout", shutdownTimeout),
		)
		return ErrShutdownTimeout
	}

	b.logger.Info("telegram bot stopped successfully")
	return nil
}

func (b *Bot) processUpdates(ctx context.Context, updates tgbotapi.UpdatesChannel) {
	for {
		select {
		case <-ctx.Done():
			ctxzap.Info(ctx, "context cancelled, stopping update processing")
			return
		case <-b.stopChan:
			ctxzap.Info(ctx, "stop signal received, stopping update processing")
			return
		case update, ok := <-updates:
			if !ok {
				ctxzap.Info(ctx, "updates channel closed")
				return
			}

			b.wg.Add(1)
			go func(u tgbotapi.Update) {
				defer b.wg.Done()
				b.handleUpdateWithMiddleware(ctx, u)
			}(update)
		}
	}
}

func (b *Bot) cleanupLoop(ctx context.Context) {
	ticker := time.NewTicker(rateLimitCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-b.stopChan:
			return
		case <-ticker.C:
			b.rateLimitMW.Cleanup()
		}
	}
}

// handleUpdateWithMiddleware runs rate limiting, logging and recovery before routing
func (b *Bot) handleUpdateWithMiddleware(ctx context.Context, update tgbotapi.Update) {
	b.rateLimitMW.Handle(update, func(u tgbotapi.Update) {
		b.loggingMW.Handle(u, func(u2 tgbotapi.Update) {
			b.recoveryMW.Handle(u2, func(u3 tgbotapi.Update) {
				b.handleUpdate(ctx, u3)
			})
		})
	})
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	message := update.Message
	if message == nil {
		return
	}

	msg := normalize(message)
	ctx = ctxzap.ToContext(ctx, b.logger.With(
		zap.Int64("user_id", msg.UserID),
		zap.Int64("chat_id", msg.ChatID),
	))

	switch msg.Command {
	case "start":
		b.reply(ctx, msg, render.MsgWelcome)
		return
	case "help":
		b.reply(ctx, msg, render.MsgHelp)
		return
	}

	handler, exists := b.handlers[msg.Command]
	if !exists {
		ctxzap.Warn(ctx, "no handler for command", zap.String("command", msg.Command))
		b.reply(ctx, msg, render.MsgUnknown)
		return
	}

	if err := handler.Handle(ctx, msg); err != nil {
		ctxzap.Error(ctx, "handler error",
			zap.Error(err),
			zap.String("command", msg.Command),
		)
		b.reply(ctx, msg, render.ErrGeneric)
	}
}

func (b *Bot) reply(ctx context.Context, msg *handlers.Message, text string) {
	if err := b.sender.Send(msg.ChatID, 0, text); err != nil {
		ctxzap.Error(ctx, "failed to send reply", zap.Error(err))
	}
}

// normalize flattens a Telegram message into the handler representation.
func normalize(message *tgbotapi.Message) *handlers.Message {
	msg := &handlers.Message{
		ChatID:    message.Chat.ID,
		MessageID: message.MessageID,
		Text:      strings.TrimSpace(message.Text),
	}
	if message.From != nil {
		msg.UserID = message.From.ID
	}

	if message.IsCommand() {
		msg.Command = strings.ToLower(message.Command())
		msg.Arguments = strings.TrimSpace(message.CommandArguments())
	}
	return msg
}
