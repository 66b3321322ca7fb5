package builder

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/futig/rag-assistant/internal/api"
	audioapi "github.com/futig/rag-assistant/internal/api/audio"
	chatapi "github.com/futig/rag-assistant/internal/api/chat"
	imageapi "github.com/futig/rag-assistant/internal/api/image"
	ragapi "github.com/futig/rag-assistant/internal/api/rag"
	"github.com/futig/rag-assistant/internal/config"
	"github.com/futig/rag-assistant/internal/pkg/prompt"
	"github.com/futig/rag-assistant/internal/pkg/validator"
	"github.com/futig/rag-assistant/internal/telegram"
	"github.com/futig/rag-assistant/internal/usecase/chat"
	"github.com/futig/rag-assistant/internal/usecase/media"
	"go.uber.org/zap"
)

func Build() (*App, error) {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	core, err := BuildCore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	logger := core.Logger

	logger.Info("Building application",
		zap.String("environment", cfg.Environment),
		zap.String("server_addr", cfg.ServerAddr),
	)

	// The server only starts once the document is in the store.
	report, err := core.Ingest(ctx)
	if err != nil {
		core.Close()
		return nil, err
	}
	logger.Info("Document ready",
		zap.Bool("skipped", report.Skipped),
		zap.Int("chunks", report.Chunks),
	)

	celeb, err := prompt.LoadFile(cfg.PromptCfg.CelebFile, prompt.Celeb())
	if err != nil {
		core.Close()
		return nil, err
	}
	templates := chat.DefaultTemplates()
	templates.Celeb = celeb

	// Initialize validators
	mediaValidator := validator.NewMediaValidator(cfg.MediaCfg)

	// Initialize use cases
	chatUC := chat.NewUsecase(core.Provider, templates)
	mediaUC := media.NewUsecase(core.Provider, core.Provider, cfg.MediaCfg)
	logger.Info("Use cases initialized")

	// Setup API handlers
	handlers := api.Handlers{
		RAG:   ragapi.NewHandler(core.Answerer, chatUC, core.Formatters),
		Chat:  chatapi.NewHandler(chatUC),
		Image: imageapi.NewHandler(mediaUC, cfg.MediaCfg, mediaValidator),
		Audio: audioapi.NewHandler(mediaUC, cfg.MediaCfg, mediaValidator),
	}
	logger.Info("API handlers initialized")

	router := api.SetupRouter(handlers, logger)
	logger.Info("HTTP router configured")

	// Generation and transcription can take close to the router timeout.
	server := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("Application built successfully",
		zap.String("environment", cfg.Environment),
	)

	return &App{
		server: server,
		core:   core,
		logger: logger,
	}, nil
}

// BuildTelegramBot creates the Telegram bot over the same retrieval pipeline
func BuildTelegramBot() (*BotApp, error) {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if cfg.TelegramCfg.BotToken == "" {
		return nil, fmt.Errorf("TELEGRAM_BOT_TOKEN must be set to run the bot")
	}

	core, err := BuildCore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	logger := core.Logger

	logger.Info("Building Telegram bot",
		zap.String("environment", cfg.Environment),
	)

	if _, err := core.Ingest(ctx); err != nil {
		core.Close()
		return nil, err
	}

	bot, err := telegram.NewBot(&cfg.TelegramCfg, core.Answerer, core.Formatters, logger)
	if err != nil {
		core.Close()
		return nil, fmt.Errorf("initialize telegram bot: %w", err)
	}

	logger.Info("Telegram bot built successfully",
		zap.String("environment", cfg.Environment),
	)

	return &BotApp{
		bot:    bot,
		core:   core,
		logger: logger,
	}, nil
}
