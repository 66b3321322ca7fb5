package builder

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/futig/rag-assistant/internal/telegram"
	"go.uber.org/zap"
)

const shutdownTimeout = 30 * time.Second

// App represents the application with all its components
type App struct {
	server *http.Server
	core   *Core
	logger *zap.Logger
}

// Run starts the application and all its daemons
func (a *App) Run() error {
	// Start HTTP server in goroutine
	errChan := make(chan error, 1)
	go func() {
		a.logger.Info("Starting HTTP server", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		a.logger.Error("Server error", zap.Error(err))
		a.core.Close()
		return err
	case sig := <-waitForSignal():
		a.logger.Info("Received shutdown signal", zap.String("signal", sig.String()))
	}

	return a.shutdown()
}

// shutdown gracefully shuts down the application
func (a *App) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	a.logger.Info("Shutting down server gracefully")
	defer a.core.Close()

	if err := a.server.Shutdown(ctx); err != nil {
		a.logger.Error("Server shutdown error", zap.Error(err))
		return err
	}

	a.logger.Info("Application stopped gracefully")
	return nil
}

// BotApp runs the Telegram bot until a shutdown signal arrives
type BotApp struct {
	bot    telegram.Bot
	core   *Core
	logger *zap.Logger
}

func (a *BotApp) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	defer a.core.Close()

	a.logger.Info("starting telegram bot")
	if err := a.bot.Start(ctx); err != nil {
		a.logger.Error("telegram bot error", zap.Error(err))
		return err
	}

	sig := <-waitForSignal()
	a.logger.Info("received shutdown signal", zap.String("signal", sig.String()))

	if err := a.bot.Stop(); err != nil {
		a.logger.Error("error stopping bot", zap.Error(err))
		return err
	}

	a.logger.Info("telegram bot stopped gracefully")
	return nil
}

func waitForSignal() <-chan os.Signal {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	return sigChan
}
