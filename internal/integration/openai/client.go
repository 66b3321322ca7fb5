package openai

import (
	"context"
	"errors"
	"net/http"

	"github.com/futig/rag-assistant/internal/config"
	pkgRetry "github.com/futig/rag-assistant/internal/pkg/retry"
	pkghttp "github.com/futig/rag-assistant/pkg/http"
	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// Client talks to the OpenAI API for chat, embeddings, images and audio.
type Client struct {
	api        *openai.Client
	cfg        config.OpenAIConfig
	dimensions int
	retry      pkgRetry.RetryConfig
	logger     *zap.Logger
}

func NewClient(cfg config.OpenAIConfig, dimensions int, logger *zap.Logger) *Client {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.Url != "" {
		clientCfg.BaseURL = cfg.Url
	}
	clientCfg.HTTPClient = newHTTPClient(cfg.HTTPClientConfig)

	return &Client{
		api:        openai.NewClientWithConfig(clientCfg),
		cfg:        cfg,
		dimensions: dimensions,
		retry:      cfg.Retry,
		logger:     logger,
	}
}

func newHTTPClient(cfg config.HTTPClientConfig) *http.Client {
	return pkghttp.NewClient(
		pkghttp.WithRequestTimeout(cfg.RequestTimeout),
		pkghttp.WithConnClientTimeout(cfg.ConnTimeout),
		pkghttp.WithClientKeepAlive(cfg.KeepAlive),
		pkghttp.WithIdleConnTimeout(cfg.IdleConnTimeout),
		pkghttp.WithResponseHeaderTimeout(cfg.ResponseHeaderTimeout),
		pkghttp.WithRequestLogging(),
	)
}

// isRetryable reports whether a failed provider call is worth repeating:
// rate limiting, server side failures and transport errors are.
func isRetryable(err error) bool {
	if errors.Is(err, context.Canceled) {
		return false
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode == http.StatusTooManyRequests || apiErr.HTTPStatusCode >= http.StatusInternalServerError
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode == http.StatusTooManyRequests || reqErr.HTTPStatusCode >= http.StatusInternalServerError
	}

	return true
}
