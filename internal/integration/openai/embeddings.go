package openai

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/avast/retry-go/v4"
	pkgRetry "github.com/futig/rag-assistant/internal/pkg/retry"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// Embed returns one vector per text, in input order. Transient provider
// failures are retried.
func (c *Client) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	req := openai.EmbeddingRequestStrings{
		Input: texts,
		Model: openai.EmbeddingModel(c.cfg.EmbeddingModel),
	}
	// only the v3 models accept a custom size
	if strings.HasPrefix(c.cfg.EmbeddingModel, "text-embedding-3") {
		req.Dimensions = c.dimensions
	}

	resp, err := pkgRetry.Do(ctx, &c.retry, func(ctx context.Context) (openai.EmbeddingResponse, error) {
		return c.api.CreateEmbeddings(ctx, req)
	},
		retry.RetryIf(isRetryable),
		retry.OnRetry(func(n uint, err error) {
			ctxzap.Warn(ctx, "embedding request failed, retrying", zap.Uint("attempt", n+1), zap.Error(err))
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("create embeddings: %w", err)
	}

	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("create embeddings: got %d vectors for %d texts", len(resp.Data), len(texts))
	}

	sort.Slice(resp.Data, func(i, j int) bool { return resp.Data[i].Index < resp.Data[j].Index })

	vectors := make([][]float32, len(resp.Data))
	for i, d := range resp.Data {
		vectors[i] = d.Embedding
	}

	ctxzap.Debug(ctx, "embeddings created",
		zap.Int("count", len(vectors)),
		zap.Int("total_tokens", resp.Usage.TotalTokens),
	)

	return vectors, nil
}

func (c *Client) Dimensions() int {
	return c.dimensions
}
