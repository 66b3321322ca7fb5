package openai

import (
	"context"
	"time"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/patrickmn/go-cache"
)

type embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
	Dimensions() int
}

// CachedEmbedder remembers single-text embeddings, which is what similarity
// search asks for. Batch calls made during ingestion bypass the cache.
type CachedEmbedder struct {
	next  embedder
	cache *cache.Cache
}

func NewCachedEmbedder(next embedder, ttl time.Duration) *CachedEmbedder {
	return &CachedEmbedder{
		next:  next,
		cache: cache.New(ttl, 2*ttl),
	}
}

func (e *CachedEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) != 1 {
		return e.next.Embed(ctx, texts)
	}

	if v, ok := e.cache.Get(texts[0]); ok {
		ctxzap.Debug(ctx, "query embedding served from cache")
		return [][]float32{v.([]float32)}, nil
	}

	vectors, err := e.next.Embed(ctx, texts)
	if err != nil {
		return nil, err
	}
	if len(vectors) == 1 {
		e.cache.Set(texts[0], vectors[0], cache.DefaultExpiration)
	}
	return vectors, nil
}

func (e *CachedEmbedder) Dimensions() int {
	return e.next.Dimensions()
}
