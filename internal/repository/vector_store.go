package repository

import (
	"context"
	"fmt"

	"github.com/futig/rag-assistant/internal/entity"
	"github.com/google/uuid"
)

// VectorStore persists embedded chunks and answers similarity queries.
type VectorStore interface {
	Count(ctx context.Context) (int, error)
	Insert(ctx context.Context, chunks []entity.Chunk) error
	SimilaritySearch(ctx context.Context, query entity.Query) ([]entity.ScoredChunk, error)
}

// Embedder turns texts into vectors of a fixed size.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
	Dimensions() int
}

const defaultEmbeddingBatchSize = 64

// embedChunks embeds chunk contents in batches and checks every vector size.
func embedChunks(ctx context.Context, embedder Embedder, chunks []entity.Chunk, batchSize int) ([][]float32, error) {
	if batchSize <= 0 {
		batchSize = defaultEmbeddingBatchSize
	}

	vectors := make([][]float32, 0, len(chunks))
	for start := 0; start < len(chunks); start += batchSize {
		end := min(start+batchSize, len(chunks))

		texts := make([]string, 0, end-start)
		for _, c := range chunks[start:end] {
			texts = append(texts, c.Content)
		}

		batch, err := embedder.Embed(ctx, texts)
		if err != nil {
			return nil, fmt.Errorf("embed chunks %d-%d: %w", start, end, err)
		}
		if len(batch) != len(texts) {
			return nil, fmt.Errorf("embed chunks %d-%d: got %d vectors", start, end, len(batch))
		}

		vectors = append(vectors, batch...)
	}

	for i, v := range vectors {
		if len(v) != embedder.Dimensions() {
			return nil, fmt.Errorf("embedding %d has %d dimensions, want %d", i, len(v), embedder.Dimensions())
		}
	}

	return vectors, nil
}

func embedQuery(ctx context.Context, embedder Embedder, text string) ([]float32, error) {
	vectors, err := embedder.Embed(ctx, []string{text})
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	if len(vectors) != 1 {
		return nil, fmt.Errorf("embed query: got %d vectors", len(vectors))
	}
	return vectors[0], nil
}

func chunkID(c entity.Chunk) string {
	if c.ID != "" {
		return c.ID
	}
	return uuid.NewString()
}
