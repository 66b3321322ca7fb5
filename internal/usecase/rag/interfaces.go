package rag

import (
	"context"

	"github.com/futig/rag-assistant/internal/entity"
)

type VectorStore interface {
	Count(ctx context.Context) (int, error)
	Insert(ctx context.Context, chunks []entity.Chunk) error
	SimilaritySearch(ctx context.Context, query entity.Query) ([]entity.ScoredChunk, error)
}

type Generator interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

type DocumentReader interface {
	Read(ctx context.Context, path string) (*entity.Document, error)
}

type TextSplitter interface {
	Split(text string) []string
}
