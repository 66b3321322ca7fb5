package rag

import (
	"context"
	"fmt"

	"github.com/futig/rag-assistant/internal/config"
	"github.com/futig/rag-assistant/internal/entity"
	"github.com/google/uuid"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// Ingestor fills an empty vector store from the configured document.
type Ingestor struct {
	store    VectorStore
	reader   DocumentReader
	splitter TextSplitter
	cfg      config.RAGConfig
}

func NewIngestor(
	store VectorStore,
	reader DocumentReader,
	splitter TextSplitter,
	cfg config.RAGConfig,
) *Ingestor {
	return &Ingestor{
		store:    store,
		reader:   reader,
		splitter: splitter,
		cfg:      cfg,
	}
}

// IngestIfEmpty loads the document only when the store holds no records.
// A non-empty store is left untouched and the document is not read.
func (uc *Ingestor) IngestIfEmpty(ctx context.Context) (*entity.IngestionReport, error) {
	count, err := uc.store.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count stored vectors: %w", err)
	}

	ctxzap.Info(ctx, "Count of vectors in the database", zap.Int("count", count))

	if count > 0 {
		return &entity.IngestionReport{Skipped: true, ExistingCount: count}, nil
	}

	ctxzap.Info(ctx, "loading document into the vector store", zap.String("path", uc.cfg.DocumentPath))

	doc, err := uc.reader.Read(ctx, uc.cfg.DocumentPath)
	if err != nil {
		return nil, fmt.Errorf("%w: read document %s: %w", entity.ErrConfiguration, uc.cfg.DocumentPath, err)
	}

	chunks := uc.chunk(doc)
	if len(chunks) == 0 {
		return nil, fmt.Errorf("%w: document %s has no text", entity.ErrConfiguration, uc.cfg.DocumentPath)
	}

	ctxzap.Info(ctx, "document split",
		zap.String("document", doc.Name),
		zap.Int("pages", len(doc.Pages)),
		zap.Int("chunks", len(chunks)),
	)

	if err := uc.store.Insert(ctx, chunks); err != nil {
		return nil, fmt.Errorf("store chunks: %w", err)
	}

	ctxzap.Info(ctx, "document loaded into the vector store", zap.Int("chunks", len(chunks)))

	return &entity.IngestionReport{Pages: len(doc.Pages), Chunks: len(chunks)}, nil
}

// chunk splits every page on its own so no chunk spans two pages.
func (uc *Ingestor) chunk(doc *entity.Document) []entity.Chunk {
	var chunks []entity.Chunk
	for _, page := range doc.Pages {
		for i, text := range uc.splitter.Split(page.Text) {
			chunks = append(chunks, entity.Chunk{
				ID:      uuid.NewString(),
				Content: text,
				Metadata: map[string]any{
					entity.MetadataSource:     doc.Name,
					entity.MetadataPageNumber: page.Number,
					entity.MetadataChunkIndex: i,
				},
			})
		}
	}
	return chunks
}
