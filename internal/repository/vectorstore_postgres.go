package repository

import (
	"context"
	"fmt"

	"github.com/futig/rag-assistant/internal/entity"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"
)

const (
	countVectorsQuery = `SELECT COUNT(*) FROM vector_store`

	insertVectorQuery = `
INSERT INTO vector_store (id, content, metadata, embedding)
VALUES ($1, $2, $3, $4::vector)`

	// <=> is cosine distance, so 1 - distance is cosine similarity
	searchVectorsQuery = `
SELECT id, content, metadata, 1 - (embedding <=> $1::vector) AS score
FROM vector_store
ORDER BY embedding <=> $1::vector
LIMIT $2`
)

var _ VectorStore = &VectorStorePostgres{}

// VectorStorePostgres keeps chunks in a pgvector table with an HNSW cosine index.
type VectorStorePostgres struct {
	db        *pgxpool.Pool
	embedder  Embedder
	batchSize int
}

func NewVectorStorePostgres(db *pgxpool.Pool, embedder Embedder, batchSize int) *VectorStorePostgres {
	return &VectorStorePostgres{
		db:        db,
		embedder:  embedder,
		batchSize: batchSize,
	}
}

func (s *VectorStorePostgres) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRow(ctx, countVectorsQuery).Scan(&count); err != nil {
		return 0, fmt.Errorf("count vectors: %w", err)
	}
	return count, nil
}

// Insert embeds all chunks first and then writes them in one transaction.
func (s *VectorStorePostgres) Insert(ctx context.Context, chunks []entity.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}

	vectors, err := embedChunks(ctx, s.embedder, chunks, s.batchSize)
	if err != nil {
		return err
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	batch := &pgx.Batch{}
	for i, c := range chunks {
		metadata := c.Metadata
		if metadata == nil {
			metadata = map[string]any{}
		}
		batch.Queue(insertVectorQuery, chunkID(c), c.Content, metadata, pgvector.NewVector(vectors[i]).String())
	}

	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("insert vectors: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

func (s *VectorStorePostgres) SimilaritySearch(ctx context.Context, query entity.Query) ([]entity.ScoredChunk, error) {
	vector, err := embedQuery(ctx, s.embedder, query.Text)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.Query(ctx, searchVectorsQuery, pgvector.NewVector(vector).String(), query.TopK)
	if err != nil {
		return nil, fmt.Errorf("search vectors: %w", err)
	}
	defer rows.Close()

	results := make([]entity.ScoredChunk, 0, query.TopK)
	for rows.Next() {
		var sc entity.ScoredChunk
		if err := rows.Scan(&sc.ID, &sc.Content, &sc.Metadata, &sc.Score); err != nil {
			return nil, fmt.Errorf("scan vector row: %w", err)
		}
		results = append(results, sc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate vector rows: %w", err)
	}

	return results, nil
}
