package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/futig/rag-assistant/internal/entity"
)

var _ VectorStore = &VectorStoreFile{}

type fileRecord struct {
	ID        string         `json:"id"`
	Content   string         `json:"content"`
	Metadata  map[string]any `json:"metadata"`
	Embedding []float32      `json:"embedding"`
}

type fileSnapshot struct {
	Dimensions int          `json:"dimensions"`
	Records    []fileRecord `json:"records"`
}

// VectorStoreFile keeps every record in memory, answers queries by brute-force
// cosine similarity and persists to a JSON file after each insert.
type VectorStoreFile struct {
	path      string
	embedder  Embedder
	batchSize int

	mu      sync.RWMutex
	records []fileRecord
}

// OpenVectorStoreFile loads path when it exists, otherwise starts empty.
func OpenVectorStoreFile(path string, embedder Embedder, batchSize int) (*VectorStoreFile, error) {
	s := &VectorStoreFile{
		path:      path,
		embedder:  embedder,
		batchSize: batchSize,
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read vector store file: %w", err)
	}

	var snapshot fileSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("decode vector store file %s: %w", path, err)
	}
	if len(snapshot.Records) > 0 && snapshot.Dimensions != embedder.Dimensions() {
		return nil, fmt.Errorf("%w: vector store file %s holds %d-dimensional vectors, embedder produces %d",
			entity.ErrConfiguration, path, snapshot.Dimensions, embedder.Dimensions())
	}

	s.records = snapshot.Records
	return s, nil
}

func (s *VectorStoreFile) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records), nil
}

func (s *VectorStoreFile) Insert(ctx context.Context, chunks []entity.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}

	vectors, err := embedChunks(ctx, s.embedder, chunks, s.batchSize)
	if err != nil {
		return err
	}

	added := make([]fileRecord, len(chunks))
	for i, c := range chunks {
		added[i] = fileRecord{
			ID:        chunkID(c),
			Content:   c.Content,
			Metadata:  c.Metadata,
			Embedding: vectors[i],
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	records := append(append([]fileRecord(nil), s.records...), added...)
	if err := s.save(records); err != nil {
		return err
	}
	s.records = records

	return nil
}

func (s *VectorStoreFile) SimilaritySearch(ctx context.Context, query entity.Query) ([]entity.ScoredChunk, error) {
	vector, err := embedQuery(ctx, s.embedder, query.Text)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	results := make([]entity.ScoredChunk, 0, len(s.records))
	for _, r := range s.records {
		results = append(results, entity.ScoredChunk{
			Chunk: entity.Chunk{
				ID:       r.ID,
				Content:  r.Content,
				Metadata: r.Metadata,
			},
			Score: cosineSimilarity(vector, r.Embedding),
		})
	}
	s.mu.RUnlock()

	sort.SliceStable(results, func(i, j int) bool { return results[i].Score > results[j].Score })

	if query.TopK >= 0 && len(results) > query.TopK {
		results = results[:query.TopK]
	}

	return results, nil
}

// save writes to a temp file in the same directory and renames it over path.
func (s *VectorStoreFile) save(records []fileRecord) error {
	data, err := json.Marshal(fileSnapshot{
		Dimensions: s.embedder.Dimensions(),
		Records:    records,
	})
	if err != nil {
		return fmt.Errorf("encode vector store: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create vector store directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp vector store file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write vector store file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close vector store file: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace vector store file: %w", err)
	}

	return nil
}

func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
