package repository

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/futig/rag-assistant/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// keywordEmbedder puts a 1 on the axis of every keyword the text mentions.
type keywordEmbedder struct {
	keywords []string
	calls    int
	err      error
}

func newKeywordEmbedder() *keywordEmbedder {
	return &keywordEmbedder{keywords: []string{"sofia", "capital", "parliament", "president"}}
}

func (e *keywordEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	e.calls++
	if e.err != nil {
		return nil, e.err
	}
	out := make([][]float32, len(texts))
	for i, text := range texts {
		v := make([]float32, len(e.keywords))
		for k, kw := range e.keywords {
			if strings.Contains(strings.ToLower(text), kw) {
				v[k] = 1
			}
		}
		out[i] = v
	}
	return out, nil
}

func (e *keywordEmbedder) Dimensions() int { return len(e.keywords) }

var testChunks = []entity.Chunk{
	{ID: "c1", Content: "Sofia is the capital.", Metadata: map[string]any{entity.MetadataPageNumber: 1}},
	{ID: "c2", Content: "Parliament has 240 members.", Metadata: map[string]any{entity.MetadataPageNumber: 2}},
	{ID: "c3", Content: "The President is head of state.", Metadata: map[string]any{entity.MetadataPageNumber: 3}},
}

func openStore(t *testing.T, path string, embedder Embedder) *VectorStoreFile {
	t.Helper()
	s, err := OpenVectorStoreFile(path, embedder, 2)
	require.NoError(t, err)
	return s
}

func TestVectorStoreFileStartsEmpty(t *testing.T) {
	s := openStore(t, filepath.Join(t.TempDir(), "store.json"), newKeywordEmbedder())

	count, err := s.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)

	results, err := s.SimilaritySearch(context.Background(), entity.Query{Text: "capital", TopK: 5})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestVectorStoreFileInsertAndSearch(t *testing.T) {
	embedder := newKeywordEmbedder()
	s := openStore(t, filepath.Join(t.TempDir(), "store.json"), embedder)

	require.NoError(t, s.Insert(context.Background(), testChunks))
	// two batches of two
	assert.Equal(t, 2, embedder.calls)

	count, err := s.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	results, err := s.SimilaritySearch(context.Background(), entity.Query{Text: "What is the capital, Sofia?", TopK: 2})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "c1", results[0].ID)
	assert.InDelta(t, 1.0, results[0].Score, 1e-9)
	assert.GreaterOrEqual(t, results[0].Score, results[1].Score)
}

func TestVectorStoreFileTopKLargerThanStore(t *testing.T) {
	s := openStore(t, filepath.Join(t.TempDir(), "store.json"), newKeywordEmbedder())
	require.NoError(t, s.Insert(context.Background(), testChunks))

	results, err := s.SimilaritySearch(context.Background(), entity.Query{Text: "parliament", TopK: 10})
	require.NoError(t, err)
	assert.Len(t, results, 3)
	assert.Equal(t, "c2", results[0].ID)
}

func TestVectorStoreFilePersistsAcrossOpens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "store.json")
	embedder := newKeywordEmbedder()

	first := openStore(t, path, embedder)
	require.NoError(t, first.Insert(context.Background(), testChunks))

	second := openStore(t, path, embedder)
	count, err := second.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	results, err := second.SimilaritySearch(context.Background(), entity.Query{Text: "president", TopK: 1})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "c3", results[0].ID)
	assert.EqualValues(t, 3, results[0].Metadata[entity.MetadataPageNumber])
}

func TestVectorStoreFileRejectsOtherDimensions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	first := openStore(t, path, newKeywordEmbedder())
	require.NoError(t, first.Insert(context.Background(), testChunks))

	narrow := &keywordEmbedder{keywords: []string{"sofia"}}
	_, err := OpenVectorStoreFile(path, narrow, 2)
	assert.ErrorIs(t, err, entity.ErrConfiguration)
}

func TestVectorStoreFileInsertFailureKeepsState(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	embedder := newKeywordEmbedder()
	embedder.err = errors.New("provider down")
	s := openStore(t, path, embedder)

	require.Error(t, s.Insert(context.Background(), testChunks))

	count, err := s.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)

	_, statErr := os.Stat(path)
	assert.ErrorIs(t, statErr, os.ErrNotExist)
}

func TestCosineSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, cosineSimilarity([]float32{1, 1}, []float32{2, 2}), 1e-9)
	assert.InDelta(t, 0.0, cosineSimilarity([]float32{1, 0}, []float32{0, 1}), 1e-9)
	assert.Zero(t, cosineSimilarity([]float32{0, 0}, []float32{1, 1}))
	assert.Zero(t, cosineSimilarity([]float32{1}, []float32{1, 1}))
}
