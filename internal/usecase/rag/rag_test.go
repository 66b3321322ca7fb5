package rag

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/futig/rag-assistant/internal/config"
	"github.com/futig/rag-assistant/internal/integration/openai"
	"github.com/futig/rag-assistant/internal/pkg/prompt"
	"github.com/futig/rag-assistant/internal/pkg/reader"
	"github.com/futig/rag-assistant/internal/pkg/splitter"
	"github.com/futig/rag-assistant/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const constitutionExcerpt = `Bulgaria shall be a republic with a parliamentary form of government.
The capital of the Republic of Bulgaria shall be the city of Sofia.` + "\f" +
	`The National Assembly shall consist of 240 National Representatives.
The President shall be the Head of State.`

func TestIngestAndAnswerWithFileStore(t *testing.T) {
	dir := t.TempDir()
	docPath := filepath.Join(dir, "constitution.txt")
	storePath := filepath.Join(dir, "vector_store.json")
	require.NoError(t, os.WriteFile(docPath, []byte(constitutionExcerpt), 0o644))

	cfg := config.RAGConfig{DocumentPath: docPath, TopK: 1}
	mock := openai.NewMockClient(256, zap.NewNop())

	textSplitter, err := splitter.New(splitter.Options{ChunkSize: 20, MinChunkSizeChars: 10})
	require.NoError(t, err)

	store, err := repository.OpenVectorStoreFile(storePath, mock, 8)
	require.NoError(t, err)

	report, err := NewIngestor(store, reader.New(), textSplitter, cfg).IngestIfEmpty(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, report.Pages)
	assert.Positive(t, report.Chunks)

	// a second process sees the persisted store and skips ingestion
	reopened, err := repository.OpenVectorStoreFile(storePath, mock, 8)
	require.NoError(t, err)
	again, err := NewIngestor(reopened, reader.New(), textSplitter, cfg).IngestIfEmpty(context.Background())
	require.NoError(t, err)
	assert.True(t, again.Skipped)
	assert.Equal(t, report.Chunks, again.ExistingCount)

	gen := &recordingGenerator{reply: "Sofia."}
	answer, err := NewAnswerer(reopened, gen, prompt.RAG(), cfg).Answer(context.Background(), "What is the capital city of the Republic?")
	require.NoError(t, err)
	assert.Equal(t, "Sofia.", answer)

	require.Len(t, gen.prompts, 1)
	documents := gen.prompts[0][strings.Index(gen.prompts[0], "DOCUMENTS:\n"):]
	assert.Contains(t, documents, "Sofia")
	assert.Contains(t, documents, "page_number: 1")
	assert.Equal(t, 1, strings.Count(documents, "source: constitution.txt"))
}
