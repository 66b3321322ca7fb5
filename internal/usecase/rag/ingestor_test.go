package rag

import (
	"context"
	"errors"
	"testing"

	"github.com/futig/rag-assistant/internal/config"
	"github.com/futig/rag-assistant/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDocument = &entity.Document{
	Name: "constitution.txt",
	Path: "rag_data/constitution.txt",
	Pages: []entity.Page{
		{Number: 1, Text: "Bulgaria is a republic.\nSofia is the capital."},
		{Number: 3, Text: "The National Assembly has 240 members."},
	},
}

func newTestIngestor(store VectorStore, reader DocumentReader) *Ingestor {
	return NewIngestor(store, reader, lineSplitter{}, config.RAGConfig{DocumentPath: "rag_data/constitution.txt"})
}

func TestIngestIfEmptyLoadsDocument(t *testing.T) {
	store := &fakeStore{}
	reader := &fakeReader{doc: testDocument}

	report, err := newTestIngestor(store, reader).IngestIfEmpty(context.Background())
	require.NoError(t, err)

	assert.False(t, report.Skipped)
	assert.Equal(t, 2, report.Pages)
	assert.Equal(t, 3, report.Chunks)
	require.Len(t, store.chunks, 3)

	first := store.chunks[0]
	assert.NotEmpty(t, first.ID)
	assert.Equal(t, "Bulgaria is a republic.", first.Content)
	assert.Equal(t, "constitution.txt", first.Metadata[entity.MetadataSource])
	assert.Equal(t, 1, first.Metadata[entity.MetadataPageNumber])
	assert.Equal(t, 0, first.Metadata[entity.MetadataChunkIndex])

	second := store.chunks[1]
	assert.Equal(t, 1, second.Metadata[entity.MetadataChunkIndex])

	last := store.chunks[2]
	assert.Equal(t, 3, last.Metadata[entity.MetadataPageNumber])
	assert.Equal(t, 0, last.Metadata[entity.MetadataChunkIndex])
}

func TestIngestIfEmptyIsIdempotent(t *testing.T) {
	store := &fakeStore{}
	reader := &fakeReader{doc: testDocument}
	ingestor := newTestIngestor(store, reader)

	_, err := ingestor.IngestIfEmpty(context.Background())
	require.NoError(t, err)

	report, err := ingestor.IngestIfEmpty(context.Background())
	require.NoError(t, err)

	assert.True(t, report.Skipped)
	assert.Equal(t, 3, report.ExistingCount)
	assert.Equal(t, 1, store.inserts)
	assert.Equal(t, 1, reader.reads)
	assert.Len(t, store.chunks, 3)
}

func TestIngestIfEmptySkipsNonEmptyStoreWithoutReading(t *testing.T) {
	store := &fakeStore{chunks: []entity.Chunk{{ID: "existing", Content: "x"}}}
	reader := &fakeReader{err: errors.New("must not be called")}

	report, err := newTestIngestor(store, reader).IngestIfEmpty(context.Background())
	require.NoError(t, err)

	assert.True(t, report.Skipped)
	assert.Zero(t, reader.reads)
	assert.Zero(t, store.inserts)
}

func TestIngestIfEmptyErrors(t *testing.T) {
	tests := []struct {
		name    string
		store   *fakeStore
		reader  *fakeReader
		wantErr error
	}{
		{
			name:    "missing document",
			store:   &fakeStore{},
			reader:  &fakeReader{err: errors.New("no such file")},
			wantErr: entity.ErrConfiguration,
		},
		{
			name:    "document without text",
			store:   &fakeStore{},
			reader:  &fakeReader{doc: &entity.Document{Name: "empty.pdf"}},
			wantErr: entity.ErrConfiguration,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newTestIngestor(tt.store, tt.reader).IngestIfEmpty(context.Background())
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Zero(t, tt.store.inserts)
		})
	}

	t.Run("count failure", func(t *testing.T) {
		countErr := errors.New("connection refused")
		store := &fakeStore{countErr: countErr}
		reader := &fakeReader{doc: testDocument}

		_, err := newTestIngestor(store, reader).IngestIfEmpty(context.Background())
		assert.ErrorIs(t, err, countErr)
		assert.Zero(t, reader.reads)
	})
}
