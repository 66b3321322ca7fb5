package rag

import (
	"context"
	"sync"

	"github.com/futig/rag-assistant/internal/entity"
)

type fakeStore struct {
	mu        sync.Mutex
	chunks    []entity.Chunk
	results   []entity.ScoredChunk
	countErr  error
	searchErr error
	inserts   int
	queries   []entity.Query
}

func (s *fakeStore) Count(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.chunks), s.countErr
}

func (s *fakeStore) Insert(_ context.Context, chunks []entity.Chunk) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inserts++
	s.chunks = append(s.chunks, chunks...)
	return nil
}

func (s *fakeStore) SimilaritySearch(_ context.Context, query entity.Query) ([]entity.ScoredChunk, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queries = append(s.queries, query)
	if s.searchErr != nil {
		return nil, s.searchErr
	}
	results := s.results
	if len(results) > query.TopK {
		results = results[:query.TopK]
	}
	return results, nil
}

type fakeReader struct {
	doc   *entity.Document
	err   error
	reads int
}

func (r *fakeReader) Read(_ context.Context, _ string) (*entity.Document, error) {
	r.reads++
	return r.doc, r.err
}

// lineSplitter yields one chunk per non-empty line.
type lineSplitter struct{}

func (lineSplitter) Split(text string) []string {
	var out []string
	start := 0
	for i := 0; i <= len(text); i++ {
		if i == len(text) || text[i] == '\n' {
			if line := text[start:i]; line != "" {
				out = append(out, line)
			}
			start = i + 1
		}
	}
	return out
}

type recordingGenerator struct {
	prompts []string
	reply   string
	err     error
}

func (g *recordingGenerator) Complete(_ context.Context, prompt string) (string, error) {
	g.prompts = append(g.prompts, prompt)
	return g.reply, g.err
}
