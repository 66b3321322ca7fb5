package rag

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/futig/rag-assistant/internal/entity"
	"github.com/futig/rag-assistant/internal/pkg/formatter"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAnswerer struct {
	answer    string
	err       error
	questions []string
}

func (f *fakeAnswerer) Answer(_ context.Context, question string) (string, error) {
	f.questions = append(f.questions, question)
	if question == "" {
		return "", fmt.Errorf("%w: question", entity.ErrMissingField)
	}
	return f.answer, f.err
}

type fakeChat struct{}

func (fakeChat) Prompt(_ context.Context, message string) (string, error) {
	if message == "" {
		return "", fmt.Errorf("%w: message", entity.ErrMissingField)
	}
	return "chat: " + message, nil
}

func newRouter(answerer *fakeAnswerer) http.Handler {
	r := chi.NewRouter()
	RegisterRoutes(r, NewHandler(answerer, fakeChat{}, formatter.NewFactory()))
	return r
}

func do(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestQuestionAnswersWithoutRetrieval(t *testing.T) {
	answerer := &fakeAnswerer{}
	rec := do(t, newRouter(answerer), "/api/v1/rag/question?q=hello")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "chat: hello", rec.Body.String())
	assert.Empty(t, answerer.questions)
}

func TestDocumentQuestionPlainText(t *testing.T) {
	answerer := &fakeAnswerer{answer: "I don't know."}
	rec := do(t, newRouter(answerer), "/api/v1/rag/pgvector-question?q=Who+is+the+head+of+state%3F")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, "I don't know.", rec.Body.String())
	assert.Equal(t, []string{"Who is the head of state?"}, answerer.questions)
}

func TestDocumentQuestionMarkdownDownload(t *testing.T) {
	answerer := &fakeAnswerer{answer: "The President."}
	rec := do(t, newRouter(answerer), "/api/v1/rag/pgvector-question?q=head+of+state&format=md")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `attachment; filename="answer-head-of-state.md"`, rec.Header().Get("Content-Disposition"))
	assert.Contains(t, rec.Body.String(), "The President.")
}

func TestDocumentQuestionErrors(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		err        error
		wantStatus int
	}{
		{"missing question", "/api/v1/rag/pgvector-question", nil, http.StatusBadRequest},
		{"unknown format", "/api/v1/rag/pgvector-question?q=x&format=xlsx", nil, http.StatusBadRequest},
		{"retrieval failure", "/api/v1/rag/pgvector-question?q=x", entity.ErrRetrieval, http.StatusBadGateway},
		{"generation failure", "/api/v1/rag/pgvector-question?q=x", entity.ErrGeneration, http.StatusBadGateway},
		{"unexpected failure", "/api/v1/rag/pgvector-question?q=x", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, newRouter(&fakeAnswerer{err: tt.err}), tt.target)

			assert.Equal(t, tt.wantStatus, rec.Code)
			var body entity.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, http.StatusText(tt.wantStatus), body.Error)
			assert.NotEmpty(t, body.Message)
		})
	}
}
