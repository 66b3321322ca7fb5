package rag

import (
	"context"
	"fmt"
	"strings"

	"github.com/futig/rag-assistant/internal/config"
	"github.com/futig/rag-assistant/internal/entity"
	"github.com/futig/rag-assistant/internal/pkg/prompt"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// Answerer answers questions from the chunks most similar to them.
type Answerer struct {
	store     VectorStore
	generator Generator
	template  *prompt.Template
	topK      int
}

func NewAnswerer(
	store VectorStore,
	generator Generator,
	template *prompt.Template,
	cfg config.RAGConfig,
) *Answerer {
	return &Answerer{
		store:     store,
		generator: generator,
		template:  template,
		topK:      cfg.TopK,
	}
}

// Answer returns the generator output for the resolved prompt as is.
func (uc *Answerer) Answer(ctx context.Context, question string) (string, error) {
	if strings.TrimSpace(question) == "" {
		return "", fmt.Errorf("%w: question must not be blank", entity.ErrMissingField)
	}

	results, err := uc.store.SimilaritySearch(ctx, entity.Query{Text: question, TopK: uc.topK})
	if err != nil {
		return "", fmt.Errorf("%w: %w", entity.ErrRetrieval, err)
	}

	ctxzap.Debug(ctx, "similar chunks retrieved",
		zap.Int("top_k", uc.topK),
		zap.Int("found", len(results)),
	)

	text, err := uc.Prompt(question, results)
	if err != nil {
		return "", err
	}

	answer, err := uc.generator.Complete(ctx, text)
	if err != nil {
		return "", fmt.Errorf("%w: %w", entity.ErrGeneration, err)
	}

	return answer, nil
}

// Prompt resolves the template for question and the retrieved chunks.
func (uc *Answerer) Prompt(question string, results []entity.ScoredChunk) (string, error) {
	var documents strings.Builder
	for _, r := range results {
		documents.WriteString(r.FormattedContent())
	}

	text, err := uc.template.Render(map[string]string{
		prompt.SlotInput:     question,
		prompt.SlotDocuments: documents.String(),
	})
	if err != nil {
		return "", fmt.Errorf("%w: %w", entity.ErrConfiguration, err)
	}

	return text, nil
}
