package openai

import (
	"context"
	"fmt"
	"hash/fnv"
	"math"
	"strings"
	"unicode"

	"github.com/futig/rag-assistant/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// MockClient stands in for the provider when ENABLE_MOCKS is set. Embeddings
// are hashed bags of words, so texts sharing words end up close to each other.
type MockClient struct {
	dimensions int
	logger     *zap.Logger
}

func NewMockClient(dimensions int, logger *zap.Logger) *MockClient {
	return &MockClient{
		dimensions: dimensions,
		logger:     logger,
	}
}

func (m *MockClient) Complete(ctx context.Context, prompt string) (string, error) {
	ctxzap.Info(ctx, "[MOCK] chat completion", zap.Int("prompt_length", len(prompt)))

	if strings.Contains(prompt, "JSON array") {
		return `[{"title":"Mock achievement","year":2020,"description":"Returned by the mock provider"}]`, nil
	}
	return fmt.Sprintf("[MOCK] answer to a prompt of %d characters", len(prompt)), nil
}

func (m *MockClient) CompleteMessages(ctx context.Context, msgs []entity.Message) (string, error) {
	var sb strings.Builder
	for _, msg := range msgs {
		sb.WriteString(msg.Content)
		sb.WriteString("\n")
	}
	return m.Complete(ctx, sb.String())
}

func (m *MockClient) CompleteJSON(ctx context.Context, msgs []entity.Message) (string, error) {
	ctxzap.Info(ctx, "[MOCK] JSON chat completion", zap.Int("message_count", len(msgs)))
	return `{"playerName":"Mock Player","achievements":["Mock achievement"]}`, nil
}

func (m *MockClient) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	ctxzap.Debug(ctx, "[MOCK] creating embeddings", zap.Int("count", len(texts)))

	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		vectors[i] = m.embed(text)
	}
	return vectors, nil
}

func (m *MockClient) Dimensions() int {
	return m.dimensions
}

func (m *MockClient) embed(text string) []float32 {
	vec := make([]float32, m.dimensions)
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	for _, w := range words {
		h := fnv.New32a()
		h.Write([]byte(w))
		vec[h.Sum32()%uint32(m.dimensions)]++
	}

	var norm float64
	for _, v := range vec {
		norm += float64(v) * float64(v)
	}
	if norm == 0 {
		return vec
	}

	scale := float32(1 / math.Sqrt(norm))
	for i := range vec {
		vec[i] *= scale
	}
	return vec
}

func (m *MockClient) DescribeImage(ctx context.Context, img entity.ImageInput) (string, error) {
	ctxzap.Info(ctx, "[MOCK] describing image", zap.Int("size", len(img.Data)))
	return fmt.Sprintf("[MOCK] a %s image of %d bytes", img.ContentType, len(img.Data)), nil
}

func (m *MockClient) GenerateImage(ctx context.Context, prompt string) (string, error) {
	ctxzap.Info(ctx, "[MOCK] generating image", zap.String("prompt", prompt))
	return "https://example.com/mock-image.png", nil
}

func (m *MockClient) Transcribe(ctx context.Context, audio entity.AudioInput) (string, error) {
	ctxzap.Info(ctx, "[MOCK] transcribing audio", zap.String("language", audio.Language))
	return "1\n00:00:00,000 --> 00:00:02,000\n[MOCK] transcription\n", nil
}

func (m *MockClient) Speech(ctx context.Context, text string) ([]byte, error) {
	ctxzap.Info(ctx, "[MOCK] synthesizing speech", zap.Int("length", len(text)))
	return []byte("ID3"), nil
}
