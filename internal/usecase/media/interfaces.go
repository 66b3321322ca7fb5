package media

import (
	"context"

	"github.com/futig/rag-assistant/internal/entity"
)

type ImageProvider interface {
	DescribeImage(ctx context.Context, img entity.ImageInput) (string, error)
	GenerateImage(ctx context.Context, prompt string) (string, error)
}

type AudioProvider interface {
	Transcribe(ctx context.Context, audio entity.AudioInput) (string, error)
	Speech(ctx context.Context, text string) ([]byte, error)
}
