package image

import (
	"context"

	"github.com/futig/rag-assistant/internal/entity"
)

type MediaUsecase interface {
	DescribeBundledImage(ctx context.Context) (string, error)
	DescribeImage(ctx context.Context, img entity.ImageInput) (string, error)
	GenerateImage(ctx context.Context, prompt string) (string, error)
}
