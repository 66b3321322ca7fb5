package chat

import (
	"context"

	"github.com/futig/rag-assistant/internal/entity"
)

type Generator interface {
	Complete(ctx context.Context, prompt string) (string, error)
	CompleteMessages(ctx context.Context, msgs []entity.Message) (string, error)
	CompleteJSON(ctx context.Context, msgs []entity.Message) (string, error)
}
