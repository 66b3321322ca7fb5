package rag

import (
	"context"
)

type Answerer interface {
	Answer(ctx context.Context, question string) (string, error)
}

type ChatUsecase interface {
	Prompt(ctx context.Context, message string) (string, error)
}
