package audio

import (
	"context"

	"github.com/futig/rag-assistant/internal/entity"
)

type MediaUsecase interface {
	TranscribeBundled(ctx context.Context) (string, error)
	Transcribe(ctx context.Context, audio entity.AudioInput) (string, error)
	Speech(ctx context.Context, text string) (*entity.SpeechResult, error)
}
