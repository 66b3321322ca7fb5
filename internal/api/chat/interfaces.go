package chat

import (
	"context"

	"github.com/futig/rag-assistant/internal/entity"
)

type ChatUsecase interface {
	Prompt(ctx context.Context, message string) (string, error)
	CelebDetails(ctx context.Context, name string) (string, error)
	PlayerDetails(ctx context.Context, name string) (*entity.Player, error)
	PlayerAchievements(ctx context.Context, name string) ([]entity.Achievement, error)
}
