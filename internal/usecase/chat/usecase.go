package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/futig/rag-assistant/internal/entity"
	"github.com/futig/rag-assistant/internal/pkg/prompt"
	"github.com/futig/rag-assistant/internal/pkg/validator"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// Templates used by the chat endpoints.
type Templates struct {
	Celeb              *prompt.Template
	PlayerSystem       *prompt.Template
	PlayerUser         *prompt.Template
	PlayerAchievements *prompt.Template
	AchievementsFormat *prompt.Template
}

// DefaultTemplates returns the embedded templates.
func DefaultTemplates() Templates {
	return Templates{
		Celeb:              prompt.Celeb(),
		PlayerSystem:       prompt.PlayerSystem(),
		PlayerUser:         prompt.PlayerUser(),
		PlayerAchievements: prompt.PlayerAchievements(),
		AchievementsFormat: prompt.AchievementsFormat(),
	}
}

// ChatUsecase forwards free-form and templated prompts to the generator.
type ChatUsecase struct {
	generator Generator
	templates Templates
}

func NewUsecase(generator Generator, templates Templates) *ChatUsecase {
	return &ChatUsecase{
		generator: generator,
		templates: templates,
	}
}

func (uc *ChatUsecase) Prompt(ctx context.Context, message string) (string, error) {
	if err := validator.Required("message", message); err != nil {
		return "", err
	}

	return uc.complete(ctx, message)
}

// CelebDetails describes a famous person's background and career.
func (uc *ChatUsecase) CelebDetails(ctx context.Context, name string) (string, error) {
	if err := validator.Required("name", name); err != nil {
		return "", err
	}

	text, err := uc.templates.Celeb.Render(map[string]string{prompt.SlotName: name})
	if err != nil {
		return "", fmt.Errorf("%w: %w", entity.ErrConfiguration, err)
	}

	return uc.complete(ctx, text)
}

// PlayerDetails asks for a JSON object and decodes it into a Player.
func (uc *ChatUsecase) PlayerDetails(ctx context.Context, name string) (*entity.Player, error) {
	if err := validator.Required("name", name); err != nil {
		return nil, err
	}

	system, err := uc.templates.PlayerSystem.Render(nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", entity.ErrConfiguration, err)
	}
	user, err := uc.templates.PlayerUser.Render(map[string]string{prompt.SlotName: name})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", entity.ErrConfiguration, err)
	}

	reply, err := uc.generator.CompleteJSON(ctx, []entity.Message{
		{Role: entity.RoleSystem, Content: system},
		{Role: entity.RoleUser, Content: user},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", entity.ErrGeneration, err)
	}

	var player entity.Player
	if err := decodeJSON(reply, &player); err != nil {
		ctxzap.Warn(ctx, "unparseable player reply", zap.String("reply", reply))
		return nil, fmt.Errorf("%w: decode player: %w", entity.ErrGeneration, err)
	}

	return &player, nil
}

// PlayerAchievements asks for a JSON array of achievements.
func (uc *ChatUsecase) PlayerAchievements(ctx context.Context, name string) ([]entity.Achievement, error) {
	if err := validator.Required("name", name); err != nil {
		return nil, err
	}

	request, err := uc.templates.PlayerAchievements.Render(map[string]string{prompt.SlotPlayer: name})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", entity.ErrConfiguration, err)
	}
	format, err := uc.templates.AchievementsFormat.Render(nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", entity.ErrConfiguration, err)
	}

	reply, err := uc.complete(ctx, request+"\n"+format)
	if err != nil {
		return nil, err
	}

	achievements := []entity.Achievement{}
	if err := decodeJSON(reply, &achievements); err != nil {
		ctxzap.Warn(ctx, "unparseable achievements reply", zap.String("reply", reply))
		return nil, fmt.Errorf("%w: decode achievements: %w", entity.ErrGeneration, err)
	}

	return achievements, nil
}

func (uc *ChatUsecase) complete(ctx context.Context, text string) (string, error) {
	reply, err := uc.generator.Complete(ctx, text)
	if err != nil {
		return "", fmt.Errorf("%w: %w", entity.ErrGeneration, err)
	}
	return reply, nil
}

// decodeJSON tolerates replies wrapped in a markdown code fence.
func decodeJSON(reply string, v any) error {
	reply = strings.TrimSpace(reply)
	if strings.HasPrefix(reply, "```") {
		reply = strings.TrimPrefix(reply, "```")
		reply = strings.TrimPrefix(reply, "json")
		reply = strings.TrimSuffix(strings.TrimSpace(reply), "```")
	}
	return json.Unmarshal([]byte(reply), v)
}
