package openai

import (
	"context"
	"errors"
	"fmt"

	"github.com/futig/rag-assistant/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

var errEmptyCompletion = errors.New("provider returned no choices")

// Complete sends prompt as a single user message.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	return c.CompleteMessages(ctx, []entity.Message{{Role: entity.RoleUser, Content: prompt}})
}

func (c *Client) CompleteMessages(ctx context.Context, msgs []entity.Message) (string, error) {
	return c.complete(ctx, msgs, nil)
}

// CompleteJSON asks the model for a JSON object reply.
func (c *Client) CompleteJSON(ctx context.Context, msgs []entity.Message) (string, error) {
	return c.complete(ctx, msgs, &openai.ChatCompletionResponseFormat{
		Type: openai.ChatCompletionResponseFormatTypeJSONObject,
	})
}

func (c *Client) complete(ctx context.Context, msgs []entity.Message, format *openai.ChatCompletionResponseFormat) (string, error) {
	req := openai.ChatCompletionRequest{
		Model:          c.cfg.ChatModel,
		Messages:       toChatMessages(msgs),
		Temperature:    c.cfg.Temperature,
		ResponseFormat: format,
	}

	ctxzap.Debug(ctx, "requesting chat completion",
		zap.String("model", req.Model),
		zap.Int("message_count", len(req.Messages)),
	)

	resp, err := c.api.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("create chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errEmptyCompletion
	}

	ctxzap.Debug(ctx, "chat completion received",
		zap.String("finish_reason", string(resp.Choices[0].FinishReason)),
		zap.Int("prompt_tokens", resp.Usage.PromptTokens),
		zap.Int("completion_tokens", resp.Usage.CompletionTokens),
	)

	return resp.Choices[0].Message.Content, nil
}

func toChatMessages(msgs []entity.Message) []openai.ChatCompletionMessage {
	out := make([]openai.ChatCompletionMessage, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, openai.ChatCompletionMessage{
			Role:    toRole(m.Role),
			Content: m.Content,
		})
	}
	return out
}

func toRole(role string) string {
	switch role {
	case entity.RoleSystem:
		return openai.ChatMessageRoleSystem
	case entity.RoleAssistant:
		return openai.ChatMessageRoleAssistant
	default:
		return openai.ChatMessageRoleUser
	}
}
