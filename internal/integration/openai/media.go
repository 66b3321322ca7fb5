package openai

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"

	"github.com/futig/rag-assistant/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

const (
	speechVoice = openai.VoiceNova
	speechSpeed = 0.8
)

// DescribeImage sends the image inline as a data URL together with the instruction.
func (c *Client) DescribeImage(ctx context.Context, img entity.ImageInput) (string, error) {
	dataURL := fmt.Sprintf("data:%s;base64,%s", img.ContentType, base64.StdEncoding.EncodeToString(img.Data))

	req := openai.ChatCompletionRequest{
		Model: c.cfg.ChatModel,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{Type: openai.ChatMessagePartTypeText, Text: img.Instruction},
					{
						Type: openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{
							URL:    dataURL,
							Detail: openai.ImageURLDetailAuto,
						},
					},
				},
			},
		},
	}

	ctxzap.Debug(ctx, "requesting image description",
		zap.String("content_type", img.ContentType),
		zap.Int("size", len(img.Data)),
	)

	resp, err := c.api.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("describe image: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errEmptyCompletion
	}

	return resp.Choices[0].Message.Content, nil
}

// GenerateImage creates one 1024x1024 HD image and returns its URL.
func (c *Client) GenerateImage(ctx context.Context, prompt string) (string, error) {
	resp, err := c.api.CreateImage(ctx, openai.ImageRequest{
		Prompt:         prompt,
		Model:          c.cfg.ImageModel,
		N:              1,
		Size:           openai.CreateImageSize1024x1024,
		Quality:        openai.CreateImageQualityHD,
		ResponseFormat: openai.CreateImageResponseFormatURL,
	})
	if err != nil {
		return "", fmt.Errorf("generate image: %w", err)
	}
	if len(resp.Data) == 0 {
		return "", fmt.Errorf("generate image: provider returned no images")
	}

	return resp.Data[0].URL, nil
}

// Transcribe returns the transcription in SRT format.
func (c *Client) Transcribe(ctx context.Context, audio entity.AudioInput) (string, error) {
	resp, err := c.api.CreateTranscription(ctx, openai.AudioRequest{
		Model:       c.cfg.TranscriptionModel,
		FilePath:    audio.Filename,
		Reader:      bytes.NewReader(audio.Data),
		Language:    audio.Language,
		Temperature: audio.Temperature,
		Format:      openai.AudioResponseFormatSRT,
	})
	if err != nil {
		return "", fmt.Errorf("transcribe audio: %w", err)
	}

	ctxzap.Debug(ctx, "audio transcribed",
		zap.String("language", audio.Language),
		zap.Int("length", len(resp.Text)),
	)

	return resp.Text, nil
}

// Speech synthesizes text into MP3 audio.
func (c *Client) Speech(ctx context.Context, text string) ([]byte, error) {
	resp, err := c.api.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model:          openai.SpeechModel(c.cfg.SpeechModel),
		Input:          text,
		Voice:          speechVoice,
		ResponseFormat: openai.SpeechResponseFormatMp3,
		Speed:          speechSpeed,
	})
	if err != nil {
		return nil, fmt.Errorf("create speech: %w", err)
	}
	defer resp.Close()

	data, err := io.ReadAll(resp)
	if err != nil {
		return nil, fmt.Errorf("read speech audio: %w", err)
	}

	return data, nil
}
