package media

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/futig/rag-assistant/internal/config"
	"github.com/futig/rag-assistant/internal/entity"
	"github.com/futig/rag-assistant/internal/pkg/validator"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

const (
	describeInstruction = "Explain what you see in the image"

	bundledAudioLanguage  = entity.LanguageBulgarian
	transcribeTemperature = 0.5

	speechFilenameLength = 20
	speechFileExtension  = ".mp3"
)

// MediaUsecase covers image description and generation, transcription and speech.
type MediaUsecase struct {
	images ImageProvider
	audio  AudioProvider
	cfg    config.MediaConfig
}

func NewUsecase(images ImageProvider, audio AudioProvider, cfg config.MediaConfig) *MediaUsecase {
	return &MediaUsecase{
		images: images,
		audio:  audio,
		cfg:    cfg,
	}
}

// DescribeBundledImage describes the image shipped with the service.
func (uc *MediaUsecase) DescribeBundledImage(ctx context.Context) (string, error) {
	data, err := os.ReadFile(uc.cfg.DefaultImage)
	if err != nil {
		return "", fmt.Errorf("%w: read bundled image: %w", entity.ErrConfiguration, err)
	}

	return uc.DescribeImage(ctx, entity.ImageInput{
		Filename:    filepath.Base(uc.cfg.DefaultImage),
		ContentType: http.DetectContentType(data),
		Data:        data,
	})
}

func (uc *MediaUsecase) DescribeImage(ctx context.Context, img entity.ImageInput) (string, error) {
	if len(img.Data) == 0 {
		return "", fmt.Errorf("%w: image is empty", entity.ErrInvalidFile)
	}
	if img.Instruction == "" {
		img.Instruction = describeInstruction
	}

	ctxzap.Info(ctx, "describing image",
		zap.String("filename", img.Filename),
		zap.String("content_type", img.ContentType),
	)

	description, err := uc.images.DescribeImage(ctx, img)
	if err != nil {
		return "", fmt.Errorf("%w: %w", entity.ErrGeneration, err)
	}
	return description, nil
}

// GenerateImage returns the URL of an image generated from prompt.
func (uc *MediaUsecase) GenerateImage(ctx context.Context, prompt string) (string, error) {
	if err := validator.Required("prompt", prompt); err != nil {
		return "", err
	}

	url, err := uc.images.GenerateImage(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("%w: %w", entity.ErrGeneration, err)
	}
	return url, nil
}

// TranscribeBundled transcribes the audio shipped with the service as Bulgarian speech.
func (uc *MediaUsecase) TranscribeBundled(ctx context.Context) (string, error) {
	data, err := os.ReadFile(uc.cfg.DefaultAudio)
	if err != nil {
		return "", fmt.Errorf("%w: read bundled audio: %w", entity.ErrConfiguration, err)
	}

	return uc.Transcribe(ctx, entity.AudioInput{
		Filename: filepath.Base(uc.cfg.DefaultAudio),
		Data:     data,
		Language: bundledAudioLanguage,
	})
}

// Transcribe returns SRT subtitles for the audio. Language defaults to English.
func (uc *MediaUsecase) Transcribe(ctx context.Context, audio entity.AudioInput) (string, error) {
	if audio.Language == "" {
		audio.Language = entity.LanguageEnglish
	}
	if err := validator.ValidateLanguage(audio.Language); err != nil {
		return "", err
	}
	if len(audio.Data) == 0 {
		return "", fmt.Errorf("%w: audio is empty", entity.ErrInvalidFile)
	}
	audio.Temperature = transcribeTemperature

	ctxzap.Info(ctx, "transcribing audio",
		zap.String("filename", audio.Filename),
		zap.String("language", audio.Language),
		zap.Int("size", len(audio.Data)),
	)

	srt, err := uc.audio.Transcribe(ctx, audio)
	if err != nil {
		return "", fmt.Errorf("%w: %w", entity.ErrGeneration, err)
	}
	return srt, nil
}

func (uc *MediaUsecase) Speech(ctx context.Context, text string) (*entity.SpeechResult, error) {
	if err := validator.Required("prompt", text); err != nil {
		return nil, err
	}

	data, err := uc.audio.Speech(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", entity.ErrGeneration, err)
	}

	return &entity.SpeechResult{
		Filename: SpeechFilename(text),
		Data:     data,
	}, nil
}

// SpeechFilename takes the first 20 characters of text, replaces everything
// except ASCII letters and digits with "_" and appends ".mp3".
func SpeechFilename(text string) string {
	var sb strings.Builder
	n := 0
	for _, r := range text {
		if n == speechFilenameLength {
			break
		}
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			sb.WriteRune(r)
		} else {
			sb.WriteByte('_')
		}
		n++
	}
	return sb.String() + speechFileExtension
}
