package media

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/futig/rag-assistant/internal/config"
	"github.com/futig/rag-assistant/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pngHeader is enough for http.DetectContentType to report image/png.
var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

type fakeProvider struct {
	err         error
	images      []entity.ImageInput
	prompts     []string
	audio       []entity.AudioInput
	speechTexts []string
}

func (p *fakeProvider) DescribeImage(_ context.Context, img entity.ImageInput) (string, error) {
	p.images = append(p.images, img)
	return "a plane in the sky", p.err
}

func (p *fakeProvider) GenerateImage(_ context.Context, prompt string) (string, error) {
	p.prompts = append(p.prompts, prompt)
	return "https://images.example.com/1.png", p.err
}

func (p *fakeProvider) Transcribe(_ context.Context, audio entity.AudioInput) (string, error) {
	p.audio = append(p.audio, audio)
	return "1\n00:00:00,000 --> 00:00:01,000\nhello\n", p.err
}

func (p *fakeProvider) Speech(_ context.Context, text string) ([]byte, error) {
	p.speechTexts = append(p.speechTexts, text)
	return []byte("ID3"), p.err
}

func newTestUsecase(t *testing.T, provider *fakeProvider) *MediaUsecase {
	t.Helper()
	dir := t.TempDir()
	image := filepath.Join(dir, "plane.png")
	audio := filepath.Join(dir, "song-1.mp3")
	require.NoError(t, os.WriteFile(image, pngHeader, 0o644))
	require.NoError(t, os.WriteFile(audio, []byte("ID3audio"), 0o644))

	return NewUsecase(provider, provider, config.MediaConfig{DefaultImage: image, DefaultAudio: audio})
}

func TestDescribeBundledImage(t *testing.T) {
	provider := &fakeProvider{}
	uc := newTestUsecase(t, provider)

	description, err := uc.DescribeBundledImage(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "a plane in the sky", description)

	require.Len(t, provider.images, 1)
	img := provider.images[0]
	assert.Equal(t, "plane.png", img.Filename)
	assert.Equal(t, "image/png", img.ContentType)
	assert.Equal(t, "Explain what you see in the image", img.Instruction)
}

func TestDescribeBundledImageMissingFile(t *testing.T) {
	uc := NewUsecase(&fakeProvider{}, &fakeProvider{}, config.MediaConfig{DefaultImage: "does/not/exist.png"})

	_, err := uc.DescribeBundledImage(context.Background())
	assert.ErrorIs(t, err, entity.ErrConfiguration)
}

func TestDescribeImageRejectsEmptyData(t *testing.T) {
	provider := &fakeProvider{}
	_, err := newTestUsecase(t, provider).DescribeImage(context.Background(), entity.ImageInput{ContentType: "image/png"})
	assert.ErrorIs(t, err, entity.ErrValidation)
	assert.Empty(t, provider.images)
}

func TestGenerateImage(t *testing.T) {
	provider := &fakeProvider{}
	uc := newTestUsecase(t, provider)

	url, err := uc.GenerateImage(context.Background(), "a cat on the moon")
	require.NoError(t, err)
	assert.Equal(t, "https://images.example.com/1.png", url)

	_, err = uc.GenerateImage(context.Background(), " ")
	assert.ErrorIs(t, err, entity.ErrMissingField)
	assert.Len(t, provider.prompts, 1)
}

func TestTranscribeBundledUsesBulgarian(t *testing.T) {
	provider := &fakeProvider{}
	uc := newTestUsecase(t, provider)

	srt, err := uc.TranscribeBundled(context.Background())
	require.NoError(t, err)
	assert.Contains(t, srt, "-->")

	require.Len(t, provider.audio, 1)
	assert.Equal(t, "song-1.mp3", provider.audio[0].Filename)
	assert.Equal(t, entity.LanguageBulgarian, provider.audio[0].Language)
	assert.InDelta(t, 0.5, provider.audio[0].Temperature, 1e-6)
}

func TestTranscribeLanguage(t *testing.T) {
	tests := []struct {
		name     string
		language string
		want     string
		wantErr  error
	}{
		{name: "default english", language: "", want: entity.LanguageEnglish},
		{name: "bulgarian", language: "bg", want: entity.LanguageBulgarian},
		{name: "unsupported", language: "de", wantErr: entity.ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := &fakeProvider{}
			uc := newTestUsecase(t, provider)

			_, err := uc.Transcribe(context.Background(), entity.AudioInput{
				Filename: "talk.mp3",
				Data:     []byte("ID3"),
				Language: tt.language,
			})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, provider.audio)
				return
			}
			require.NoError(t, err)
			require.Len(t, provider.audio, 1)
			assert.Equal(t, tt.want, provider.audio[0].Language)
		})
	}
}

func TestSpeech(t *testing.T) {
	provider := &fakeProvider{}
	uc := newTestUsecase(t, provider)

	result, err := uc.Speech(context.Background(), "Hello, world! How are you today?")
	require.NoError(t, err)
	assert.Equal(t, "Hello__world__How_ar.mp3", result.Filename)
	assert.Equal(t, []byte("ID3"), result.Data)
}

func TestProviderFailureIsGenerationError(t *testing.T) {
	provider := &fakeProvider{err: errors.New("upstream 500")}
	uc := newTestUsecase(t, provider)
	ctx := context.Background()

	_, err := uc.DescribeBundledImage(ctx)
	assert.ErrorIs(t, err, entity.ErrGeneration)
	_, err = uc.GenerateImage(ctx, "x")
	assert.ErrorIs(t, err, entity.ErrGeneration)
	_, err = uc.TranscribeBundled(ctx)
	assert.ErrorIs(t, err, entity.ErrGeneration)
	_, err = uc.Speech(ctx, "x")
	assert.ErrorIs(t, err, entity.ErrGeneration)
}

func TestSpeechFilename(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"short", "short.mp3"},
		{"exactly twenty chars", "exactly_twenty_chars.mp3"},
		{"Здравей свят", "____________.mp3"},
		{"", ".mp3"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, SpeechFilename(tt.text))
		})
	}
}
