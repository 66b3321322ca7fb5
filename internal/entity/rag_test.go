package entity

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChunkFormattedContent(t *testing.T) {
	tests := []struct {
		name  string
		chunk Chunk
		want  string
	}{
		{
			name:  "no metadata",
			chunk: Chunk{Content: "Sofia is the capital."},
			want:  "Sofia is the capital.\n",
		},
		{
			name: "metadata sorted by key",
			chunk: Chunk{
				Content: "Article 1",
				Metadata: map[string]any{
					MetadataSource:     "constitution.pdf",
					MetadataPageNumber: 3,
					MetadataChunkIndex: 0,
				},
			},
			want: "chunk_index: 0\npage_number: 3\nsource: constitution.pdf\n\nArticle 1\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.chunk.FormattedContent())
		})
	}
}

func TestValidationErrorsShareClass(t *testing.T) {
	for _, err := range []error{ErrMissingField, ErrInvalidFormat, ErrInvalidParameter, ErrInvalidFile, ErrFileTooLarge, ErrInvalidExtension} {
		assert.True(t, errors.Is(err, ErrValidation), err.Error())
	}
	assert.False(t, errors.Is(ErrRetrieval, ErrValidation))
}

func TestResultFormatIsValid(t *testing.T) {
	assert.True(t, FormatText.IsValid())
	assert.True(t, FormatPDF.IsValid())
	assert.False(t, ResultFormat("xlsx").IsValid())
}
