package formatter

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/futig/rag-assistant/internal/entity"
)

const (
	documentTitle = "Answer"
	questionLabel = "Question"
)

// Formatter renders an answer as a downloadable file.
type Formatter interface {
	Format(doc entity.AnswerDocument) ([]byte, error)
	ContentType() string
	FileExtension() string
}

type Factory struct{}

func NewFactory() *Factory {
	return &Factory{}
}

func (f *Factory) Create(format entity.ResultFormat) (Formatter, error) {
	switch format {
	case entity.FormatMarkdown:
		return NewMarkdownFormatter(), nil
	case entity.FormatDOCX:
		return NewDOCXFormatter(), nil
	case entity.FormatPDF:
		return NewPDFFormatter(), nil
	default:
		return nil, fmt.Errorf("%w: unsupported format %q", entity.ErrInvalidFormat, format)
	}
}

// Filename builds "answer-<slug>.<ext>" from the first words of the question.
func Filename(question string, f Formatter) string {
	var sb strings.Builder
	for _, r := range strings.ToLower(question) {
		if sb.Len() >= 40 {
			break
		}
		switch {
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			sb.WriteRune(r)
		case unicode.IsSpace(r) || r == '-' || r == '_':
			if s := sb.String(); s != "" && !strings.HasSuffix(s, "-") {
				sb.WriteByte('-')
			}
		}
	}

	slug := strings.Trim(sb.String(), "-")
	if slug == "" {
		return "answer" + f.FileExtension()
	}
	return "answer-" + slug + f.FileExtension()
}
