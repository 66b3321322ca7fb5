package formatter

import (
	"bytes"
	"fmt"

	"github.com/futig/rag-assistant/internal/entity"
)

const (
	markdownContentType   = "text/markdown; charset=utf-8"
	markdownFileExtension = ".md"
)

type MarkdownFormatter struct{}

func NewMarkdownFormatter() *MarkdownFormatter {
	return &MarkdownFormatter{}
}

func (mf *MarkdownFormatter) Format(doc entity.AnswerDocument) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "# %s\n\n", documentTitle)
	if doc.Question != "" {
		fmt.Fprintf(&buf, "**%s:** %s\n\n", questionLabel, doc.Question)
	}
	fmt.Fprintf(&buf, "%s\n", doc.Answer)
	return buf.Bytes(), nil
}

func (mf *MarkdownFormatter) ContentType() string {
	return markdownContentType
}

func (mf *MarkdownFormatter) FileExtension() string {
	return markdownFileExtension
}
