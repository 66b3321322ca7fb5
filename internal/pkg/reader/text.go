package reader

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/futig/rag-assistant/internal/entity"
)

// pageBreak separates pages in plain text files.
const pageBreak = "\f"

type TextReader struct{}

func NewTextReader() *TextReader {
	return &TextReader{}
}

func (r *TextReader) Read(_ context.Context, path string) (*entity.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read text file %s: %w", path, err)
	}

	doc := newDocument(path)
	for i, text := range strings.Split(string(data), pageBreak) {
		if strings.TrimSpace(text) == "" {
			continue
		}
		doc.Pages = append(doc.Pages, entity.Page{Number: i + 1, Text: text})
	}

	return doc, nil
}
