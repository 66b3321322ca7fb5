package reader

import (
	"context"
	"fmt"
	"strings"

	"github.com/futig/rag-assistant/internal/entity"
	"github.com/ledongthuc/pdf"
)

type PDFReader struct{}

func NewPDFReader() *PDFReader {
	return &PDFReader{}
}

// Read extracts plain text page by page. Pages without text are skipped but
// keep their numbering. The pdf library panics on some malformed files; such
// panics are returned as errors.
func (r *PDFReader) Read(ctx context.Context, path string) (doc *entity.Document, err error) {
	defer func() {
		if p := recover(); p != nil {
			doc = nil
			err = fmt.Errorf("parse pdf %s: %v", path, p)
		}
	}()

	f, pr, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf %s: %w", path, err)
	}
	defer f.Close()

	doc = newDocument(path)
	total := pr.NumPage()
	for i := 1; i <= total; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		page := pr.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			return nil, fmt.Errorf("extract text from page %d of %s: %w", i, path, err)
		}
		if strings.TrimSpace(text) == "" {
			continue
		}

		doc.Pages = append(doc.Pages, entity.Page{Number: i, Text: text})
	}

	return doc, nil
}
