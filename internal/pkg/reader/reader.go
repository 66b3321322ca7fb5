package reader

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/futig/rag-assistant/internal/entity"
)

// Reader turns a file into a document with one entry per page.
type Reader interface {
	Read(ctx context.Context, path string) (*entity.Document, error)
}

// ByExtension picks a reader from the file extension.
type ByExtension struct {
	pdf  Reader
	text Reader
}

func New() *ByExtension {
	return &ByExtension{
		pdf:  NewPDFReader(),
		text: NewTextReader(),
	}
}

func (r *ByExtension) Read(ctx context.Context, path string) (*entity.Document, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return r.pdf.Read(ctx, path)
	case ".txt", ".md", ".text":
		return r.text.Read(ctx, path)
	default:
		return nil, fmt.Errorf("%w: unsupported document %s", entity.ErrInvalidExtension, path)
	}
}

func newDocument(path string) *entity.Document {
	return &entity.Document{
		Name: filepath.Base(path),
		Path: path,
	}
}
