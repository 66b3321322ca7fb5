package entity

import (
	"fmt"
	"sort"
	"strings"
)

// Chunk metadata keys
const (
	MetadataSource     = "source"
	MetadataPageNumber = "page_number"
	MetadataChunkIndex = "chunk_index"
)

// Document is a source file read page by page.
type Document struct {
	Name  string
	Path  string
	Pages []Page
}

// Page holds the text of one 1-based page.
type Page struct {
	Number int
	Text   string
}

// Chunk is a token-bounded piece of a page that gets embedded and stored.
type Chunk struct {
	ID       string
	Content  string
	Metadata map[string]any
}

// FormattedContent renders metadata as "key: value" lines followed by a blank line
// and the chunk text. Keys are sorted so that output is stable.
func (c Chunk) FormattedContent() string {
	var sb strings.Builder

	keys := make([]string, 0, len(c.Metadata))
	for k := range c.Metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		fmt.Fprintf(&sb, "%s: %v\n", k, c.Metadata[k])
	}
	if len(keys) > 0 {
		sb.WriteString("\n")
	}

	sb.WriteString(c.Content)
	sb.WriteString("\n")

	return sb.String()
}

// ScoredChunk is a chunk returned by similarity search.
type ScoredChunk struct {
	Chunk
	Score float64
}

// Query is a similarity search request.
type Query struct {
	Text string
	TopK int
}

// IngestionReport summarizes a single ingestion run.
type IngestionReport struct {
	Skipped       bool
	ExistingCount int
	Pages         int
	Chunks        int
}
