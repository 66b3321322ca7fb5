package splitter

import (
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/pkoukk/tiktoken-go"
	tiktoken_loader "github.com/pkoukk/tiktoken-go-loader"
)

const (
	DefaultEncoding          = "cl100k_base"
	DefaultChunkSize         = 800
	DefaultMinChunkSizeChars = 350
	DefaultMaxChunks         = 10000

	// punctuation that may end a chunk early
	boundaryChars = ".?!\n"
)

var loaderOnce sync.Once

// Options tune a TokenSplitter. Zero values fall back to defaults.
type Options struct {
	Encoding          string
	ChunkSize         int
	MinChunkSizeChars int
	MaxChunks         int
}

// TokenSplitter cuts text into windows of at most ChunkSize tokens. A window is
// shortened to its last sentence boundary when that boundary lies past
// MinChunkSizeChars, and the remainder starts the next window, so every
// non-blank piece of the input lands in exactly one chunk.
type TokenSplitter struct {
	enc               *tiktoken.Tiktoken
	chunkSize         int
	minChunkSizeChars int
	maxChunks         int
}

func New(opts Options) (*TokenSplitter, error) {
	if opts.Encoding == "" {
		opts.Encoding = DefaultEncoding
	}
	if opts.ChunkSize <= 0 {
		opts.ChunkSize = DefaultChunkSize
	}
	if opts.MinChunkSizeChars < 0 {
		opts.MinChunkSizeChars = DefaultMinChunkSizeChars
	}
	if opts.MaxChunks <= 0 {
		opts.MaxChunks = DefaultMaxChunks
	}

	// BPE ranks ship inside the binary, no download at runtime
	loaderOnce.Do(func() {
		tiktoken.SetBpeLoader(tiktoken_loader.NewOfflineLoader())
	})

	enc, err := tiktoken.GetEncoding(opts.Encoding)
	if err != nil {
		return nil, fmt.Errorf("load encoding %s: %w", opts.Encoding, err)
	}

	return &TokenSplitter{
		enc:               enc,
		chunkSize:         opts.ChunkSize,
		minChunkSizeChars: opts.MinChunkSizeChars,
		maxChunks:         opts.MaxChunks,
	}, nil
}

// CountTokens returns the number of tokens text encodes to.
func (s *TokenSplitter) CountTokens(text string) int {
	return len(s.enc.Encode(text, nil, nil))
}

// Split returns trimmed, non-empty chunks in document order.
func (s *TokenSplitter) Split(text string) []string {
	tokens := s.enc.Encode(text, nil, nil)

	var chunks []string
	for len(tokens) > 0 && len(chunks) < s.maxChunks {
		window := tokens[:min(s.chunkSize, len(tokens))]
		consumed := len(window)

		// the tail of the text is taken whole
		if len(window) < len(tokens) {
			windowText := s.enc.Decode(window)
			if cut := strings.LastIndexAny(windowText, boundaryChars); cut > s.minChunkSizeChars {
				consumed = s.tokensCovering(window, cut+1)
			}
			consumed = s.runeAligned(tokens, consumed)
		}

		if chunk := strings.TrimSpace(s.enc.Decode(tokens[:consumed])); chunk != "" {
			chunks = append(chunks, chunk)
		}
		tokens = tokens[consumed:]
	}

	return chunks
}

// runeAligned moves a cut so the decoded prefix ends on a whole UTF-8
// sequence. Byte-level tokens can split a character (emoji, flags), and the
// partial bytes then start the next window instead.
func (s *TokenSplitter) runeAligned(tokens []int, consumed int) int {
	n := consumed
	for n > 1 && !utf8.ValidString(s.enc.Decode(tokens[:n])) {
		n--
	}
	if utf8.ValidString(s.enc.Decode(tokens[:n])) {
		return n
	}

	// a single character wider than the window: take it whole
	for n = consumed; n < len(tokens); n++ {
		if utf8.ValidString(s.enc.Decode(tokens[:n])) {
			return n
		}
	}
	return len(tokens)
}

// tokensCovering returns how many leading tokens of window are needed to
// cover the first n bytes of its decoded text.
func (s *TokenSplitter) tokensCovering(window []int, n int) int {
	covered := 0
	for i, tok := range window {
		covered += len(s.enc.Decode([]int{tok}))
		if covered >= n {
			return i + 1
		}
	}
	return len(window)
}
