package render

import (
	"context"
	"errors"
	"net"
	"strings"
	"unicode/utf8"

	"github.com/futig/rag-assistant/internal/entity"
)

// MaxMessageLength is the Telegram limit for one text message.
const MaxMessageLength = 4096

const (
	MsgWelcome = `👋 Hi! Ask me anything about the loaded document and I will answer from its text.

Just send your question as a message.`

	MsgHelp = `🤖 Commands:

/start - Show the welcome message
/help - Show this help
/export <md|pdf|docx> <question> - Get the answer as a file

Any other message is treated as a question about the document.`

	MsgNoAnswer     = `🤷 The model returned an empty answer. Try rephrasing the question.`
	MsgExportUsage  = `Usage: /export <md|pdf|docx> <question>`
	MsgUnknown      = `❌ Unknown command. Use /help`
	MsgRateLimited  = `⚠️ Too many requests. Please wait a little.`
	MsgRateLimited2 = `⚠️ Request limit exceeded. Wait about 30 seconds before the next question.`
	MsgRateLimited3 = `🛑 You are sending requests too often. Please wait a minute.`

	ErrGeneric            = `❌ Something went wrong. Please try again.`
	ErrEmptyQuestion      = `❌ Please send a non-empty question.`
	ErrRetrieval          = `❌ Could not search the document right now. Please try again later.`
	ErrServiceUnavailable = `❌ The language model is temporarily unavailable. Try again in a few minutes.`
	ErrNetworkIssue       = `❌ Connection problem. Please try again later.`
	ErrTimeout            = `❌ The request took too long. Please try again.`
)

// RateLimitWarning escalates the warning text with every repeated violation.
func RateLimitWarning(count int) string {
	switch {
	case count <= 1:
		return MsgRateLimited
	case count == 2:
		return MsgRateLimited2
	default:
		return MsgRateLimited3
	}
}

// ClassifyError maps an error to a message the user can act on.
func ClassifyError(err error) string {
	switch {
	case err == nil:
		return ErrGeneric
	case errors.Is(err, entity.ErrValidation):
		return ErrEmptyQuestion
	case errors.Is(err, context.DeadlineExceeded):
		return ErrTimeout
	case errors.Is(err, entity.ErrRetrieval):
		return ErrRetrieval
	case errors.Is(err, entity.ErrGeneration):
		return ErrServiceUnavailable
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return ErrTimeout
		}
		return ErrNetworkIssue
	}

	return ErrGeneric
}

// Split cuts text into parts of at most limit bytes, preferring line breaks
// and never splitting a UTF-8 sequence.
func Split(text string, limit int) []string {
	if limit <= 0 {
		limit = MaxMessageLength
	}

	var parts []string
	for len(text) > limit {
		cut := strings.LastIndexByte(text[:limit], '\n')
		if cut <= 0 {
			cut = limit
			for cut > 0 && !utf8.RuneStart(text[cut]) {
				cut--
			}
			if cut == 0 {
				cut = limit
			}
		}

		if part := strings.TrimSpace(text[:cut]); part != "" {
			parts = append(parts, part)
		}
		text = text[cut:]
	}

	if part := strings.TrimSpace(text); part != "" {
		parts = append(parts, part)
	}
	return parts
}
