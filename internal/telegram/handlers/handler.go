package handlers

import (
	"context"
)

// Command names. CommandQuestion handles plain text messages.
const (
	CommandQuestion = ""
	CommandExport   = "export"
)

// Message represents a normalized Telegram message
type Message struct {
	ChatID    int64
	UserID    int64
	MessageID int
	Text      string
	Command   string
	Arguments string
}

// Handler handles one command or plain text questions
type Handler interface {
	Handle(ctx context.Context, msg *Message) error

	// Command returns the command this handler serves
	Command() string
}

// BaseHandler provides common functionality for all handlers
type BaseHandler struct {
	command       string
	messageSender *MessageSender
}

// Command implements Handler
func (h *BaseHandler) Command() string {
	return h.command
}
