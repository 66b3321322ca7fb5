package handlers

import (
	"context"
	"errors"

	"github.com/futig/rag-assistant/internal/entity"
	"github.com/futig/rag-assistant/internal/telegram/render"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// ErrorSeverity represents the severity level of an error
type ErrorSeverity int

const (
	SeverityWarning ErrorSeverity = iota
	SeverityError
)

func (s ErrorSeverity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// HandlerError represents a structured error with user message and logging info
type HandlerError struct {
	Err         error
	UserMessage string
	LogMessage  string
	Severity    ErrorSeverity
}

func classifyHandlerError(err error) *HandlerError {
	handlerErr := &HandlerError{
		Err:         err,
		UserMessage: render.ClassifyError(err),
		LogMessage:  "handler error",
		Severity:    SeverityError,
	}

	switch {
	case errors.Is(err, entity.ErrValidation):
		handlerErr.LogMessage = "invalid question"
		handlerErr.Severity = SeverityWarning
	case errors.Is(err, entity.ErrRetrieval):
		handlerErr.LogMessage = "document retrieval failed"
	case errors.Is(err, entity.ErrGeneration):
		handlerErr.LogMessage = "generation provider failed"
	case errors.Is(err, context.DeadlineExceeded):
		handlerErr.LogMessage = "operation timed out"
	}

	return handlerErr
}

// HandleError logs err with its severity and tells the user what went wrong
func (h *BaseHandler) HandleError(ctx context.Context, msg *Message, err error) {
	if err == nil {
		return
	}

	handlerErr := classifyHandlerError(err)

	fields := []zap.Field{
		zap.Error(handlerErr.Err),
		zap.Int64("chat_id", msg.ChatID),
		zap.String("severity", handlerErr.Severity.String()),
	}
	if handlerErr.Severity == SeverityWarning {
		ctxzap.Warn(ctx, handlerErr.LogMessage, fields...)
	} else {
		ctxzap.Error(ctx, handlerErr.LogMessage, fields...)
	}

	h.messageSender.Send(msg.ChatID, msg.MessageID, handlerErr.UserMessage)
}
