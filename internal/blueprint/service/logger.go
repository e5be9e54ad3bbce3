package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/aura-blueprint/aura/internal/blueprint/domain"
	"github.com/aura-blueprint/aura/internal/logging"
)

// Logger provides request-scoped structured logging for services.
type Logger struct {
	log *zap.Logger
}

// NewLogger creates a logger bound to the request id carried by ctx.
func NewLogger(ctx context.Context) *Logger {
	return &Logger{log: logging.WithRequestID(ctx, zap.L())}
}

// LogError logs err with its failure kind so misconfiguration can be told
// apart from transient upstream trouble.
func (l *Logger) LogError(operation string, err error) {
	l.log.Error("operation failed",
		zap.String("operation", operation),
		zap.String("kind", string(domain.KindOf(err))),
		zap.Error(err),
	)
}

func (l *Logger) LogInfof(operation string, format string, args ...any) {
	l.log.Info(fmt.Sprintf(format, args...), zap.String("operation", operation))
}

func (l *Logger) LogWarnf(operation string, format string, args ...any) {
	l.log.Warn(fmt.Sprintf(format, args...), zap.String("operation", operation))
}
