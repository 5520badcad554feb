package logger

import (
	"context"

	"go.uber.org/zap"
)

type ctxKey int

const (
	loggerKey ctxKey = iota
	requestIDKey
	accountIDKey
)

// WithContext stores the logger in the context.
func WithContext(ctx context.Context, log *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, log)
}

// FromContext returns the logger stored in the context, or a no-op
// logger when none is attached.
func FromContext(ctx context.Context) *zap.Logger {
	if log, ok := ctx.Value(loggerKey).(*zap.Logger); ok {
		return log
	}
	return zap.NewNop()
}

// WithRequestID records the request ID in the context and returns the
// logger annotated with it. The annotated logger replaces any logger
// already stored in the context.
func WithRequestID(ctx context.Context, log *zap.Logger, requestID string) (context.Context, *zap.Logger) {
	annotated := log.With(zap.String("request_id", requestID))
	ctx = context.WithValue(ctx, requestIDKey, requestID)
	return WithContext(ctx, annotated), annotated
}

// WithAccountID records the authenticated account in the context and
// returns the logger annotated with it.
func WithAccountID(ctx context.Context, log *zap.Logger, accountID string) (context.Context, *zap.Logger) {
	annotated := log.With(zap.String("account_id", accountID))
	ctx = context.WithValue(ctx, accountIDKey, accountID)
	return WithContext(ctx, annotated), annotated
}

// GetRequestID returns the request ID stored in the context, if any.
func GetRequestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}

// GetAccountID returns the account ID stored in the context, if any.
func GetAccountID(ctx context.Context) string {
	if id, ok := ctx.Value(accountIDKey).(string); ok {
		return id
	}
	return ""
}
