package logging

import (
	"context"
	"os"

	log "github.com/sirupsen/logrus"
)

type requestIDKey struct{}

// New builds the process logger: JSON in production, text elsewhere.
// An unknown level falls back to info.
func New(env, level string) *log.Logger {
	logger := log.New()
	logger.SetOutput(os.Stdout)

	if env == "production" {
		logger.SetFormatter(&log.JSONFormatter{})
	} else {
		logger.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}

	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}
	logger.SetLevel(lvl)
	return logger
}

// WithRequestID stores the request id in ctx.
func WithRequestID(ctx context.Context, rid string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, rid)
}

// RequestID extracts the request id from ctx, or "".
func RequestID(ctx context.Context) string {
	if rid, ok := ctx.Value(requestIDKey{}).(string); ok {
		return rid
	}
	return ""
}

// FromContext returns an entry tagged with the request id carried by ctx.
func FromContext(ctx context.Context, logger *log.Logger) *log.Entry {
	if logger == nil {
		logger = log.StandardLogger()
	}
	entry := log.NewEntry(logger)
	if rid := RequestID(ctx); rid != "" {
		entry = entry.WithField("request_id", rid)
	}
	return entry
}
