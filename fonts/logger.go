package fonts

import (
	"context"
	"log/slog"

	"github.com/hashicorp/go-retryablehttp"
)

var _ retryablehttp.LeveledLogger = (*httpLogger)(nil)

// httpLogger forwards the transport's request logs to slog under the "http" group.
type httpLogger struct {
	l *slog.Logger
}

func newHTTPLogger(l *slog.Logger) *httpLogger {
	return &httpLogger{l: l.WithGroup("http")}
}

func (h *httpLogger) Error(msg string, keysAndValues ...any) {
	h.l.Log(context.Background(), slog.LevelError, msg, keysAndValues...)
}

func (h *httpLogger) Warn(msg string, keysAndValues ...any) {
	h.l.Log(context.Background(), slog.LevelWarn, msg, keysAndValues...)
}

func (h *httpLogger) Info(msg string, keysAndValues ...any) {
	h.l.Log(context.Background(), slog.LevelInfo, msg, keysAndValues...)
}

func (h *httpLogger) Debug(msg string, keysAndValues ...any) {
	h.l.Log(context.Background(), slog.LevelDebug, msg, keysAndValues...)
}
