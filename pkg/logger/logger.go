// Package logger provides the application-wide slog setup plus small
// attribute helpers shared by every component.
package logger

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.uber.org/fx"
)

// Module provides the logger dependencies.
var Module = fx.Module("logger",
	fx.Provide(NewLogger),
	fx.Provide(NewHTTPLogger),
)

// Scope returns the standard component-scope attribute.
// Every component logs with log.With(logger.Scope("studios.svc")).
func Scope(scope string) slog.Attr {
	return slog.Any("scope", scope)
}

// Error returns the standard error attribute.
func Error(err error) slog.Attr {
	return slog.Any("error", err)
}

// NewLogger builds the root slog.Logger.
//
// LOG_LEVEL selects the minimum level (debug, info, warn/warning, error;
// case-insensitive, unknown values fall back to info). GO_ENV=production
// switches to the JSON handler for log aggregation; anything else uses the
// text handler.
func NewLogger() *slog.Logger {
	level := slog.LevelInfo
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		level = slog.LevelDebug
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	case "info":
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if os.Getenv("GO_ENV") == "production" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}

// HTTPLogger writes an access log line per request to a file, independent of
// the structured application log. Disabled when HTTP_LOG_FILE is unset.
type HTTPLogger struct {
	mu   sync.Mutex
	file *os.File
}

// NewHTTPLogger opens the access log file named by HTTP_LOG_FILE.
// A missing or unwritable path disables file logging rather than failing
// startup.
func NewHTTPLogger(log *slog.Logger) *HTTPLogger {
	path := os.Getenv("HTTP_LOG_FILE")
	if path == "" {
		return &HTTPLogger{}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		log.Warn("http log directory not created", Scope("logger"), Error(err))
		return &HTTPLogger{}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		log.Warn("http log file not opened", Scope("logger"), Error(err))
		return &HTTPLogger{}
	}

	return &HTTPLogger{file: f}
}

// LogRequest appends one access log line. Safe for concurrent use.
func (h *HTTPLogger) LogRequest(ip, method, uri string, status int, latency time.Duration, userAgent, requestID string) {
	if h == nil || h.file == nil {
		return
	}

	line := fmt.Sprintf("%s %s %q %q %d %s %q %s\n",
		time.Now().UTC().Format(time.RFC3339),
		ip, method, uri, status, latency, userAgent, requestID)

	h.mu.Lock()
	defer h.mu.Unlock()
	_, _ = h.file.WriteString(line)
}

// Close releases the underlying file, if any.
func (h *HTTPLogger) Close() error {
	if h == nil || h.file == nil {
		return nil
	}
	return h.file.Close()
}
