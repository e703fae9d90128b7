package logger

import (
	"io"
	"log/slog"
	"os"

	"go.uber.org/fx"

	"github.com/orgair/orgair-mcp/pkg/config"
)

func ParseLevel(name string) slog.Level {
	switch name {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New builds the process logger writing to w in the configured format and
// mirroring every record into buffer.
func New(cfg *config.ServerConfig, w io.Writer, buffer *RingBuffer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.LogLevel)}

	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(NewBufferingHandler(handler, buffer))
}

// NewSlogLogger logs to stderr; stdout belongs to the stdio transport.
func NewSlogLogger(cfg *config.ServerConfig, buffer *RingBuffer) *slog.Logger {
	return New(cfg, os.Stderr, buffer)
}

var Module = fx.Module("logger",
	fx.Provide(
		func(cfg *config.ServerConfig) *RingBuffer { return NewRingBuffer(cfg.LogBufferLines) },
		NewSlogLogger,
	),
)
