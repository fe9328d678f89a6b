package logger

import (
	"io"
	"log/slog"
	"os"
)

var Log = slog.New(slog.NewJSONHandler(io.Discard, nil))

func Init(level int) {
	// JSON handler for production-ready logging
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.Level(level),
	})
	Log = slog.New(handler)
}
