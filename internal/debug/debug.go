package debug

import (
	"io"
	"log/slog"
	"os"
	"sync"
)

var (
	once   sync.Once
	logger *slog.Logger
)

// GetLogger returns a singleton slog logger instance.
func GetLogger() *slog.Logger {
	once.Do(func() {
		path := os.Getenv("PALAVER_DEBUG_LOG")
		if path == "" {
			path = "/tmp/palaver-debug.log"
		}
		f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
		if err != nil {
			// Fall back to a discarded handler rather than failing the process.
			logger = slog.New(slog.NewTextHandler(io.Discard, nil))
			return
		}
		logger = slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	})
	return logger
}
