package typeset

import (
	"log/slog"

	"github.com/gogpu/typeset/internal/logging"
)

// SetLogger sets the logger used by all typeset packages.
// Passing nil restores the default no-op logger.
//
// Logging is disabled by default. To enable:
//
//	typeset.SetLogger(slog.Default())
func SetLogger(logger *slog.Logger) {
	logging.SetLogger(logger)
}

// Logger returns the current package logger.
func Logger() *slog.Logger {
	return logging.Logger()
}
