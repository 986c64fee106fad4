package materials

import (
	"log/slog"

	"github.com/gogpu/gles2/internal/logging"
)

var pkgLogger logging.Holder

func slogger() *slog.Logger { return pkgLogger.Logger() }

// SetLogger updates the package logger. Called from gles2.SetLogger.
func SetLogger(l *slog.Logger) { pkgLogger.Set(l) }
