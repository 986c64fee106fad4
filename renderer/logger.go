package renderer

import (
	"log/slog"

	"github.com/gogpu/gles2/internal/logging"
)

var pkgLogger logging.Holder

func slogger() *slog.Logger { return pkgLogger.Logger() }

// SetLogger updates the logger used by this package.
// gles2.SetLogger calls it, so applications rarely need to.
func SetLogger(l *slog.Logger) { pkgLogger.Set(l) }
