package gles2

import (
	"log/slog"

	"github.com/gogpu/gles2/internal/glstate"
	"github.com/gogpu/gles2/internal/logging"
	"github.com/gogpu/gles2/internal/materials"
	"github.com/gogpu/gles2/internal/resolver"
	"github.com/gogpu/gles2/internal/shader"
	"github.com/gogpu/gles2/renderer"
)

var pkgLogger logging.Holder

func slogger() *slog.Logger { return pkgLogger.Logger() }

// SetLogger routes driver, state cache, shader and material messages to
// l. The driver is silent until SetLogger is called; nil silences it
// again.
//
// Levels:
//   - [slog.LevelDebug]: state cache resets, renderer registration
//   - [slog.LevelInfo]: driver creation (vendor, renderer, version)
//   - [slog.LevelWarn]: degraded capabilities (no 32-bit indices, no
//     anisotropic filtering, min/max blending emulated with add)
//   - [slog.LevelError]: GL errors, shader compile and link failures,
//     rejected draws
//
//	gles2.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	pkgLogger.Set(l)

	glstate.SetLogger(l)
	resolver.SetLogger(l)
	shader.SetLogger(l)
	materials.SetLogger(l)
	renderer.SetLogger(l)
}

// Logger returns the logger installed by SetLogger.
func Logger() *slog.Logger {
	return pkgLogger.Logger()
}
