package gles2

import (
	"log/slog"

	"github.com/gogpu/gles2/internal/shader"
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/naga/glsl"
)

// DriverOption configures a Driver during creation.
//
// Example:
//
//	drv, err := gles2.New(fns,
//	    gles2.WithScreenSize(1280, 720),
//	    gles2.WithErrorCheck(gles2.ErrorCheckDraw),
//	)
type DriverOption func(*driverOptions)

// ShaderCompiler translates one entry point of a WGSL module to GLSL ES.
// The default compiler uses naga.
type ShaderCompiler = shader.Compiler

// Presenter swaps the back buffer at the end of a scene. The windowing
// layer that created the GL context implements it.
type Presenter interface {
	Present() error
}

// driverOptions holds optional configuration for Driver creation.
type driverOptions struct {
	width, height            int
	window                   gpucontext.WindowProvider
	allowZWriteOnTransparent bool
	coreContext              bool
	check                    ErrorCheckLevel
	maxTextureUnits          int
	samplerCacheSize         int
	compiler                 ShaderCompiler
	glslVersion              glsl.Version
	presenter                Presenter
	logger                   *slog.Logger
}

// defaultOptions returns the default driver options.
func defaultOptions() driverOptions {
	return driverOptions{
		width:           800,
		height:          600,
		check:           ErrorCheckOff,
		maxTextureUnits: 8,
	}
}

// WithScreenSize sets the size of the default framebuffer in pixels.
// Non-positive sizes are ignored.
func WithScreenSize(width, height int) DriverOption {
	return func(o *driverOptions) {
		if width > 0 && height > 0 {
			o.width, o.height = width, height
		}
	}
}

// WithWindow takes the default framebuffer size from a window. The size
// is read again at every BeginScene, so window resizes are picked up
// without further calls. It overrides WithScreenSize.
//
// Example:
//
//	drv, err := gles2.New(fns, gles2.WithWindow(app))
func WithWindow(w gpucontext.WindowProvider) DriverOption {
	return func(o *driverOptions) {
		o.window = w
	}
}

// WithAllowZWriteOnTransparent keeps depth writes enabled for transparent
// materials that request them. By default transparent materials never
// write depth.
func WithAllowZWriteOnTransparent(allow bool) DriverOption {
	return func(o *driverOptions) {
		o.allowZWriteOnTransparent = allow
	}
}

// WithCoreContext disables fixed-function emulation. Renderers then read
// texture matrices from SetTransform instead of the material layers.
func WithCoreContext(core bool) DriverOption {
	return func(o *driverOptions) {
		o.coreContext = core
	}
}

// WithErrorCheck sets when GL errors are polled and logged. The level can
// be changed later with Driver.SetErrorCheck.
func WithErrorCheck(level ErrorCheckLevel) DriverOption {
	return func(o *driverOptions) {
		o.check = level
	}
}

// WithMaxTextureUnits caps the texture units the driver uses. The
// effective count is the smaller of n and what the context reports.
func WithMaxTextureUnits(n int) DriverOption {
	return func(o *driverOptions) {
		if n > 0 {
			o.maxTextureUnits = n
		}
	}
}

// WithSamplerCacheSize sets how many textures keep cached sampler state.
func WithSamplerCacheSize(n int) DriverOption {
	return func(o *driverOptions) {
		o.samplerCacheSize = n
	}
}

// WithShaderCompiler replaces the naga based WGSL to GLSL translation.
// Useful for tests and for platforms shipping precompiled shaders.
func WithShaderCompiler(c ShaderCompiler) DriverOption {
	return func(o *driverOptions) {
		o.compiler = c
	}
}

// WithGLSLVersion forces the GLSL version emitted by the default
// compiler, which otherwise follows the context's OpenGL ES version. It
// has no effect together with WithShaderCompiler.
func WithGLSLVersion(v glsl.Version) DriverOption {
	return func(o *driverOptions) {
		o.glslVersion = v
	}
}

// WithPresenter sets the presenter EndScene calls.
func WithPresenter(p Presenter) DriverOption {
	return func(o *driverOptions) {
		o.presenter = p
	}
}

// WithLogger installs l as the package logger before the driver is
// created. It is equivalent to calling SetLogger(l) first.
func WithLogger(l *slog.Logger) DriverOption {
	return func(o *driverOptions) {
		o.logger = l
	}
}
