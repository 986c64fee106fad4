package glstate

import "unsafe"

// Functions is the OpenGL ES function table the driver calls.
//
// The method set is the subset of *gl.Context from
// github.com/gogpu/wgpu/hal/gles/gl that the driver needs. FromContext
// adapts a loaded context; tests use a recording implementation.
type Functions interface {
	GetError() uint32
	GetString(name uint32) string
	GetIntegerv(pname uint32, data *int32)

	Enable(capability uint32)
	Disable(capability uint32)
	Clear(mask uint32)
	ClearColor(r, g, b, a float32)
	Flush()
	Viewport(x, y, width, height int32)

	BlendFunc(sfactor, dfactor uint32)
	BlendFuncSeparate(srcRGB, dstRGB, srcAlpha, dstAlpha uint32)
	BlendEquation(mode uint32)
	DepthFunc(fn uint32)
	DepthMask(flag bool)
	ColorMask(r, g, b, a bool)
	CullFace(mode uint32)

	DrawArrays(mode uint32, first, count int32)
	DrawElements(mode uint32, count int32, typ uint32, indices uintptr)

	CreateShader(shaderType uint32) uint32
	DeleteShader(shader uint32)
	ShaderSource(shader uint32, source string)
	CompileShader(shader uint32)
	GetShaderiv(shader, pname uint32, params *int32)
	GetShaderInfoLog(shader uint32) string
	CreateProgram() uint32
	DeleteProgram(program uint32)
	AttachShader(program, shader uint32)
	LinkProgram(program uint32)
	UseProgram(program uint32)
	GetProgramiv(program, pname uint32, params *int32)
	GetProgramInfoLog(program uint32) string

	GenBuffers(n int32) uint32
	DeleteBuffers(buffers ...uint32)
	BindBuffer(target, buffer uint32)
	BufferData(target uint32, size int, data unsafe.Pointer, usage uint32)
	BufferSubData(target uint32, offset, size int, data unsafe.Pointer)
	BindBufferBase(target, index, buffer uint32)

	EnableVertexAttribArray(index uint32)
	DisableVertexAttribArray(index uint32)
	VertexAttribPointer(index uint32, size int32, typ uint32, normalized bool, stride int32, offset uintptr)

	BindTexture(target, texture uint32)
	ActiveTexture(texture uint32)
	TexParameteri(target, pname uint32, param int32)

	BindFramebuffer(target, framebuffer uint32)
}

// LineWidther is implemented by function tables that can set the
// rasterized line width. OpenGL ES core profiles without it keep 1.0.
type LineWidther interface {
	LineWidth(width float32)
}

// DepthClearer is implemented by function tables that can set the depth
// clear value. Others clear depth to 1.0.
type DepthClearer interface {
	ClearDepthf(depth float32)
}

// UniformBinder is implemented by function tables that can assign uniform
// block bindings and sampler units after linking. GLSL ES 3.00 has no
// layout(binding) qualifier, so programs compiled for it need these calls.
type UniformBinder interface {
	UniformBlockBinding(program, blockIndex, blockBinding uint32)
	GetUniformLocation(program uint32, name string) int32
	Uniform1i(location, value int32)
}
