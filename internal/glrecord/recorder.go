// Package glrecord provides a GL function table that records every call
// instead of talking to a GPU.
//
// The Recorder hands out object names, answers queries from configurable
// values and counts calls by name. It backs the driver tests and the
// gles2trace command.
package glrecord

import (
	"sort"
	"strings"
	"unsafe"

	"github.com/gogpu/wgpu/hal/gles/gl"
)

// Call is one recorded GL call.
type Call struct {
	Name string
	Args []any
}

// Recorder implements the GL subset used by the driver.
//
// A Recorder is not safe for concurrent use, matching a GL context.
type Recorder struct {
	// Vendor, Renderer and Version are returned by GetString.
	Vendor   string
	Renderer string
	Version  string

	// Extensions is returned for GL_EXTENSIONS, space separated.
	Extensions []string

	// Integers answers GetIntegerv. Missing names read as zero.
	Integers map[uint32]int32

	// FailCompile and FailLink make shader compilation or program
	// linking report failure.
	FailCompile bool
	FailLink    bool

	// UniformBlocks is the active uniform block count of every linked
	// program.
	UniformBlocks int32

	calls     []Call
	counts    map[string]int
	errors    []uint32
	nextName  uint32
	locations map[string]int32

	// KeepCalls controls whether individual calls are retained.
	// Counts are always kept.
	KeepCalls bool
}

// New returns a Recorder describing an OpenGL ES 3.0 context with eight
// texture units and 16x anisotropic filtering.
func New() *Recorder {
	return &Recorder{
		Vendor:   "gogpu",
		Renderer: "glrecord",
		Version:  "OpenGL ES 3.0 glrecord",
		Extensions: []string{
			"GL_OES_element_index_uint",
			"GL_EXT_texture_filter_anisotropic",
			"GL_EXT_blend_minmax",
		},
		Integers: map[uint32]int32{
			gl.MAX_TEXTURE_IMAGE_UNITS:          8,
			gl.MAX_COMBINED_TEXTURE_IMAGE_UNITS: 16,
			MaxTextureMaxAnisotropy:            16,
			gl.MAX_TEXTURE_SIZE:                 4096,
		},
		UniformBlocks: 2,
		counts:        make(map[string]int),
		locations:     make(map[string]int32),
		KeepCalls:     true,
	}
}

// MaxTextureMaxAnisotropy is GL_MAX_TEXTURE_MAX_ANISOTROPY_EXT.
const MaxTextureMaxAnisotropy = 0x84FF

func (r *Recorder) record(name string, args ...any) {
	r.counts[name]++
	if r.KeepCalls {
		r.calls = append(r.calls, Call{Name: name, Args: args})
	}
}

func (r *Recorder) genName() uint32 {
	r.nextName++
	return r.nextName
}

// Calls returns the recorded calls in order.
func (r *Recorder) Calls() []Call {
	return r.calls
}

// Count returns how many times the named call was made.
func (r *Recorder) Count(name string) int {
	return r.counts[name]
}

// CountAll returns the summed count of the named calls.
func (r *Recorder) CountAll(names ...string) int {
	n := 0
	for _, name := range names {
		n += r.counts[name]
	}
	return n
}

// Total returns the number of recorded calls.
func (r *Recorder) Total() int {
	n := 0
	for _, c := range r.counts {
		n += c
	}
	return n
}

// Last returns the most recent call with the given name.
func (r *Recorder) Last(name string) (Call, bool) {
	for i := len(r.calls) - 1; i >= 0; i-- {
		if r.calls[i].Name == name {
			return r.calls[i], true
		}
	}
	return Call{}, false
}

// Entry is one row of a call histogram.
type Entry struct {
	Name  string
	Count int
}

// Histogram returns call counts sorted by descending count, then name.
func (r *Recorder) Histogram() []Entry {
	out := make([]Entry, 0, len(r.counts))
	for name, c := range r.counts {
		out = append(out, Entry{Name: name, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// Reset forgets recorded calls and counts. Object names keep increasing.
func (r *Recorder) Reset() {
	r.calls = r.calls[:0]
	r.counts = make(map[string]int)
}

// PushError queues an error code for GetError.
func (r *Recorder) PushError(code uint32) {
	r.errors = append(r.errors, code)
}

// StateCalls lists the calls that change pipeline state, as opposed to
// queries, object management and draws.
var StateCalls = []string{
	"Enable", "Disable",
	"BlendFunc", "BlendFuncSeparate", "BlendEquation",
	"DepthFunc", "DepthMask", "ColorMask", "CullFace",
	"UseProgram", "ActiveTexture", "BindTexture", "TexParameteri",
	"Viewport", "BindFramebuffer", "BindBufferBase",
	"EnableVertexAttribArray", "DisableVertexAttribArray",
	"LineWidth",
}

// Queries.

func (r *Recorder) GetError() uint32 {
	r.record("GetError")
	if len(r.errors) == 0 {
		return gl.NO_ERROR
	}
	code := r.errors[0]
	r.errors = r.errors[1:]
	return code
}

func (r *Recorder) GetString(name uint32) string {
	r.record("GetString", name)
	switch name {
	case gl.VENDOR:
		return r.Vendor
	case gl.RENDERER:
		return r.Renderer
	case gl.VERSION:
		return r.Version
	case gl.EXTENSIONS:
		return strings.Join(r.Extensions, " ")
	}
	return ""
}

func (r *Recorder) GetIntegerv(pname uint32, data *int32) {
	r.record("GetIntegerv", pname)
	if data != nil {
		*data = r.Integers[pname]
	}
}

// State.

func (r *Recorder) Enable(capability uint32)  { r.record("Enable", capability) }
func (r *Recorder) Disable(capability uint32) { r.record("Disable", capability) }
func (r *Recorder) Clear(mask uint32)         { r.record("Clear", mask) }
func (r *Recorder) ClearDepthf(depth float32) { r.record("ClearDepthf", depth) }
func (r *Recorder) Flush()                    { r.record("Flush") }

func (r *Recorder) ClearColor(red, green, blue, alpha float32) {
	r.record("ClearColor", red, green, blue, alpha)
}

func (r *Recorder) Viewport(x, y, width, height int32) {
	r.record("Viewport", x, y, width, height)
}

func (r *Recorder) BlendFunc(sfactor, dfactor uint32) {
	r.record("BlendFunc", sfactor, dfactor)
}

func (r *Recorder) BlendFuncSeparate(srcRGB, dstRGB, srcAlpha, dstAlpha uint32) {
	r.record("BlendFuncSeparate", srcRGB, dstRGB, srcAlpha, dstAlpha)
}

func (r *Recorder) BlendEquation(mode uint32) { r.record("BlendEquation", mode) }
func (r *Recorder) DepthFunc(fn uint32)       { r.record("DepthFunc", fn) }
func (r *Recorder) DepthMask(flag bool)       { r.record("DepthMask", flag) }
func (r *Recorder) CullFace(mode uint32)      { r.record("CullFace", mode) }
func (r *Recorder) LineWidth(width float32)   { r.record("LineWidth", width) }

func (r *Recorder) ColorMask(red, green, blue, alpha bool) {
	r.record("ColorMask", red, green, blue, alpha)
}

// Draws.

func (r *Recorder) DrawArrays(mode uint32, first, count int32) {
	r.record("DrawArrays", mode, first, count)
}

func (r *Recorder) DrawElements(mode uint32, count int32, typ uint32, indices uintptr) {
	r.record("DrawElements", mode, count, typ, indices)
}

// Shaders and programs.

func (r *Recorder) CreateShader(shaderType uint32) uint32 {
	name := r.genName()
	r.record("CreateShader", shaderType, name)
	return name
}

func (r *Recorder) DeleteShader(shader uint32)                { r.record("DeleteShader", shader) }
func (r *Recorder) ShaderSource(shader uint32, source string) { r.record("ShaderSource", shader, source) }
func (r *Recorder) CompileShader(shader uint32)               { r.record("CompileShader", shader) }

func (r *Recorder) GetShaderiv(shader, pname uint32, params *int32) {
	r.record("GetShaderiv", shader, pname)
	if params == nil {
		return
	}
	switch pname {
	case gl.COMPILE_STATUS:
		*params = boolInt(!r.FailCompile)
	default:
		*params = 0
	}
}

func (r *Recorder) GetShaderInfoLog(shader uint32) string {
	r.record("GetShaderInfoLog", shader)
	if r.FailCompile {
		return "0:1: error: recorded compile failure"
	}
	return ""
}

func (r *Recorder) CreateProgram() uint32 {
	name := r.genName()
	r.record("CreateProgram", name)
	return name
}

func (r *Recorder) DeleteProgram(program uint32)        { r.record("DeleteProgram", program) }
func (r *Recorder) AttachShader(program, shader uint32) { r.record("AttachShader", program, shader) }
func (r *Recorder) LinkProgram(program uint32)          { r.record("LinkProgram", program) }
func (r *Recorder) UseProgram(program uint32)           { r.record("UseProgram", program) }

func (r *Recorder) GetProgramiv(program, pname uint32, params *int32) {
	r.record("GetProgramiv", program, pname)
	if params == nil {
		return
	}
	switch pname {
	case gl.LINK_STATUS:
		*params = boolInt(!r.FailLink)
	case activeUniformBlocks:
		*params = r.UniformBlocks
	default:
		*params = 0
	}
}

func (r *Recorder) GetProgramInfoLog(program uint32) string {
	r.record("GetProgramInfoLog", program)
	if r.FailLink {
		return "error: recorded link failure"
	}
	return ""
}

const activeUniformBlocks = 0x8A36

func (r *Recorder) UniformBlockBinding(program, blockIndex, blockBinding uint32) {
	r.record("UniformBlockBinding", program, blockIndex, blockBinding)
}

// GetUniformLocation hands out one location per uniform name, starting
// at zero.
func (r *Recorder) GetUniformLocation(program uint32, name string) int32 {
	r.record("GetUniformLocation", program, name)
	loc, ok := r.locations[name]
	if !ok {
		loc = int32(len(r.locations))
		r.locations[name] = loc
	}
	return loc
}

func (r *Recorder) Uniform1i(location, value int32) {
	r.record("Uniform1i", location, value)
}

// Buffers and vertex attributes.

func (r *Recorder) GenBuffers(n int32) uint32 {
	name := r.genName()
	r.record("GenBuffers", n, name)
	return name
}

func (r *Recorder) DeleteBuffers(buffers ...uint32) {
	r.record("DeleteBuffers", toAny(buffers)...)
}

func (r *Recorder) BindBuffer(target, buffer uint32) { r.record("BindBuffer", target, buffer) }

func (r *Recorder) BufferData(target uint32, size int, data unsafe.Pointer, usage uint32) {
	r.record("BufferData", target, size, usage)
}

func (r *Recorder) BufferSubData(target uint32, offset, size int, data unsafe.Pointer) {
	r.record("BufferSubData", target, offset, size)
}

func (r *Recorder) BindBufferBase(target, index, buffer uint32) {
	r.record("BindBufferBase", target, index, buffer)
}

func (r *Recorder) EnableVertexAttribArray(index uint32) {
	r.record("EnableVertexAttribArray", index)
}

func (r *Recorder) DisableVertexAttribArray(index uint32) {
	r.record("DisableVertexAttribArray", index)
}

func (r *Recorder) VertexAttribPointer(index uint32, size int32, typ uint32, normalized bool, stride int32, offset uintptr) {
	r.record("VertexAttribPointer", index, size, typ, normalized, stride, offset)
}

// Textures and framebuffers.

func (r *Recorder) BindTexture(target, texture uint32) { r.record("BindTexture", target, texture) }
func (r *Recorder) ActiveTexture(texture uint32)       { r.record("ActiveTexture", texture) }

func (r *Recorder) TexParameteri(target, pname uint32, param int32) {
	r.record("TexParameteri", target, pname, param)
}

func (r *Recorder) BindFramebuffer(target, framebuffer uint32) {
	r.record("BindFramebuffer", target, framebuffer)
}

func boolInt(b bool) int32 {
	if b {
		return 1
	}
	return 0
}

func toAny(v []uint32) []any {
	out := make([]any, len(v))
	for i, x := range v {
		out[i] = x
	}
	return out
}
