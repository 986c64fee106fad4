// Package glstate mirrors OpenGL ES pipeline state and filters redundant
// state changes before they reach the driver.
//
// Every state mutation of the gles2 driver goes through a Bridge. The
// bridge compares the requested value with the cached one and only calls
// into GL when they differ, so the cache reflects the real GPU state as
// long as nothing else touches the context. Reset re-synchronizes after
// foreign code did.
package glstate

import (
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal/gles/gl"
)

// MaxTextureUnits is the number of texture units the bridge tracks.
const MaxTextureUnits = 8

// MaxUniformBindings is the number of uniform buffer binding points tracked.
const MaxUniformBindings = 4

// MaxVertexAttribs is the number of vertex attribute arrays tracked.
const MaxVertexAttribs = 16

// sampleAlphaToCoverage is GL_SAMPLE_ALPHA_TO_COVERAGE.
const sampleAlphaToCoverage = 0x809E

// Rect is a viewport rectangle in framebuffer pixels, origin bottom left.
type Rect struct {
	X, Y, Width, Height int32
}

// BlendFunc holds the four blend factors as GL enums.
type BlendFunc struct {
	SrcRGB, DstRGB, SrcAlpha, DstAlpha uint32
}

// TextureBinding is the texture bound on a unit and its target.
// A zero value means no texture.
type TextureBinding struct {
	Target uint32
	Name   uint32
}

// Snapshot is the cached GPU state.
type Snapshot struct {
	Blend         bool
	BlendFunc     BlendFunc
	BlendEquation uint32

	CullFace     bool
	CullFaceMode uint32

	DepthTest bool
	DepthFunc uint32
	DepthMask bool

	ColorMask gputypes.ColorWriteMask

	LineWidth       float32
	AlphaToCoverage bool

	Program       uint32
	ActiveTexture int
	Textures      [MaxTextureUnits]TextureBinding

	Viewport    Rect
	Framebuffer uint32
}

// defaultSnapshot returns the state of a freshly created GL context.
func defaultSnapshot(viewport Rect) Snapshot {
	return Snapshot{
		BlendFunc:     BlendFunc{gl.ONE, gl.ZERO, gl.ONE, gl.ZERO},
		BlendEquation: gl.FUNC_ADD,
		CullFaceMode:  gl.BACK,
		DepthFunc:     gl.LESS,
		DepthMask:     true,
		ColorMask:     gputypes.ColorWriteMaskAll,
		LineWidth:     1,
		Viewport:      viewport,
	}
}

// Counters reports how many state changes were issued and how many were
// filtered out because the cached value already matched.
type Counters struct {
	Issued uint64
	Elided uint64
}

// Bridge is the state cache and the only path for state-changing GL calls.
//
// A Bridge belongs to one GL context and is not safe for concurrent use.
type Bridge struct {
	gl    Functions
	state Snapshot
	units int
	check CheckLevel

	uniformBuffers [MaxUniformBindings]uint32
	attribs        uint32 // enabled vertex attribute arrays, one bit per index

	counters Counters
}

// NewBridge creates a bridge for f and pushes the default state to the GPU.
// units is clamped to [1, MaxTextureUnits].
func NewBridge(f Functions, units int, viewport Rect, check CheckLevel) *Bridge {
	b := &Bridge{
		gl:    f,
		units: min(max(units, 1), MaxTextureUnits),
		check: check,
		state: defaultSnapshot(viewport),
	}
	b.Reset()
	return b
}

// Functions returns the underlying function table.
func (b *Bridge) Functions() Functions { return b.gl }

// Snapshot returns a copy of the cached state.
func (b *Bridge) Snapshot() Snapshot { return b.state }

// Counters returns the issued and elided call counts.
func (b *Bridge) Counters() Counters { return b.counters }

// TextureUnits returns the number of usable texture units.
func (b *Bridge) TextureUnits() int { return b.units }

// SetCheckLevel changes when GL errors are polled.
func (b *Bridge) SetCheckLevel(l CheckLevel) { b.check = l }

// CheckLevel returns the current error check level.
func (b *Bridge) CheckLevel() CheckLevel { return b.check }

func (b *Bridge) issued(op string) {
	b.counters.Issued++
	if b.check == CheckAll {
		CheckError(b.gl, op)
	}
}

func (b *Bridge) elided() {
	b.counters.Elided++
}

func (b *Bridge) toggle(capability uint32, enable bool) {
	if enable {
		b.gl.Enable(capability)
		b.issued("Enable")
		return
	}
	b.gl.Disable(capability)
	b.issued("Disable")
}

// Reset re-issues every cached value so GL matches the cache again.
func (b *Bridge) Reset() {
	s := b.state
	slogger().Debug("glstate: reset", "program", s.Program, "framebuffer", s.Framebuffer)

	b.toggle(gl.BLEND, s.Blend)
	b.gl.BlendFuncSeparate(s.BlendFunc.SrcRGB, s.BlendFunc.DstRGB, s.BlendFunc.SrcAlpha, s.BlendFunc.DstAlpha)
	b.issued("BlendFuncSeparate")
	b.gl.BlendEquation(s.BlendEquation)
	b.issued("BlendEquation")

	b.toggle(gl.CULL_FACE, s.CullFace)
	b.gl.CullFace(s.CullFaceMode)
	b.issued("CullFace")

	b.toggle(gl.DEPTH_TEST, s.DepthTest)
	b.gl.DepthFunc(s.DepthFunc)
	b.issued("DepthFunc")
	b.gl.DepthMask(s.DepthMask)
	b.issued("DepthMask")

	b.colorMask(s.ColorMask)
	if lw, ok := b.gl.(LineWidther); ok {
		lw.LineWidth(s.LineWidth)
		b.issued("LineWidth")
	}
	b.toggle(sampleAlphaToCoverage, s.AlphaToCoverage)

	b.gl.UseProgram(s.Program)
	b.issued("UseProgram")

	for i := b.units - 1; i >= 0; i-- {
		t := s.Textures[i]
		target := t.Target
		if target == 0 {
			target = gl.TEXTURE_2D
		}
		b.gl.ActiveTexture(gl.TEXTURE0 + uint32(i))
		b.gl.BindTexture(target, t.Name)
		b.issued("BindTexture")
	}
	b.gl.ActiveTexture(gl.TEXTURE0 + uint32(s.ActiveTexture))
	b.issued("ActiveTexture")

	for i, buf := range b.uniformBuffers {
		if buf != 0 {
			b.gl.BindBufferBase(gl.UNIFORM_BUFFER, uint32(i), buf)
			b.issued("BindBufferBase")
		}
	}
	for i := range MaxVertexAttribs {
		if b.attribs&(1<<i) != 0 {
			b.gl.EnableVertexAttribArray(uint32(i))
		} else {
			b.gl.DisableVertexAttribArray(uint32(i))
		}
	}

	b.gl.BindFramebuffer(gl.FRAMEBUFFER, s.Framebuffer)
	b.issued("BindFramebuffer")
	b.gl.Viewport(s.Viewport.X, s.Viewport.Y, s.Viewport.Width, s.Viewport.Height)
	b.issued("Viewport")
}

// SetBlend enables or disables blending.
func (b *Bridge) SetBlend(enable bool) {
	if b.state.Blend == enable {
		b.elided()
		return
	}
	b.state.Blend = enable
	b.toggle(gl.BLEND, enable)
}

// SetBlendFunc sets the same factors for color and alpha.
func (b *Bridge) SetBlendFunc(src, dst uint32) {
	want := BlendFunc{src, dst, src, dst}
	if b.state.BlendFunc == want {
		b.elided()
		return
	}
	b.state.BlendFunc = want
	b.gl.BlendFunc(src, dst)
	b.issued("BlendFunc")
}

// SetBlendFuncSeparate sets color and alpha factors independently.
// Matching pairs collapse to SetBlendFunc.
func (b *Bridge) SetBlendFuncSeparate(srcRGB, dstRGB, srcAlpha, dstAlpha uint32) {
	if srcRGB == srcAlpha && dstRGB == dstAlpha {
		b.SetBlendFunc(srcRGB, dstRGB)
		return
	}
	want := BlendFunc{srcRGB, dstRGB, srcAlpha, dstAlpha}
	if b.state.BlendFunc == want {
		b.elided()
		return
	}
	b.state.BlendFunc = want
	b.gl.BlendFuncSeparate(srcRGB, dstRGB, srcAlpha, dstAlpha)
	b.issued("BlendFuncSeparate")
}

// SetBlendEquation sets the blend equation.
func (b *Bridge) SetBlendEquation(mode uint32) {
	if b.state.BlendEquation == mode {
		b.elided()
		return
	}
	b.state.BlendEquation = mode
	b.gl.BlendEquation(mode)
	b.issued("BlendEquation")
}

// SetCullFace enables or disables face culling.
func (b *Bridge) SetCullFace(enable bool) {
	if b.state.CullFace == enable {
		b.elided()
		return
	}
	b.state.CullFace = enable
	b.toggle(gl.CULL_FACE, enable)
}

// SetCullFaceMode selects FRONT, BACK or FRONT_AND_BACK.
func (b *Bridge) SetCullFaceMode(mode uint32) {
	if b.state.CullFaceMode == mode {
		b.elided()
		return
	}
	b.state.CullFaceMode = mode
	b.gl.CullFace(mode)
	b.issued("CullFace")
}

// SetDepthTest enables or disables the depth test.
func (b *Bridge) SetDepthTest(enable bool) {
	if b.state.DepthTest == enable {
		b.elided()
		return
	}
	b.state.DepthTest = enable
	b.toggle(gl.DEPTH_TEST, enable)
}

// SetDepthFunc sets the depth comparison.
func (b *Bridge) SetDepthFunc(fn uint32) {
	if b.state.DepthFunc == fn {
		b.elided()
		return
	}
	b.state.DepthFunc = fn
	b.gl.DepthFunc(fn)
	b.issued("DepthFunc")
}

// SetDepthMask enables or disables depth writes.
func (b *Bridge) SetDepthMask(enable bool) {
	if b.state.DepthMask == enable {
		b.elided()
		return
	}
	b.state.DepthMask = enable
	b.gl.DepthMask(enable)
	b.issued("DepthMask")
}

// SetColorMask selects the written color channels.
func (b *Bridge) SetColorMask(mask gputypes.ColorWriteMask) {
	mask &= gputypes.ColorWriteMaskAll
	if b.state.ColorMask == mask {
		b.elided()
		return
	}
	b.state.ColorMask = mask
	b.colorMask(mask)
}

func (b *Bridge) colorMask(mask gputypes.ColorWriteMask) {
	b.gl.ColorMask(
		mask&gputypes.ColorWriteMaskRed != 0,
		mask&gputypes.ColorWriteMaskGreen != 0,
		mask&gputypes.ColorWriteMaskBlue != 0,
		mask&gputypes.ColorWriteMaskAlpha != 0,
	)
	b.issued("ColorMask")
}

// SetLineWidth sets the rasterized line width. It is a no-op when the
// function table cannot set line widths.
func (b *Bridge) SetLineWidth(width float32) {
	lw, ok := b.gl.(LineWidther)
	if !ok {
		return
	}
	if b.state.LineWidth == width {
		b.elided()
		return
	}
	b.state.LineWidth = width
	lw.LineWidth(width)
	b.issued("LineWidth")
}

// SetAlphaToCoverage enables or disables multisample alpha to coverage.
func (b *Bridge) SetAlphaToCoverage(enable bool) {
	if b.state.AlphaToCoverage == enable {
		b.elided()
		return
	}
	b.state.AlphaToCoverage = enable
	b.toggle(sampleAlphaToCoverage, enable)
}

// SetProgram binds a shader program. Zero unbinds.
func (b *Bridge) SetProgram(program uint32) {
	if b.state.Program == program {
		b.elided()
		return
	}
	b.state.Program = program
	b.gl.UseProgram(program)
	b.issued("UseProgram")
}

// ReleaseProgram unbinds program if it is current. Call it before
// deleting a program so the cache does not keep a dead name.
func (b *Bridge) ReleaseProgram(program uint32) {
	if program != 0 && b.state.Program == program {
		b.SetProgram(0)
	}
}

// SetActiveTexture selects the texture unit for subsequent texture calls.
// Units outside [0, TextureUnits) are ignored.
func (b *Bridge) SetActiveTexture(unit int) {
	if unit < 0 || unit >= b.units {
		return
	}
	if b.state.ActiveTexture == unit {
		b.elided()
		return
	}
	b.state.ActiveTexture = unit
	b.gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
	b.issued("ActiveTexture")
}

// BindTexture binds name to target on unit. A zero name clears the unit.
// The unit is activated only when the binding changes. When the unit
// switches target the texture on the old target is unbound.
// It reports whether the unit is valid.
func (b *Bridge) BindTexture(unit int, target, name uint32) bool {
	if unit < 0 || unit >= b.units {
		return false
	}
	cur := b.state.Textures[unit]
	if name == 0 {
		if cur.Name == 0 {
			b.elided()
			return true
		}
		b.SetActiveTexture(unit)
		b.gl.BindTexture(cur.Target, 0)
		b.issued("BindTexture")
		b.state.Textures[unit] = TextureBinding{}
		return true
	}

	want := TextureBinding{Target: target, Name: name}
	if cur == want {
		b.elided()
		return true
	}
	b.SetActiveTexture(unit)
	if cur.Name != 0 && cur.Target != target {
		b.gl.BindTexture(cur.Target, 0)
		b.issued("BindTexture")
	}
	b.gl.BindTexture(target, name)
	b.issued("BindTexture")
	b.state.Textures[unit] = want
	return true
}

// Texture returns the binding of unit, or the zero binding when out of range.
func (b *Bridge) Texture(unit int) TextureBinding {
	if unit < 0 || unit >= b.units {
		return TextureBinding{}
	}
	return b.state.Textures[unit]
}

// ForgetTexture clears every unit holding name without calling GL.
// Deleting a texture unbinds it from all units, so only the cache
// needs updating.
func (b *Bridge) ForgetTexture(name uint32) {
	if name == 0 {
		return
	}
	for i := range b.state.Textures {
		if b.state.Textures[i].Name == name {
			b.state.Textures[i] = TextureBinding{}
		}
	}
}

// SetTexParameter sets a sampler parameter on the texture bound to unit.
// The unit is activated first. Parameters are not cached here; the
// material resolver keeps per-texture sampler state.
func (b *Bridge) SetTexParameter(unit int, pname uint32, value int32) {
	t := b.Texture(unit)
	if t.Name == 0 {
		return
	}
	b.SetActiveTexture(unit)
	b.gl.TexParameteri(t.Target, pname, value)
	b.issued("TexParameteri")
}

// SetViewport sets the viewport rectangle.
func (b *Bridge) SetViewport(r Rect) {
	if b.state.Viewport == r {
		b.elided()
		return
	}
	b.state.Viewport = r
	b.gl.Viewport(r.X, r.Y, r.Width, r.Height)
	b.issued("Viewport")
}

// SetFramebuffer binds a framebuffer. Zero selects the default one.
func (b *Bridge) SetFramebuffer(fbo uint32) {
	if b.state.Framebuffer == fbo {
		b.elided()
		return
	}
	b.state.Framebuffer = fbo
	b.gl.BindFramebuffer(gl.FRAMEBUFFER, fbo)
	b.issued("BindFramebuffer")
}

// SetUniformBuffer binds buffer to a uniform block binding point.
// Indices outside [0, MaxUniformBindings) are ignored.
func (b *Bridge) SetUniformBuffer(index int, buffer uint32) {
	if index < 0 || index >= MaxUniformBindings {
		return
	}
	if b.uniformBuffers[index] == buffer {
		b.elided()
		return
	}
	b.uniformBuffers[index] = buffer
	b.gl.BindBufferBase(gl.UNIFORM_BUFFER, uint32(index), buffer)
	b.issued("BindBufferBase")
}

// ForgetBuffer clears uniform bindings of a deleted buffer.
func (b *Bridge) ForgetBuffer(buffer uint32) {
	for i, buf := range b.uniformBuffers {
		if buf == buffer {
			b.uniformBuffers[i] = 0
		}
	}
}

// SetVertexAttribArray enables or disables a vertex attribute array.
// Indices outside [0, MaxVertexAttribs) are ignored.
func (b *Bridge) SetVertexAttribArray(index uint32, enable bool) {
	if index >= MaxVertexAttribs {
		return
	}
	bit := uint32(1) << index
	if (b.attribs&bit != 0) == enable {
		b.elided()
		return
	}
	if enable {
		b.attribs |= bit
		b.gl.EnableVertexAttribArray(index)
		b.issued("EnableVertexAttribArray")
		return
	}
	b.attribs &^= bit
	b.gl.DisableVertexAttribArray(index)
	b.issued("DisableVertexAttribArray")
}

// VertexAttribArrayEnabled reports whether the array at index is enabled.
func (b *Bridge) VertexAttribArrayEnabled(index uint32) bool {
	return index < MaxVertexAttribs && b.attribs&(1<<index) != 0
}
