package gles2

import (
	"bytes"
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gles2/internal/glstate"
	"github.com/gogpu/gles2/internal/resolver"
	"github.com/gogpu/gles2/material"
	"github.com/gogpu/gles2/renderer"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal/gles/gl"
)

// The methods in this file implement renderer.Services. Material
// renderers call them from their callbacks.

// SetBasicRenderStates resolves m against last through the state cache.
// A material is transparent when its renderer or its own blend settings
// say so.
func (d *Driver) SetBasicRenderStates(m, last material.Material, reset bool, path renderer.BlendPath) {
	transparent := d.registry.IsTransparent(m.Type) || m.IsTransparent()
	d.resolver.Resolve(m, last, reset, transparent, path)
}

// SetProgram binds a GL program.
func (d *Driver) SetProgram(program uint32) { d.bridge.SetProgram(program) }

// SetBlend enables or disables blending.
func (d *Driver) SetBlend(enable bool) { d.bridge.SetBlend(enable) }

// SetBlendFunc sets the blend factors for color and alpha. Undefined
// factors read as One and Zero.
func (d *Driver) SetBlendFunc(src, dst gputypes.BlendFactor) {
	d.bridge.SetBlendFunc(resolver.BlendFactorOr(src, gl.ONE), resolver.BlendFactorOr(dst, gl.ZERO))
}

// SetBlendFuncSeparate sets color and alpha blend factors.
func (d *Driver) SetBlendFuncSeparate(srcRGB, dstRGB, srcAlpha, dstAlpha gputypes.BlendFactor) {
	d.bridge.SetBlendFuncSeparate(
		resolver.BlendFactorOr(srcRGB, gl.ONE),
		resolver.BlendFactorOr(dstRGB, gl.ZERO),
		resolver.BlendFactorOr(srcAlpha, gl.ONE),
		resolver.BlendFactorOr(dstAlpha, gl.ZERO),
	)
}

// SetUniformBlock uploads data to the uniform buffer at binding. The
// buffer is created on first use. An upload equal to the previous one
// for the same binding is skipped.
func (d *Driver) SetUniformBlock(binding int, data []byte) {
	if binding < 0 || binding >= len(d.blocks) || len(data) == 0 {
		return
	}
	b := &d.blocks[binding]
	if b.buffer == 0 {
		b.buffer = d.gl.GenBuffers(1)
	}
	d.bridge.SetUniformBuffer(binding, b.buffer)
	if b.size == len(data) && bytes.Equal(b.data, data) {
		return
	}

	d.gl.BindBuffer(gl.UNIFORM_BUFFER, b.buffer)
	if b.size != len(data) {
		d.gl.BufferData(gl.UNIFORM_BUFFER, len(data), unsafe.Pointer(&data[0]), gl.DYNAMIC_DRAW)
		b.size = len(data)
	} else {
		d.gl.BufferSubData(gl.UNIFORM_BUFFER, 0, len(data), unsafe.Pointer(&data[0]))
	}
	b.data = append(b.data[:0], data...)
	if d.bridge.CheckLevel() == glstate.CheckAll {
		glstate.CheckError(d.gl, "BufferData")
	}
}

// Transform returns the current matrix for state, identity for unknown
// states.
func (d *Driver) Transform(state renderer.TransformState) mgl32.Mat4 {
	if state < 0 || state >= renderer.TransformCount {
		return mgl32.Ident4()
	}
	return d.transforms[state]
}

// FixedFunction returns the fixed-pipeline state emulated for the
// material being drawn.
func (d *Driver) FixedFunction() renderer.FixedFunction { return d.resolver.Fixed() }

// Material returns the material being drawn.
func (d *Driver) Material() material.Material { return d.active }

// RenderMode returns the current render mode.
func (d *Driver) RenderMode() renderer.Mode { return d.dispatch.Mode() }

// ScreenSize returns the size of the current render target in pixels.
func (d *Driver) ScreenSize() (width, height int) { return d.targetW, d.targetH }
