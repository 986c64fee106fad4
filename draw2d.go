package gles2

import (
	"image"
	"unsafe"

	"github.com/gogpu/gles2/internal/materials"
	"github.com/gogpu/gles2/material"
	"github.com/gogpu/gles2/vertex"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal/gles/gl"
)

var quadIndices = [6]uint16{0, 1, 2, 0, 2, 3}

// new2DMaterial returns the material 2D draws resolve: no depth test or
// writes, no culling, unfiltered clamped textures.
func new2DMaterial() material.Material {
	m := material.New()
	m.ZBuffer = gputypes.CompareFunctionUndefined
	m.ZWriteEnable = false
	m.BackfaceCulling = false
	m.Lighting = false
	m.UseMipMaps = false
	m.AntiAliasing = material.AntiAliasingOff
	for i := range m.TextureLayers {
		l := &m.TextureLayers[i]
		l.WrapU = gputypes.AddressModeClampToEdge
		l.WrapV = gputypes.AddressModeClampToEdge
		l.Bilinear = false
	}
	return m
}

// Draw2DRectangle fills r, in pixels from the top left of the render
// target, with color. Colors with alpha below 255 are blended.
func (d *Driver) Draw2DRectangle(r image.Rectangle, color vertex.Color) error {
	if d.closed {
		return ErrDriverClosed
	}
	r = r.Canon()
	if r.Empty() {
		return nil
	}
	uv := [4][2]float32{}
	return d.draw2DQuad(d.plain2D, nil, r, uv, color, color[3] < 255)
}

// Draw2DImage draws the src part of tex, in texels, into dest, in pixels
// from the top left of the render target. An empty src selects the
// whole texture. color modulates the texels; blending is on when its
// alpha is below 255 or useAlphaChannel is set.
func (d *Driver) Draw2DImage(tex material.Texture, dest, src image.Rectangle, color vertex.Color, useAlphaChannel bool) error {
	if d.closed {
		return ErrDriverClosed
	}
	dest = dest.Canon()
	if tex == nil || dest.Empty() {
		return nil
	}
	w, h := float32(tex.Width()), float32(tex.Height())
	if w <= 0 || h <= 0 {
		return nil
	}
	if src.Empty() {
		src = image.Rect(0, 0, tex.Width(), tex.Height())
	}
	u0, v0 := float32(src.Min.X)/w, float32(src.Min.Y)/h
	u1, v1 := float32(src.Max.X)/w, float32(src.Max.Y)/h
	uv := [4][2]float32{{u0, v0}, {u1, v0}, {u1, v1}, {u0, v1}}
	return d.draw2DQuad(d.textured2D, tex, dest, uv, color, useAlphaChannel || color[3] < 255)
}

func (d *Driver) draw2DQuad(r *materials.Renderer2D, tex material.Texture, rect image.Rectangle, uv [4][2]float32, color vertex.Color, blend bool) error {
	m := d.material2D.SetTexture(0, tex)
	d.active = m
	d.dispatch.Set2D(r, m, d)
	if blend {
		d.SetBlendFunc(gputypes.BlendFactorSrcAlpha, gputypes.BlendFactorOneMinusSrcAlpha)
	}
	d.SetBlend(blend)
	if !r.OnRender(d, vertex.TypeStandard) {
		return nil
	}

	x0, y0 := float32(rect.Min.X), float32(rect.Min.Y)
	x1, y1 := float32(rect.Max.X), float32(rect.Max.Y)
	d.quad = [4]vertex.Standard{
		{Pos: [3]float32{x0, y0, 0}, Normal: [3]float32{0, 0, 1}, Color: color, TCoords: uv[0]},
		{Pos: [3]float32{x1, y0, 0}, Normal: [3]float32{0, 0, 1}, Color: color, TCoords: uv[1]},
		{Pos: [3]float32{x1, y1, 0}, Normal: [3]float32{0, 0, 1}, Color: color, TCoords: uv[2]},
		{Pos: [3]float32{x0, y1, 0}, Normal: [3]float32{0, 0, 1}, Color: color, TCoords: uv[3]},
	}
	d.bindAttributes(unsafe.Pointer(&d.quad[0]), vertex.TypeStandard)
	d.gl.DrawElements(gl.TRIANGLES, int32(len(quadIndices)), gl.UNSIGNED_SHORT, uintptr(unsafe.Pointer(&quadIndices[0])))
	d.drawn(2)
	return nil
}
