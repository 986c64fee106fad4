package gles2

import (
	"fmt"
	"image"

	"github.com/gogpu/gles2/internal/glstate"
	"github.com/gogpu/gles2/material"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal/gles/gl"
)

// ClearFlags selects the buffers BeginScene and SetRenderTarget clear.
type ClearFlags uint8

// Clear flags.
const (
	ClearColor ClearFlags = 1 << iota
	ClearDepth
	ClearStencil

	ClearNone ClearFlags = 0
	ClearAll             = ClearColor | ClearDepth | ClearStencil
)

// RenderTarget is a texture backed by a framebuffer object.
type RenderTarget interface {
	material.Texture

	// Framebuffer returns the GL framebuffer object name.
	Framebuffer() uint32
}

// BeginScene starts a frame: it resets the scene statistics and clears
// the buffers selected by flags. Color and depth writes are forced on for
// the clear, whatever the last material left.
//
// With a window configured through WithWindow the screen size is
// refreshed first, and the viewport follows it unless a render target is
// bound.
func (d *Driver) BeginScene(flags ClearFlags, color gputypes.Color, depth float32) error {
	if d.closed {
		return ErrDriverClosed
	}
	if d.opts.window != nil {
		d.updateScreenSize()
		if d.target == nil {
			d.setTargetSize(d.screenW, d.screenH)
		}
	}
	d.resetStats()
	d.clear(flags, color, depth)
	return nil
}

// EndScene flushes the command stream and presents the frame through the
// configured Presenter.
func (d *Driver) EndScene() error {
	if d.closed {
		return ErrDriverClosed
	}
	d.gl.Flush()
	if d.opts.presenter == nil {
		return nil
	}
	if err := d.opts.presenter.Present(); err != nil {
		return fmt.Errorf("gles2: present: %w", err)
	}
	return nil
}

// SetRenderTarget redirects drawing to target, or back to the screen when
// target is nil, sets the viewport to the full target and clears it.
func (d *Driver) SetRenderTarget(target RenderTarget, flags ClearFlags, color gputypes.Color) error {
	if d.closed {
		return ErrDriverClosed
	}
	if target == nil {
		d.bridge.SetFramebuffer(0)
		d.target = nil
		d.setTargetSize(d.screenW, d.screenH)
	} else {
		d.bridge.SetFramebuffer(target.Framebuffer())
		d.target = target
		d.setTargetSize(target.Width(), target.Height())
	}
	d.clear(flags, color, 1)
	return nil
}

// CurrentRenderTarget returns the bound render target, nil for the screen.
func (d *Driver) CurrentRenderTarget() RenderTarget { return d.target }

func (d *Driver) setTargetSize(w, h int) {
	d.targetW, d.targetH = w, h
	d.bridge.SetViewport(glstate.Rect{Width: int32(w), Height: int32(h)})
}

// SetViewPort restricts drawing to r, given in pixels with the origin at
// the top left of the render target. r is clipped to the target; an
// empty result leaves the viewport unchanged.
func (d *Driver) SetViewPort(r image.Rectangle) {
	r = r.Intersect(image.Rect(0, 0, d.targetW, d.targetH))
	if r.Empty() {
		return
	}
	d.bridge.SetViewport(glstate.Rect{
		X:      int32(r.Min.X),
		Y:      int32(d.targetH - r.Max.Y),
		Width:  int32(r.Dx()),
		Height: int32(r.Dy()),
	})
}

// ViewPort returns the viewport in top-left origin pixels.
func (d *Driver) ViewPort() image.Rectangle {
	v := d.bridge.Snapshot().Viewport
	top := d.targetH - int(v.Y) - int(v.Height)
	return image.Rect(int(v.X), top, int(v.X+v.Width), top+int(v.Height))
}

func (d *Driver) clear(flags ClearFlags, color gputypes.Color, depth float32) {
	var mask uint32
	if flags&ClearColor != 0 {
		d.bridge.SetColorMask(gputypes.ColorWriteMaskAll)
		d.gl.ClearColor(float32(color.R), float32(color.G), float32(color.B), float32(color.A))
		mask |= gl.COLOR_BUFFER_BIT
	}
	if flags&ClearDepth != 0 {
		d.bridge.SetDepthMask(true)
		if dc, ok := d.gl.(glstate.DepthClearer); ok {
			dc.ClearDepthf(depth)
		}
		mask |= gl.DEPTH_BUFFER_BIT
	}
	if flags&ClearStencil != 0 {
		mask |= gl.STENCIL_BUFFER_BIT
	}
	if mask == 0 {
		return
	}
	d.gl.Clear(mask)
	// The masks no longer match the last material.
	d.dispatch.Invalidate()
}
