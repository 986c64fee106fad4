package renderer

import (
	"github.com/gogpu/gles2/material"
	"github.com/gogpu/gles2/vertex"
	"github.com/gogpu/gputypes"
)

// Dispatcher routes materials to renderers and tracks the render mode.
//
// Switching between 2D and 3D unsets the renderer of the mode being left
// exactly once. Within 3D a renderer is unset only when the material type
// changes; within 2D only when the other 2D renderer takes over.
type Dispatcher struct {
	reg *Registry

	mode    Mode
	last    material.Material
	last2D  material.Material
	current Renderer // active 2D renderer
	reset   bool
}

// NewDispatcher returns a dispatcher over reg in ModeNone.
func NewDispatcher(reg *Registry) *Dispatcher {
	return &Dispatcher{reg: reg, last: material.New(), last2D: material.New(), reset: true}
}

// Mode returns the current render mode.
func (d *Dispatcher) Mode() Mode { return d.mode }

// LastMaterial returns the material of the last 3D draw.
func (d *Dispatcher) LastMaterial() material.Material { return d.last }

// Invalidate forces the next draw to resolve all state.
func (d *Dispatcher) Invalidate() { d.reset = true }

// Set3D prepares a 3D draw with m and reports whether it may proceed.
// A draw whose material type has no renderer is skipped.
func (d *Dispatcher) Set3D(m material.Material, s Services, vt vertex.Type) bool {
	if d.mode != Mode3D {
		s.SetBlend(false)
		s.SetBlendFunc(gputypes.BlendFactorSrcAlpha, gputypes.BlendFactorOneMinusSrcAlpha)
		d.reset = true
	}

	r, ok := d.reg.Lookup(m.Type)
	if d.reset || !d.last.Equal(m) {
		switch {
		case d.mode == Mode2D:
			if d.current != nil {
				d.current.OnUnsetMaterial(s)
				d.current = nil
			}
		case d.mode == Mode3D && d.last.Type != m.Type:
			if prev, ok := d.reg.Lookup(d.last.Type); ok {
				prev.OnUnsetMaterial(s)
			}
		}
		if ok {
			r.OnSetMaterial(m, d.last, d.reset, s)
		}
		d.last = m
		d.reset = false
	}
	d.mode = Mode3D

	if !ok {
		slogger().Debug("renderer: no renderer for material type, draw skipped", "type", int(m.Type))
		return false
	}
	return r.OnRender(s, vt)
}

// Set2D makes r the active 2D renderer for m. The caller issues OnRender
// after adjusting blending for the 2D draw.
//
// State is resolved in full when 2D mode is entered or the 2D renderer
// changes, and against the previous 2D material otherwise.
func (d *Dispatcher) Set2D(r Renderer, m material.Material, s Services) {
	reset := d.reset || d.mode != Mode2D || d.current != r
	switch {
	case d.mode == Mode3D:
		if prev, ok := d.reg.Lookup(d.last.Type); ok {
			prev.OnUnsetMaterial(s)
		}
	case d.mode == Mode2D && d.current != nil && d.current != r:
		d.current.OnUnsetMaterial(s)
	}
	if reset || !d.last2D.Equal(m) {
		r.OnSetMaterial(m, d.last2D, reset, s)
		d.last2D = m
		d.reset = false
	}
	d.current = r
	d.mode = Mode2D
}

// Leave unsets the active renderer and returns to ModeNone. The driver
// calls it at teardown and when a foreign caller takes over the context.
func (d *Dispatcher) Leave(s Services) {
	switch d.mode {
	case Mode3D:
		if prev, ok := d.reg.Lookup(d.last.Type); ok {
			prev.OnUnsetMaterial(s)
		}
	case Mode2D:
		if d.current != nil {
			d.current.OnUnsetMaterial(s)
		}
	}
	d.current = nil
	d.mode = ModeNone
	d.reset = true
}
