package materials

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gles2/internal/shader"
	"github.com/gogpu/gles2/material"
	"github.com/gogpu/gles2/renderer"
	"github.com/gogpu/gles2/vertex"
)

// Renderer2D draws screen-space geometry in pixel coordinates with the
// origin at the top left corner.
type Renderer2D struct {
	textured bool
	program  uint32
	ref      *renderer.Shared
}

// New2D returns the untextured and textured 2D renderers.
func New2D(lib *shader.Library) (plain, textured *Renderer2D) {
	plain = &Renderer2D{}
	plain.program, plain.ref = lib.Acquire(shader.Pair{Vertex: shader.VS2D, Fragment: shader.FS2D})
	textured = &Renderer2D{textured: true}
	textured.program, textured.ref = lib.Acquire(shader.Pair{Vertex: shader.VS2D, Fragment: shader.FS2DTexture})
	return plain, textured
}

// Textured reports whether the renderer samples texture unit 0.
func (r *Renderer2D) Textured() bool { return r.textured }

// OnSetMaterial implements renderer.Renderer.
func (r *Renderer2D) OnSetMaterial(m, last material.Material, reset bool, s renderer.Services) {
	s.SetProgram(r.program)
	s.SetBasicRenderStates(m, last, reset, renderer.BlendFromOperation)
}

// OnUnsetMaterial implements renderer.Renderer.
func (r *Renderer2D) OnUnsetMaterial(s renderer.Services) {}

// OnRender implements renderer.Renderer.
func (r *Renderer2D) OnRender(s renderer.Services, vt vertex.Type) bool {
	if r.program == 0 {
		return false
	}
	s.SetProgram(r.program)
	w, h := s.ScreenSize()
	c := shader.NewConstants()
	c.WorldViewProj = mgl32.Ortho(0, float32(w), float32(h), 0, -1, 1)
	c.TextureUsage = mgl32.Vec4{flag(r.textured), 0, 0, 0}
	s.SetUniformBlock(shader.UniformBinding, c.Bytes())
	return true
}

// IsTransparent implements renderer.Renderer.
func (r *Renderer2D) IsTransparent() bool { return false }

// Destroy releases the program reference.
func (r *Renderer2D) Destroy() {
	if r.ref != nil {
		r.ref.Drop()
		r.ref = nil
	}
	r.program = 0
}
