// Package materials implements the renderers of the built-in material
// types and the two renderers used for 2D drawing.
package materials

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gles2/internal/shader"
	"github.com/gogpu/gles2/material"
	"github.com/gogpu/gles2/renderer"
	"github.com/gogpu/gles2/vertex"
	"github.com/gogpu/gputypes"
)

// blendKind is the fixed blending a renderer applies on top of the
// material's own state.
type blendKind int

const (
	blendNone blendKind = iota
	blendAlpha
	blendAddColor
	blendVertexAlpha
	blendPacked
)

// lighting selects where the lighting flag comes from.
type lighting int

const (
	lightingMaterial lighting = iota
	lightingOff
	lightingOn
)

// Default parameters used when Material.TypeParam is zero.
const (
	defaultAlphaRef      = 0.5
	defaultParallaxScale = 0.02
)

// Builtin draws one built-in material type.
type Builtin struct {
	name     string
	pair     shader.Pair
	blend    blendKind
	modulate float32
	lighting lighting
	alphaRef bool
	parallax bool
	tangents bool

	program uint32
	ref     *renderer.Shared
}

// Name returns the material type name the renderer was built for.
func (r *Builtin) Name() string { return r.name }

// Program returns the GL program, zero when linking failed.
func (r *Builtin) Program() uint32 { return r.program }

// Shared implements renderer.SharedResource: the reference on the
// program.
func (r *Builtin) Shared() *renderer.Shared { return r.ref }

// OnSetMaterial implements renderer.Renderer.
func (r *Builtin) OnSetMaterial(m, last material.Material, reset bool, s renderer.Services) {
	s.SetProgram(r.program)

	path := renderer.BlendFromOperation
	if r.blend == blendPacked {
		path = renderer.BlendFromPackedParam
	}
	s.SetBasicRenderStates(m, last, reset, path)

	switch r.blend {
	case blendAlpha, blendVertexAlpha:
		s.SetBlendFunc(gputypes.BlendFactorSrcAlpha, gputypes.BlendFactorOneMinusSrcAlpha)
		s.SetBlend(true)
	case blendAddColor:
		s.SetBlendFunc(gputypes.BlendFactorOne, gputypes.BlendFactorOneMinusSrc)
		s.SetBlend(true)
	}
}

// OnUnsetMaterial implements renderer.Renderer.
func (r *Builtin) OnUnsetMaterial(s renderer.Services) {
	switch r.blend {
	case blendAlpha, blendVertexAlpha, blendAddColor, blendPacked:
		s.SetBlend(false)
	}
}

// OnRender implements renderer.Renderer. Draws are skipped when the
// program failed to link, and for tangent-space materials when the
// vertices carry no tangents.
func (r *Builtin) OnRender(s renderer.Services, vt vertex.Type) bool {
	if r.program == 0 {
		return false
	}
	if r.tangents && vt != vertex.TypeTangents {
		slogger().Warn("materials: renderer needs tangent vertices", "renderer", r.name, "vertices", vt.String())
		return false
	}
	s.SetProgram(r.program)
	c := r.constants(s)
	s.SetUniformBlock(shader.UniformBinding, c.Bytes())
	return true
}

// IsTransparent implements renderer.Renderer.
func (r *Builtin) IsTransparent() bool {
	switch r.blend {
	case blendAlpha, blendAddColor, blendVertexAlpha:
		return true
	}
	return false
}

// Destroy implements renderer.Destroyer.
func (r *Builtin) Destroy() {
	if r.ref != nil {
		r.ref.Drop()
		r.ref = nil
	}
	r.program = 0
}

func (r *Builtin) constants(s renderer.Services) shader.Constants {
	m := s.Material()
	fixed := s.FixedFunction()
	world := s.Transform(renderer.TransformWorld)
	view := s.Transform(renderer.TransformView)
	proj := s.Transform(renderer.TransformProjection)

	c := shader.NewConstants()
	c.World = world
	c.WorldViewProj = proj.Mul4(view).Mul4(world)
	c.Normal = world.Inv().Transpose()
	c.Texture0 = s.Transform(renderer.TransformTexture0)
	c.Texture1 = s.Transform(renderer.TransformTexture1)
	if fixed.Enabled {
		c.Texture0 = fixed.Matrix(0)
		c.Texture1 = fixed.Matrix(1)
	}
	c.Eye = view.Inv().Col(3)

	lit := m.Lighting
	if fixed.Enabled {
		lit = fixed.Lighting
	}
	switch r.lighting {
	case lightingOff:
		lit = false
	case lightingOn:
		lit = true
	}

	param := m.TypeParam
	switch {
	case r.alphaRef && param <= 0:
		param = defaultAlphaRef
	case r.parallax && param == 0:
		param = defaultParallaxScale
	}
	pointSize := m.Thickness
	if fixed.Enabled {
		pointSize = fixed.PointSize
	}
	c.Params = mgl32.Vec4{param, r.modulate, pointSize, flag(lit)}

	c.TextureUsage = mgl32.Vec4{flag(usesTexture(m, fixed, 0)), flag(usesTexture(m, fixed, 1)), 0, 0}
	if r.blend == blendPacked {
		_, _, mod, alpha := material.UnpackTextureBlendFunc(m.TypeParam)
		if mod != 0 {
			c.Params[1] = float32(mod)
		}
		c.TextureUsage[2] = float32(alpha)
	}
	return c
}

func usesTexture(m material.Material, f renderer.FixedFunction, unit int) bool {
	if f.Enabled {
		return f.UsesTexture(unit)
	}
	return m.Texture(unit) != nil
}

func flag(b bool) float32 {
	if b {
		return 1
	}
	return 0
}
