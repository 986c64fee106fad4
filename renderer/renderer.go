// Package renderer defines material renderers and the dispatch of draws to
// them.
//
// Every material type maps to one [Renderer]. Before a draw the driver
// hands the material to its renderer through the [Dispatcher], which
// tracks the render mode (2D or 3D) and makes sure a renderer is unset
// exactly once when another one takes over.
//
// Renderers talk to the driver through [Services]. All state changes made
// through Services are filtered by the driver's state cache, so a renderer
// may set the same state on every call without cost.
package renderer

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gles2/material"
	"github.com/gogpu/gles2/vertex"
	"github.com/gogpu/gputypes"
)

// Renderer draws geometry for one material type.
type Renderer interface {
	// OnSetMaterial is called when m becomes the current material.
	// last is the material of the previous draw. reset is true when the
	// driver state must be resolved in full rather than against last.
	OnSetMaterial(m, last material.Material, reset bool, s Services)

	// OnUnsetMaterial is called once when another renderer takes over.
	OnUnsetMaterial(s Services)

	// OnRender is called before every draw. It uploads per-draw constants
	// and reports whether the draw may proceed.
	OnRender(s Services, vt vertex.Type) bool

	// IsTransparent reports whether the renderer blends with the frame
	// buffer. Transparent renderers do not write depth unless allowed.
	IsTransparent() bool
}

// Destroyer is implemented by renderers owning GPU objects. The registry
// calls Destroy once at driver teardown.
type Destroyer interface {
	Destroy()
}

// SharedResource is implemented by renderers whose GPU resources, such as
// their program, other material types may share. Shared returns nil when
// there is nothing to share.
type SharedResource interface {
	Shared() *Shared
}

// BlendPath selects how the resolver derives blending from a material.
type BlendPath int

const (
	// BlendFromOperation enables blending when Material.BlendOperation is
	// set and selects the matching equation.
	BlendFromOperation BlendPath = iota

	// BlendFromPackedParam decodes the blend factors packed into
	// Material.TypeParam. Used by the one-texture-blend type.
	BlendFromPackedParam
)

// Mode is the current render mode of the driver.
type Mode int

// Render modes.
const (
	ModeNone Mode = iota
	Mode2D
	Mode3D
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeNone:
		return "none"
	case Mode2D:
		return "2d"
	case Mode3D:
		return "3d"
	default:
		return "unknown"
	}
}

// TransformState selects one of the driver's transformation matrices.
type TransformState int

// Transformation matrices.
const (
	TransformView TransformState = iota
	TransformWorld
	TransformProjection
	TransformTexture0
	TransformTexture1
	TransformTexture2
	TransformTexture3
	TransformTexture4
	TransformTexture5
	TransformTexture6
	TransformTexture7

	// TransformCount is the number of transformation matrices.
	TransformCount
)

// FixedFunction is the fixed-pipeline state emulated for the shaders:
// which units hold a texture, the texture matrices and the point size.
// It is computed from the current material unless the driver runs a
// core context. Then Enabled is false and renderers read the texture
// matrices from the driver transforms instead.
type FixedFunction struct {
	Enabled       bool
	TextureMask   uint8
	TextureMatrix [material.MaxTextures]mgl32.Mat4
	PointSize     float32
	Lighting      bool
}

// Matrix returns the texture matrix of unit i, identity when emulation is
// off or i is out of range.
func (f FixedFunction) Matrix(i int) mgl32.Mat4 {
	if !f.Enabled || i < 0 || i >= material.MaxTextures {
		return mgl32.Ident4()
	}
	return f.TextureMatrix[i]
}

// UsesTexture reports whether unit i holds a texture.
func (f FixedFunction) UsesTexture(i int) bool {
	return i >= 0 && i < 8 && f.TextureMask&(1<<i) != 0
}

// Services is the driver surface available to renderers.
type Services interface {
	// SetBasicRenderStates resolves depth, culling, color mask, blending
	// and texture sampler state of m against last.
	SetBasicRenderStates(m, last material.Material, reset bool, path BlendPath)

	// SetProgram binds a GL program.
	SetProgram(program uint32)

	// SetBlend enables or disables blending.
	SetBlend(enable bool)

	// SetBlendFunc sets the blend factors for color and alpha.
	SetBlendFunc(src, dst gputypes.BlendFactor)

	// SetBlendFuncSeparate sets color and alpha blend factors.
	SetBlendFuncSeparate(srcRGB, dstRGB, srcAlpha, dstAlpha gputypes.BlendFactor)

	// SetUniformBlock uploads data to the uniform buffer bound at binding.
	// Identical consecutive uploads are skipped.
	SetUniformBlock(binding int, data []byte)

	// Transform returns the current matrix for state.
	Transform(state TransformState) mgl32.Mat4

	// FixedFunction returns the emulated fixed-pipeline state.
	FixedFunction() FixedFunction

	// Material returns the current material.
	Material() material.Material

	// RenderMode returns the current render mode.
	RenderMode() Mode

	// ScreenSize returns the size of the current render target in pixels.
	ScreenSize() (width, height int)
}
