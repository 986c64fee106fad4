package material

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

// MaxTextures is the number of texture layers a material carries.
const MaxTextures = 8

// Texture is a GPU texture the driver can bind.
//
// Texture creation and upload belong to the caller; the driver only binds
// the GL object and adjusts its sampler parameters.
type Texture interface {
	gpucontext.Texture

	// GLName returns the GL texture object name.
	GLName() uint32

	// GLTarget returns the bind target, TEXTURE_2D or TEXTURE_CUBE_MAP.
	GLTarget() uint32

	// HasMipMaps reports whether the texture has a mip chain.
	HasMipMaps() bool
}

// TextureLayer describes one texture unit of a material.
type TextureLayer struct {
	// Texture bound to the unit. Nil leaves the unit empty.
	Texture Texture

	// WrapU and WrapV are the address modes along s and t.
	WrapU gputypes.AddressMode
	WrapV gputypes.AddressMode

	// Bilinear enables linear magnification and minification.
	Bilinear bool

	// Trilinear enables linear filtering between mip levels.
	// It takes precedence over Bilinear.
	Trilinear bool

	// Anisotropic is the requested anisotropy level; 0 or 1 disables it.
	Anisotropic uint8

	// LODBias is added to the mip level selection, in 1/8 steps.
	LODBias int8

	// Matrix is the texture coordinate transform. Nil means identity.
	Matrix *mgl32.Mat4
}

// NewTextureLayer returns a layer with the default sampler state:
// repeat wrapping and bilinear filtering.
func NewTextureLayer() TextureLayer {
	return TextureLayer{
		WrapU:    gputypes.AddressModeRepeat,
		WrapV:    gputypes.AddressModeRepeat,
		Bilinear: true,
	}
}

// TextureMatrix returns the layer matrix or identity.
func (l TextureLayer) TextureMatrix() mgl32.Mat4 {
	if l.Matrix == nil {
		return mgl32.Ident4()
	}
	return *l.Matrix
}

// SamplerEqual reports whether l and o select the same sampler state.
// The bound texture is not compared.
func (l TextureLayer) SamplerEqual(o TextureLayer) bool {
	return l.WrapU == o.WrapU &&
		l.WrapV == o.WrapV &&
		l.Bilinear == o.Bilinear &&
		l.Trilinear == o.Trilinear &&
		l.Anisotropic == o.Anisotropic &&
		l.LODBias == o.LODBias
}

// Equal reports whether the layers bind the same texture with the same
// sampler state and texture matrix. Textures are identified by GL name
// and target, so any Texture implementation may be compared.
func (l TextureLayer) Equal(o TextureLayer) bool {
	if !sameTexture(l.Texture, o.Texture) || !l.SamplerEqual(o) {
		return false
	}
	if l.Matrix == o.Matrix {
		return true
	}
	return l.TextureMatrix() == o.TextureMatrix()
}

func sameTexture(a, b Texture) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.GLName() == b.GLName() && a.GLTarget() == b.GLTarget()
}

// AntiAliasing selects multisample related state.
type AntiAliasing uint8

// Anti-aliasing flags.
const (
	AntiAliasingOff             AntiAliasing = 0
	AntiAliasingSimple          AntiAliasing = 1 << 0
	AntiAliasingQuality         AntiAliasing = 1 << 1
	AntiAliasingLineSmooth      AntiAliasing = 1 << 2
	AntiAliasingAlphaToCoverage AntiAliasing = 1 << 3
)

// Material describes how geometry is drawn. It is a value type: the driver
// compares the material of each draw against the previous one and issues
// only the state transitions that differ.
type Material struct {
	// Type selects the renderer.
	Type Type

	// TextureLayers holds one entry per texture unit.
	TextureLayers [MaxTextures]TextureLayer

	// TypeParam is a renderer-specific parameter: the alpha reference of
	// TransparentAlphaChannelRef, the packed blend factors of
	// OneTextureBlend, the parallax height scale.
	TypeParam float32

	// TypeParam2 is a second renderer-specific parameter.
	TypeParam2 float32

	// BlendOperation enables blending with the given equation.
	// Undefined leaves blending off unless the renderer enables it.
	BlendOperation gputypes.BlendOperation

	// ZBuffer is the depth comparison. Undefined disables the depth test.
	ZBuffer gputypes.CompareFunction

	// ZWriteEnable enables depth writes. Transparent materials only write
	// depth when the driver allows it.
	ZWriteEnable bool

	// BackfaceCulling and FrontfaceCulling select the culled faces.
	BackfaceCulling  bool
	FrontfaceCulling bool

	// ColorMask selects the written color channels.
	ColorMask gputypes.ColorWriteMask

	// Thickness is the line width and point size.
	Thickness float32

	// Wireframe draws triangle lists as lines.
	Wireframe bool

	// PointCloud draws triangle lists as points.
	PointCloud bool

	// Lighting enables per-vertex lighting in the shaders that support it.
	Lighting bool

	// UseMipMaps allows mip-mapped minification on textures with mip maps.
	UseMipMaps bool

	// AntiAliasing selects multisample related state.
	AntiAliasing AntiAliasing
}

// New returns a material with the engine defaults: solid type, depth test
// LessEqual with writes, back face culling, all color channels, and mip
// mapping on.
func New() Material {
	m := Material{
		Type:            Solid,
		ZBuffer:         gputypes.CompareFunctionLessEqual,
		ZWriteEnable:    true,
		BackfaceCulling: true,
		ColorMask:       gputypes.ColorWriteMaskAll,
		Thickness:       1,
		Lighting:        true,
		UseMipMaps:      true,
		AntiAliasing:    AntiAliasingSimple,
	}
	for i := range m.TextureLayers {
		m.TextureLayers[i] = NewTextureLayer()
	}
	return m
}

// Texture returns the texture of layer i, or nil when i is out of range.
func (m Material) Texture(i int) Texture {
	if i < 0 || i >= MaxTextures {
		return nil
	}
	return m.TextureLayers[i].Texture
}

// SetTexture returns a copy of m with layer i bound to t.
// Out of range layers are ignored.
func (m Material) SetTexture(i int, t Texture) Material {
	if i >= 0 && i < MaxTextures {
		m.TextureLayers[i].Texture = t
	}
	return m
}

// IsTransparent reports whether the material blends with the frame buffer.
// A user type is never transparent by type alone; the driver asks its
// renderer.
func (m Material) IsTransparent() bool {
	if m.BlendOperation != gputypes.BlendOperationUndefined {
		return true
	}
	if m.Type == OneTextureBlend {
		src, dst, _, _ := UnpackTextureBlendFunc(m.TypeParam)
		return !(src == gputypes.BlendFactorOne && dst == gputypes.BlendFactorZero)
	}
	return m.Type.transparent()
}

// Equal reports whether m and o resolve to the same GPU state.
func (m Material) Equal(o Material) bool {
	if m.Type != o.Type ||
		m.TypeParam != o.TypeParam ||
		m.TypeParam2 != o.TypeParam2 ||
		m.BlendOperation != o.BlendOperation ||
		m.ZBuffer != o.ZBuffer ||
		m.ZWriteEnable != o.ZWriteEnable ||
		m.BackfaceCulling != o.BackfaceCulling ||
		m.FrontfaceCulling != o.FrontfaceCulling ||
		m.ColorMask != o.ColorMask ||
		m.Thickness != o.Thickness ||
		m.Wireframe != o.Wireframe ||
		m.PointCloud != o.PointCloud ||
		m.Lighting != o.Lighting ||
		m.UseMipMaps != o.UseMipMaps ||
		m.AntiAliasing != o.AntiAliasing {
		return false
	}
	for i := range m.TextureLayers {
		if !m.TextureLayers[i].Equal(o.TextureLayers[i]) {
			return false
		}
	}
	return true
}
