// Package resolver turns materials into GL state transitions.
//
// The resolver compares the material of a draw with the previous one and
// pushes only the differing fields through the state bridge. Sampler
// parameters live on texture objects in GL, so they are cached per texture
// name rather than per unit.
package resolver

import (
	"github.com/gogpu/gles2/internal/cache"
	"github.com/gogpu/gles2/internal/glstate"
	"github.com/gogpu/gles2/material"
	"github.com/gogpu/gles2/renderer"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal/gles/gl"
)

// DefaultSamplerCacheSize is the number of textures whose sampler state is
// remembered when Config.SamplerCacheSize is zero.
const DefaultSamplerCacheSize = 256

// Config holds the capabilities and policies the resolver needs.
type Config struct {
	// AllowZWriteOnTransparent keeps depth writes on for transparent
	// materials that request them.
	AllowZWriteOnTransparent bool

	// CoreContext disables fixed-function emulation.
	CoreContext bool

	// BlendMinMax reports EXT_blend_minmax support.
	BlendMinMax bool

	// Anisotropic reports EXT_texture_filter_anisotropic support and
	// MaxAnisotropy its maximum level.
	Anisotropic   bool
	MaxAnisotropy int

	// SamplerCacheSize is the least number of textures whose sampler
	// state is remembered. It is spread over the cache shards.
	SamplerCacheSize int
}

// samplerState is the sampler part of a texture object.
type samplerState struct {
	wrapS, wrapT int32
	mag, min     int32
	anisotropy   int32
}

// Resolver applies materials to a bridge.
type Resolver struct {
	bridge   *glstate.Bridge
	cfg      Config
	samplers *cache.ShardedCache[uint32, samplerState]
	fixed    renderer.FixedFunction

	warnedMinMax bool
}

// New returns a resolver writing to b.
func New(b *glstate.Bridge, cfg Config) *Resolver {
	size := cfg.SamplerCacheSize
	if size <= 0 {
		size = DefaultSamplerCacheSize
	}
	return &Resolver{
		bridge:   b,
		cfg:      cfg,
		samplers: cache.NewSharded[uint32, samplerState](cache.ShardCapacity(size), cache.Uint32Hasher),
	}
}

// Config returns the resolver configuration.
func (r *Resolver) Config() Config { return r.cfg }

// Fixed returns the fixed-function state computed by the last Resolve.
func (r *Resolver) Fixed() renderer.FixedFunction { return r.fixed }

// Invalidate drops the cached sampler state of a texture. Call it when the
// texture is deleted so a recycled name starts clean.
func (r *Resolver) Invalidate(texture uint32) {
	r.samplers.Delete(texture)
	r.bridge.ForgetTexture(texture)
}

// SamplerStats reports the hits and evictions of the sampler cache.
func (r *Resolver) SamplerStats() cache.Stats { return r.samplers.Stats() }

// ForgetSamplers drops all cached sampler state. Call it after code
// outside the driver changed texture parameters.
func (r *Resolver) ForgetSamplers() { r.samplers.Clear() }

// Resolve moves GL from the state of last to the state of m.
//
// With reset set, or when the material type differs, every field is
// resolved; otherwise only fields that differ from last. transparent is
// the verdict of the material's renderer and drives the depth write
// policy.
func (r *Resolver) Resolve(m, last material.Material, reset, transparent bool, path renderer.BlendPath) {
	full := reset || m.Type != last.Type
	b := r.bridge

	if full || m.ZBuffer != last.ZBuffer {
		if fn, ok := DepthFunc(m.ZBuffer); ok {
			b.SetDepthTest(true)
			b.SetDepthFunc(fn)
		} else {
			b.SetDepthTest(false)
		}
	}

	b.SetDepthMask(ZWrite(m.ZWriteEnable, transparent, r.cfg.AllowZWriteOnTransparent))

	if full || m.BackfaceCulling != last.BackfaceCulling || m.FrontfaceCulling != last.FrontfaceCulling {
		enable, mode := CullMode(m.FrontfaceCulling, m.BackfaceCulling)
		if enable {
			b.SetCullFaceMode(mode)
		}
		b.SetCullFace(enable)
	}

	if full || m.ColorMask != last.ColorMask {
		b.SetColorMask(m.ColorMask)
	}

	switch path {
	case renderer.BlendFromPackedParam:
		if full || m.TypeParam != last.TypeParam {
			r.packedBlend(m.TypeParam)
		}
	default:
		if full || m.BlendOperation != last.BlendOperation {
			r.equationBlend(m.BlendOperation)
		}
	}

	if full || m.Thickness != last.Thickness {
		w := m.Thickness
		if w <= 0 {
			w = 1
		}
		b.SetLineWidth(w)
	}

	if full || m.AntiAliasing != last.AntiAliasing {
		b.SetAlphaToCoverage(m.AntiAliasing&material.AntiAliasingAlphaToCoverage != 0)
	}

	units := min(b.TextureUnits(), material.MaxTextures)
	for i := range units {
		layer := m.TextureLayers[i]
		if !full && m.UseMipMaps == last.UseMipMaps && layer.Equal(last.TextureLayers[i]) {
			continue
		}
		r.applyLayer(i, layer, m.UseMipMaps)
	}

	r.fixed = r.fixedFunction(m)
}

func (r *Resolver) equationBlend(op gputypes.BlendOperation) {
	eq, ok := BlendEquation(op)
	if !ok {
		r.bridge.SetBlend(false)
		return
	}
	if (eq == gl.MIN || eq == gl.MAX) && !r.cfg.BlendMinMax {
		if !r.warnedMinMax {
			slogger().Warn("resolver: min/max blending unsupported, using add", "op", int(op))
			r.warnedMinMax = true
		}
		eq = gl.FUNC_ADD
	}
	r.bridge.SetBlendEquation(eq)
	r.bridge.SetBlend(true)
}

func (r *Resolver) packedBlend(param float32) {
	src, dst, _, _ := material.UnpackTextureBlendFunc(param)
	s := BlendFactorOr(src, gl.ONE)
	d := BlendFactorOr(dst, gl.ZERO)
	r.bridge.SetBlendFunc(s, d)
	r.bridge.SetBlendEquation(gl.FUNC_ADD)
	r.bridge.SetBlend(!(s == gl.ONE && d == gl.ZERO))
}

func (r *Resolver) applyLayer(unit int, layer material.TextureLayer, useMipMaps bool) {
	tex := layer.Texture
	if tex == nil {
		r.bridge.BindTexture(unit, 0, 0)
		return
	}
	name := tex.GLName()
	if !r.bridge.BindTexture(unit, tex.GLTarget(), name) || name == 0 {
		return
	}

	want := r.sampler(layer, useMipMaps && tex.HasMipMaps())
	have, cached := r.samplers.Get(name)
	set := func(pname uint32, value, old int32) {
		if cached && value == old {
			return
		}
		r.bridge.SetTexParameter(unit, pname, value)
	}
	set(gl.TEXTURE_MAG_FILTER, want.mag, have.mag)
	set(gl.TEXTURE_MIN_FILTER, want.min, have.min)
	set(gl.TEXTURE_WRAP_S, want.wrapS, have.wrapS)
	set(gl.TEXTURE_WRAP_T, want.wrapT, have.wrapT)
	if r.cfg.Anisotropic {
		set(gl.TEXTURE_MAX_ANISOTROPY, want.anisotropy, have.anisotropy)
	}
	r.samplers.Set(name, want)
}

func (r *Resolver) sampler(layer material.TextureLayer, mipmaps bool) samplerState {
	s := samplerState{
		wrapS:      WrapMode(layer.WrapU),
		wrapT:      WrapMode(layer.WrapV),
		mag:        MagFilter(layer.Bilinear, layer.Trilinear),
		min:        MinFilter(layer.Bilinear, layer.Trilinear, mipmaps),
		anisotropy: 1,
	}
	if r.cfg.Anisotropic && layer.Anisotropic > 1 {
		s.anisotropy = int32(min(int(layer.Anisotropic), max(r.cfg.MaxAnisotropy, 1)))
	}
	return s
}

func (r *Resolver) fixedFunction(m material.Material) renderer.FixedFunction {
	if r.cfg.CoreContext {
		return renderer.FixedFunction{}
	}
	f := renderer.FixedFunction{
		Enabled:   true,
		PointSize: m.Thickness,
		Lighting:  m.Lighting,
	}
	for i, l := range m.TextureLayers {
		if l.Texture != nil {
			f.TextureMask |= 1 << i
		}
		f.TextureMatrix[i] = l.TextureMatrix()
	}
	return f
}
