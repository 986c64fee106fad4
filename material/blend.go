package material

import "github.com/gogpu/gputypes"

// Modulate scales the color produced by a one-texture-blend material.
type Modulate uint8

// Modulation factors.
const (
	Modulate1x Modulate = 1
	Modulate2x Modulate = 2
	Modulate4x Modulate = 4
)

// AlphaSource selects where a one-texture-blend material takes alpha from.
type AlphaSource uint8

// Alpha sources. They can be combined.
const (
	AlphaSourceNone        AlphaSource = 0
	AlphaSourceVertexColor AlphaSource = 1
	AlphaSourceTexture     AlphaSource = 2
)

// PackTextureBlendFunc encodes blend factors, modulation and alpha source into
// a single TypeParam value for OneTextureBlend materials.
//
// Layout: bits 0-3 destination factor, 4-7 source factor, 8-11 modulation,
// 12-15 alpha source. The value is exact in a float32.
func PackTextureBlendFunc(src, dst gputypes.BlendFactor, mod Modulate, alpha AlphaSource) float32 {
	v := uint32(alpha&0xF)<<12 | uint32(mod&0xF)<<8 | uint32(src&0xF)<<4 | uint32(dst&0xF)
	return float32(v)
}

// UnpackTextureBlendFunc decodes a value produced by PackTextureBlendFunc.
// Negative or fractional input is truncated.
func UnpackTextureBlendFunc(param float32) (src, dst gputypes.BlendFactor, mod Modulate, alpha AlphaSource) {
	if param < 0 {
		param = 0
	}
	v := uint32(param)
	dst = gputypes.BlendFactor(v & 0xF)
	src = gputypes.BlendFactor((v >> 4) & 0xF)
	mod = Modulate((v >> 8) & 0xF)
	alpha = AlphaSource((v >> 12) & 0xF)
	return src, dst, mod, alpha
}

// BlendFactorHasAlpha reports whether f reads an alpha channel.
func BlendFactorHasAlpha(f gputypes.BlendFactor) bool {
	switch f {
	case gputypes.BlendFactorSrcAlpha,
		gputypes.BlendFactorOneMinusSrcAlpha,
		gputypes.BlendFactorDstAlpha,
		gputypes.BlendFactorOneMinusDstAlpha,
		gputypes.BlendFactorSrcAlphaSaturated:
		return true
	}
	return false
}
