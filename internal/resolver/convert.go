package resolver

import (
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal/gles/gl"
)

// DepthFunc maps a compare function to its GL enum. Undefined reports
// false: the depth test is disabled.
func DepthFunc(cf gputypes.CompareFunction) (uint32, bool) {
	switch cf {
	case gputypes.CompareFunctionNever:
		return gl.NEVER, true
	case gputypes.CompareFunctionLess:
		return gl.LESS, true
	case gputypes.CompareFunctionEqual:
		return gl.EQUAL, true
	case gputypes.CompareFunctionLessEqual:
		return gl.LEQUAL, true
	case gputypes.CompareFunctionGreater:
		return gl.GREATER, true
	case gputypes.CompareFunctionNotEqual:
		return gl.NOTEQUAL, true
	case gputypes.CompareFunctionGreaterEqual:
		return gl.GEQUAL, true
	case gputypes.CompareFunctionAlways:
		return gl.ALWAYS, true
	}
	return 0, false
}

// CullMode returns whether culling is enabled and which faces are culled.
// With neither flag set the mode is BACK and culling is off.
func CullMode(front, back bool) (enable bool, mode uint32) {
	switch {
	case front && back:
		return true, gl.FRONT_AND_BACK
	case back:
		return true, gl.BACK
	case front:
		return true, gl.FRONT
	}
	return false, gl.BACK
}

// ZWrite reports whether depth writes are enabled for a material.
// Transparent materials write depth only when explicitly allowed.
func ZWrite(zwriteEnable, transparent, allowOnTransparent bool) bool {
	return zwriteEnable && (allowOnTransparent || !transparent)
}

// BlendEquation maps a blend operation to its GL equation.
func BlendEquation(op gputypes.BlendOperation) (uint32, bool) {
	switch op {
	case gputypes.BlendOperationAdd:
		return gl.FUNC_ADD, true
	case gputypes.BlendOperationSubtract:
		return gl.FUNC_SUBTRACT, true
	case gputypes.BlendOperationReverseSubtract:
		return gl.FUNC_REVERSE_SUBTRACT, true
	case gputypes.BlendOperationMin:
		return gl.MIN, true
	case gputypes.BlendOperationMax:
		return gl.MAX, true
	}
	return 0, false
}

// BlendFactor maps a blend factor to its GL enum.
func BlendFactor(f gputypes.BlendFactor) (uint32, bool) {
	switch f {
	case gputypes.BlendFactorZero:
		return gl.ZERO, true
	case gputypes.BlendFactorOne:
		return gl.ONE, true
	case gputypes.BlendFactorSrc:
		return gl.SRC_COLOR, true
	case gputypes.BlendFactorOneMinusSrc:
		return gl.ONE_MINUS_SRC_COLOR, true
	case gputypes.BlendFactorSrcAlpha:
		return gl.SRC_ALPHA, true
	case gputypes.BlendFactorOneMinusSrcAlpha:
		return gl.ONE_MINUS_SRC_ALPHA, true
	case gputypes.BlendFactorDst:
		return gl.DST_COLOR, true
	case gputypes.BlendFactorOneMinusDst:
		return gl.ONE_MINUS_DST_COLOR, true
	case gputypes.BlendFactorDstAlpha:
		return gl.DST_ALPHA, true
	case gputypes.BlendFactorOneMinusDstAlpha:
		return gl.ONE_MINUS_DST_ALPHA, true
	case gputypes.BlendFactorSrcAlphaSaturated:
		return gl.SRC_ALPHA_SATURATE, true
	case gputypes.BlendFactorConstant:
		return gl.CONSTANT_COLOR, true
	case gputypes.BlendFactorOneMinusConstant:
		return gl.ONE_MINUS_CONSTANT_COLOR, true
	}
	return 0, false
}

// BlendFactorOr maps f, falling back to def for undefined factors.
func BlendFactorOr(f gputypes.BlendFactor, def uint32) uint32 {
	if v, ok := BlendFactor(f); ok {
		return v
	}
	return def
}

// WrapMode maps an address mode to a GL wrap parameter. Undefined wraps
// with REPEAT, the GL default.
func WrapMode(a gputypes.AddressMode) int32 {
	switch a {
	case gputypes.AddressModeClampToEdge:
		return gl.CLAMP_TO_EDGE
	case gputypes.AddressModeMirrorRepeat:
		return gl.MIRRORED_REPEAT
	}
	return gl.REPEAT
}

// MagFilter returns the magnification filter.
func MagFilter(bilinear, trilinear bool) int32 {
	if bilinear || trilinear {
		return gl.LINEAR
	}
	return gl.NEAREST
}

// MinFilter returns the minification filter. Mip-mapped filters are used
// only when mipmaps is set.
func MinFilter(bilinear, trilinear, mipmaps bool) int32 {
	if !mipmaps {
		return MagFilter(bilinear, trilinear)
	}
	switch {
	case trilinear:
		return gl.LINEAR_MIPMAP_LINEAR
	case bilinear:
		return gl.LINEAR_MIPMAP_NEAREST
	}
	return gl.NEAREST_MIPMAP_NEAREST
}
