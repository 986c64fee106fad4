package shader

import (
	"encoding/binary"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// ConstantsSize is the std140 size of the constants block in bytes.
const ConstantsSize = 5*64 + 4*16

// Alpha source bits carried in Constants.TextureUsage.Z().
const (
	AlphaFromVertex  = 1
	AlphaFromTexture = 2
)

// Constants mirrors the uniform block shared by the built-in shaders.
type Constants struct {
	WorldViewProj mgl32.Mat4
	World         mgl32.Mat4
	Normal        mgl32.Mat4
	Texture0      mgl32.Mat4
	Texture1      mgl32.Mat4

	Eye      mgl32.Vec4
	LightDir mgl32.Vec4

	// X alpha reference or parallax scale, Y color modulation,
	// Z point size, W lighting (0 or 1).
	Params mgl32.Vec4

	// X and Y are 1 when layer 0 or 1 holds a texture, Z the alpha
	// source bits.
	TextureUsage mgl32.Vec4
}

// NewConstants returns constants with identity matrices, a light shining
// down the negative z axis and a modulation of 1.
func NewConstants() Constants {
	return Constants{
		WorldViewProj: mgl32.Ident4(),
		World:         mgl32.Ident4(),
		Normal:        mgl32.Ident4(),
		Texture0:      mgl32.Ident4(),
		Texture1:      mgl32.Ident4(),
		LightDir:      mgl32.Vec4{0, 0, -1, 0},
		Params:        mgl32.Vec4{0, 1, 1, 0},
	}
}

// Bytes returns the block in std140 layout. Matrices are column-major,
// as GL expects.
func (c *Constants) Bytes() []byte {
	buf := make([]byte, ConstantsSize)
	off := 0
	put := func(v float32) {
		binary.LittleEndian.PutUint32(buf[off:off+4], math.Float32bits(v))
		off += 4
	}
	for _, m := range [...]*mgl32.Mat4{&c.WorldViewProj, &c.World, &c.Normal, &c.Texture0, &c.Texture1} {
		for _, v := range m {
			put(v)
		}
	}
	for _, v := range [...]*mgl32.Vec4{&c.Eye, &c.LightDir, &c.Params, &c.TextureUsage} {
		for _, f := range v {
			put(f)
		}
	}
	return buf
}
