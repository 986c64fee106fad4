// Package shader compiles the built-in material shaders and manages the
// resulting GL programs.
//
// The shaders are written in WGSL and embedded in the binary. A Compiler
// translates one entry point at a time to GLSL; the default NagaCompiler
// uses github.com/gogpu/naga. Programs are shared through a Library so
// material types using the same pair of entry points link only once.
package shader

import (
	_ "embed"
	"fmt"
)

//go:embed shaders/material.wgsl
var materialSource string

// Source returns the WGSL module holding every built-in entry point.
func Source() string {
	return materialSource
}

// Vertex entry points.
const (
	VSStandard   = "vs_standard"
	VSTwoTCoords = "vs_two_tcoords"
	VSTangents   = "vs_tangents"
	VSSphere     = "vs_sphere"
	VS2D         = "vs_2d"
)

// Fragment entry points.
const (
	FSSolid       = "fs_solid"
	FSSolid2Layer = "fs_solid_2layer"
	FSLightmap    = "fs_lightmap"
	FSLightmapAdd = "fs_lightmap_add"
	FSDetail      = "fs_detail"
	FSSphere      = "fs_sphere"
	FSReflection  = "fs_reflection"
	FSAddColor    = "fs_add_color"
	FSAlpha       = "fs_alpha"
	FSAlphaRef    = "fs_alpha_ref"
	FSVertexAlpha = "fs_vertex_alpha"
	FSNormal      = "fs_normal"
	FSParallax    = "fs_parallax"
	FSOneBlend    = "fs_one_blend"
	FS2D          = "fs_2d"
	FS2DTexture   = "fs_2d_texture"
)

// Pair names the two entry points linked into one program.
type Pair struct {
	Vertex   string
	Fragment string
}

// String returns "vertex+fragment".
func (p Pair) String() string {
	return fmt.Sprintf("%s+%s", p.Vertex, p.Fragment)
}

// Resource slots. The constants block is bound to uniform buffer binding
// UniformBinding; tex0 and tex1 sample texture units 0 and 1.
const (
	UniformBinding = 0
	TextureUnit0   = 0
	TextureUnit1   = 1
)

// ActiveUniformBlocks is GL_ACTIVE_UNIFORM_BLOCKS.
const ActiveUniformBlocks = 0x8A36
