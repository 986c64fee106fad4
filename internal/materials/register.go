package materials

import (
	"github.com/gogpu/gles2/internal/shader"
	"github.com/gogpu/gles2/material"
	"github.com/gogpu/gles2/renderer"
)

var (
	solidPair       = shader.Pair{Vertex: shader.VSStandard, Fragment: shader.FSSolid}
	lightmapPair    = shader.Pair{Vertex: shader.VSTwoTCoords, Fragment: shader.FSLightmap}
	lightmapAddPair = shader.Pair{Vertex: shader.VSTwoTCoords, Fragment: shader.FSLightmapAdd}
	normalPair      = shader.Pair{Vertex: shader.VSTangents, Fragment: shader.FSNormal}
	parallaxPair    = shader.Pair{Vertex: shader.VSTangents, Fragment: shader.FSParallax}
	reflectionPair  = shader.Pair{Vertex: shader.VSSphere, Fragment: shader.FSReflection}
)

// builtinDef describes one built-in type. A shared type registers under
// sharedWith and draws with that type's program; only the lightmap
// modulation variants do.
type builtinDef struct {
	typ        material.Type
	pair       shader.Pair
	blend      blendKind
	modulate   float32
	lighting   lighting
	alphaRef   bool
	parallax   bool
	tangents   bool
	sharedWith material.Type
	shared     bool
}

// builtins lists the built-in types in material.Type order.
var builtins = []builtinDef{
	{typ: material.Solid, pair: solidPair},
	{typ: material.Solid2Layer, pair: shader.Pair{Vertex: shader.VSTwoTCoords, Fragment: shader.FSSolid2Layer}},

	{typ: material.Lightmap, pair: lightmapPair, modulate: 1, lighting: lightingOff},
	{typ: material.LightmapAdd, pair: lightmapAddPair, lighting: lightingOff},
	{typ: material.LightmapM2, pair: lightmapPair, modulate: 2, lighting: lightingOff, shared: true, sharedWith: material.Lightmap},
	{typ: material.LightmapM4, pair: lightmapPair, modulate: 4, lighting: lightingOff, shared: true, sharedWith: material.Lightmap},
	{typ: material.LightmapLighting, pair: lightmapPair, modulate: 1, lighting: lightingOn, shared: true, sharedWith: material.Lightmap},
	{typ: material.LightmapLightingM2, pair: lightmapPair, modulate: 2, lighting: lightingOn, shared: true, sharedWith: material.Lightmap},
	{typ: material.LightmapLightingM4, pair: lightmapPair, modulate: 4, lighting: lightingOn, shared: true, sharedWith: material.Lightmap},

	{typ: material.DetailMap, pair: shader.Pair{Vertex: shader.VSTwoTCoords, Fragment: shader.FSDetail}},
	{typ: material.SphereMap, pair: shader.Pair{Vertex: shader.VSSphere, Fragment: shader.FSSphere}},
	{typ: material.Reflection2Layer, pair: reflectionPair},

	{typ: material.TransparentAddColor, pair: shader.Pair{Vertex: shader.VSStandard, Fragment: shader.FSAddColor}, blend: blendAddColor},
	{typ: material.TransparentAlphaChannel, pair: shader.Pair{Vertex: shader.VSStandard, Fragment: shader.FSAlpha}, blend: blendAlpha},
	{typ: material.TransparentAlphaChannelRef, pair: shader.Pair{Vertex: shader.VSStandard, Fragment: shader.FSAlphaRef}, alphaRef: true},
	{typ: material.TransparentVertexAlpha, pair: shader.Pair{Vertex: shader.VSStandard, Fragment: shader.FSVertexAlpha}, blend: blendVertexAlpha},
	{typ: material.TransparentReflection2Layer, pair: reflectionPair, blend: blendVertexAlpha},

	{typ: material.NormalMapSolid, pair: normalPair, tangents: true},
	{typ: material.NormalMapTransparentAddColor, pair: normalPair, blend: blendAddColor, tangents: true},
	{typ: material.NormalMapTransparentVertexAlpha, pair: normalPair, blend: blendVertexAlpha, tangents: true},
	{typ: material.ParallaxMapSolid, pair: parallaxPair, parallax: true, tangents: true},
	{typ: material.ParallaxMapTransparentAddColor, pair: parallaxPair, blend: blendAddColor, parallax: true, tangents: true},
	{typ: material.ParallaxMapTransparentVertexAlpha, pair: parallaxPair, blend: blendVertexAlpha, parallax: true, tangents: true},

	{typ: material.OneTextureBlend, pair: solidPair, blend: blendPacked, modulate: 1},
}

// Register adds a renderer for every built-in material type to reg. reg
// must be empty so the registered types match the material.Type values.
// Programs are linked through lib; a type whose program fails to link
// stays registered and skips its draws.
func Register(reg *renderer.Registry, lib *shader.Library) {
	programs := make(map[material.Type]uint32, len(builtins))
	for _, sp := range builtins {
		var t material.Type
		if sp.shared {
			ref, _ := reg.GrabShared(sp.sharedWith)
			r := newBuiltin(sp, programs[sp.sharedWith], ref)
			t, _ = reg.AddShared(sp.sharedWith, r, sp.typ.String())
		} else {
			program, ref := lib.Acquire(sp.pair)
			programs[sp.typ] = program
			t = reg.Add(newBuiltin(sp, program, ref), sp.typ.String())
		}
		if t != sp.typ {
			slogger().Error("materials: built-in type registered out of order", "type", sp.typ.String(), "got", int(t))
		}
	}
}

// newBuiltin builds the renderer of sp around program. ref is the
// renderer's reference on it, nil when linking failed.
func newBuiltin(sp builtinDef, program uint32, ref *renderer.Shared) *Builtin {
	r := &Builtin{
		name:     sp.typ.String(),
		pair:     sp.pair,
		blend:    sp.blend,
		modulate: sp.modulate,
		lighting: sp.lighting,
		alphaRef: sp.alphaRef,
		parallax: sp.parallax,
		tangents: sp.tangents,
		program:  program,
		ref:      ref,
	}
	if r.modulate == 0 {
		r.modulate = 1
	}
	if ref == nil {
		r.program = 0
	}
	return r
}
