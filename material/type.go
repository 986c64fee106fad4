package material

import "strings"

// Type selects the renderer a material is drawn with.
//
// The built-in types occupy [Solid, BuiltinCount). Renderers added at run
// time receive the next free values in registration order.
type Type int

const (
	// Solid is a single opaque texture modulated by vertex color.
	Solid Type = iota
	// Solid2Layer blends two textures by the vertex alpha.
	Solid2Layer
	// Lightmap multiplies layer 0 with the light map in layer 1.
	Lightmap
	// LightmapAdd adds the light map instead of multiplying.
	LightmapAdd
	// LightmapM2 is Lightmap with the result scaled by two.
	LightmapM2
	// LightmapM4 is Lightmap with the result scaled by four.
	LightmapM4
	// LightmapLighting is Lightmap with dynamic lighting applied.
	LightmapLighting
	// LightmapLightingM2 is LightmapLighting scaled by two.
	LightmapLightingM2
	// LightmapLightingM4 is LightmapLighting scaled by four.
	LightmapLightingM4
	// DetailMap adds a detail texture in layer 1.
	DetailMap
	// SphereMap uses the view-space normal to look up an environment map.
	SphereMap
	// Reflection2Layer blends layer 0 with a reflection map in layer 1.
	Reflection2Layer
	// TransparentAddColor adds the texture color to the frame buffer.
	TransparentAddColor
	// TransparentAlphaChannel blends by the texture alpha channel.
	TransparentAlphaChannel
	// TransparentAlphaChannelRef discards fragments below the alpha reference.
	// Blending stays off, so it is drawn in the opaque pass.
	TransparentAlphaChannelRef
	// TransparentVertexAlpha blends by the vertex color alpha.
	TransparentVertexAlpha
	// TransparentReflection2Layer is Reflection2Layer blended by vertex alpha.
	TransparentReflection2Layer
	// NormalMapSolid is per-pixel lit using the normal map in layer 1.
	NormalMapSolid
	// NormalMapTransparentAddColor is NormalMapSolid with additive blending.
	NormalMapTransparentAddColor
	// NormalMapTransparentVertexAlpha is NormalMapSolid blended by vertex alpha.
	NormalMapTransparentVertexAlpha
	// ParallaxMapSolid is NormalMapSolid with parallax offset from the height in
	// the normal map alpha channel.
	ParallaxMapSolid
	// ParallaxMapTransparentAddColor is ParallaxMapSolid with additive blending.
	ParallaxMapTransparentAddColor
	// ParallaxMapTransparentVertexAlpha is ParallaxMapSolid blended by vertex alpha.
	ParallaxMapTransparentVertexAlpha
	// OneTextureBlend blends with the factors packed into TypeParam.
	// See PackTextureBlendFunc.
	OneTextureBlend

	// BuiltinCount is the number of built-in material types.
	BuiltinCount
)

var typeNames = [BuiltinCount]string{
	Solid:                             "solid",
	Solid2Layer:                       "solid_2layer",
	Lightmap:                          "lightmap",
	LightmapAdd:                       "lightmap_add",
	LightmapM2:                        "lightmap_m2",
	LightmapM4:                        "lightmap_m4",
	LightmapLighting:                  "lightmap_light",
	LightmapLightingM2:                "lightmap_light_m2",
	LightmapLightingM4:                "lightmap_light_m4",
	DetailMap:                         "detail_map",
	SphereMap:                         "sphere_map",
	Reflection2Layer:                  "reflection_2layer",
	TransparentAddColor:               "trans_add",
	TransparentAlphaChannel:           "trans_alphach",
	TransparentAlphaChannelRef:        "trans_alphach_ref",
	TransparentVertexAlpha:            "trans_vertexalpha",
	TransparentReflection2Layer:       "trans_reflection_2layer",
	NormalMapSolid:                    "normalmap_solid",
	NormalMapTransparentAddColor:      "normalmap_trans_add",
	NormalMapTransparentVertexAlpha:   "normalmap_trans_vertexalpha",
	ParallaxMapSolid:                  "parallaxmap_solid",
	ParallaxMapTransparentAddColor:    "parallaxmap_trans_add",
	ParallaxMapTransparentVertexAlpha: "parallaxmap_trans_vertexalpha",
	OneTextureBlend:                   "onetexture_blend",
}

// String returns the registry name of a built-in type, or "user" for
// types added at run time.
func (t Type) String() string {
	if t >= 0 && t < BuiltinCount {
		return typeNames[t]
	}
	return "user"
}

// IsBuiltin reports whether t is one of the built-in material types.
func (t Type) IsBuiltin() bool {
	return t >= 0 && t < BuiltinCount
}

// ParseType returns the built-in type with the given name.
// Matching is case-insensitive.
func ParseType(name string) (Type, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range typeNames {
		if n == name {
			return Type(i), true
		}
	}
	return 0, false
}

// transparent reports whether the built-in renderer for t blends with the
// frame buffer. User types are resolved through their renderer instead.
func (t Type) transparent() bool {
	switch t {
	case TransparentAddColor,
		TransparentAlphaChannel,
		TransparentVertexAlpha,
		TransparentReflection2Layer,
		NormalMapTransparentAddColor,
		NormalMapTransparentVertexAlpha,
		ParallaxMapTransparentAddColor,
		ParallaxMapTransparentVertexAlpha:
		return true
	}
	return false
}
