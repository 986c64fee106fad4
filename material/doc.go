// Package material describes how geometry is drawn by the gles2 driver.
//
// A [Material] is a plain value. The driver keeps the material of the
// previous draw and resolves only the fields that changed, so callers can
// build a fresh material per draw without paying for redundant GL calls.
//
// Materials reference textures through the [Texture] interface. Texture
// creation, upload and mip-map generation are left to the caller.
//
// The OneTextureBlend type carries its blend factors packed into
// [Material.TypeParam]:
//
//	m := material.New()
//	m.Type = material.OneTextureBlend
//	m.TypeParam = material.PackTextureBlendFunc(
//	    gputypes.BlendFactorSrcAlpha, gputypes.BlendFactorOneMinusSrcAlpha,
//	    material.Modulate1x, material.AlphaSourceTexture)
package material
