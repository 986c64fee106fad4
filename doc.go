// Package gles2 is a material-driven OpenGL ES 3 renderer core.
//
// # Overview
//
// gles2 draws vertex lists with materials on an OpenGL ES context. A
// [material.Material] is a plain value describing depth, culling,
// blending, texture layers and a material type. Before each draw the
// driver compares the material with the one of the previous draw and
// issues only the GL state changes that differ. Every state change goes
// through a state cache, so redundant GL calls never reach the driver.
//
// # Quick Start
//
//	fns := gles2.FromContext(glctx) // *gl.Context from gogpu/wgpu/hal/gles/gl
//	drv, err := gles2.New(fns, gles2.WithScreenSize(1280, 720))
//	if err != nil {
//	    return err
//	}
//	defer drv.Close()
//
//	drv.BeginScene(gles2.ClearAll, gputypes.Color{A: 1}, 1)
//	m := material.New()
//	m.Type = material.TransparentAlphaChannel
//	drv.SetMaterial(m)
//	drv.SetTransform(renderer.TransformProjection, proj)
//	gles2.DrawIndexed(drv, vertices, indices, vertex.Triangles)
//	drv.EndScene()
//
// # Material Renderers
//
// Each material type is drawn by a [renderer.Renderer]. The driver
// registers one renderer per built-in type at creation; their shaders are
// written in WGSL and translated to GLSL ES with naga. Applications add
// their own types with [Driver.AddMaterialRenderer].
//
// # Render Modes
//
// The driver switches between 3D draws ([Driver.DrawVertexPrimitiveList])
// and 2D draws ([Driver.Draw2DRectangle], [Driver.Draw2DImage]). Leaving
// a mode unsets its renderer exactly once.
//
// # Threading
//
// Like the GL context it wraps, a Driver must only be used from one
// goroutine. Only [SetLogger] and [Logger] are safe for concurrent use.
//
// # Coordinate System
//
// 2D drawing and [Driver.SetViewPort] use pixels with the origin at the
// top left of the render target, X right and Y down.
package gles2

// Version is the module release this package belongs to.
const Version = "0.1.0"
