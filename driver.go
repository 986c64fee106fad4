package gles2

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gles2/internal/glstate"
	"github.com/gogpu/gles2/internal/materials"
	"github.com/gogpu/gles2/internal/resolver"
	"github.com/gogpu/gles2/internal/shader"
	"github.com/gogpu/gles2/material"
	"github.com/gogpu/gles2/renderer"
	"github.com/gogpu/gles2/vertex"
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/naga/glsl"
)

// Stats counts the work of the current scene. BeginScene resets it.
type Stats struct {
	// DrawCalls is the number of GL draw calls issued.
	DrawCalls int

	// Primitives is the number of primitives submitted.
	Primitives int

	// StateChanges and StateChangesElided count state setters that
	// reached GL and those filtered by the state cache.
	StateChanges       uint64
	StateChangesElided uint64
}

// uniformBlock is the buffer behind one uniform binding and the bytes
// last uploaded to it.
type uniformBlock struct {
	buffer uint32
	size   int
	data   []byte
}

// Driver renders materials and vertex lists on one OpenGL ES context.
//
// A Driver is not safe for concurrent use. All calls must come from the
// goroutine that owns the GL context.
type Driver struct {
	gl       GL
	opts     driverOptions
	features Features

	bridge   *glstate.Bridge
	resolver *resolver.Resolver
	registry *renderer.Registry
	dispatch *renderer.Dispatcher
	library  *shader.Library

	plain2D    *materials.Renderer2D
	textured2D *materials.Renderer2D
	material2D material.Material
	quad       [4]vertex.Standard // client array of 2D draws

	material   material.Material // set by SetMaterial
	active     material.Material // being drawn
	transforms [renderer.TransformCount]mgl32.Mat4

	screenW, screenH int
	target           RenderTarget
	targetW, targetH int

	blocks [glstate.MaxUniformBindings]uniformBlock

	stats    Stats
	baseline glstate.Counters
	closed   bool
}

var _ renderer.Services = (*Driver)(nil)

// New creates a driver on the GL context behind f.
//
// It queries the context features, pushes the default state, compiles
// the shaders of the built-in material renderers and registers one
// renderer per material.Type. A renderer whose shaders fail to build
// is logged and skips its draws. New fails for a nil f, and for
// contexts older than OpenGL ES 3.0 unless WithShaderCompiler supplies
// the shaders.
func New(f GL, opts ...DriverOption) (*Driver, error) {
	if f == nil {
		return nil, ErrNilContext
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger != nil {
		SetLogger(o.logger)
	}

	d := &Driver{gl: f, opts: o}
	d.screenW, d.screenH = o.width, o.height
	if o.window != nil {
		d.updateScreenSize()
	}
	d.targetW, d.targetH = d.screenW, d.screenH

	d.features = detectFeatures(f)
	compiler := o.compiler
	if compiler == nil {
		v, err := glslVersion(d.features, o.glslVersion)
		if err != nil {
			return nil, err
		}
		compiler = shader.NewNagaCompiler(v)
	}
	units := o.maxTextureUnits
	if d.features.TextureUnits > 0 {
		units = min(units, d.features.TextureUnits)
	}

	d.bridge = glstate.NewBridge(f, units, glstate.Rect{Width: int32(d.screenW), Height: int32(d.screenH)}, o.check)
	d.resolver = resolver.New(d.bridge, resolver.Config{
		AllowZWriteOnTransparent: o.allowZWriteOnTransparent,
		CoreContext:              o.coreContext,
		BlendMinMax:              d.features.BlendMinMax,
		Anisotropic:              d.features.Anisotropic,
		MaxAnisotropy:            d.features.MaxAnisotropy,
		SamplerCacheSize:         o.samplerCacheSize,
	})
	d.logFeatures()

	d.library = shader.NewLibrary(d.bridge, compiler)
	d.registry = renderer.NewRegistry()
	materials.Register(d.registry, d.library)
	d.plain2D, d.textured2D = materials.New2D(d.library)
	d.dispatch = renderer.NewDispatcher(d.registry)

	d.material = material.New()
	d.active = d.material
	d.material2D = new2DMaterial()
	for i := range d.transforms {
		d.transforms[i] = mgl32.Ident4()
	}
	d.baseline = d.bridge.Counters()
	return d, nil
}

func (d *Driver) logFeatures() {
	f := d.features
	slogger().Info("gles2: driver created",
		"vendor", f.Vendor,
		"renderer", f.Renderer,
		"version", f.Version,
		"extensions", f.Extensions(),
		"textureUnits", d.bridge.TextureUnits(),
	)
	if !f.ElementIndexUint {
		slogger().Warn("gles2: 32-bit indices unsupported, such draws are rejected")
	}
	if !f.Anisotropic {
		slogger().Warn("gles2: anisotropic filtering unsupported")
	}
	if !f.BlendMinMax {
		slogger().Warn("gles2: min/max blending unsupported, falling back to add")
	}
}

func (d *Driver) updateScreenSize() {
	w, h := d.opts.window.Size()
	scale := d.opts.window.ScaleFactor()
	if scale <= 0 {
		scale = 1
	}
	w, h = int(float64(w)*scale), int(float64(h)*scale)
	if w > 0 && h > 0 {
		d.screenW, d.screenH = w, h
	}
}

// Features returns what the GL context supports.
func (d *Driver) Features() Features { return d.features }

// AdapterInfo describes the GPU behind the context.
func (d *Driver) AdapterInfo() gpucontext.AdapterInfo { return d.features.AdapterInfo() }

// Stats returns the counters of the current scene.
func (d *Driver) Stats() Stats {
	s := d.stats
	c := d.bridge.Counters()
	s.StateChanges = c.Issued - d.baseline.Issued
	s.StateChangesElided = c.Elided - d.baseline.Elided
	return s
}

func (d *Driver) resetStats() {
	d.stats = Stats{}
	d.baseline = d.bridge.Counters()
}

// SetErrorCheck changes when GL errors are polled.
func (d *Driver) SetErrorCheck(level ErrorCheckLevel) { d.bridge.SetCheckLevel(level) }

// ErrorCheck returns the current error check level.
func (d *Driver) ErrorCheck() ErrorCheckLevel { return d.bridge.CheckLevel() }

// SetMaterial sets the material of subsequent 3D draws. The texture
// matrices of its layers become the Texture0..7 transforms.
func (d *Driver) SetMaterial(m material.Material) {
	d.material = m
	for i := range material.MaxTextures {
		d.transforms[renderer.TransformTexture0+renderer.TransformState(i)] = m.TextureLayers[i].TextureMatrix()
	}
}

// CurrentMaterial returns the material set by SetMaterial.
func (d *Driver) CurrentMaterial() material.Material { return d.material }

// SetTransform sets one of the transformation matrices. Unknown states
// are ignored.
func (d *Driver) SetTransform(state renderer.TransformState, m mgl32.Mat4) {
	if state < 0 || state >= renderer.TransformCount {
		return
	}
	d.transforms[state] = m
}

// AddMaterialRenderer registers a renderer for a new material type and
// returns the type. Draws with that type are routed to r.
func (d *Driver) AddMaterialRenderer(r renderer.Renderer, name string) material.Type {
	t := d.registry.Add(r, name)
	slogger().Debug("gles2: material renderer added", "type", int(t), "name", name)
	return t
}

// AddSharedMaterialRenderer registers r as a new material type sharing the
// GPU resources of canonical. r gets them from SharedMaterialResource.
// It reports false when canonical is not registered.
func (d *Driver) AddSharedMaterialRenderer(canonical material.Type, r renderer.Renderer, name string) (material.Type, bool) {
	t, ok := d.registry.AddShared(canonical, r, name)
	if ok {
		slogger().Debug("gles2: shared material renderer added", "type", int(t), "canonical", int(canonical), "name", name)
	}
	return t, ok
}

// SharedMaterialResource returns a new reference on the resources of the
// renderer drawing t, for a renderer about to share them. The caller
// drops the reference when it is destroyed.
func (d *Driver) SharedMaterialResource(t material.Type) (*renderer.Shared, bool) {
	return d.registry.GrabShared(t)
}

// MaterialRendererName returns the name a material type was registered
// with, or "" for unknown types.
func (d *Driver) MaterialRendererName(t material.Type) string { return d.registry.Name(t) }

// MaterialRendererCount returns the number of registered material types.
func (d *Driver) MaterialRendererCount() int { return d.registry.Len() }

// ForgetTexture drops cached state of a texture. Call it before deleting
// the GL texture object.
func (d *Driver) ForgetTexture(t material.Texture) {
	if t == nil {
		return
	}
	d.resolver.Invalidate(t.GLName())
}

// InvalidateState re-synchronizes the driver after code outside it used
// the GL context. The active renderer is unset, every cached state is
// pushed to GL again and sampler state is re-sent on the next bind.
func (d *Driver) InvalidateState() {
	if d.closed {
		return
	}
	d.dispatch.Leave(d)
	d.bridge.Reset()
	d.resolver.ForgetSamplers()
	for i := range d.blocks {
		d.blocks[i].data = d.blocks[i].data[:0]
		d.blocks[i].size = 0
	}
}

// Close unsets the active renderer and deletes the programs and buffers
// owned by the driver. The GL context itself is left alone. Close is
// idempotent.
func (d *Driver) Close() error {
	if d.closed {
		return nil
	}
	d.dispatch.Leave(d)
	d.registry.Destroy()
	d.plain2D.Destroy()
	d.textured2D.Destroy()
	for i := range d.blocks {
		b := &d.blocks[i]
		if b.buffer == 0 {
			continue
		}
		d.bridge.SetUniformBuffer(i, 0)
		d.bridge.ForgetBuffer(b.buffer)
		d.gl.DeleteBuffers(b.buffer)
		*b = uniformBlock{}
	}
	d.closed = true
	slogger().Debug("gles2: driver closed")
	return nil
}

// glslVersion returns the GLSL version the naga compiler emits: forced,
// or matched to the context.
func glslVersion(feat Features, forced glsl.Version) (glsl.Version, error) {
	if forced != (glsl.Version{}) {
		return forced, nil
	}
	if feat.Major == 0 {
		slogger().Warn("gles2: unknown context version, assuming ES 3.0", "version", feat.Version)
		return shader.DefaultVersion, nil
	}
	v, ok := shader.VersionFor(feat.Major, feat.Minor)
	if !ok {
		slogger().Error("gles2: no GLSL ES version for context", "version", feat.Version)
		return glsl.Version{}, fmt.Errorf("%w: %d.%d needs WithShaderCompiler", ErrUnsupportedContext, feat.Major, feat.Minor)
	}
	return v, nil
}
