package main

import (
	"fmt"
	"image"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gles2"
	"github.com/gogpu/gles2/internal/glrecord"
	"github.com/gogpu/gles2/material"
	"github.com/gogpu/gles2/renderer"
	"github.com/gogpu/gles2/vertex"
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal/gles/gl"
)

// texture is a script texture. Only its GL names are real to the
// recorder; no pixels exist.
type texture struct {
	name uint32
	w, h int
	fbo  uint32
}

func (t *texture) Width() int          { return t.w }
func (t *texture) Height() int         { return t.h }
func (t *texture) GLName() uint32      { return t.name }
func (t *texture) GLTarget() uint32    { return gl.TEXTURE_2D }
func (t *texture) HasMipMaps() bool    { return false }
func (t *texture) Framebuffer() uint32 { return t.fbo }

// Report summarizes a replay.
type Report struct {
	Name    string
	Adapter gpucontext.AdapterInfo
	Frames  int

	// Stats sums the per-frame driver statistics.
	Stats gles2.Stats

	// SetupCalls counts the GL calls made while creating the driver.
	SetupCalls int

	// Calls is the histogram of GL calls made by the frames.
	Calls      []glrecord.Entry
	TotalCalls int
}

func (r *Report) add(s gles2.Stats) {
	r.Stats.DrawCalls += s.DrawCalls
	r.Stats.Primitives += s.Primitives
	r.Stats.StateChanges += s.StateChanges
	r.Stats.StateChangesElided += s.StateChangesElided
}

func newRecorder(c ContextConfig) *glrecord.Recorder {
	rec := glrecord.New()
	rec.KeepCalls = false
	if c.Version != "" {
		rec.Version = c.Version
	}
	if c.Renderer != "" {
		rec.Renderer = c.Renderer
	}
	if c.Extensions != nil {
		rec.Extensions = *c.Extensions
	}
	if c.TextureUnits > 0 {
		rec.Integers[gl.MAX_TEXTURE_IMAGE_UNITS] = int32(c.TextureUnits)
	}
	return rec
}

// Replay runs s against a fresh recording context.
func Replay(s *Script, opts ...gles2.DriverOption) (*Report, error) {
	rec := newRecorder(s.Context)

	var o []gles2.DriverOption
	if s.Screen.Width > 0 && s.Screen.Height > 0 {
		o = append(o, gles2.WithScreenSize(s.Screen.Width, s.Screen.Height))
	}
	if s.ErrorCheck != "" {
		level, err := gles2.ParseErrorCheckLevel(s.ErrorCheck)
		if err != nil {
			return nil, err
		}
		o = append(o, gles2.WithErrorCheck(level))
	}
	drv, err := gles2.New(rec, append(o, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("create driver: %w", err)
	}
	defer drv.Close()

	rep := &Report{
		Name:       s.Name,
		Adapter:    drv.AdapterInfo(),
		SetupCalls: rec.Total(),
	}
	rec.Reset()

	textures := make(map[string]*texture, len(s.Textures))
	for i, t := range s.Textures {
		tex := &texture{name: uint32(1000 + i), w: t.Width, h: t.Height}
		if t.Target {
			tex.fbo = uint32(i + 1)
		}
		textures[t.Name] = tex
	}

	for i, f := range s.Frames {
		for range max(f.Repeat, 1) {
			if err := playFrame(drv, f, textures); err != nil {
				return nil, fmt.Errorf("frame %d: %w", i, err)
			}
			rep.add(drv.Stats())
			rep.Frames++
		}
	}
	rep.Calls = rec.Histogram()
	rep.TotalCalls = rec.Total()
	return rep, nil
}

func playFrame(drv *gles2.Driver, f Frame, textures map[string]*texture) error {
	flags, color, depth := clearArgs(f.Clear)
	if f.Target == "" {
		if err := drv.BeginScene(flags, color, depth); err != nil {
			return err
		}
	} else {
		if err := drv.BeginScene(gles2.ClearNone, color, depth); err != nil {
			return err
		}
		if err := drv.SetRenderTarget(textures[f.Target], flags, color); err != nil {
			return err
		}
	}

	for i, st := range f.Steps {
		for range max(st.Repeat, 1) {
			if err := playStep(drv, st, textures); err != nil {
				return fmt.Errorf("step %d: %w", i, err)
			}
		}
	}

	if f.Target != "" {
		if err := drv.SetRenderTarget(nil, gles2.ClearNone, color); err != nil {
			return err
		}
	}
	return drv.EndScene()
}

func clearArgs(c *Clear) (gles2.ClearFlags, gputypes.Color, float32) {
	color := gputypes.Color{A: 1}
	if c == nil {
		return gles2.ClearAll, color, 1
	}
	var flags gles2.ClearFlags
	if len(c.Color) >= 3 {
		flags |= gles2.ClearColor
		color = gputypes.Color{R: c.Color[0], G: c.Color[1], B: c.Color[2], A: 1}
		if len(c.Color) > 3 {
			color.A = c.Color[3]
		}
	}
	depth := float32(1)
	if c.Depth != nil {
		flags |= gles2.ClearDepth
		depth = *c.Depth
	}
	if c.Stencil {
		flags |= gles2.ClearStencil
	}
	return flags, color, depth
}

func playStep(drv *gles2.Driver, st Step, textures map[string]*texture) error {
	switch {
	case st.Material != nil:
		drv.SetMaterial(buildMaterial(st.Material, textures))
	case st.Draw != nil:
		return playDraw(drv, st.Draw)
	case st.Rect != nil:
		r, err := rectOf(st.Rect.Bounds)
		if err != nil {
			return err
		}
		c, err := colorOf(st.Rect.Color)
		if err != nil {
			return err
		}
		return drv.Draw2DRectangle(r, c)
	case st.Image != nil:
		dest, err := rectOf(st.Image.Dest)
		if err != nil {
			return err
		}
		src, err := rectOf(st.Image.Src)
		if err != nil {
			return err
		}
		c, err := colorOf(st.Image.Color)
		if err != nil {
			return err
		}
		var tex material.Texture
		if t, ok := textures[st.Image.Texture]; ok {
			tex = t
		}
		return drv.Draw2DImage(tex, dest, src, c, st.Image.Alpha)
	case st.Viewport != nil:
		r, err := rectOf(st.Viewport)
		if err != nil {
			return err
		}
		drv.SetViewPort(r)
	case st.Invalidate:
		drv.InvalidateState()
	}
	return nil
}

func buildMaterial(s *MaterialSpec, textures map[string]*texture) material.Material {
	m := material.New()
	m.Type = material.Type(s.Type)
	if s.ZBuffer != nil {
		m.ZBuffer = gputypes.CompareFunction(*s.ZBuffer)
	}
	if s.ZWrite != nil {
		m.ZWriteEnable = *s.ZWrite
	}
	if s.Backface != nil {
		m.BackfaceCulling = *s.Backface
	}
	m.FrontfaceCulling = s.Frontface
	m.BlendOperation = gputypes.BlendOperation(s.Blend)
	m.Wireframe = s.Wireframe
	m.PointCloud = s.PointCloud
	m.TypeParam = s.Param
	if s.Thickness > 0 {
		m.Thickness = s.Thickness
	}
	for i := range m.TextureLayers {
		l := &m.TextureLayers[i]
		if s.Bilinear != nil {
			l.Bilinear = *s.Bilinear
		}
		l.Trilinear = s.Trilinear
		l.Anisotropic = s.Anisotropy
	}
	for i, name := range s.Textures {
		if t, ok := textures[name]; ok {
			m = m.SetTexture(i, t)
		}
	}
	return m
}

func playDraw(drv *gles2.Driver, s *DrawSpec) error {
	if len(s.Translate) == 3 {
		drv.SetTransform(renderer.TransformWorld, mgl32.Translate3D(s.Translate[0], s.Translate[1], s.Translate[2]))
	}
	pt := vertex.Triangles
	if s.Primitive != nil {
		pt = vertex.PrimitiveType(*s.Primitive)
	}
	vc := s.VertexCount
	if vc <= 0 {
		vc, _ = pt.IndexCount(s.Count)
	}
	it := gputypes.IndexFormatUint16
	if s.Index32 {
		it = gputypes.IndexFormatUint32
	}
	return drv.DrawVertexPrimitiveList(nil, vc, nil, s.Count, vertex.Type(s.Vertices), pt, it)
}

func rectOf(v []int) (image.Rectangle, error) {
	switch len(v) {
	case 0:
		return image.Rectangle{}, nil
	case 4:
		return image.Rect(v[0], v[1], v[2], v[3]), nil
	}
	return image.Rectangle{}, fmt.Errorf("rectangle needs 4 values, got %d", len(v))
}

func colorOf(v []uint8) (vertex.Color, error) {
	switch len(v) {
	case 0:
		return vertex.RGBA(255, 255, 255, 255), nil
	case 3:
		return vertex.RGBA(v[0], v[1], v[2], 255), nil
	case 4:
		return vertex.RGBA(v[0], v[1], v[2], v[3]), nil
	}
	return vertex.Color{}, fmt.Errorf("color needs 3 or 4 values, got %d", len(v))
}
