package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gogpu/gles2/material"
	"github.com/gogpu/gles2/vertex"
	"github.com/gogpu/gputypes"
	"gopkg.in/yaml.v3"
)

// Script is a scene description replayed against a recording GL context.
type Script struct {
	Name       string        `yaml:"name"`
	Screen     Size          `yaml:"screen"`
	Context    ContextConfig `yaml:"context"`
	ErrorCheck string        `yaml:"error_check"`
	Textures   []TextureSpec `yaml:"textures"`
	Frames     []Frame       `yaml:"frames"`
}

// Size is a width and height in pixels.
type Size struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// ContextConfig overrides what the recording context reports.
// Zero values keep the defaults of an ES 3.0 context.
type ContextConfig struct {
	Version      string    `yaml:"version"`
	Renderer     string    `yaml:"renderer"`
	Extensions   *[]string `yaml:"extensions"`
	TextureUnits int       `yaml:"texture_units"`
}

// TextureSpec declares a texture. Targets also get a framebuffer.
type TextureSpec struct {
	Name   string `yaml:"name"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Target bool   `yaml:"target"`
}

// Frame is one BeginScene/EndScene pair, replayed Repeat times.
type Frame struct {
	Repeat int    `yaml:"repeat"`
	Target string `yaml:"target"`
	Clear  *Clear `yaml:"clear"`
	Steps  []Step `yaml:"steps"`
}

// Clear selects the buffers cleared at the start of a frame.
type Clear struct {
	Color   []float64 `yaml:"color"`
	Depth   *float32  `yaml:"depth"`
	Stencil bool      `yaml:"stencil"`
}

// Step is one action within a frame. Exactly one of the pointer fields
// is expected; Repeat replays the step.
type Step struct {
	Repeat     int           `yaml:"repeat"`
	Material   *MaterialSpec `yaml:"material"`
	Draw       *DrawSpec     `yaml:"draw"`
	Rect       *RectSpec     `yaml:"rect"`
	Image      *ImageSpec    `yaml:"image"`
	Viewport   []int         `yaml:"viewport"`
	Invalidate bool          `yaml:"invalidate"`
}

// MaterialSpec builds a material from material.New defaults.
type MaterialSpec struct {
	Type       MaterialType   `yaml:"type"`
	ZBuffer    *Compare       `yaml:"zbuffer"`
	ZWrite     *bool          `yaml:"zwrite"`
	Backface   *bool          `yaml:"backface"`
	Frontface  bool           `yaml:"frontface"`
	Blend      BlendOperation `yaml:"blend"`
	Wireframe  bool           `yaml:"wireframe"`
	PointCloud bool           `yaml:"pointcloud"`
	Param      float32        `yaml:"param"`
	Thickness  float32        `yaml:"thickness"`
	Textures   []string       `yaml:"textures"`
	Bilinear   *bool          `yaml:"bilinear"`
	Trilinear  bool           `yaml:"trilinear"`
	Anisotropy uint8          `yaml:"anisotropy"`
}

// DrawSpec is a DrawVertexPrimitiveList call against the bound buffers.
type DrawSpec struct {
	Vertices    VertexType `yaml:"vertices"`
	Primitive   *Primitive `yaml:"primitive"`
	Count       int        `yaml:"count"`
	VertexCount int        `yaml:"vertex_count"`
	Index32     bool       `yaml:"index32"`

	// Translate moves the world transform before the draw.
	Translate []float32 `yaml:"translate"`
}

// RectSpec is a Draw2DRectangle call.
type RectSpec struct {
	Bounds []int   `yaml:"bounds"`
	Color  []uint8 `yaml:"color"`
}

// ImageSpec is a Draw2DImage call.
type ImageSpec struct {
	Texture string  `yaml:"texture"`
	Dest    []int   `yaml:"dest"`
	Src     []int   `yaml:"src"`
	Color   []uint8 `yaml:"color"`
	Alpha   bool    `yaml:"alpha"`
}

// ParseScript decodes a YAML script and checks it for unknown texture
// references.
func ParseScript(r io.Reader) (*Script, error) {
	var s Script
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty script")
		}
		return nil, fmt.Errorf("decode script: %w", err)
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Script) validate() error {
	known := make(map[string]TextureSpec, len(s.Textures))
	for _, t := range s.Textures {
		if t.Name == "" {
			return errors.New("texture without a name")
		}
		if t.Width <= 0 || t.Height <= 0 {
			return fmt.Errorf("texture %q: invalid size %dx%d", t.Name, t.Width, t.Height)
		}
		if _, dup := known[t.Name]; dup {
			return fmt.Errorf("texture %q declared twice", t.Name)
		}
		known[t.Name] = t
	}
	for i, f := range s.Frames {
		if f.Target != "" {
			t, ok := known[f.Target]
			if !ok || !t.Target {
				return fmt.Errorf("frame %d: %q is not a render target", i, f.Target)
			}
		}
		for j, st := range f.Steps {
			var refs []string
			if st.Material != nil {
				refs = st.Material.Textures
			}
			if st.Image != nil {
				refs = append(refs, st.Image.Texture)
			}
			for _, name := range refs {
				if _, ok := known[name]; !ok && name != "" {
					return fmt.Errorf("frame %d step %d: unknown texture %q", i, j, name)
				}
			}
		}
	}
	return nil
}

// MaterialType decodes a built-in material type name.
type MaterialType material.Type

// UnmarshalYAML implements yaml.Unmarshaler.
func (t *MaterialType) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	mt, ok := material.ParseType(s)
	if !ok {
		return fmt.Errorf("line %d: unknown material type %q", value.Line, s)
	}
	*t = MaterialType(mt)
	return nil
}

// Compare decodes a depth comparison such as "lessequal".
type Compare gputypes.CompareFunction

// UnmarshalYAML implements yaml.Unmarshaler.
func (c *Compare) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	for f := gputypes.CompareFunctionUndefined; f <= gputypes.CompareFunctionAlways; f++ {
		if strings.EqualFold(f.String(), s) {
			*c = Compare(f)
			return nil
		}
	}
	if strings.EqualFold(s, "off") {
		*c = Compare(gputypes.CompareFunctionUndefined)
		return nil
	}
	return fmt.Errorf("line %d: unknown compare function %q", value.Line, s)
}

// BlendOperation decodes a blend equation such as "add" or "max".
type BlendOperation gputypes.BlendOperation

// UnmarshalYAML implements yaml.Unmarshaler.
func (b *BlendOperation) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	for op := gputypes.BlendOperationUndefined; op <= gputypes.BlendOperationMax; op++ {
		if strings.EqualFold(op.String(), s) {
			*b = BlendOperation(op)
			return nil
		}
	}
	return fmt.Errorf("line %d: unknown blend operation %q", value.Line, s)
}

// VertexType decodes a vertex format name.
type VertexType vertex.Type

// UnmarshalYAML implements yaml.Unmarshaler.
func (v *VertexType) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	for _, t := range []vertex.Type{vertex.TypeStandard, vertex.TypeTwoTCoords, vertex.TypeTangents} {
		if strings.EqualFold(t.String(), s) {
			*v = VertexType(t)
			return nil
		}
	}
	return fmt.Errorf("line %d: unknown vertex type %q", value.Line, s)
}

// Primitive decodes a primitive type name such as "trianglestrip".
type Primitive vertex.PrimitiveType

// UnmarshalYAML implements yaml.Unmarshaler.
func (p *Primitive) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	for pt := vertex.Points; pt <= vertex.PointSprites; pt++ {
		if strings.EqualFold(pt.String(), s) {
			*p = Primitive(pt)
			return nil
		}
	}
	return fmt.Errorf("line %d: unknown primitive type %q", value.Line, s)
}
