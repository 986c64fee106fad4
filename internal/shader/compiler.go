package shader

import (
	"fmt"

	"github.com/gogpu/naga"
	"github.com/gogpu/naga/glsl"
	"github.com/gogpu/naga/ir"
)

// Compiler translates one entry point of a WGSL module to GLSL.
type Compiler interface {
	Compile(source, entryPoint string) (string, error)
}

// bindingMap assigns the WGSL bindings of the material module to GL slots.
// Texture and sampler pairs collapse onto the texture's unit.
var bindingMap = map[glsl.BindingMapKey]uint8{
	{Group: 0, Binding: 0}: UniformBinding,
	{Group: 0, Binding: 1}: TextureUnit0,
	{Group: 0, Binding: 2}: TextureUnit0,
	{Group: 0, Binding: 3}: TextureUnit1,
	{Group: 0, Binding: 4}: TextureUnit1,
}

// LateBinder is implemented by compilers whose GLSL carries no
// layout(binding) qualifiers. Programs built from their output get the
// uniform block and sampler units assigned after linking.
type LateBinder interface {
	LateBinding() bool
	// SamplerUnits returns the sampler uniforms of the last compiled
	// entryPoint and the texture unit each one reads.
	SamplerUnits(entryPoint string) map[string]uint8
}

// DefaultVersion is used when the context version is unknown. Every ES 3
// context accepts it.
var DefaultVersion = glsl.VersionES300

// VersionFor returns the GLSL ES version matching an OpenGL ES context.
// It reports false below ES 3.0, whose GLSL ES 1.00 naga cannot emit.
func VersionFor(major, minor int) (glsl.Version, bool) {
	switch {
	case major > 3 || major == 3 && minor >= 2:
		return glsl.VersionES320, true
	case major == 3 && minor == 1:
		return glsl.VersionES310, true
	case major == 3:
		return glsl.VersionES300, true
	}
	return glsl.Version{}, false
}

// explicitBindings reports whether v accepts layout(binding = N) on
// samplers and uniform blocks: GLSL ES 3.10 and desktop 4.20.
func explicitBindings(v glsl.Version) bool {
	if v.ES {
		return v.Major > 3 || v.Major == 3 && v.Minor >= 10
	}
	return v.Major > 4 || v.Major == 4 && v.Minor >= 20
}

// NagaCompiler compiles WGSL with naga. Parsed modules are kept per source
// so a module is lowered once however many entry points are compiled.
//
// A NagaCompiler is not safe for concurrent use.
type NagaCompiler struct {
	Version glsl.Version
	Flags   glsl.WriterFlags

	modules  map[string]*ir.Module
	samplers map[string]map[string]uint8
}

// NewNagaCompiler returns a compiler emitting GLSL of version v.
// Vertex shaders write gl_PointSize so point lists rasterize on ES.
func NewNagaCompiler(v glsl.Version) *NagaCompiler {
	return &NagaCompiler{
		Version: v,
		Flags:   glsl.WriterFlagForcePointSize,
		modules: make(map[string]*ir.Module),
	}
}

// Compile implements Compiler.
func (c *NagaCompiler) Compile(source, entryPoint string) (string, error) {
	module, err := c.module(source)
	if err != nil {
		return "", err
	}
	code, info, err := glsl.Compile(module, glsl.Options{
		LangVersion:        c.Version,
		EntryPoint:         entryPoint,
		ForceHighPrecision: true,
		BindingMap:         bindingMap,
		WriterFlags:        c.Flags,
	})
	if err != nil {
		return "", fmt.Errorf("shader: GLSL generation for %q: %w", entryPoint, err)
	}
	if c.LateBinding() {
		c.recordSamplers(entryPoint, info.TextureMappings)
	}
	slogger().Debug("shader: GLSL generated", "entryPoint", entryPoint, "len", len(code))
	return code, nil
}

func (c *NagaCompiler) module(source string) (*ir.Module, error) {
	if m, ok := c.modules[source]; ok {
		return m, nil
	}
	ast, err := naga.Parse(source)
	if err != nil {
		return nil, fmt.Errorf("shader: WGSL parse: %w", err)
	}
	m, err := naga.LowerWithSource(ast, source)
	if err != nil {
		return nil, fmt.Errorf("shader: WGSL lower: %w", err)
	}
	if c.modules == nil {
		c.modules = make(map[string]*ir.Module)
	}
	c.modules[source] = m
	return m, nil
}

// LateBinding implements LateBinder.
func (c *NagaCompiler) LateBinding() bool { return !explicitBindings(c.Version) }

// SamplerUnits implements LateBinder.
func (c *NagaCompiler) SamplerUnits(entryPoint string) map[string]uint8 {
	return c.samplers[entryPoint]
}

func (c *NagaCompiler) recordSamplers(entryPoint string, mappings map[string]glsl.TextureMapping) {
	units := make(map[string]uint8, len(mappings))
	for name, m := range mappings {
		key := glsl.BindingMapKey{Group: m.TextureBinding.Group, Binding: m.TextureBinding.Binding}
		if unit, ok := bindingMap[key]; ok {
			units[name] = unit
		}
	}
	if c.samplers == nil {
		c.samplers = make(map[string]map[string]uint8)
	}
	c.samplers[entryPoint] = units
}
