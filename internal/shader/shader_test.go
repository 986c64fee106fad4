package shader

import (
	"encoding/binary"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gles2/internal/glrecord"
	"github.com/gogpu/gles2/internal/glstate"
	"github.com/gogpu/naga/glsl"
)

var entryPoints = []string{
	VSStandard, VSTwoTCoords, VSTangents, VSSphere, VS2D,
	FSSolid, FSSolid2Layer, FSLightmap, FSLightmapAdd, FSDetail, FSSphere,
	FSReflection, FSAddColor, FSAlpha, FSAlphaRef, FSVertexAlpha, FSNormal,
	FSParallax, FSOneBlend, FS2D, FS2DTexture,
}

func TestSourceDeclaresEntryPoints(t *testing.T) {
	src := Source()
	for _, ep := range entryPoints {
		if !strings.Contains(src, "fn "+ep+"(") {
			t.Errorf("entry point %s missing from embedded WGSL", ep)
		}
	}
	for _, decl := range []string{
		"@group(0) @binding(0) var<uniform> c: Constants;",
		"@group(0) @binding(1) var tex0: texture_2d<f32>;",
		"@group(0) @binding(3) var tex1: texture_2d<f32>;",
	} {
		if !strings.Contains(src, decl) {
			t.Errorf("declaration %q missing", decl)
		}
	}
}

func TestNagaTranslatesEntryPoints(t *testing.T) {
	c := NewNagaCompiler(glsl.VersionES310)
	for _, ep := range entryPoints {
		t.Run(ep, func(t *testing.T) {
			code, err := c.Compile(Source(), ep)
			if err != nil {
				t.Fatalf("Compile: %v", err)
			}
			if !strings.Contains(code, "#version 310 es") {
				t.Errorf("missing ES version directive:\n%s", code)
			}
		})
	}
	if len(c.modules) != 1 {
		t.Errorf("module parsed %d times, want once", len(c.modules))
	}
}

func TestVersionFor(t *testing.T) {
	tests := []struct {
		major, minor int
		want         glsl.Version
		ok           bool
	}{
		{3, 0, glsl.VersionES300, true},
		{3, 1, glsl.VersionES310, true},
		{3, 2, glsl.VersionES320, true},
		{4, 0, glsl.VersionES320, true},
		{2, 0, glsl.Version{}, false},
	}
	for _, tt := range tests {
		got, ok := VersionFor(tt.major, tt.minor)
		if got != tt.want || ok != tt.ok {
			t.Errorf("VersionFor(%d, %d) = %v, %v; want %v, %v", tt.major, tt.minor, got, ok, tt.want, tt.ok)
		}
	}
}

func TestNagaES300LeavesBindingsToLink(t *testing.T) {
	if NewNagaCompiler(glsl.VersionES310).LateBinding() {
		t.Error("ES 3.10 output should declare its bindings")
	}

	c := NewNagaCompiler(glsl.VersionES300)
	if !c.LateBinding() {
		t.Fatal("ES 3.00 output cannot declare bindings")
	}
	code, err := c.Compile(Source(), FSLightmap)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(code, "#version 300 es") || strings.Contains(code, "binding =") {
		t.Errorf("unexpected ES 3.00 output:\n%s", code)
	}
	seen := map[uint8]bool{}
	for _, unit := range c.SamplerUnits(FSLightmap) {
		seen[unit] = true
	}
	if !seen[TextureUnit0] || !seen[TextureUnit1] {
		t.Errorf("lightmap samplers %v, want units 0 and 1", c.SamplerUnits(FSLightmap))
	}
}

// lateCompiler reports fixed sampler names the way naga does for
// GLSL ES 3.00.
type lateCompiler struct{ stubCompiler }

func (*lateCompiler) LateBinding() bool { return true }

func (*lateCompiler) SamplerUnits(entryPoint string) map[string]uint8 {
	if entryPoint == FSLightmap {
		return map[string]uint8{"tex0_samp0": TextureUnit0, "tex1_samp1": TextureUnit1}
	}
	return nil
}

func TestLibraryBindsLate(t *testing.T) {
	rec := glrecord.New()
	b := glstate.NewBridge(rec, 8, glstate.Rect{Width: 4, Height: 4}, glstate.CheckOff)
	lib := NewLibrary(b, &lateCompiler{})
	prog, ref := lib.Acquire(Pair{VSTwoTCoords, FSLightmap})
	if prog == 0 || ref == nil {
		t.Fatal("no program")
	}

	if got := rec.Count("UniformBlockBinding"); got != int(rec.UniformBlocks) {
		t.Errorf("UniformBlockBinding = %d, want one per block (%d)", got, rec.UniformBlocks)
	}
	units := map[int32]bool{}
	for _, c := range rec.Calls() {
		if c.Name == "Uniform1i" {
			units[c.Args[1].(int32)] = true
		}
	}
	if len(units) != 2 || !units[TextureUnit0] || !units[TextureUnit1] {
		t.Errorf("sampler units set = %v, want 0 and 1", units)
	}
	if b.Snapshot().Program != prog {
		t.Error("sampler uniforms set without the program bound in the state cache")
	}

	// A context without uniform binding calls cannot run the program.
	rec2 := glrecord.New()
	lib = NewLibrary(glstate.NewBridge(plainGL{rec2}, 8, glstate.Rect{Width: 4, Height: 4}, glstate.CheckOff), &lateCompiler{})
	if prog, _ := lib.Acquire(Pair{VSTwoTCoords, FSLightmap}); prog != 0 {
		t.Error("program returned without its bindings")
	}
	if rec2.Count("DeleteProgram") != 1 {
		t.Error("unbindable program leaked")
	}
}

// plainGL hides the optional interfaces of the recorder.
type plainGL struct{ glstate.Functions }

func TestNagaRejectsInvalidSource(t *testing.T) {
	c := NewNagaCompiler(DefaultVersion)
	if _, err := c.Compile("not wgsl at all {", "main"); err == nil {
		t.Error("invalid WGSL compiled")
	}
}

type stubCompiler struct {
	fail  string
	calls int
}

func (c *stubCompiler) Compile(source, entryPoint string) (string, error) {
	c.calls++
	if entryPoint == c.fail {
		return "", errors.New("stub failure")
	}
	return "#version 310 es\n// " + entryPoint + "\n", nil
}

func TestLink(t *testing.T) {
	rec := glrecord.New()
	p := Pair{VSStandard, FSSolid}
	prog, err := Link(rec, &stubCompiler{}, Source(), p)
	if err != nil {
		t.Fatalf("Link: %v", err)
	}
	if prog == 0 {
		t.Fatal("zero program")
	}
	if rec.Count("CreateShader") != 2 || rec.Count("DeleteShader") != 2 {
		t.Errorf("shaders created %d deleted %d, want 2 and 2", rec.Count("CreateShader"), rec.Count("DeleteShader"))
	}
	if rec.Count("AttachShader") != 2 || rec.Count("LinkProgram") != 1 {
		t.Error("program not assembled")
	}
}

func TestLinkFailures(t *testing.T) {
	p := Pair{VSStandard, FSSolid}

	rec := glrecord.New()
	if _, err := Link(rec, &stubCompiler{fail: FSSolid}, Source(), p); !errors.Is(err, ErrTranslate) {
		t.Errorf("translation failure: err = %v", err)
	}
	if rec.Count("CreateShader") != 0 {
		t.Error("shader objects created after translation failure")
	}

	rec = glrecord.New()
	rec.FailCompile = true
	if _, err := Link(rec, &stubCompiler{}, Source(), p); !errors.Is(err, ErrCompile) {
		t.Errorf("compile failure: err = %v", err)
	}
	if rec.Count("CreateShader") != rec.Count("DeleteShader") {
		t.Error("shader leaked after compile failure")
	}

	rec = glrecord.New()
	rec.FailLink = true
	_, err := Link(rec, &stubCompiler{}, Source(), p)
	if !errors.Is(err, ErrLink) {
		t.Errorf("link failure: err = %v", err)
	}
	if !strings.Contains(err.Error(), "recorded link failure") {
		t.Errorf("info log missing from %v", err)
	}
	if rec.Count("DeleteProgram") != 1 {
		t.Error("program leaked after link failure")
	}
}

func TestLibrarySharesPrograms(t *testing.T) {
	rec := glrecord.New()
	b := glstate.NewBridge(rec, 8, glstate.Rect{Width: 4, Height: 4}, glstate.CheckOff)
	lib := NewLibrary(b, &stubCompiler{})
	p := Pair{VSTwoTCoords, FSLightmap}

	prog1, ref1 := lib.Acquire(p)
	prog2, ref2 := lib.Acquire(p)
	if prog1 == 0 || prog1 != prog2 {
		t.Fatalf("programs %d and %d, want one shared program", prog1, prog2)
	}
	if rec.Count("CreateProgram") != 1 || ref1.Refs() != 2 {
		t.Fatalf("CreateProgram=%d refs=%d", rec.Count("CreateProgram"), ref1.Refs())
	}

	b.SetProgram(prog1)
	ref2.Drop()
	if rec.Count("DeleteProgram") != 0 {
		t.Fatal("program deleted with a reference left")
	}
	ref1.Drop()
	if rec.Count("DeleteProgram") != 1 {
		t.Fatalf("DeleteProgram = %d, want 1", rec.Count("DeleteProgram"))
	}
	if b.Snapshot().Program != 0 {
		t.Error("deleted program still bound in the state cache")
	}
	if lib.Len() != 0 {
		t.Error("library kept a deleted program")
	}
}

func TestLibraryLinkFailure(t *testing.T) {
	rec := glrecord.New()
	rec.FailLink = true
	b := glstate.NewBridge(rec, 8, glstate.Rect{Width: 4, Height: 4}, glstate.CheckOff)
	lib := NewLibrary(b, &stubCompiler{})
	prog, ref := lib.Acquire(Pair{VSStandard, FSSolid})
	if prog != 0 || ref != nil {
		t.Errorf("failed link returned program %d ref %v", prog, ref)
	}
}

func TestConstantsBytes(t *testing.T) {
	c := NewConstants()
	c.World = mgl32.Translate3D(1, 2, 3)
	c.Params = mgl32.Vec4{0.5, 2, 1, 1}
	buf := c.Bytes()
	if len(buf) != ConstantsSize {
		t.Fatalf("len = %d, want %d", len(buf), ConstantsSize)
	}
	at := func(i int) float32 {
		return math.Float32frombits(binary.LittleEndian.Uint32(buf[i*4:]))
	}
	// World starts at float 16; translation is column 3.
	if at(16+12) != 1 || at(16+13) != 2 || at(16+14) != 3 {
		t.Errorf("world translation = %v %v %v", at(28), at(29), at(30))
	}
	// Params follow five matrices and two vectors.
	if at(80+8) != 0.5 || at(80+9) != 2 {
		t.Errorf("params = %v %v", at(88), at(89))
	}
}
