package glstate

import (
	"testing"

	"github.com/gogpu/gles2/internal/glrecord"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal/gles/gl"
)

var _ Functions = (*glrecord.Recorder)(nil)

func newTestBridge(t *testing.T) (*Bridge, *glrecord.Recorder) {
	t.Helper()
	rec := glrecord.New()
	b := NewBridge(rec, 8, Rect{0, 0, 640, 480}, CheckOff)
	rec.Reset()
	return b, rec
}

func TestNewBridgeSyncsDefaults(t *testing.T) {
	rec := glrecord.New()
	b := NewBridge(rec, 8, Rect{0, 0, 640, 480}, CheckOff)

	if rec.Count("Disable") == 0 {
		t.Error("initial sync did not disable capabilities")
	}
	if rec.Count("Viewport") != 1 {
		t.Errorf("Viewport calls = %d, want 1", rec.Count("Viewport"))
	}
	s := b.Snapshot()
	if s.Blend || s.CullFace || s.DepthTest || !s.DepthMask {
		t.Errorf("unexpected default snapshot: %+v", s)
	}
	if s.BlendFunc != (BlendFunc{gl.ONE, gl.ZERO, gl.ONE, gl.ZERO}) {
		t.Errorf("BlendFunc = %+v", s.BlendFunc)
	}
}

func TestSettersAreIdempotent(t *testing.T) {
	tests := []struct {
		name string
		call string
		set  func(b *Bridge)
	}{
		{"blend", "Enable", func(b *Bridge) { b.SetBlend(true) }},
		{"blend func", "BlendFunc", func(b *Bridge) { b.SetBlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA) }},
		{"blend func separate", "BlendFuncSeparate", func(b *Bridge) {
			b.SetBlendFuncSeparate(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA, gl.ONE, gl.ZERO)
		}},
		{"blend equation", "BlendEquation", func(b *Bridge) { b.SetBlendEquation(gl.FUNC_SUBTRACT) }},
		{"cull", "Enable", func(b *Bridge) { b.SetCullFace(true) }},
		{"cull mode", "CullFace", func(b *Bridge) { b.SetCullFaceMode(gl.FRONT) }},
		{"depth test", "Enable", func(b *Bridge) { b.SetDepthTest(true) }},
		{"depth func", "DepthFunc", func(b *Bridge) { b.SetDepthFunc(gl.LEQUAL) }},
		{"depth mask", "DepthMask", func(b *Bridge) { b.SetDepthMask(false) }},
		{"color mask", "ColorMask", func(b *Bridge) { b.SetColorMask(gputypes.ColorWriteMaskRed) }},
		{"program", "UseProgram", func(b *Bridge) { b.SetProgram(5) }},
		{"active texture", "ActiveTexture", func(b *Bridge) { b.SetActiveTexture(3) }},
		{"texture", "BindTexture", func(b *Bridge) { b.BindTexture(1, gl.TEXTURE_2D, 9) }},
		{"viewport", "Viewport", func(b *Bridge) { b.SetViewport(Rect{10, 10, 100, 100}) }},
		{"framebuffer", "BindFramebuffer", func(b *Bridge) { b.SetFramebuffer(4) }},
		{"uniform buffer", "BindBufferBase", func(b *Bridge) { b.SetUniformBuffer(0, 12) }},
		{"attrib array", "EnableVertexAttribArray", func(b *Bridge) { b.SetVertexAttribArray(2, true) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, rec := newTestBridge(t)
			tt.set(b)
			first := rec.Count(tt.call)
			if first != 1 {
				t.Fatalf("first set issued %d %s calls, want 1", first, tt.call)
			}
			before := rec.Total()
			tt.set(b)
			tt.set(b)
			if got := rec.Total() - before; got != 0 {
				t.Errorf("repeated set issued %d calls, want 0", got)
			}
			if b.Counters().Elided < 2 {
				t.Errorf("Elided = %d, want >= 2", b.Counters().Elided)
			}
		})
	}
}

func TestBlendFuncSeparateCollapses(t *testing.T) {
	b, rec := newTestBridge(t)
	b.SetBlendFuncSeparate(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA, gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	if rec.Count("BlendFuncSeparate") != 0 || rec.Count("BlendFunc") != 1 {
		t.Errorf("separate call with matching pairs: BlendFunc=%d BlendFuncSeparate=%d",
			rec.Count("BlendFunc"), rec.Count("BlendFuncSeparate"))
	}
	b.SetBlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	if rec.Count("BlendFunc") != 1 {
		t.Error("BlendFunc after equivalent separate call was not elided")
	}
}

func TestBindTextureActivatesUnit(t *testing.T) {
	b, rec := newTestBridge(t)
	b.BindTexture(2, gl.TEXTURE_2D, 7)

	c, ok := rec.Last("ActiveTexture")
	if !ok || c.Args[0] != uint32(gl.TEXTURE0+2) {
		t.Fatalf("ActiveTexture = %v, want TEXTURE2", c.Args)
	}
	if b.Snapshot().ActiveTexture != 2 {
		t.Errorf("ActiveTexture = %d, want 2", b.Snapshot().ActiveTexture)
	}
	if got := b.Texture(2); got != (TextureBinding{gl.TEXTURE_2D, 7}) {
		t.Errorf("Texture(2) = %+v", got)
	}
}

func TestBindTextureTargetSwitch(t *testing.T) {
	b, rec := newTestBridge(t)
	b.BindTexture(0, gl.TEXTURE_2D, 7)
	rec.Reset()

	b.BindTexture(0, gl.TEXTURE_CUBE_MAP, 8)
	calls := rec.Calls()
	if len(calls) != 2 {
		t.Fatalf("calls = %+v, want unbind + bind", calls)
	}
	if calls[0].Args[0] != uint32(gl.TEXTURE_2D) || calls[0].Args[1] != uint32(0) {
		t.Errorf("first call = %+v, want unbind of TEXTURE_2D", calls[0])
	}
	if calls[1].Args[0] != uint32(gl.TEXTURE_CUBE_MAP) || calls[1].Args[1] != uint32(8) {
		t.Errorf("second call = %+v, want bind of cube map", calls[1])
	}

	rec.Reset()
	b.BindTexture(0, 0, 0)
	c, _ := rec.Last("BindTexture")
	if c.Args[0] != uint32(gl.TEXTURE_CUBE_MAP) || c.Args[1] != uint32(0) {
		t.Errorf("clear unit = %+v, want unbind of cube map", c)
	}
	if b.Texture(0).Name != 0 {
		t.Error("unit still holds a texture after clearing")
	}
}

func TestOutOfRangeUnitsIgnored(t *testing.T) {
	rec := glrecord.New()
	b := NewBridge(rec, 4, Rect{0, 0, 1, 1}, CheckOff)
	rec.Reset()

	if b.BindTexture(4, gl.TEXTURE_2D, 1) {
		t.Error("BindTexture on unit 4 reported success with 4 units")
	}
	b.BindTexture(-1, gl.TEXTURE_2D, 1)
	b.SetActiveTexture(MaxTextureUnits)
	b.SetUniformBuffer(MaxUniformBindings, 3)
	b.SetVertexAttribArray(MaxVertexAttribs, true)
	if rec.Total() != 0 {
		t.Errorf("out of range calls issued %d GL calls", rec.Total())
	}
}

func TestForgetTexture(t *testing.T) {
	b, rec := newTestBridge(t)
	b.BindTexture(0, gl.TEXTURE_2D, 7)
	b.BindTexture(3, gl.TEXTURE_2D, 7)
	rec.Reset()

	b.ForgetTexture(7)
	if rec.Total() != 0 {
		t.Error("ForgetTexture issued GL calls")
	}
	if b.Texture(0).Name != 0 || b.Texture(3).Name != 0 {
		t.Error("ForgetTexture left bindings in the cache")
	}
	b.BindTexture(0, gl.TEXTURE_2D, 7)
	if rec.Count("BindTexture") != 1 {
		t.Error("rebinding a forgotten texture was elided")
	}
}

func TestReleaseProgram(t *testing.T) {
	b, rec := newTestBridge(t)
	b.SetProgram(3)
	b.ReleaseProgram(4)
	if b.Snapshot().Program != 3 {
		t.Fatal("releasing another program unbound the current one")
	}
	b.ReleaseProgram(3)
	if b.Snapshot().Program != 0 {
		t.Error("ReleaseProgram did not unbind")
	}
	c, _ := rec.Last("UseProgram")
	if c.Args[0] != uint32(0) {
		t.Errorf("UseProgram(%v), want 0", c.Args[0])
	}
}

func TestResetReissuesState(t *testing.T) {
	b, rec := newTestBridge(t)
	b.SetBlend(true)
	b.SetDepthTest(true)
	b.SetProgram(9)
	rec.Reset()

	b.Reset()
	c, ok := rec.Last("UseProgram")
	if !ok || c.Args[0] != uint32(9) {
		t.Errorf("Reset UseProgram = %v", c.Args)
	}
	if rec.Count("Enable") < 2 {
		t.Errorf("Reset Enable calls = %d, want blend and depth", rec.Count("Enable"))
	}
}

func TestCheckAllPollsErrors(t *testing.T) {
	b, rec := newTestBridge(t)
	b.SetCheckLevel(CheckAll)
	rec.PushError(gl.INVALID_ENUM)

	b.SetDepthFunc(gl.GREATER)
	if rec.Count("GetError") < 2 {
		t.Errorf("GetError calls = %d, want the error drained", rec.Count("GetError"))
	}

	rec.Reset()
	b.SetDepthFunc(gl.GREATER)
	if rec.Count("GetError") != 0 {
		t.Error("elided call polled errors")
	}
}

func TestCheckErrorBounded(t *testing.T) {
	rec := glrecord.New()
	for range 100 {
		rec.PushError(gl.OUT_OF_MEMORY)
	}
	if !CheckError(rec, "test") {
		t.Fatal("CheckError reported no error")
	}
	if got := rec.Count("GetError"); got != maxErrorPolls {
		t.Errorf("GetError calls = %d, want %d", got, maxErrorPolls)
	}
}

func TestParseCheckLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    CheckLevel
		wantErr bool
	}{
		{"off", CheckOff, false},
		{"Draw", CheckDraw, false},
		{" all ", CheckAll, false},
		{"verbose", CheckOff, true},
	}
	for _, tt := range tests {
		got, err := ParseCheckLevel(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseCheckLevel(%q) = %v, %v", tt.in, got, err)
		}
		if err == nil && got.String() != tt.want.String() {
			t.Errorf("String() mismatch for %q", tt.in)
		}
	}
}

func TestErrorName(t *testing.T) {
	if got := ErrorName(gl.INVALID_OPERATION); got != "GL_INVALID_OPERATION" {
		t.Errorf("ErrorName = %q", got)
	}
	if got := ErrorName(0x1234); got != "0x1234" {
		t.Errorf("ErrorName(unknown) = %q", got)
	}
}
