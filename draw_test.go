package gles2

import (
	"errors"
	"image"
	"math"
	"testing"
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gles2/internal/glrecord"
	"github.com/gogpu/gles2/material"
	"github.com/gogpu/gles2/renderer"
	"github.com/gogpu/gles2/vertex"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal/gles/gl"
)

func TestDrawElementCounts(t *testing.T) {
	const n = 10
	tests := []struct {
		prim  vertex.PrimitiveType
		mode  uint32
		count int32
	}{
		{vertex.LineStrip, gl.LINE_STRIP, n + 1},
		{vertex.LineLoop, gl.LINE_LOOP, n},
		{vertex.Lines, gl.LINES, 2 * n},
		{vertex.TriangleStrip, gl.TRIANGLE_STRIP, n + 2},
		{vertex.TriangleFan, gl.TRIANGLE_FAN, n + 2},
		{vertex.Triangles, gl.TRIANGLES, 3 * n},
	}
	for _, tt := range tests {
		t.Run(tt.prim.String(), func(t *testing.T) {
			d, rec := newTestDriver(t)
			if err := d.DrawVertexPrimitiveList(nil, 64, nil, n, vertex.TypeStandard, tt.prim, gputypes.IndexFormatUint16); err != nil {
				t.Fatal(err)
			}
			c, ok := rec.Last("DrawElements")
			if !ok {
				t.Fatal("no DrawElements")
			}
			if c.Args[0] != tt.mode || c.Args[1] != tt.count || c.Args[2] != uint32(gl.UNSIGNED_SHORT) {
				t.Errorf("DrawElements%v, want mode 0x%X count %d", c.Args, tt.mode, tt.count)
			}
		})
	}
}

func TestDrawPointsUseDrawArrays(t *testing.T) {
	for _, prim := range []vertex.PrimitiveType{vertex.Points, vertex.PointSprites} {
		d, rec := newTestDriver(t)
		if err := d.DrawVertexPrimitiveList(nil, 5, nil, 5, vertex.TypeStandard, prim, gputypes.IndexFormatUint16); err != nil {
			t.Fatal(err)
		}
		c, ok := rec.Last("DrawArrays")
		if !ok || rec.Count("DrawElements") != 0 {
			t.Fatalf("%v: DrawArrays=%d DrawElements=%d", prim, rec.Count("DrawArrays"), rec.Count("DrawElements"))
		}
		if c.Args[0] != uint32(gl.POINTS) || c.Args[1] != int32(0) || c.Args[2] != int32(5) {
			t.Errorf("%v: DrawArrays%v", prim, c.Args)
		}
	}
}

func TestUnsupportedTopologyIsIgnored(t *testing.T) {
	d, rec := newTestDriver(t)
	for _, prim := range []vertex.PrimitiveType{vertex.Quads, vertex.QuadStrip, vertex.Polygon} {
		if err := d.DrawVertexPrimitiveList(nil, 8, nil, 2, vertex.TypeStandard, prim, gputypes.IndexFormatUint16); err != nil {
			t.Errorf("%v: %v", prim, err)
		}
	}
	if rec.Total() != 0 {
		t.Errorf("unsupported topologies reached GL: %v", rec.Histogram())
	}
	if d.Stats().DrawCalls != 0 {
		t.Error("unsupported topologies counted as draws")
	}
}

func TestWireframeAndPointCloud(t *testing.T) {
	tests := []struct {
		name string
		set  func(*material.Material)
		mode uint32
	}{
		{"wireframe", func(m *material.Material) { m.Wireframe = true }, gl.LINES},
		{"pointcloud", func(m *material.Material) { m.PointCloud = true }, gl.POINTS},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, rec := newTestDriver(t)
			m := material.New()
			tt.set(&m)
			d.SetMaterial(m)
			drawTriangles(t, d, 4)
			c, _ := rec.Last("DrawElements")
			if c.Args[0] != tt.mode || c.Args[1] != int32(12) {
				t.Errorf("DrawElements%v, want mode 0x%X with 12 indices", c.Args, tt.mode)
			}

			// Strips keep their topology.
			if err := d.DrawVertexPrimitiveList(nil, 6, nil, 4, vertex.TypeStandard, vertex.TriangleStrip, gputypes.IndexFormatUint16); err != nil {
				t.Fatal(err)
			}
			c, _ = rec.Last("DrawElements")
			if c.Args[0] != uint32(gl.TRIANGLE_STRIP) {
				t.Errorf("strip drawn with mode 0x%X", c.Args[0])
			}
		})
	}
}

func TestIndexFormat32BitRejectedWithoutExtension(t *testing.T) {
	rec := glrecord.New()
	rec.Version = "OpenGL ES 2.0 test"
	rec.Extensions = nil
	d := newTestDriverGL(t, rec)

	err := d.DrawVertexPrimitiveList(nil, 3, nil, 1, vertex.TypeStandard, vertex.Triangles, gputypes.IndexFormatUint32)
	if !errors.Is(err, ErrIndexFormatUnsupported) {
		t.Fatalf("err = %v, want ErrIndexFormatUnsupported", err)
	}
	if rec.Count("DrawElements") != 0 {
		t.Error("rejected draw reached GL")
	}

	err = d.DrawVertexPrimitiveList(nil, 3, nil, 65536, vertex.TypeStandard, vertex.Triangles, gputypes.IndexFormatUint16)
	if !errors.Is(err, ErrTooManyPrimitives) {
		t.Errorf("err = %v, want ErrTooManyPrimitives", err)
	}
	if err := d.DrawVertexPrimitiveList(nil, 3, nil, 65535, vertex.TypeStandard, vertex.Points, gputypes.IndexFormatUint16); err != nil {
		t.Errorf("draw at the limit: %v", err)
	}
}

func TestIndexCountFitsInt32(t *testing.T) {
	d, rec := newTestDriver(t)
	err := d.DrawVertexPrimitiveList(nil, 3, nil, math.MaxInt32/3+1, vertex.TypeStandard, vertex.Triangles, gputypes.IndexFormatUint32)
	if !errors.Is(err, ErrTooManyPrimitives) {
		t.Fatalf("err = %v, want ErrTooManyPrimitives", err)
	}
	err = d.DrawVertexPrimitiveList(nil, 3, nil, math.MaxInt32-1, vertex.TypeStandard, vertex.TriangleStrip, gputypes.IndexFormatUint32)
	if !errors.Is(err, ErrTooManyPrimitives) {
		t.Fatalf("strip err = %v, want ErrTooManyPrimitives", err)
	}
	if rec.Count("DrawElements") != 0 {
		t.Error("overflowing draw reached GL")
	}
}

func TestIndexFormat32Bit(t *testing.T) {
	d, rec := newTestDriver(t)
	err := d.DrawVertexPrimitiveList(nil, 3, nil, 70000, vertex.TypeStandard, vertex.Triangles, gputypes.IndexFormatUint32)
	if err != nil {
		t.Fatal(err)
	}
	c, _ := rec.Last("DrawElements")
	if c.Args[2] != uint32(gl.UNSIGNED_INT) {
		t.Errorf("index type 0x%X, want UNSIGNED_INT", c.Args[2])
	}
}

func attribCalls(rec *glrecord.Recorder) map[uint32]glrecord.Call {
	out := make(map[uint32]glrecord.Call)
	for _, c := range rec.Calls() {
		if c.Name == "VertexAttribPointer" {
			out[c.Args[0].(uint32)] = c
		}
	}
	return out
}

func TestAttributeOffsetsFromBoundBuffer(t *testing.T) {
	d, rec := newTestDriver(t)
	d.SetMaterial(material.New())
	drawTriangles(t, d, 1)

	calls := attribCalls(rec)
	stride := int32(unsafe.Sizeof(vertex.Standard{}))
	tcoords := uintptr(unsafe.Offsetof(vertex.Standard{}.TCoords))
	for _, loc := range []uint32{vertex.LocationPosition, vertex.LocationNormal, vertex.LocationColor, vertex.LocationTCoord0, vertex.LocationTCoord1} {
		c, ok := calls[loc]
		if !ok {
			t.Errorf("location %d not bound", loc)
			continue
		}
		if c.Args[4] != stride {
			t.Errorf("location %d stride %v, want %d", loc, c.Args[4], stride)
		}
	}
	if calls[vertex.LocationTCoord1].Args[5] != tcoords {
		t.Errorf("second texture coordinate offset %v, want first's %d", calls[vertex.LocationTCoord1].Args[5], tcoords)
	}
	if c := calls[vertex.LocationColor]; c.Args[2] != uint32(gl.UNSIGNED_BYTE) || c.Args[3] != true {
		t.Errorf("color attribute %v, want normalized unsigned bytes", c.Args)
	}
	if _, ok := calls[vertex.LocationTangent]; ok {
		t.Error("tangent bound for standard vertices")
	}
	if d.bridge.VertexAttribArrayEnabled(vertex.LocationTangent) {
		t.Error("tangent array enabled for standard vertices")
	}
}

func TestAttributeOffsetsFromClientMemory(t *testing.T) {
	d, rec := newTestDriver(t)
	m := material.New()
	m.Type = material.NormalMapSolid
	d.SetMaterial(m)

	verts := make([]vertex.Tangents, 3)
	base := uintptr(unsafe.Pointer(&verts[0]))
	if err := DrawIndexed(d, verts, []uint16{0, 1, 2}, vertex.Triangles); err != nil {
		t.Fatal(err)
	}
	calls := attribCalls(rec)
	want := base + unsafe.Offsetof(vertex.Tangents{}.Binormal)
	if got := calls[vertex.LocationBinormal].Args[5]; got != want {
		t.Errorf("binormal pointer %v, want %v", got, want)
	}
	if !d.bridge.VertexAttribArrayEnabled(vertex.LocationTangent) {
		t.Error("tangent array disabled for tangent vertices")
	}
	if rec.Count("DrawElements") != 1 {
		t.Error("normal map did not draw tangent vertices")
	}
}

func TestDrawIndexed(t *testing.T) {
	d, rec := newTestDriver(t)
	verts := make([]vertex.TwoTCoords, 4)
	if err := DrawIndexed(d, verts, []uint32{0, 1, 2, 0, 2, 3}, vertex.Triangles); err != nil {
		t.Fatal(err)
	}
	c, _ := rec.Last("DrawElements")
	if c.Args[1] != int32(6) || c.Args[2] != uint32(gl.UNSIGNED_INT) {
		t.Errorf("DrawElements%v, want 6 unsigned ints", c.Args)
	}
	if s := d.Stats(); s.DrawCalls != 1 || s.Primitives != 2 {
		t.Errorf("stats = %+v", s)
	}

	if err := DrawIndexed(d, verts, []uint16{0, 1}, vertex.Triangles); err != nil {
		t.Fatal(err)
	}
	if err := DrawIndexed(d, []vertex.Standard{}, []uint16{0, 1, 2}, vertex.Triangles); err != nil {
		t.Fatal(err)
	}
	if d.Stats().DrawCalls != 1 {
		t.Error("incomplete or empty lists were drawn")
	}
}

func TestConstantsUploadedOnChange(t *testing.T) {
	d, rec := newTestDriver(t)
	drawTriangles(t, d, 1)
	if rec.Count("GenBuffers") != 1 || rec.Count("BufferData") != 1 {
		t.Fatalf("first draw: GenBuffers=%d BufferData=%d", rec.Count("GenBuffers"), rec.Count("BufferData"))
	}

	rec.Reset()
	d.SetTransform(renderer.TransformWorld, mgl32.Translate3D(0, 1, 0))
	drawTriangles(t, d, 1)
	if rec.Count("BufferSubData") != 1 || rec.Count("BufferData") != 0 || rec.Count("GenBuffers") != 0 {
		t.Errorf("changed world matrix: %v", rec.Histogram())
	}

	rec.Reset()
	drawTriangles(t, d, 1)
	if n := rec.CountAll("BufferData", "BufferSubData", "BindBuffer"); n != 0 {
		t.Errorf("unchanged constants touched the buffer %d times", n)
	}
}

func TestErrorCheckDrawPollsAfterDraws(t *testing.T) {
	d, rec := newTestDriver(t)
	drawTriangles(t, d, 1)
	if rec.Count("GetError") != 0 {
		t.Fatal("GetError polled with checks off")
	}
	d.SetErrorCheck(ErrorCheckDraw)
	if d.ErrorCheck() != ErrorCheckDraw {
		t.Fatal("level not changed")
	}
	drawTriangles(t, d, 1)
	if rec.Count("GetError") != 1 {
		t.Errorf("GetError = %d, want 1 after one draw", rec.Count("GetError"))
	}
}

// stackGrowingGL moves the calling goroutine's stack between the
// attribute setup and the draw, as a deep call inside a GL binding would.
type stackGrowingGL struct {
	*glrecord.Recorder
	position uintptr
}

func (g *stackGrowingGL) VertexAttribPointer(index uint32, size int32, typ uint32, normalized bool, stride int32, offset uintptr) {
	growStack(256)
	if index == vertex.LocationPosition {
		g.position = offset
	}
	g.Recorder.VertexAttribPointer(index, size, typ, normalized, stride, offset)
}

//go:noinline
func growStack(n int) byte {
	var buf [1024]byte
	buf[n%len(buf)] = byte(n)
	if n == 0 {
		return buf[0]
	}
	return growStack(n-1) + buf[n%len(buf)]
}

func newStackGrowingDriver(t *testing.T) (*Driver, *stackGrowingGL) {
	t.Helper()
	g := &stackGrowingGL{Recorder: glrecord.New()}
	d, err := New(g, WithShaderCompiler(stubCompiler{}), WithScreenSize(640, 480))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { d.Close() })
	return d, g
}

func TestClientVerticesSurviveStackGrowth(t *testing.T) {
	d, g := newStackGrowingDriver(t)
	d.SetMaterial(material.New())

	verts := make([]vertex.Standard, 3)
	verts[0].Pos[0] = 42
	if err := DrawIndexed(d, verts, []uint16{0, 1, 2}, vertex.Triangles); err != nil {
		t.Fatal(err)
	}
	if live := uintptr(unsafe.Pointer(&verts[0])); g.position != live {
		t.Errorf("position pointer 0x%x, vertices now at 0x%x", g.position, live)
	}
	if g.Count("DrawElements") != 1 {
		t.Error("no draw")
	}
}

func TestQuadVerticesSurviveStackGrowth(t *testing.T) {
	d, g := newStackGrowingDriver(t)
	if err := d.Draw2DRectangle(image.Rect(0, 0, 10, 10), opaqueWhite); err != nil {
		t.Fatal(err)
	}
	if want := uintptr(unsafe.Pointer(&d.quad[0])); g.position != want {
		t.Errorf("position pointer 0x%x, want the driver's quad at 0x%x", g.position, want)
	}
	if d.quad[2].Pos[0] != 10 {
		t.Errorf("quad corner = %v", d.quad[2].Pos)
	}
}
