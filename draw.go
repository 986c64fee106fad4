package gles2

import (
	"fmt"
	"runtime"
	"unsafe"

	"github.com/gogpu/gles2/internal/glstate"
	"github.com/gogpu/gles2/vertex"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal/gles/gl"
)

// DrawVertexPrimitiveList draws primitiveCount primitives of type pt with
// the current material.
//
// vertices points at vertexCount vertices of format vt. Client memory
// must not live on a goroutine stack; DrawIndexed pins its slices. A nil
// pointer means the vertices live in the bound GL_ARRAY_BUFFER and
// attribute offsets are taken relative to it. indices works the same way for the
// bound GL_ELEMENT_ARRAY_BUFFER and holds indices of format it; an
// undefined format reads as 16-bit. Points and point sprites are drawn
// without indices.
//
// Topologies OpenGL ES cannot draw (quads, quad strips, polygons) are
// ignored. 32-bit indices on contexts without OES_element_index_uint
// return ErrIndexFormatUnsupported, and counts the indices cannot address
// return ErrTooManyPrimitives.
func (d *Driver) DrawVertexPrimitiveList(vertices unsafe.Pointer, vertexCount int, indices unsafe.Pointer, primitiveCount int, vt vertex.Type, pt vertex.PrimitiveType, it gputypes.IndexFormat) error {
	if d.closed {
		return ErrDriverClosed
	}
	count, ok := pt.IndexCount(primitiveCount)
	if !ok || primitiveCount <= 0 {
		return nil
	}
	if err := d.checkPrimitives(pt, vertexCount, primitiveCount, it); err != nil {
		return err
	}

	d.active = d.material
	if !d.dispatch.Set3D(d.material, d, vt) {
		return nil
	}
	d.bindAttributes(vertices, vt)

	switch pt {
	case vertex.Points, vertex.PointSprites:
		d.gl.DrawArrays(gl.POINTS, 0, int32(primitiveCount))
	default:
		d.gl.DrawElements(d.drawMode(pt), int32(count), indexType(it), uintptr(indices))
	}
	d.drawn(primitiveCount)
	return nil
}

// checkPrimitives validates the index format and the primitive count
// against the context capabilities and the int32 GL element count.
func (d *Driver) checkPrimitives(pt vertex.PrimitiveType, vertexCount, primitiveCount int, it gputypes.IndexFormat) error {
	if it == gputypes.IndexFormatUint32 && !d.features.ElementIndexUint {
		slogger().Error("gles2: 32-bit indices unsupported", "extension", extElementIndexUint)
		return fmt.Errorf("%w: 32-bit indices need %s", ErrIndexFormatUnsupported, extElementIndexUint)
	}
	limit := vertex.MaxIndices(gputypes.IndexFormatUint16)
	if d.features.ElementIndexUint {
		limit = vertex.MaxIndices(gputypes.IndexFormatUint32)
	}
	limit = min(limit, pt.MaxPrimitives())
	if primitiveCount > limit {
		slogger().Error("gles2: too many primitives", "primitives", primitiveCount, "max", limit)
		return fmt.Errorf("%w: %d primitives, at most %d", ErrTooManyPrimitives, primitiveCount, limit)
	}
	if it != gputypes.IndexFormatUint32 && vertexCount > 65536 {
		slogger().Warn("gles2: too many vertices for 16-bit indices", "vertices", vertexCount)
	}
	return nil
}

// drawMode maps pt to the GL mode, turning triangle lists into lines or
// points for wireframe and point cloud materials.
func (d *Driver) drawMode(pt vertex.PrimitiveType) uint32 {
	switch pt {
	case vertex.LineStrip:
		return gl.LINE_STRIP
	case vertex.LineLoop:
		return gl.LINE_LOOP
	case vertex.Lines:
		return gl.LINES
	case vertex.TriangleStrip:
		return gl.TRIANGLE_STRIP
	case vertex.TriangleFan:
		return gl.TRIANGLE_FAN
	case vertex.Points, vertex.PointSprites:
		return gl.POINTS
	}
	switch {
	case d.material.Wireframe:
		return gl.LINES
	case d.material.PointCloud:
		return gl.POINTS
	}
	return gl.TRIANGLES
}

func indexType(it gputypes.IndexFormat) uint32 {
	if it == gputypes.IndexFormatUint32 {
		return gl.UNSIGNED_INT
	}
	return gl.UNSIGNED_SHORT
}

// bindAttributes points the vertex attributes of vt at base, or at the
// bound array buffer when base is nil. Locations vt does not provide are
// disabled, except the second texture coordinate which repeats the first
// so two-layer shaders still work on single-layer vertices.
func (d *Driver) bindAttributes(base unsafe.Pointer, vt vertex.Type) {
	layout := vt.Layout()
	stride := int32(layout.ArrayStride)

	var bound [vertex.LocationCount]bool
	for _, a := range layout.Attributes {
		d.attribPointer(a.ShaderLocation, a, base, stride)
		bound[a.ShaderLocation] = true
	}
	if !bound[vertex.LocationTCoord1] {
		if a, ok := vt.Attribute(vertex.LocationTCoord0); ok {
			d.attribPointer(vertex.LocationTCoord1, a, base, stride)
			bound[vertex.LocationTCoord1] = true
		}
	}
	for loc := range uint32(vertex.LocationCount) {
		if !bound[loc] {
			d.bridge.SetVertexAttribArray(loc, false)
		}
	}
}

func (d *Driver) attribPointer(loc uint32, a gputypes.VertexAttribute, base unsafe.Pointer, stride int32) {
	size, typ, normalized := attribFormat(a.Format)
	offset := uintptr(a.Offset)
	if base != nil {
		offset += uintptr(base)
	}
	d.gl.VertexAttribPointer(loc, size, typ, normalized, stride, offset)
	d.bridge.SetVertexAttribArray(loc, true)
}

func attribFormat(f gputypes.VertexFormat) (size int32, typ uint32, normalized bool) {
	switch f {
	case gputypes.VertexFormatFloat32x2:
		return 2, gl.FLOAT, false
	case gputypes.VertexFormatFloat32x3:
		return 3, gl.FLOAT, false
	case gputypes.VertexFormatFloat32x4:
		return 4, gl.FLOAT, false
	case gputypes.VertexFormatUnorm8x4:
		return 4, gl.UNSIGNED_BYTE, true
	}
	return 4, gl.FLOAT, false
}

// drawn books a draw call and polls GL errors when asked to.
func (d *Driver) drawn(primitives int) {
	d.stats.DrawCalls++
	d.stats.Primitives += primitives
	if d.bridge.CheckLevel() >= glstate.CheckDraw {
		glstate.CheckError(d.gl, "draw")
	}
}

// Index is satisfied by the index types the driver accepts.
type Index interface {
	uint16 | uint32
}

// DrawIndexed draws client-side vertices and indices with the current
// material. The primitive count follows from len(indices) and pt.
//
// Example:
//
//	verts := []vertex.Standard{...}
//	err := gles2.DrawIndexed(drv, verts, []uint16{0, 1, 2}, vertex.Triangles)
func DrawIndexed[V vertex.Vertex, I Index](d *Driver, vertices []V, indices []I, pt vertex.PrimitiveType) error {
	if len(vertices) == 0 {
		return nil
	}
	n := pt.PrimitiveCount(len(indices))
	if pt == vertex.Points || pt == vertex.PointSprites {
		n = len(vertices)
	}
	if n == 0 {
		return nil
	}

	// GL keeps the client addresses between VertexAttribPointer and the
	// draw, so both arrays must stay on the heap at a fixed address.
	var pin runtime.Pinner
	defer pin.Unpin()

	vp := unsafe.Pointer(&vertices[0])
	pin.Pin(vp)
	var idx unsafe.Pointer
	if len(indices) > 0 {
		idx = unsafe.Pointer(&indices[0])
		pin.Pin(idx)
	}
	it := gputypes.IndexFormatUint16
	var zero I
	if unsafe.Sizeof(zero) == 4 {
		it = gputypes.IndexFormatUint32
	}
	return d.DrawVertexPrimitiveList(vp, len(vertices), idx, n, vertex.TypeOf[V](), pt, it)
}
