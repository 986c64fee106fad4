package vertex

import (
	"math"

	"github.com/gogpu/gputypes"
)

// PrimitiveType is the topology of a draw call.
//
// It extends the topologies of gputypes.PrimitiveTopology with the fan,
// loop and quad forms an OpenGL ES engine accepts.
type PrimitiveType int

// Primitive types.
const (
	Points PrimitiveType = iota
	LineStrip
	LineLoop
	Lines
	TriangleStrip
	TriangleFan
	Triangles
	QuadStrip
	Quads
	Polygon
	PointSprites
)

// String returns the primitive type name.
func (p PrimitiveType) String() string {
	switch p {
	case Points:
		return "Points"
	case LineStrip:
		return "LineStrip"
	case LineLoop:
		return "LineLoop"
	case Lines:
		return "Lines"
	case TriangleStrip:
		return "TriangleStrip"
	case TriangleFan:
		return "TriangleFan"
	case Triangles:
		return "Triangles"
	case QuadStrip:
		return "QuadStrip"
	case Quads:
		return "Quads"
	case Polygon:
		return "Polygon"
	case PointSprites:
		return "PointSprites"
	default:
		return "Unknown"
	}
}

// Supported reports whether the topology can be drawn by OpenGL ES.
func (p PrimitiveType) Supported() bool {
	switch p {
	case Points, PointSprites, LineStrip, LineLoop, Lines, TriangleStrip, TriangleFan, Triangles:
		return true
	}
	return false
}

// IndexCount returns the number of elements a draw of primitiveCount
// primitives consumes. It reports false for unsupported topologies.
func (p PrimitiveType) IndexCount(primitiveCount int) (int, bool) {
	switch p {
	case Points, PointSprites:
		return primitiveCount, true
	case LineStrip:
		return primitiveCount + 1, true
	case LineLoop:
		return primitiveCount, true
	case Lines:
		return primitiveCount * 2, true
	case TriangleStrip, TriangleFan:
		return primitiveCount + 2, true
	case Triangles:
		return primitiveCount * 3, true
	}
	return 0, false
}

// PrimitiveCount is the inverse of IndexCount: the number of primitives
// indexCount elements form. Incomplete trailing primitives are dropped.
func (p PrimitiveType) PrimitiveCount(indexCount int) int {
	var n int
	switch p {
	case Points, PointSprites, LineLoop:
		n = indexCount
	case LineStrip:
		n = indexCount - 1
	case Lines:
		n = indexCount / 2
	case TriangleStrip, TriangleFan:
		n = indexCount - 2
	case Triangles:
		n = indexCount / 3
	}
	return max(n, 0)
}

// Topology maps p to the closest gputypes topology. Fans, loops and the
// quad forms have none and report false.
func (p PrimitiveType) Topology() (gputypes.PrimitiveTopology, bool) {
	switch p {
	case Points, PointSprites:
		return gputypes.PrimitiveTopologyPointList, true
	case Lines:
		return gputypes.PrimitiveTopologyLineList, true
	case LineStrip:
		return gputypes.PrimitiveTopologyLineStrip, true
	case Triangles:
		return gputypes.PrimitiveTopologyTriangleList, true
	case TriangleStrip:
		return gputypes.PrimitiveTopologyTriangleStrip, true
	}
	return 0, false
}

// MaxPrimitives returns the largest primitive count whose IndexCount
// still fits the int32 count GL draw calls take.
func (p PrimitiveType) MaxPrimitives() int {
	const maxCount = math.MaxInt32
	switch p {
	case LineStrip:
		return maxCount - 1
	case Lines:
		return maxCount / 2
	case TriangleStrip, TriangleFan:
		return maxCount - 2
	case Triangles:
		return maxCount / 3
	}
	return maxCount
}

// MaxIndices returns the largest index count a draw may reference for the
// given index format.
func MaxIndices(format gputypes.IndexFormat) int {
	if format == gputypes.IndexFormatUint32 {
		return 0x7fffffff
	}
	return 65535
}
