package vertex

import (
	"unsafe"

	"github.com/gogpu/gputypes"
)

// Type identifies one of the fixed vertex formats the driver understands.
type Type int

const (
	// TypeStandard is position, normal, color and one texture coordinate.
	TypeStandard Type = iota
	// TypeTwoTCoords adds a second texture coordinate.
	TypeTwoTCoords
	// TypeTangents adds tangent and binormal vectors for normal mapping.
	TypeTangents

	typeCount
)

// String returns the format name.
func (t Type) String() string {
	switch t {
	case TypeStandard:
		return "Standard"
	case TypeTwoTCoords:
		return "TwoTCoords"
	case TypeTangents:
		return "Tangents"
	default:
		return "Unknown"
	}
}

// Attribute locations shared by all built-in shaders.
const (
	LocationPosition uint32 = 0
	LocationNormal   uint32 = 1
	LocationColor    uint32 = 2
	LocationTCoord0  uint32 = 3
	LocationTCoord1  uint32 = 4
	LocationTangent  uint32 = 5
	LocationBinormal uint32 = 6

	// LocationCount is one past the highest location in use.
	LocationCount = 7
)

// Color is an 8-bit RGBA vertex color in memory order.
type Color [4]uint8

// RGBA returns a Color from its components.
func RGBA(r, g, b, a uint8) Color { return Color{r, g, b, a} }

// Standard is a vertex with one texture coordinate.
type Standard struct {
	Pos     [3]float32
	Normal  [3]float32
	Color   Color
	TCoords [2]float32
}

// TwoTCoords is a vertex with two texture coordinates.
type TwoTCoords struct {
	Standard
	TCoords2 [2]float32
}

// Tangents is a vertex with tangent space vectors.
type Tangents struct {
	Standard
	Tangent  [3]float32
	Binormal [3]float32
}

var layouts = [typeCount]gputypes.VertexBufferLayout{
	TypeStandard: {
		ArrayStride: uint64(unsafe.Sizeof(Standard{})),
		StepMode:    gputypes.VertexStepModeVertex,
		Attributes:  standardAttributes(),
	},
	TypeTwoTCoords: {
		ArrayStride: uint64(unsafe.Sizeof(TwoTCoords{})),
		StepMode:    gputypes.VertexStepModeVertex,
		Attributes: append(standardAttributes(), gputypes.VertexAttribute{
			Format:         gputypes.VertexFormatFloat32x2,
			Offset:         uint64(unsafe.Offsetof(TwoTCoords{}.TCoords2)),
			ShaderLocation: LocationTCoord1,
		}),
	},
	TypeTangents: {
		ArrayStride: uint64(unsafe.Sizeof(Tangents{})),
		StepMode:    gputypes.VertexStepModeVertex,
		Attributes: append(standardAttributes(),
			gputypes.VertexAttribute{
				Format:         gputypes.VertexFormatFloat32x3,
				Offset:         uint64(unsafe.Offsetof(Tangents{}.Tangent)),
				ShaderLocation: LocationTangent,
			},
			gputypes.VertexAttribute{
				Format:         gputypes.VertexFormatFloat32x3,
				Offset:         uint64(unsafe.Offsetof(Tangents{}.Binormal)),
				ShaderLocation: LocationBinormal,
			}),
	},
}

func standardAttributes() []gputypes.VertexAttribute {
	return []gputypes.VertexAttribute{
		{Format: gputypes.VertexFormatFloat32x3, Offset: uint64(unsafe.Offsetof(Standard{}.Pos)), ShaderLocation: LocationPosition},
		{Format: gputypes.VertexFormatFloat32x3, Offset: uint64(unsafe.Offsetof(Standard{}.Normal)), ShaderLocation: LocationNormal},
		{Format: gputypes.VertexFormatUnorm8x4, Offset: uint64(unsafe.Offsetof(Standard{}.Color)), ShaderLocation: LocationColor},
		{Format: gputypes.VertexFormatFloat32x2, Offset: uint64(unsafe.Offsetof(Standard{}.TCoords)), ShaderLocation: LocationTCoord0},
	}
}

// Layout returns the buffer layout of t. Unknown types return an empty layout.
// The returned value must not be modified.
func (t Type) Layout() gputypes.VertexBufferLayout {
	if t < 0 || t >= typeCount {
		return gputypes.VertexBufferLayout{}
	}
	return layouts[t]
}

// Stride returns the size of one vertex of type t in bytes.
func (t Type) Stride() int {
	return int(t.Layout().ArrayStride)
}

// Attribute returns the attribute bound to location loc, if t has one.
func (t Type) Attribute(loc uint32) (gputypes.VertexAttribute, bool) {
	for _, a := range t.Layout().Attributes {
		if a.ShaderLocation == loc {
			return a, true
		}
	}
	return gputypes.VertexAttribute{}, false
}

// Vertex is satisfied by the vertex structs of the built-in formats.
type Vertex interface {
	Standard | TwoTCoords | Tangents
}

// TypeOf returns the format of vertex struct V.
func TypeOf[V Vertex]() Type {
	var v V
	switch any(v).(type) {
	case TwoTCoords:
		return TypeTwoTCoords
	case Tangents:
		return TypeTangents
	}
	return TypeStandard
}
