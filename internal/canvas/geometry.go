package canvas

import (
	"image/color"

	"github.com/chewxy/math32"

	"github.com/ivlev/animcurve/internal/curve"
)

// Point is a keyframe projected into canvas units. Points are regenerated
// from curve data and never persisted.
type Point struct {
	Channel curve.ChannelID
	Index   int
	X, Y    float64
}

// Vertex is one mesh vertex in canvas units.
type Vertex struct {
	X, Y  float32
	Color color.RGBA
}

// Mesh is an indexed triangle list.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
}

// AddQuad appends four vertices laid out as (a+, a-, b+, b-) and the two
// triangles covering them.
func (m *Mesh) AddQuad(v0, v1, v2, v3 Vertex) {
	base := uint32(len(m.Vertices))
	m.Vertices = append(m.Vertices, v0, v1, v2, v3)
	m.Indices = append(m.Indices,
		base, base+1, base+2,
		base+2, base+3, base+1,
	)
}

// Triangles returns the number of triangles in the mesh.
func (m *Mesh) Triangles() int {
	return len(m.Indices) / 3
}

// Segment is one thick line between two consecutive points of a channel.
type Segment struct {
	Channel curve.ChannelID
	Quad    [4]Vertex
}

// lineQuad builds a segment from start to end, offset perpendicular to the
// segment by half. Zero-length segments collapse to a zero-width quad.
func lineQuad(ch curve.ChannelID, start, end Point, half float32, col color.RGBA) Segment {
	sx, sy := float32(start.X), float32(start.Y)
	ex, ey := float32(end.X), float32(end.Y)

	dx, dy := sx-ex, sy-ey
	var bx, by float32
	if l := math32.Sqrt(dx*dx + dy*dy); l > 0 {
		// rotate the unit direction by 90 degrees
		bx, by = -dy/l*half, dx/l*half
	}

	return Segment{
		Channel: ch,
		Quad: [4]Vertex{
			{X: sx + bx, Y: sy + by, Color: col},
			{X: sx - bx, Y: sy - by, Color: col},
			{X: ex + bx, Y: ey + by, Color: col},
			{X: ex - bx, Y: ey - by, Color: col},
		},
	}
}
