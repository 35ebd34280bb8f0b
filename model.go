package helix

import (
	"fmt"
	"math"
)

// PrimitiveKind selects which primitive list of a Model the rasterizer
// consumes.
type PrimitiveKind uint8

const (
	// KindPoints stamps each vertex as a single sub-cell.
	KindPoints PrimitiveKind = iota
	// KindLines rasterizes Edges as depth-interpolated line segments.
	// This is the cartoon/wireframe mode and the default for loaded models.
	KindLines
	// KindTriangles fills Faces with an edge-function test.
	KindTriangles
)

// String returns the primitive kind name as shown in the status bar.
func (k PrimitiveKind) String() string {
	switch k {
	case KindPoints:
		return "points"
	case KindLines:
		return "lines"
	case KindTriangles:
		return "fill"
	default:
		return "unknown"
	}
}

// Vertex is a model-space position plus a normalized scalar attribute T in
// [0, 1] used for coloring. For protein cartoons T is the residue rank
// along the chain (N-terminus 0, C-terminus 1), supplied by the loader;
// the renderer never re-derives it from geometry.
type Vertex struct {
	Pos Vec3
	T   float64
}

// Edge joins two vertices by index.
type Edge struct {
	A, B int
}

// Face is a triangle of vertex indices. Degenerate (zero-area) faces are
// permitted; they rasterize to nothing.
type Face struct {
	A, B, C int
}

// Model is an immutable set of vertices with edge and face topology.
// It is read-only for the lifetime of a viewing session and shared by
// reference across frames.
type Model struct {
	Vertices []Vertex
	Edges    []Edge
	Faces    []Face

	// Kind selects the primitive list consumed by the rasterizer.
	Kind PrimitiveKind
}

// Validate checks that all edge and face indices are within the vertex
// list. Loaders call this once after construction.
func (m *Model) Validate() error {
	n := len(m.Vertices)
	for i, e := range m.Edges {
		if e.A < 0 || e.A >= n || e.B < 0 || e.B >= n {
			return fmt.Errorf("edge %d references vertex out of range [0,%d)", i, n)
		}
	}
	for i, f := range m.Faces {
		if f.A < 0 || f.A >= n || f.B < 0 || f.B >= n || f.C < 0 || f.C >= n {
			return fmt.Errorf("face %d references vertex out of range [0,%d)", i, n)
		}
	}
	return nil
}

// Bounds returns the axis-aligned bounding box of all vertices.
// An empty model has zero bounds.
func (m *Model) Bounds() (min, max Vec3) {
	if len(m.Vertices) == 0 {
		return Vec3{}, Vec3{}
	}
	min = m.Vertices[0].Pos
	max = min
	for _, v := range m.Vertices[1:] {
		min.X = math.Min(min.X, v.Pos.X)
		min.Y = math.Min(min.Y, v.Pos.Y)
		min.Z = math.Min(min.Z, v.Pos.Z)
		max.X = math.Max(max.X, v.Pos.X)
		max.Y = math.Max(max.Y, v.Pos.Y)
		max.Z = math.Max(max.Z, v.Pos.Z)
	}
	return min, max
}

// Center returns the midpoint of the bounding box.
func (m *Model) Center() Vec3 {
	min, max := m.Bounds()
	return min.Add(max).Scale(0.5)
}

// Diagonal returns the length of the bounding box diagonal. It is the
// scale reference for the initial camera distance and zoom clamping.
func (m *Model) Diagonal() float64 {
	min, max := m.Bounds()
	return max.Sub(min).Length()
}
