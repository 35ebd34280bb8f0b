package helix

import "math"

// ScreenVertex is a projected primitive corner: sub-cell coordinates plus
// camera-space depth and the color attribute.
type ScreenVertex struct {
	X, Y int
	Z, T float64
}

// Frame is the transient per-frame sub-cell buffer. Each sub-cell holds an
// occupancy bit, the nearest camera-space depth seen so far, and the
// attribute of the primitive that produced it. Nearer writes win
// regardless of submission order, equivalent to a one-sample depth test.
//
// A Frame is cleared and rebuilt every frame; nothing persists across
// frames.
type Frame struct {
	W, H  int
	on    []bool
	depth []float64
	attr  []float64
}

// NewFrame allocates a frame buffer of W x H sub-cells.
func NewFrame(w, h int) *Frame {
	f := &Frame{}
	f.Resize(w, h)
	return f
}

// Resize reallocates the buffer for new dimensions and clears it.
// A no-op when the dimensions are unchanged.
func (f *Frame) Resize(w, h int) {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	if w == f.W && h == f.H && f.on != nil {
		return
	}
	f.W, f.H = w, h
	f.on = make([]bool, w*h)
	f.depth = make([]float64, w*h)
	f.attr = make([]float64, w*h)
	f.Clear()
}

// Clear empties every sub-cell and resets depths to +Inf.
func (f *Frame) Clear() {
	for i := range f.on {
		f.on[i] = false
		f.depth[i] = math.Inf(1)
		f.attr[i] = 0
	}
}

// Covered returns the number of occupied sub-cells.
func (f *Frame) Covered() int {
	n := 0
	for _, v := range f.on {
		if v {
			n++
		}
	}
	return n
}

// At reports the state of one sub-cell. Out-of-range coordinates read as
// empty.
func (f *Frame) At(x, y int) (on bool, depth, attr float64) {
	if x < 0 || x >= f.W || y < 0 || y >= f.H {
		return false, math.Inf(1), 0
	}
	i := y*f.W + x
	return f.on[i], f.depth[i], f.attr[i]
}

// Plot writes one sub-cell if it is in bounds and nearer than the current
// occupant.
func (f *Frame) Plot(x, y int, depth, t float64) {
	if x < 0 || x >= f.W || y < 0 || y >= f.H {
		return
	}
	i := y*f.W + x
	if depth < f.depth[i] {
		f.on[i] = true
		f.depth[i] = depth
		f.attr[i] = t
	}
}

// outcode classifies a point against the frame rectangle for trivial
// segment rejection.
func (f *Frame) outcode(x, y int) int {
	code := 0
	if x < 0 {
		code |= 1
	} else if x >= f.W {
		code |= 2
	}
	if y < 0 {
		code |= 4
	} else if y >= f.H {
		code |= 8
	}
	return code
}

// Line rasterizes the segment a-b with Bresenham stepping, linearly
// interpolating depth and attribute along the way. Endpoints may lie
// outside the frame; segments entirely on one side are rejected and
// individual steps are bounds-checked.
func (f *Frame) Line(a, b ScreenVertex) {
	if f.outcode(a.X, a.Y)&f.outcode(b.X, b.Y) != 0 {
		return
	}

	dx := abs(b.X - a.X)
	sx := 1
	if a.X > b.X {
		sx = -1
	}
	dy := -abs(b.Y - a.Y)
	sy := 1
	if a.Y > b.Y {
		sy = -1
	}
	err := dx + dy

	total := float64(dx - dy)
	if total < 1 {
		total = 1
	}

	x, y := a.X, a.Y
	step := 0.0
	for {
		t := step / total
		f.Plot(x, y, a.Z+t*(b.Z-a.Z), a.T+t*(b.T-a.T))

		if x == b.X && y == b.Y {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
		step++
	}
}

// Triangle fills a-b-c with an edge-function inside test over the clamped
// bounding box, interpolating depth and attribute barycentrically.
// Degenerate triangles contribute nothing.
func (f *Frame) Triangle(a, b, c ScreenVertex) {
	area := edgeFn(a.X, a.Y, b.X, b.Y, c.X, c.Y)
	if area == 0 {
		return
	}
	// Normalize winding so the inside test is sign-independent.
	if area < 0 {
		b, c = c, b
		area = -area
	}

	minX := max(min3(a.X, b.X, c.X), 0)
	maxX := min(max3(a.X, b.X, c.X), f.W-1)
	minY := max(min3(a.Y, b.Y, c.Y), 0)
	maxY := min(max3(a.Y, b.Y, c.Y), f.H-1)
	if minX > maxX || minY > maxY {
		return
	}

	inv := 1 / float64(area)
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			w0 := edgeFn(b.X, b.Y, c.X, c.Y, x, y)
			w1 := edgeFn(c.X, c.Y, a.X, a.Y, x, y)
			w2 := edgeFn(a.X, a.Y, b.X, b.Y, x, y)
			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}
			l0 := float64(w0) * inv
			l1 := float64(w1) * inv
			l2 := float64(w2) * inv
			depth := l0*a.Z + l1*b.Z + l2*c.Z
			t := l0*a.T + l1*b.T + l2*c.T
			f.Plot(x, y, depth, t)
		}
	}
}

// edgeFn returns twice the signed area of the triangle (x0,y0) (x1,y1)
// (px,py).
func edgeFn(x0, y0, x1, y1, px, py int) int {
	return (x1-x0)*(py-y0) - (y1-y0)*(px-x0)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func min3(a, b, c int) int { return min(min(a, b), c) }
func max3(a, b, c int) int { return max(max(a, b), c) }
