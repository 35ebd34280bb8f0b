package helix

import "math"

// RGB is a 24-bit color as emitted to the terminal. Components are not
// premultiplied; the terminal backend maps them straight to an SGR
// truecolor sequence.
type RGB struct {
	R, G, B uint8
}

// ColorWhite is the fallback color for cells rendered without an attribute.
var ColorWhite = RGB{255, 255, 255}

// Lerp linearly interpolates between c and o. t is clamped to [0, 1].
func (c RGB) Lerp(o RGB, t float64) RGB {
	t = clamp01(t)
	return RGB{
		R: uint8(float64(c.R) + t*(float64(o.R)-float64(c.R))),
		G: uint8(float64(c.G) + t*(float64(o.G)-float64(c.G))),
		B: uint8(float64(c.B) + t*(float64(o.B)-float64(c.B))),
	}
}

// Vec3 is a 3D vector used for model-space and camera-space positions
// throughout the API.
type Vec3 struct {
	X, Y, Z float64
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }

// Scale returns v scaled by s.
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

// Dot returns the dot product of v and o.
func (v Vec3) Dot(o Vec3) float64 { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }

// Cross returns the cross product of v and o.
func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		X: v.Y*o.Z - v.Z*o.Y,
		Y: v.Z*o.X - v.X*o.Z,
		Z: v.X*o.Y - v.Y*o.X,
	}
}

// Length returns the Euclidean length of v.
func (v Vec3) Length() float64 { return math.Sqrt(v.Dot(v)) }

// Normalize returns v scaled to unit length. The zero vector is returned
// unchanged.
func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l == 0 {
		return v
	}
	return v.Scale(1 / l)
}

func clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
