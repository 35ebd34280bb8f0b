package helix

import "math"

const (
	defaultFOV  = 1.7 // radians
	defaultNear = 0.1 // viewport (near plane) distance
)

// Projector transforms model-space points through the camera view and a
// perspective divide into sub-cell screen coordinates plus camera-space
// depth. Width and Height are the sub-cell grid dimensions, not character
// cells.
type Projector struct {
	Width, Height int
	Near          float64
	FOV           float64

	pos                Vec3
	sinYaw, cosYaw     float64
	sinPitch, cosPitch float64
}

// NewProjector creates a projector for a sub-cell grid of the given size.
func NewProjector(width, height int) *Projector {
	p := &Projector{Width: width, Height: height, Near: defaultNear, FOV: defaultFOV}
	p.cosYaw, p.cosPitch = 1, 1
	return p
}

// SetViewport updates the sub-cell grid dimensions after a terminal
// resize.
func (p *Projector) SetViewport(width, height int) {
	p.Width = width
	p.Height = height
}

// SetCamera captures the camera pose for the current frame. The view
// rotation is the inverse of the camera orientation, so the cached trig
// values are taken at the negated angles.
func (p *Projector) SetCamera(c *Camera) {
	pose := c.Pose()
	p.pos = c.Position()
	p.sinYaw, p.cosYaw = math.Sincos(-pose.Yaw)
	p.sinPitch, p.cosPitch = math.Sincos(-pose.Pitch)
}

// WorldToCamera transforms a world-space point into camera space. Depth is
// the resulting Z; points in front of the camera have Z > 0.
func (p *Projector) WorldToCamera(pt Vec3) Vec3 {
	d := pt.Sub(p.pos)

	// Undo yaw.
	ux := d.X*p.cosYaw - d.Z*p.sinYaw
	uy := d.Y
	uz := d.X*p.sinYaw + d.Z*p.cosYaw

	// Undo pitch.
	vy := uy*p.cosPitch - uz*p.sinPitch
	vz := uy*p.sinPitch + uz*p.cosPitch

	return Vec3{X: ux, Y: vy, Z: vz}
}

// CameraToScreen projects a camera-space point (Z >= Near) onto the
// sub-cell grid. Coordinates may fall outside the grid; callers rasterize
// with per-sub-cell bounds checks.
func (p *Projector) CameraToScreen(pt Vec3) (x, y int) {
	vx := pt.X * p.Near / pt.Z
	vy := pt.Y * p.Near / pt.Z

	vpWidth := 2 * p.Near * math.Tan(p.FOV/2)
	vpHeight := vpWidth * float64(p.Height) / float64(p.Width)

	sx := (vx/vpWidth + 0.5) * float64(p.Width)
	sy := (1 - (vy/vpHeight + 0.5)) * float64(p.Height)

	return int(math.Round(sx)), int(math.Round(sy))
}

// Project maps a world-space point to sub-cell coordinates and depth.
// ok is false when the point lies behind the near plane or outside the
// grid. In-bounds coordinates satisfy 0 <= x < Width and 0 <= y < Height
// (inclusive low edge, exclusive high edge).
func (p *Projector) Project(pt Vec3) (x, y int, depth float64, ok bool) {
	cam := p.WorldToCamera(pt)
	if cam.Z < p.Near {
		return 0, 0, 0, false
	}
	x, y = p.CameraToScreen(cam)
	if x < 0 || x >= p.Width || y < 0 || y >= p.Height {
		return 0, 0, 0, false
	}
	return x, y, cam.Z, true
}

// ClipNear clips the camera-space segment a-b against the near plane,
// interpolating the attribute range (ta, tb) at the cut. ok is false when
// the whole segment lies behind the plane.
func (p *Projector) ClipNear(a, b Vec3, ta, tb float64) (ca, cb Vec3, cta, ctb float64, ok bool) {
	aBehind := a.Z < p.Near
	bBehind := b.Z < p.Near
	if aBehind && bBehind {
		return a, b, ta, tb, false
	}
	if !aBehind && !bBehind {
		return a, b, ta, tb, true
	}
	clipped, kept, tClipped, tKept := a, b, ta, tb
	if bBehind {
		clipped, kept = b, a
		tClipped, tKept = tb, ta
	}
	lambda := (p.Near - clipped.Z) / (kept.Z - clipped.Z)
	cut := Vec3{
		X: clipped.X + lambda*(kept.X-clipped.X),
		Y: clipped.Y + lambda*(kept.Y-clipped.Y),
		Z: p.Near,
	}
	tCut := tClipped + lambda*(tKept-tClipped)
	if bBehind {
		return a, cut, ta, tCut, true
	}
	return cut, b, tCut, tb, true
}
