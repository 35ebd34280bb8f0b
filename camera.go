package helix

import (
	"math"

	"github.com/charmbracelet/harmonica"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

const (
	// maxPitch keeps the orbit short of the poles so the view never flips.
	maxPitch = math.Pi/2 - 0.05

	zoomTweenDuration = 0.15 // seconds
	springFrequency   = 4.0
	springDamping     = 1.0 // critically damped: no overshoot
)

// Pose is the externally visible camera state: everything that determines
// the view of a static model.
type Pose struct {
	Yaw, Pitch float64
	Distance   float64
	Center     Vec3
}

// Camera is a yaw/pitch orbit around a pan center. It is mutated only by
// the session's input loop; drag deltas carry spring-damped momentum and
// scroll zoom eases toward its target, so motion settles smoothly after
// the last input event.
type Camera struct {
	pose    Pose
	initial Pose

	minDistance float64
	maxDistance float64

	// Angular momentum, decayed toward zero by a critically damped spring
	// each frame (velocity spring as in a damped rotation axis).
	yawVel, yawAcc     float64
	pitchVel, pitchAcc float64
	spring             harmonica.Spring

	// Zoom easing: distance tweens toward targetDistance.
	targetDistance float64
	zoomTween      *gween.Tween
}

// NewCamera creates a camera orbiting center at a distance suited to a
// model of the given bounding-box diagonal. fps is the frame rate the
// momentum spring is tuned for.
func NewCamera(center Vec3, diagonal float64, fps int) *Camera {
	if diagonal <= 0 {
		diagonal = 1
	}
	if fps <= 0 {
		fps = 30
	}
	p := Pose{
		Yaw:      0.3,
		Pitch:    0.2,
		Distance: diagonal * 1.2,
		Center:   center,
	}
	return &Camera{
		pose:           p,
		initial:        p,
		minDistance:    diagonal * 0.05,
		maxDistance:    diagonal * 10,
		targetDistance: p.Distance,
		spring:         harmonica.NewSpring(harmonica.FPS(fps), springFrequency, springDamping),
	}
}

// Pose returns the current camera state.
func (c *Camera) Pose() Pose { return c.pose }

// Rotate applies a drag delta in radians. The delta takes effect
// immediately and also seeds angular momentum that decays over the
// following frames.
func (c *Camera) Rotate(dyaw, dpitch float64) {
	c.pose.Yaw += dyaw
	c.pose.Pitch += dpitch
	c.yawVel = dyaw
	c.pitchVel = dpitch
	c.clampAngles()
}

// Pan shifts the orbit center along the camera's right and up axes.
// dx and dy are screen-fraction deltas; the shift scales with distance so
// panning feels uniform at any zoom.
func (c *Camera) Pan(dx, dy float64) {
	right, up := c.basis()
	s := c.pose.Distance
	c.pose.Center = c.pose.Center.Add(right.Scale(-dx * s)).Add(up.Scale(dy * s))
}

// Zoom moves the zoom target by delta model units (positive zooms out) and
// starts an ease toward it. The target is clamped to the configured range.
func (c *Camera) Zoom(delta float64) {
	c.targetDistance = clamp(c.targetDistance+delta, c.minDistance, c.maxDistance)
	c.zoomTween = gween.New(float32(c.pose.Distance), float32(c.targetDistance), zoomTweenDuration, ease.OutQuad)
}

// Spin advances yaw by a fixed increment. Used by auto-rotate; carries no
// momentum.
func (c *Camera) Spin(dyaw float64) {
	c.pose.Yaw += dyaw
	c.wrapYaw()
}

// Update advances momentum and zoom easing by dt seconds. With no pending
// momentum or tween it leaves the camera bit-for-bit unchanged, so
// re-rendering an idle camera is deterministic.
func (c *Camera) Update(dt float64) {
	if c.yawVel != 0 || c.pitchVel != 0 {
		c.pose.Yaw += c.yawVel
		c.pose.Pitch += c.pitchVel
		c.yawVel, c.yawAcc = c.spring.Update(c.yawVel, c.yawAcc, 0)
		c.pitchVel, c.pitchAcc = c.spring.Update(c.pitchVel, c.pitchAcc, 0)
		if math.Abs(c.yawVel) < 1e-5 {
			c.yawVel, c.yawAcc = 0, 0
		}
		if math.Abs(c.pitchVel) < 1e-5 {
			c.pitchVel, c.pitchAcc = 0, 0
		}
		c.clampAngles()
	}
	if c.zoomTween != nil {
		v, done := c.zoomTween.Update(float32(dt))
		c.pose.Distance = float64(v)
		if done {
			c.pose.Distance = c.targetDistance
			c.zoomTween = nil
		}
	}
}

// StopMomentum cancels any pending angular momentum. Called when a drag
// starts so the view does not keep coasting under the pointer.
func (c *Camera) StopMomentum() {
	c.yawVel, c.yawAcc = 0, 0
	c.pitchVel, c.pitchAcc = 0, 0
}

// Reset restores the camera to its initial pose exactly and cancels any
// in-flight momentum or zoom ease.
func (c *Camera) Reset() {
	c.pose = c.initial
	c.targetDistance = c.initial.Distance
	c.zoomTween = nil
	c.StopMomentum()
}

// Position returns the camera's world-space position on the orbit sphere.
func (c *Camera) Position() Vec3 {
	sy, cy := math.Sincos(c.pose.Yaw)
	sp, cp := math.Sincos(c.pose.Pitch)
	d := c.pose.Distance
	return Vec3{
		X: sy*cp*d + c.pose.Center.X,
		Y: sp*d + c.pose.Center.Y,
		Z: -cy*cp*d + c.pose.Center.Z,
	}
}

// basis returns the camera's right and up axes in world space.
func (c *Camera) basis() (right, up Vec3) {
	forward := c.pose.Center.Sub(c.Position()).Normalize()
	worldUp := Vec3{Y: 1}
	right = forward.Cross(worldUp).Normalize()
	if right.Length() == 0 {
		right = Vec3{X: 1}
	}
	up = right.Cross(forward).Normalize()
	return right, up
}

func (c *Camera) clampAngles() {
	c.pose.Pitch = clamp(c.pose.Pitch, -maxPitch, maxPitch)
	c.wrapYaw()
}

func (c *Camera) wrapYaw() {
	if c.pose.Yaw > math.Pi || c.pose.Yaw < -math.Pi {
		c.pose.Yaw = math.Mod(c.pose.Yaw+math.Pi, 2*math.Pi)
		if c.pose.Yaw < 0 {
			c.pose.Yaw += 2 * math.Pi
		}
		c.pose.Yaw -= math.Pi
	}
}
