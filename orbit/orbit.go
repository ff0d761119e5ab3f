// Package orbit implements an orbit camera parameterized by spherical
// coordinates around the origin.
package orbit

import (
	"math"

	"github.com/soypat/geometry/ms3"
)

// Default camera parameters.
const (
	DefaultSensitivity     = 0.005 // Radians per pixel of cursor drag.
	DefaultZoomSensitivity = 0.3   // Distance per scroll unit.
	DefaultDistance        = 3.0
	DefaultMinDistance     = 1.5
	DefaultMaxDistance     = 10.0
	// DefaultHeight is added to the camera height so the model is seen slightly from above.
	DefaultHeight = 0.5
	// PitchMargin keeps the vertical angle this far away from ±π/2 to avoid a degenerate look-at.
	PitchMargin = 0.1
)

// Camera orbits the origin. Angles and distance are kept as float64 like
// the cursor positions they are accumulated from. The zero value is not
// ready for use; see [New].
type Camera struct {
	// Sensitivity scales drag deltas to radians.
	Sensitivity float64
	// ZoomSensitivity scales scroll deltas to distance.
	ZoomSensitivity float64
	MinDistance     float64
	MaxDistance     float64
	// Height is the fixed vertical offset added to the camera position.
	Height float64

	yaw, pitch, dist float64
	pos              ms3.Vec
}

// New returns a camera with default parameters and reset position.
func New() *Camera {
	c := &Camera{
		Sensitivity:     DefaultSensitivity,
		ZoomSensitivity: DefaultZoomSensitivity,
		MinDistance:     DefaultMinDistance,
		MaxDistance:     DefaultMaxDistance,
		Height:          DefaultHeight,
	}
	c.Reset()
	return c
}

// Reset sets both angles to zero and distance to the default.
func (c *Camera) Reset() {
	c.yaw = 0
	c.pitch = 0
	c.dist = clamp(DefaultDistance, c.MinDistance, c.MaxDistance)
	c.update()
}

// Drag rotates the camera by a cursor displacement in pixels. Moving the
// cursor up (negative dy) raises the camera.
func (c *Camera) Drag(dx, dy float64) {
	c.yaw += dx * c.Sensitivity
	c.pitch -= dy * c.Sensitivity
	const maxPitch = math.Pi/2 - PitchMargin
	c.pitch = clamp(c.pitch, -maxPitch, maxPitch)
	c.update()
}

// Zoom moves the camera towards the target for positive scroll offsets.
func (c *Camera) Zoom(scroll float64) {
	c.dist -= scroll * c.ZoomSensitivity
	c.dist = clamp(c.dist, c.MinDistance, c.MaxDistance)
	c.update()
}

// Yaw returns the horizontal angle in radians.
func (c *Camera) Yaw() float64 { return c.yaw }

// Pitch returns the vertical angle in radians.
func (c *Camera) Pitch() float64 { return c.pitch }

// Distance returns the distance to the target before the height offset.
func (c *Camera) Distance() float64 { return c.dist }

// Position returns the world space camera position.
func (c *Camera) Position() ms3.Vec { return c.pos }

// Target returns the look-at point.
func (c *Camera) Target() ms3.Vec { return ms3.Vec{} }

func (c *Camera) update() {
	sy, cy := math.Sincos(c.yaw)
	sp, cp := math.Sincos(c.pitch)
	c.pos = ms3.Vec{
		X: float32(c.dist * cp * sy),
		Y: float32(c.dist*sp + c.Height),
		Z: float32(c.dist * cp * cy),
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	} else if v > hi {
		return hi
	}
	return v
}
