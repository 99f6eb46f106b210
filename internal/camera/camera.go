// Package camera provides the perspective view onto the scene and a trackball
// controller that orbits it from pointer input.
package camera

import (
	"math"

	"clock3d/internal/mathutil"
)

// Perspective is a pinhole camera looking from Position toward Target.
type Perspective struct {
	FOV    float64 // vertical field of view, degrees
	Aspect float64
	Near   float64
	Far    float64

	Position mathutil.Vec3
	Target   mathutil.Vec3
	Up       mathutil.Vec3
}

// NewPerspective returns a camera at position looking at the origin with +Y up.
func NewPerspective(fov, aspect, near, far float64, position mathutil.Vec3) *Perspective {
	return &Perspective{
		FOV:      fov,
		Aspect:   aspect,
		Near:     near,
		Far:      far,
		Position: position,
		Up:       mathutil.Vec3{0, 1, 0},
	}
}

// Basis returns the camera's right, up and backward unit vectors in world space.
// The camera looks down -back.
func (c *Perspective) Basis() (right, up, back mathutil.Vec3) {
	back = c.Position.Sub(c.Target).Normalize()
	if back == (mathutil.Vec3{}) {
		back = mathutil.Vec3{0, 0, 1}
	}
	right = c.Up.Cross(back).Normalize()
	if right == (mathutil.Vec3{}) {
		// Up is parallel to the view direction; pick any perpendicular.
		right = mathutil.Vec3{1, 0, 0}.Cross(back).Normalize()
		if right == (mathutil.Vec3{}) {
			right = mathutil.Vec3{0, 1, 0}.Cross(back).Normalize()
		}
	}
	up = back.Cross(right)
	return right, up, back
}

// View returns the world-to-camera matrix. In camera space the viewer sits at
// the origin looking down -Z with +Y up.
func (c *Perspective) View() mathutil.Mat4 {
	r, u, b := c.Basis()
	p := c.Position
	return mathutil.Mat4{
		r[0], r[1], r[2], -r.Dot(p),
		u[0], u[1], u[2], -u.Dot(p),
		b[0], b[1], b[2], -b.Dot(p),
		0, 0, 0, 1,
	}
}

// FocalLength returns 1/tan(fov/2), the NDC scale for a point at unit depth.
func (c *Perspective) FocalLength() float64 {
	return 1 / math.Tan(mathutil.Deg2Rad(c.FOV)/2)
}

// Project maps a camera-space point to pixel coordinates on a w×h target.
// ok is false when the point is outside the near/far range.
func (c *Perspective) Project(v mathutil.Vec3, w, h int) (x, y, depth float64, ok bool) {
	d := -v[2]
	if d < c.Near || d > c.Far {
		return 0, 0, 0, false
	}
	f := c.FocalLength()
	aspect := c.Aspect
	if aspect <= 0 {
		aspect = float64(w) / float64(h)
	}
	ndcX := f / aspect * v[0] / d
	ndcY := f * v[1] / d
	x = (ndcX + 1) / 2 * float64(w)
	y = (1 - ndcY) / 2 * float64(h)
	return x, y, d, true
}

// Distance returns how far the camera is from its target.
func (c *Perspective) Distance() float64 {
	return c.Position.Sub(c.Target).Len()
}

// Orbited returns a copy of the camera rotated by angle radians about the
// vertical axis through its target.
func (c *Perspective) Orbited(angle float64) *Perspective {
	out := *c
	rel := c.Position.Sub(c.Target)
	out.Position = c.Target.Add(mathutil.RotY(angle).MulVec3(rel))
	return &out
}
