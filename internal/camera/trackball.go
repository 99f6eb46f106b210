package camera

import (
	"math"

	"clock3d/internal/mathutil"
)

// Trackball orbits a camera around its target. Pointer deltas are in pixels of
// a Width×Height viewport.
type Trackball struct {
	Camera *Perspective

	Width, Height int

	RotateSpeed float64
	ZoomSpeed   float64
	PanSpeed    float64
	MinDistance float64
	MaxDistance float64
}

// NewTrackball returns a controller with the usual default speeds.
func NewTrackball(cam *Perspective, width, height int) *Trackball {
	return &Trackball{
		Camera:      cam,
		Width:       width,
		Height:      height,
		RotateSpeed: 1.0,
		ZoomSpeed:   1.2,
		PanSpeed:    0.3,
		MinDistance: 0.5,
		MaxDistance: 100,
	}
}

func (t *Trackball) unit() float64 {
	s := t.Width
	if t.Height > s {
		s = t.Height
	}
	if s <= 0 {
		s = 1
	}
	return float64(s)
}

// Rotate turns the eye about the target. Dragging right swings the scene right,
// dragging down tilts it toward the viewer. Up rotates along with the eye so
// the ball can roll freely over the poles.
func (t *Trackball) Rotate(dx, dy float64) {
	if dx == 0 && dy == 0 {
		return
	}
	cam := t.Camera
	right, up, back := cam.Basis()

	mx, my := dx/t.unit(), dy/t.unit()
	move := up.Scale(-my).Add(right.Scale(mx))
	angle := math.Hypot(mx, my) * math.Pi * t.RotateSpeed
	axis := move.Cross(back)

	q := mathutil.QuatFromAxisAngle(axis, angle)
	eye := cam.Position.Sub(cam.Target)
	cam.Position = cam.Target.Add(q.Rotate(eye))
	cam.Up = q.Rotate(up).Normalize()
}

// Zoom moves the eye along the view direction. Positive steps move closer.
// The distance is clamped to [MinDistance, MaxDistance].
func (t *Trackball) Zoom(steps float64) {
	cam := t.Camera
	eye := cam.Position.Sub(cam.Target)
	dist := eye.Len()
	if dist == 0 {
		return
	}
	factor := math.Pow(t.ZoomSpeed, -steps)
	next := math.Min(math.Max(dist*factor, t.MinDistance), t.MaxDistance)
	cam.Position = cam.Target.Add(eye.Scale(next / dist))
}

// Pan slides eye and target together across the view plane.
func (t *Trackball) Pan(dx, dy float64) {
	cam := t.Camera
	right, up, _ := cam.Basis()
	scale := cam.Distance() * t.PanSpeed * 2 / t.unit()
	shift := right.Scale(-dx * scale).Add(up.Scale(dy * scale))
	cam.Position = cam.Position.Add(shift)
	cam.Target = cam.Target.Add(shift)
}
