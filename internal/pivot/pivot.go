// Package pivot turns a hand about a point that is not its geometric origin.
//
// A rotation matrix spins geometry about the local origin. A clock hand has to
// spin about its base instead, so the rotation is followed by the translation
// that carries the rotated pivot back onto the original pivot.
package pivot

import "clock3d/internal/mathutil"

// Solve returns placement · R · scale, where R rotates by angle about the Z axis
// through pivot. A nil scale is treated as identity.
//
// The result is a complete local transform: callers assign it, never multiply it
// into a previous frame's value.
func Solve(angle float64, pivot mathutil.Vec3, placement mathutil.Mat4, scale *mathutil.Mat4) mathutil.Mat4 {
	r := mathutil.Mat4RotationAxis(mathutil.AxisZ, angle)
	rotated := r.MulPoint(pivot)
	r = r.WithTranslation(pivot.Sub(rotated))

	if scale != nil {
		return mathutil.Compose(placement, r, *scale)
	}
	return mathutil.Compose(placement, r)
}

// Mount is the fixed rig of one hand category: where it turns, where it sits at
// 12 o'clock and how its geometry is squashed. Built once, never mutated.
type Mount struct {
	Pivot     mathutil.Vec3
	Placement mathutil.Mat4
	Scale     *mathutil.Mat4
}

// NewMount builds a mount placed by a pure translation.
func NewMount(pivot, offset mathutil.Vec3, scale *mathutil.Mat4) Mount {
	return Mount{
		Pivot:     pivot,
		Placement: mathutil.Mat4Translation(offset),
		Scale:     scale,
	}
}

// Pose solves the mount for one angle.
func (m Mount) Pose(angle float64) mathutil.Mat4 {
	return Solve(angle, m.Pivot, m.Placement, m.Scale)
}

// Rest is the pose at angle zero: placement · scale.
func (m Mount) Rest() mathutil.Mat4 {
	if m.Scale != nil {
		return mathutil.Compose(m.Placement, *m.Scale)
	}
	return m.Placement
}
