package pivot

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clock3d/internal/mathutil"
)

func near(t *testing.T, want, got mathutil.Vec3) {
	t.Helper()
	for i := 0; i < 3; i++ {
		assert.InDelta(t, want[i], got[i], 1e-9, "axis %d: want %v got %v", i, want, got)
	}
}

func TestSolve_PivotIsFixedPoint(t *testing.T) {
	pivots := []mathutil.Vec3{
		{0, -2.475, 0.5},
		{0, -1.25, 0.625},
		{3, 4, 0},
		{},
	}
	for _, p := range pivots {
		for θ := -4 * math.Pi; θ <= 4*math.Pi; θ += math.Pi / 7 {
			m := Solve(θ, p, mathutil.Mat4Identity(), nil)
			near(t, p, m.MulPoint(p))
		}
	}
}

func TestSolve_PlacementAppliedAfterPivotRotation(t *testing.T) {
	p := mathutil.Vec3{0, -2, 0}
	offset := mathutil.Vec3{0, 2, 0.5}
	placement := mathutil.Mat4Translation(offset)

	m := Solve(-math.Pi/2, p, placement, nil)
	near(t, p.Add(offset), m.MulPoint(p))

	// The far tip of a hand of length 4 lying along +Y from the pivot sweeps to +X
	// for a quarter turn clockwise.
	tip := mathutil.Vec3{0, 2, 0}
	near(t, mathutil.Vec3{4, -2, 0}.Add(offset), m.MulPoint(tip))
}

func TestSolve_ScaleAppliedFirst(t *testing.T) {
	scale := mathutil.Mat4Scale(0.5, 1, 1)
	m := Solve(0, mathutil.Vec3{}, mathutil.Mat4Identity(), &scale)
	near(t, mathutil.Vec3{0.5, 1, 1}, m.MulPoint(mathutil.Vec3{1, 1, 1}))

	// Quarter turn: the squashed x extent must end up on y, not the other way round.
	m = Solve(math.Pi/2, mathutil.Vec3{}, mathutil.Mat4Identity(), &scale)
	near(t, mathutil.Vec3{0, 0.5, 0}, m.MulPoint(mathutil.Vec3{1, 0, 0}))
}

func TestSolve_ZeroAngleIsPlacementTimesScale(t *testing.T) {
	scale := mathutil.Mat4Scale(0.1, 1, 0.05)
	mount := NewMount(mathutil.Vec3{0, -1.25, 0.625}, mathutil.Vec3{0, 1.25, 0.625}, &scale)

	assert.True(t, mathutil.ApproxEqual(mount.Rest(), mount.Pose(0), 1e-12))
	assert.True(t, mathutil.ApproxEqual(mathutil.Compose(mount.Placement, scale), mount.Pose(0), 1e-12))
}

func TestSolve_NotAccumulated(t *testing.T) {
	mount := NewMount(mathutil.Vec3{0, -2.475, 0.5}, mathutil.Vec3{0, 2.45, 0.5}, nil)
	first := mount.Pose(1.0)
	_ = mount.Pose(2.0)
	require.Equal(t, first, mount.Pose(1.0))
}

func TestSolve_PeriodicInAngle(t *testing.T) {
	mount := NewMount(mathutil.Vec3{0, -2.475, 0.5}, mathutil.Vec3{0, 2.45, 0.5}, nil)
	assert.True(t, mathutil.ApproxEqual(mount.Pose(0.3), mount.Pose(0.3-2*math.Pi), 1e-9))
}

func TestMount_RestWithoutScale(t *testing.T) {
	mount := NewMount(mathutil.Vec3{}, mathutil.Vec3{1, 2, 3}, nil)
	assert.Equal(t, mathutil.Mat4Translation(mathutil.Vec3{1, 2, 3}), mount.Rest())
}
