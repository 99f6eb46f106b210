package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clock3d/internal/mathutil"
)

func assertIndicesValid(t *testing.T, m *Mesh) {
	t.Helper()
	require.Len(t, m.UVs, len(m.Verts))
	for _, tri := range m.Tris {
		for k := 0; k < tri.Polygon; k++ {
			require.GreaterOrEqual(t, tri.VI[k], 0)
			require.Less(t, tri.VI[k], len(m.Verts))
		}
	}
}

func TestBox(t *testing.T) {
	m := Box(0.1, 4.9, 0.05)
	assertIndicesValid(t, m)
	assert.Len(t, m.Tris, 6)
	assert.Equal(t, 12, m.TriangleCount())

	lo, hi := m.Bounds()
	assert.InDelta(t, -0.05, lo[0], 1e-12)
	assert.InDelta(t, 2.45, hi[1], 1e-12)
	assert.InDelta(t, -0.025, lo[2], 1e-12)
}

func TestCylinder(t *testing.T) {
	m := Cylinder(5, 5, 1, 100)
	assertIndicesValid(t, m)
	assert.Equal(t, 100*2+100*2, m.TriangleCount())

	lo, hi := m.Bounds()
	assert.InDelta(t, -0.5, lo[1], 1e-12)
	assert.InDelta(t, 0.5, hi[1], 1e-12)
	assert.InDelta(t, 5, hi[0], 1e-3)
	assert.InDelta(t, -5, lo[2], 1e-3)
}

func TestCylinder_ConeSkipsEmptyCap(t *testing.T) {
	m := Cylinder(0, 1, 2, 8)
	assertIndicesValid(t, m)
	assert.Equal(t, 8*2+8, m.TriangleCount())
}

func TestSphere_VerticesOnSurface(t *testing.T) {
	m := Sphere(2.5, 32, 16)
	assertIndicesValid(t, m)
	for _, v := range m.Verts {
		assert.InDelta(t, 2.5, v.Len(), 1e-9)
	}
	lo, hi := m.Bounds()
	assert.InDelta(t, -2.5, lo[1], 1e-9)
	assert.InDelta(t, 2.5, hi[1], 1e-9)
}

func TestDisc_UVOrientation(t *testing.T) {
	m := Disc(5, 4)
	assertIndicesValid(t, m)
	// Vertex at angle π/2 sits at +Y and must map to the top row of the image.
	top := m.Verts[2]
	assert.InDelta(t, 5, top[1], 1e-9)
	assert.InDelta(t, 0, m.UVs[2][1], 1e-9)
	for _, v := range m.Verts {
		assert.Zero(t, v[2])
	}
}

func TestExtrudedRing(t *testing.T) {
	m := ExtrudedRing(5, 5.2, 0.6, 100)
	assertIndicesValid(t, m)
	assert.Len(t, m.Tris, 400)
	for _, v := range m.Verts {
		r := math.Hypot(v[0], v[1])
		assert.True(t, math.Abs(r-5) < 1e-9 || math.Abs(r-5.2) < 1e-9, "radius %v", r)
		assert.True(t, v[2] == 0 || v[2] == 0.6)
	}
}

func TestBounds_Empty(t *testing.T) {
	lo, hi := (&Mesh{}).Bounds()
	assert.Equal(t, mathutil.Vec3{}, lo)
	assert.Equal(t, mathutil.Vec3{}, hi)
}

func TestMinimumSegmentsClamped(t *testing.T) {
	assert.NotEmpty(t, Cylinder(1, 1, 1, 0).Tris)
	assert.NotEmpty(t, Sphere(1, 0, 0).Tris)
	assert.NotEmpty(t, Disc(1, 1).Tris)
	assert.NotEmpty(t, ExtrudedRing(1, 2, 1, 0).Tris)
}
