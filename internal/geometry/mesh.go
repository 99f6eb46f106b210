package geometry

import "clock3d/internal/mathutil"

// Triangle holds polygon type and vertex indices. Polygon == 4 means quad
// (two triangles: 0-1-2 and 0-2-3).
type Triangle struct {
	Polygon int
	VI      [4]int
}

// Mesh is indexed geometry in local object space. UVs, when present, are parallel
// to Verts.
type Mesh struct {
	Verts []mathutil.Vec3
	UVs   [][2]float64
	Tris  []Triangle
}

func (m *Mesh) addVert(v mathutil.Vec3, uv [2]float64) int {
	m.Verts = append(m.Verts, v)
	m.UVs = append(m.UVs, uv)
	return len(m.Verts) - 1
}

func (m *Mesh) tri(a, b, c int) {
	m.Tris = append(m.Tris, Triangle{Polygon: 3, VI: [4]int{a, b, c}})
}

func (m *Mesh) quad(a, b, c, d int) {
	m.Tris = append(m.Tris, Triangle{Polygon: 4, VI: [4]int{a, b, c, d}})
}

// TriangleCount returns the number of rasterized triangles (quads count twice).
func (m *Mesh) TriangleCount() int {
	n := 0
	for _, t := range m.Tris {
		if t.Polygon == 4 {
			n += 2
		} else {
			n++
		}
	}
	return n
}

// Bounds returns the axis-aligned min and max corners of the vertices.
func (m *Mesh) Bounds() (min, max mathutil.Vec3) {
	if len(m.Verts) == 0 {
		return
	}
	min, max = m.Verts[0], m.Verts[0]
	for _, v := range m.Verts[1:] {
		for k := 0; k < 3; k++ {
			if v[k] < min[k] {
				min[k] = v[k]
			}
			if v[k] > max[k] {
				max[k] = v[k]
			}
		}
	}
	return min, max
}
