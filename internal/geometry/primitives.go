// Package geometry builds the primitive meshes the clock is assembled from.
// Shapes follow the usual scene-graph conventions: cylinders stand on the Y axis,
// boxes and spheres are centered on the origin, rings lie in XY and extrude to +Z.
package geometry

import (
	"math"

	"clock3d/internal/mathutil"
)

// Box returns an axis-aligned box of the given size centered on the origin.
func Box(w, h, d float64) *Mesh {
	hx, hy, hz := w/2, h/2, d/2
	m := &Mesh{}
	faces := [6][4]mathutil.Vec3{
		{{hx, -hy, hz}, {hx, -hy, -hz}, {hx, hy, -hz}, {hx, hy, hz}},     // +X
		{{-hx, -hy, -hz}, {-hx, -hy, hz}, {-hx, hy, hz}, {-hx, hy, -hz}}, // -X
		{{-hx, hy, hz}, {hx, hy, hz}, {hx, hy, -hz}, {-hx, hy, -hz}},     // +Y
		{{-hx, -hy, -hz}, {hx, -hy, -hz}, {hx, -hy, hz}, {-hx, -hy, hz}}, // -Y
		{{-hx, -hy, hz}, {hx, -hy, hz}, {hx, hy, hz}, {-hx, hy, hz}},     // +Z
		{{hx, -hy, -hz}, {-hx, -hy, -hz}, {-hx, hy, -hz}, {hx, hy, -hz}}, // -Z
	}
	uv := [4][2]float64{{0, 1}, {1, 1}, {1, 0}, {0, 0}}
	for _, f := range faces {
		var idx [4]int
		for i, v := range f {
			idx[i] = m.addVert(v, uv[i])
		}
		m.quad(idx[0], idx[1], idx[2], idx[3])
	}
	return m
}

// Cylinder returns a capped cylinder (or frustum) of the given height along Y.
func Cylinder(radiusTop, radiusBottom, height float64, segments int) *Mesh {
	if segments < 3 {
		segments = 3
	}
	m := &Mesh{}
	hh := height / 2

	top := make([]int, segments+1)
	bottom := make([]int, segments+1)
	for i := 0; i <= segments; i++ {
		u := float64(i) / float64(segments)
		theta := u * 2 * math.Pi
		s, c := math.Sin(theta), math.Cos(theta)
		top[i] = m.addVert(mathutil.Vec3{radiusTop * s, hh, radiusTop * c}, [2]float64{u, 0})
		bottom[i] = m.addVert(mathutil.Vec3{radiusBottom * s, -hh, radiusBottom * c}, [2]float64{u, 1})
	}
	for i := 0; i < segments; i++ {
		m.quad(top[i], bottom[i], bottom[i+1], top[i+1])
	}

	addCap := func(y, r, sign float64) {
		if r <= 0 {
			return
		}
		center := m.addVert(mathutil.Vec3{0, y, 0}, [2]float64{0.5, 0.5})
		ring := make([]int, segments+1)
		for i := 0; i <= segments; i++ {
			theta := float64(i) / float64(segments) * 2 * math.Pi
			s, c := math.Sin(theta), math.Cos(theta)
			ring[i] = m.addVert(mathutil.Vec3{r * s, y, r * c}, [2]float64{0.5 + 0.5*s, 0.5 + 0.5*c*sign})
		}
		for i := 0; i < segments; i++ {
			m.tri(center, ring[i], ring[i+1])
		}
	}
	addCap(hh, radiusTop, 1)
	addCap(-hh, radiusBottom, -1)
	return m
}

// Disc returns a flat circle in the XY plane facing +Z. Its UVs map the image
// upright onto the disc: u grows with +X, v grows with -Y.
func Disc(radius float64, segments int) *Mesh {
	if segments < 3 {
		segments = 3
	}
	m := &Mesh{}
	center := m.addVert(mathutil.Vec3{}, [2]float64{0.5, 0.5})
	ring := make([]int, segments+1)
	for i := 0; i <= segments; i++ {
		theta := float64(i) / float64(segments) * 2 * math.Pi
		x, y := math.Cos(theta), math.Sin(theta)
		ring[i] = m.addVert(mathutil.Vec3{radius * x, radius * y, 0}, [2]float64{0.5 + 0.5*x, 0.5 - 0.5*y})
	}
	for i := 0; i < segments; i++ {
		m.tri(center, ring[i], ring[i+1])
	}
	return m
}

// Sphere returns a UV sphere. widthSegments run around Y, heightSegments pole to pole.
func Sphere(radius float64, widthSegments, heightSegments int) *Mesh {
	if widthSegments < 3 {
		widthSegments = 3
	}
	if heightSegments < 2 {
		heightSegments = 2
	}
	m := &Mesh{}
	grid := make([][]int, heightSegments+1)
	for iy := 0; iy <= heightSegments; iy++ {
		v := float64(iy) / float64(heightSegments)
		theta := v * math.Pi
		row := make([]int, widthSegments+1)
		for ix := 0; ix <= widthSegments; ix++ {
			u := float64(ix) / float64(widthSegments)
			phi := u * 2 * math.Pi
			p := mathutil.Vec3{
				-radius * math.Cos(phi) * math.Sin(theta),
				radius * math.Cos(theta),
				radius * math.Sin(phi) * math.Sin(theta),
			}
			row[ix] = m.addVert(p, [2]float64{u, v})
		}
		grid[iy] = row
	}
	for iy := 0; iy < heightSegments; iy++ {
		for ix := 0; ix < widthSegments; ix++ {
			a := grid[iy][ix+1]
			b := grid[iy][ix]
			c := grid[iy+1][ix]
			d := grid[iy+1][ix+1]
			switch {
			case iy == 0:
				m.tri(a, c, d)
			case iy == heightSegments-1:
				m.tri(a, b, c)
			default:
				m.quad(a, b, c, d)
			}
		}
	}
	return m
}

// ExtrudedRing returns an annulus between inner and outer radius, lying in the
// XY plane at z=0 and extruded to z=depth.
func ExtrudedRing(inner, outer, depth float64, segments int) *Mesh {
	if segments < 3 {
		segments = 3
	}
	m := &Mesh{}
	type ringVerts struct{ inFront, outFront, inBack, outBack int }
	rings := make([]ringVerts, segments+1)
	for i := 0; i <= segments; i++ {
		u := float64(i) / float64(segments)
		phi := u * 2 * math.Pi
		c, s := math.Cos(phi), math.Sin(phi)
		rings[i] = ringVerts{
			inFront:  m.addVert(mathutil.Vec3{inner * c, inner * s, depth}, [2]float64{u, 0}),
			outFront: m.addVert(mathutil.Vec3{outer * c, outer * s, depth}, [2]float64{u, 1}),
			inBack:   m.addVert(mathutil.Vec3{inner * c, inner * s, 0}, [2]float64{u, 0}),
			outBack:  m.addVert(mathutil.Vec3{outer * c, outer * s, 0}, [2]float64{u, 1}),
		}
	}
	for i := 0; i < segments; i++ {
		a, b := rings[i], rings[i+1]
		m.quad(a.inFront, a.outFront, b.outFront, b.inFront) // front cap
		m.quad(a.outBack, a.inBack, b.inBack, b.outBack)     // back cap
		m.quad(a.outFront, a.outBack, b.outBack, b.outFront) // outer wall
		m.quad(a.inBack, a.inFront, b.inFront, b.inBack)     // inner wall
	}
	return m
}
