// Package raster is a software renderer: it walks a scene graph, projects every
// mesh through a perspective camera and fills triangles into a z-buffered
// framebuffer.
package raster

import (
	"image"

	"clock3d/internal/camera"
	"clock3d/internal/geometry"
	"clock3d/internal/mathutil"
	"clock3d/internal/postprocess"
	"clock3d/internal/scene"
)

// Stats describes the last rendered frame.
type Stats struct {
	Meshes    int
	Triangles int
	Culled    int
}

// Renderer draws scenes at a fixed output size. Supersample > 1 renders at a
// multiple of the size and filters down.
//
// A Renderer reuses its framebuffer between frames and must not be shared
// between goroutines.
type Renderer struct {
	Width       int
	Height      int
	Supersample int
	Light       LightConfig

	fb    *FrameBuffer
	stats Stats

	// per-mesh scratch
	cam   []mathutil.Vec3
	proj  []Vertex
	valid []bool
}

// New returns a renderer for w×h output.
func New(w, h, supersample int) *Renderer {
	if supersample < 1 {
		supersample = 1
	}
	return &Renderer{
		Width:       w,
		Height:      h,
		Supersample: supersample,
		Light:       DefaultLightConfig(),
	}
}

// Stats returns counters for the most recent Render.
func (r *Renderer) Stats() Stats { return r.stats }

// Render draws s as seen from cam and returns a fresh image.
func (r *Renderer) Render(s *scene.Scene, cam *camera.Perspective) *image.NRGBA {
	rw, rh := r.Width*r.Supersample, r.Height*r.Supersample
	if r.fb == nil || r.fb.Width != rw || r.fb.Height != rh {
		r.fb = NewFrameBuffer(rw, rh)
	}
	r.fb.Clear(s.Background)
	r.stats = Stats{}

	view := cam.View()

	// The light follows the camera and shines at the world origin.
	lc := r.Light
	lc.SetLight(view.MulDir(cam.Position))

	s.Root.Walk(func(n *scene.Node, world mathutil.Mat4) {
		if n.Geometry == nil || n.Material == nil {
			return
		}
		r.stats.Meshes++
		r.drawMesh(n.Geometry, n.Material, mathutil.Mat4Mul(view, world), cam, &lc)
	})

	img := r.fb.Image()
	if r.Supersample > 1 {
		img = postprocess.Downsample(img, r.Width, r.Height)
	}
	return img
}

func (r *Renderer) drawMesh(m *geometry.Mesh, mat *scene.Material, modelView mathutil.Mat4, cam *camera.Perspective, lc *LightConfig) {
	n := len(m.Verts)
	r.cam = grow(r.cam, n)
	r.proj = grow(r.proj, n)
	r.valid = grow(r.valid, n)

	hasUV := len(m.UVs) == n
	for i, v := range m.Verts {
		c := modelView.MulPoint(v)
		r.cam[i] = c
		x, y, d, ok := cam.Project(c, r.fb.Width, r.fb.Height)
		r.valid[i] = ok
		if !ok {
			continue
		}
		pv := Vertex{X: x, Y: y, Z: 1 / d}
		if hasUV {
			pv.U, pv.V = m.UVs[i][0], m.UVs[i][1]
		}
		r.proj[i] = pv
	}

	surf := Surface{Base: mat.Color, Lit: !mat.Unlit}
	if hasUV {
		surf.Texture = mat.Texture
	}

	for _, tri := range m.Tris {
		r.drawTri(tri.VI[0], tri.VI[1], tri.VI[2], mat, &surf, lc)
		// Quad: second triangle
		if tri.Polygon == 4 {
			r.drawTri(tri.VI[0], tri.VI[2], tri.VI[3], mat, &surf, lc)
		}
	}
}

func (r *Renderer) drawTri(a, b, c int, mat *scene.Material, surf *Surface, lc *LightConfig) {
	if !r.valid[a] || !r.valid[b] || !r.valid[c] {
		r.stats.Culled++
		return
	}

	// Face normal for flat shading, from camera-space positions
	e1 := r.cam[b].Sub(r.cam[a])
	e2 := r.cam[c].Sub(r.cam[a])
	normal := e1.Cross(e2).Normalize()
	if normal == (mathutil.Vec3{}) {
		r.stats.Culled++
		return
	}

	surf.Shade = 1
	if surf.Lit {
		surf.Shade = lc.Shade(normal, mat)
	}
	RasterizeTriangle(r.fb, [3]Vertex{r.proj[a], r.proj[b], r.proj[c]}, surf, lc)
	r.stats.Triangles++
}

func grow[T any](s []T, n int) []T {
	if cap(s) >= n {
		return s[:n]
	}
	return make([]T, n)
}
