package raster

import (
	"image"
	"image/color"
	"math"
)

// Vertex is a projected vertex: pixel position, inverse depth and texture coords.
type Vertex struct {
	X, Y float64
	Z    float64 // 1/depth, larger is closer
	U, V float64
}

// Surface is what a triangle is filled with.
type Surface struct {
	Base    color.NRGBA
	Texture *image.NRGBA
	Shade   float64
	// Lit surfaces go through exposure, tone mapping and sRGB; unlit ones are
	// written as sampled.
	Lit bool
}

// RasterizeTriangle fills one triangle with z-buffering and perspective-correct
// texture coordinates. Lighting is flat: the caller supplies one shade per face.
//
// This is the HOT PATH: no allocation inside the pixel loop.
func RasterizeTriangle(fb *FrameBuffer, v [3]Vertex, s *Surface, lc *LightConfig) {
	x0, y0, z0 := v[0].X, v[0].Y, v[0].Z
	x1, y1, z1 := v[1].X, v[1].Y, v[1].Z
	x2, y2, z2 := v[2].X, v[2].Y, v[2].Z

	// Bounding box
	minX := int(math.Floor(math.Min(math.Min(x0, x1), x2)))
	maxX := int(math.Ceil(math.Max(math.Max(x0, x1), x2)))
	minY := int(math.Floor(math.Min(math.Min(y0, y1), y2)))
	maxY := int(math.Ceil(math.Max(math.Max(y0, y1), y2)))

	if minX < 0 {
		minX = 0
	}
	if maxX >= fb.Width {
		maxX = fb.Width - 1
	}
	if minY < 0 {
		minY = 0
	}
	if maxY >= fb.Height {
		maxY = fb.Height - 1
	}
	if minX > maxX || minY > maxY {
		return
	}

	// Barycentric setup
	det := (y1-y2)*(x0-x2) + (x2-x1)*(y0-y2)
	if det > -1e-8 && det < 1e-8 {
		return
	}
	invDet := 1.0 / det

	// Precompute edge deltas
	dy12 := y1 - y2
	dx21 := x2 - x1
	dy20 := y2 - y0
	dx02 := x0 - x2

	// Attributes divided by depth interpolate linearly in screen space.
	hasUV := s.Texture != nil
	u0, u1, u2 := v[0].U*z0, v[1].U*z1, v[2].U*z2
	w0v, w1v, w2v := v[0].V*z0, v[1].V*z1, v[2].V*z2

	scale := s.Shade * lc.Exposure
	invGamma := lc.InvGamma

	// Pixel loop: sample at pixel centers
	for sy := minY; sy <= maxY; sy++ {
		dsy := float64(sy) + 0.5 - y2
		rowOff := sy * fb.Width
		for sx := minX; sx <= maxX; sx++ {
			dsx := float64(sx) + 0.5 - x2
			b0 := (dy12*dsx + dx21*dsy) * invDet
			b1 := (dy20*dsx + dx02*dsy) * invDet
			b2 := 1.0 - b0 - b1

			if b0 < -1e-9 || b1 < -1e-9 || b2 < -1e-9 {
				continue
			}

			z := b0*z0 + b1*z1 + b2*z2
			zIdx := rowOff + sx
			if z <= fb.ZBuf[zIdx] {
				continue
			}

			cr, cg, cb, ca := s.Base.R, s.Base.G, s.Base.B, s.Base.A
			if hasUV {
				u := (b0*u0 + b1*u1 + b2*u2) / z
				vv := (b0*w0v + b1*w1v + b2*w2v) / z
				cr, cg, cb, ca = SampleTexture(s.Texture, u, vv)
			}

			// Skip transparent texels
			if ca < 8 {
				continue
			}
			fb.ZBuf[zIdx] = z

			pxIdx := zIdx * 4
			if !s.Lit {
				fb.Color[pxIdx] = cr
				fb.Color[pxIdx+1] = cg
				fb.Color[pxIdx+2] = cb
				fb.Color[pxIdx+3] = 255
				continue
			}

			// sRGB decode → linear (LUT), shade + ACES, linear → sRGB
			fr := math.Pow(ACESTonemap(srgbToLinear[cr]*scale), invGamma)
			fg := math.Pow(ACESTonemap(srgbToLinear[cg]*scale), invGamma)
			ffb := math.Pow(ACESTonemap(srgbToLinear[cb]*scale), invGamma)

			fb.Color[pxIdx] = clamp255(fr * 255)
			fb.Color[pxIdx+1] = clamp255(fg * 255)
			fb.Color[pxIdx+2] = clamp255(ffb * 255)
			fb.Color[pxIdx+3] = 255
		}
	}
}

func clamp255(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
