package raster

import (
	"math"

	"clock3d/internal/mathutil"
	"clock3d/internal/scene"
)

// LightConfig holds lighting parameters. Directions are in camera space.
type LightConfig struct {
	LightDir  mathutil.Vec3 // toward the light
	ViewDir   mathutil.Vec3 // toward the viewer
	HalfMain  mathutil.Vec3 // precomputed half-vector for Blinn-Phong
	Ambient   float64
	Hemi      float64
	Direct    float64
	SpecInt   float64
	Exposure  float64
	SRGBGamma float64
	InvGamma  float64
}

// DefaultLightConfig returns a single directional light shining along the view
// direction, plus ambient and hemisphere fill.
func DefaultLightConfig() LightConfig {
	lc := LightConfig{
		ViewDir:   mathutil.Vec3{0, 0, 1},
		Ambient:   0.35,
		Hemi:      0.30,
		Direct:    1.10,
		SpecInt:   0.45,
		Exposure:  1.05,
		SRGBGamma: 2.2,
		InvGamma:  1.0 / 2.2,
	}
	lc.SetLight(mathutil.Vec3{0, 0, 1})
	return lc
}

// SetLight points the main light along dir (camera space, toward the light)
// and refreshes the half-vector.
func (lc *LightConfig) SetLight(dir mathutil.Vec3) {
	d := dir.Normalize()
	if d == (mathutil.Vec3{}) {
		d = mathutil.Vec3{0, 0, 1}
	}
	lc.LightDir = d
	lc.HalfMain = d.Add(lc.ViewDir).Normalize()
}

// Shade returns the combined lighting scalar for a unit face normal under mat.
// Metalness strengthens the highlight; roughness widens it.
func (lc *LightConfig) Shade(normal mathutil.Vec3, mat *scene.Material) float64 {
	// Lambertian (abs for double-sided)
	ndl := math.Abs(normal.Dot(lc.LightDir))

	// Hemisphere fill
	hemi := (1.0-math.Abs(normal[1]))*0.5 + 0.5
	hemiLight := hemi * lc.Hemi

	// Blinn-Phong specular
	ndh := math.Abs(normal.Dot(lc.HalfMain))
	spec := math.Pow(ndh, specPower(mat.Roughness)) * lc.SpecInt * (0.25 + mat.Metalness)

	diffuse := 1 - 0.6*mat.Metalness
	return lc.Ambient + hemiLight + ndl*lc.Direct*diffuse + spec
}

func specPower(roughness float64) float64 {
	r := math.Min(math.Max(roughness, 0.05), 1)
	return 2/(r*r) + 2
}

// Precomputed sRGB-to-linear lookup table (256 entries).
var srgbToLinear [256]float64

func init() {
	for i := 0; i < 256; i++ {
		srgbToLinear[i] = math.Pow(float64(i)/255.0, 2.2)
	}
}

// ACESTonemap applies ACES Filmic tone mapping to a linear value.
func ACESTonemap(x float64) float64 {
	return (x * (2.51*x + 0.03)) / (x*(2.43*x+0.59) + 0.14)
}
