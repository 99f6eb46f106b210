package postprocess

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solid(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return img
}

func TestDownsample_SizeAndColor(t *testing.T) {
	c := color.NRGBA{200, 100, 50, 255}
	out := Downsample(solid(40, 30, c), 20, 15)

	require.Equal(t, image.Rect(0, 0, 20, 15), out.Bounds())
	got := out.NRGBAAt(10, 7)
	assert.InDelta(t, c.R, got.R, 2)
	assert.InDelta(t, c.G, got.G, 2)
	assert.InDelta(t, c.B, got.B, 2)
	assert.Equal(t, uint8(255), got.A)
}

func TestDownsample_NoopWhenAlreadySmall(t *testing.T) {
	img := solid(8, 8, color.NRGBA{1, 2, 3, 255})
	assert.Same(t, img, Downsample(img, 8, 8))
}

func TestDownsample_TransparentStaysTransparent(t *testing.T) {
	out := Downsample(solid(16, 16, color.NRGBA{}), 4, 4)
	assert.Equal(t, color.NRGBA{}, out.NRGBAAt(2, 2))
}

func TestSideBySide(t *testing.T) {
	bg := color.NRGBA{9, 9, 9, 255}
	left := solid(4, 4, color.NRGBA{255, 0, 0, 255})
	right := solid(3, 2, color.NRGBA{0, 0, 255, 255})

	out := SideBySide(bg, 2, left, right)

	require.Equal(t, image.Rect(0, 0, 9, 4), out.Bounds())
	assert.Equal(t, color.NRGBA{255, 0, 0, 255}, out.NRGBAAt(0, 0))
	assert.Equal(t, bg, out.NRGBAAt(4, 1), "gap")
	assert.Equal(t, bg, out.NRGBAAt(6, 0), "above the shorter image")
	assert.Equal(t, color.NRGBA{0, 0, 255, 255}, out.NRGBAAt(6, 1))
	assert.Equal(t, color.NRGBA{0, 0, 255, 255}, out.NRGBAAt(8, 2))
}

func TestSideBySide_NegativeGapClamped(t *testing.T) {
	out := SideBySide(color.NRGBA{}, -5, solid(2, 2, color.NRGBA{A: 255}), solid(2, 2, color.NRGBA{A: 255}))
	assert.Equal(t, 4, out.Bounds().Dx())
}
