package postprocess

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// SideBySide places the images left to right on one canvas, separated by gap
// pixels of bg and vertically centered. Used to show the front and back faces
// of the clock in a single frame.
func SideBySide(bg color.NRGBA, gap int, imgs ...*image.NRGBA) *image.NRGBA {
	if gap < 0 {
		gap = 0
	}
	w, h := 0, 0
	for i, img := range imgs {
		b := img.Bounds()
		w += b.Dx()
		if i > 0 {
			w += gap
		}
		if b.Dy() > h {
			h = b.Dy()
		}
	}

	canvas := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)

	x := 0
	for _, img := range imgs {
		b := img.Bounds()
		y := (h - b.Dy()) / 2
		dst := image.Rect(x, y, x+b.Dx(), y+b.Dy())
		draw.Draw(canvas, dst, img, b.Min, draw.Over)
		x += b.Dx() + gap
	}
	return canvas
}
