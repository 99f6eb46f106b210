package texture

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ftrvxmtrx/tga"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
)

func writePNG(t *testing.T, path string, c color.NRGBA) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func TestBuildIndex(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "Roman.png"), color.NRGBA{255, 0, 0, 255})
	writePNG(t, filepath.Join(dir, "sub", "plain.png"), color.NRGBA{0, 255, 0, 255})
	require.NoError(t, os.WriteFile(filepath.Join(dir, "roman.jpg"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	idx, err := BuildIndex(dir)
	require.NoError(t, err)
	assert.Equal(t, 2, idx.Len())

	tests := []struct {
		name string
		want string
		ok   bool
	}{
		{"roman", filepath.Join(dir, "Roman.png"), true},
		{"ROMAN.jpg", filepath.Join(dir, "Roman.png"), true},
		{`dials\plain.tga`, filepath.Join(dir, "sub", "plain.png"), true},
		{"notes", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := idx.ResolvePath(tt.name)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuildIndex_Empty(t *testing.T) {
	idx, err := BuildIndex("")
	require.NoError(t, err)
	assert.Zero(t, idx.Len())

	_, err = BuildIndex(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestLoadTexture(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dial.png")
	writePNG(t, path, color.NRGBA{10, 20, 30, 128})

	img, err := LoadTexture(path)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 2, 2), img.Bounds())
	assert.Equal(t, color.NRGBA{10, 20, 30, 128}, img.NRGBAAt(1, 1))
}

// pattern is a 3x2 image with a distinct pixel in each corner, so flipped or
// mirrored decodes show up.
func pattern() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			img.SetNRGBA(x, y, color.NRGBA{200, 200, 200, 255})
		}
	}
	img.SetNRGBA(0, 0, color.NRGBA{255, 0, 0, 255})
	img.SetNRGBA(2, 0, color.NRGBA{0, 255, 0, 255})
	img.SetNRGBA(0, 1, color.NRGBA{0, 0, 255, 255})
	img.SetNRGBA(2, 1, color.NRGBA{12, 34, 56, 255})
	return img
}

func TestLoadTexture_Formats(t *testing.T) {
	tests := []struct {
		name   string
		file   string
		encode func(io.Writer, image.Image) error
	}{
		{"png", "dial.png", png.Encode},
		{"tga", "dial.tga", tga.Encode},
		{"bmp", "dial.BMP", bmp.Encode},
		{"webp", "dial.webp", func(w io.Writer, m image.Image) error {
			return nativewebp.Encode(w, m, nil)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, tt.encode(&buf, pattern()))
			path := filepath.Join(t.TempDir(), tt.file)
			require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

			img, err := LoadTexture(path)
			require.NoError(t, err)
			assert.Equal(t, image.Rect(0, 0, 3, 2), img.Bounds())
			assert.Equal(t, color.NRGBA{255, 0, 0, 255}, img.NRGBAAt(0, 0))
			assert.Equal(t, color.NRGBA{0, 255, 0, 255}, img.NRGBAAt(2, 0))
			assert.Equal(t, color.NRGBA{0, 0, 255, 255}, img.NRGBAAt(0, 1))
			assert.Equal(t, color.NRGBA{12, 34, 56, 255}, img.NRGBAAt(2, 1))
		})
	}
}

func TestLoadTexture_DecodersMatchIndex(t *testing.T) {
	for ext := range extRank {
		assert.Contains(t, decoders, ext)
	}
	assert.Len(t, decoders, len(extRank))
}

func TestLoadTexture_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadTexture(filepath.Join(dir, "dial.gif"))
	assert.ErrorIs(t, err, ErrUnsupported)

	bad := filepath.Join(dir, "bad.png")
	require.NoError(t, os.WriteFile(bad, []byte("not a png"), 0o644))
	_, err = LoadTexture(bad)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnsupported)
}

func TestToNRGBA_Gray(t *testing.T) {
	g := image.NewGray(image.Rect(3, 3, 5, 5))
	g.SetGray(3, 3, color.Gray{Y: 77})

	out := toNRGBA(g)
	assert.Equal(t, image.Rect(0, 0, 2, 2), out.Bounds())
	assert.Equal(t, color.NRGBA{77, 77, 77, 255}, out.NRGBAAt(0, 0))
}

func TestToNRGBA_Converts(t *testing.T) {
	src := image.NewRGBA(image.Rect(-2, 5, 1, 7))
	src.SetRGBA(-2, 5, color.RGBA{60, 30, 0, 120})
	src.SetRGBA(0, 6, color.RGBA{9, 8, 7, 255})

	out := toNRGBA(src)
	assert.Equal(t, image.Rect(0, 0, 3, 2), out.Bounds())
	assert.Equal(t, color.NRGBA{127, 63, 0, 120}, out.NRGBAAt(0, 0), "alpha is un-premultiplied")
	assert.Equal(t, color.NRGBA{9, 8, 7, 255}, out.NRGBAAt(2, 1))
	assert.Equal(t, color.NRGBA{}, out.NRGBAAt(1, 0))
}

func TestToNRGBA_ShiftsOrigin(t *testing.T) {
	zero := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	assert.Same(t, zero, toNRGBA(zero))

	shifted := image.NewNRGBA(image.Rect(4, 4, 6, 5))
	shifted.SetNRGBA(5, 4, color.NRGBA{1, 2, 3, 4})
	out := toNRGBA(shifted)
	assert.NotSame(t, shifted, out)
	assert.Equal(t, image.Rect(0, 0, 2, 1), out.Bounds())
	assert.Equal(t, color.NRGBA{1, 2, 3, 4}, out.NRGBAAt(1, 0))
}

func TestCache_Resolve(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "face.png"), color.NRGBA{1, 2, 3, 255})
	loose := filepath.Join(t.TempDir(), "loose.png")
	writePNG(t, loose, color.NRGBA{4, 5, 6, 255})

	idx, err := BuildIndex(dir)
	require.NoError(t, err)
	c := NewCache(idx)

	var wg sync.WaitGroup
	imgs := make([]*image.NRGBA, 8)
	for i := range imgs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			imgs[i], _ = c.Resolve("face")
		}(i)
	}
	wg.Wait()
	for _, img := range imgs {
		assert.Same(t, imgs[0], img)
	}

	img, err := c.Resolve(loose)
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{4, 5, 6, 255}, img.NRGBAAt(0, 0))
	assert.Equal(t, 2, c.Len())

	_, err = c.Resolve("nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCache_NilIndex(t *testing.T) {
	_, err := NewCache(nil).Resolve("anything")
	assert.ErrorIs(t, err, ErrNotFound)
}
