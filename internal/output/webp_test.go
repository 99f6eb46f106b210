package output

import (
	"bytes"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/webp"
)

func frame(c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 8, 6))
	for y := 0; y < 6; y++ {
		for x := 0; x < 8; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestWriteWebP_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "frame.webp")
	want := color.NRGBA{12, 200, 99, 255}

	require.NoError(t, WriteWebP(path, frame(want)))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := webp.Decode(f)
	require.NoError(t, err)

	assert.Equal(t, image.Rect(0, 0, 8, 6), img.Bounds())
	got := color.NRGBAModel.Convert(img.At(3, 3)).(color.NRGBA)
	assert.Equal(t, want, got, "lossless encoding preserves pixels")

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestWriteWebP_Overwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "live.webp")
	require.NoError(t, WriteWebP(path, frame(color.NRGBA{A: 255})))
	require.NoError(t, WriteWebP(path, frame(color.NRGBA{R: 255, A: 255})))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := webp.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{R: 255, A: 255}, color.NRGBAModel.Convert(img.At(0, 0)))
}

func TestWriteAnimation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "timelapse.webp")
	frames := []image.Image{
		frame(color.NRGBA{255, 0, 0, 255}),
		frame(color.NRGBA{0, 255, 0, 255}),
		frame(color.NRGBA{0, 0, 255, 255}),
	}

	require.NoError(t, WriteAnimation(path, frames, 100*time.Millisecond))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Greater(t, len(data), 12)
	assert.Equal(t, "RIFF", string(data[0:4]))
	assert.Equal(t, "WEBP", string(data[8:12]))
	assert.True(t, bytes.Contains(data, []byte("ANIM")))
	assert.Equal(t, 3, bytes.Count(data, []byte("ANMF")))
}

func TestWriteAnimation_NoFrames(t *testing.T) {
	err := WriteAnimation(filepath.Join(t.TempDir(), "x.webp"), nil, time.Second)
	assert.Error(t, err)
}
