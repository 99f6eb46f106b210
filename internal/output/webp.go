// Package output writes rendered frames to disk as WebP.
package output

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"time"

	"github.com/HugoSmits86/nativewebp"
)

// WriteWebP encodes img losslessly to path, creating parent directories.
func WriteWebP(path string, img image.Image) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("output: mkdir %s: %w", filepath.Dir(path), err)
	}

	// Write to a sibling temp file so a watcher never sees a half-written frame.
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("output: create %s: %w", tmp, err)
	}
	if err := nativewebp.Encode(f, img, nil); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("output: encode %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("output: close %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("output: rename %s: %w", path, err)
	}
	return nil
}

// WriteAnimation encodes frames as a looping animated WebP, each shown for delay.
func WriteAnimation(path string, frames []image.Image, delay time.Duration) error {
	if len(frames) == 0 {
		return fmt.Errorf("output: animation %s: no frames", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("output: mkdir %s: %w", filepath.Dir(path), err)
	}

	ms := uint(delay / time.Millisecond)
	if ms == 0 {
		ms = 1
	}
	ani := nativewebp.Animation{
		Images:          frames,
		Durations:       make([]uint, len(frames)),
		Disposals:       make([]uint, len(frames)),
		LoopCount:       0,
		BackgroundColor: 0xff000000,
	}
	for i := range ani.Durations {
		ani.Durations[i] = ms
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("output: create %s: %w", path, err)
	}
	defer f.Close()

	if err := nativewebp.EncodeAll(f, &ani, nil); err != nil {
		return fmt.Errorf("output: encode animation %s: %w", path, err)
	}
	return nil
}
