package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// ErrInvalid marks a configuration value that cannot be used.
var ErrInvalid = errors.New("config: invalid")

// Validate checks a resolved configuration and reports every problem found.
func (c *Config) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
	}

	if c.Width <= 0 || c.Height <= 0 {
		bad("size %dx%d must be positive", c.Width, c.Height)
	}
	if c.Supersample < 1 || c.Supersample > 4 {
		bad("supersample %d must be 1..4", c.Supersample)
	}
	if c.FPS < 0 || c.FPS > 240 {
		bad("fps %d must be 0..240", c.FPS)
	}
	if c.Layout != LayoutSingle && c.Layout != LayoutSplit {
		bad("layout %q must be %q or %q", c.Layout, LayoutSingle, LayoutSplit)
	}
	if _, err := c.BackgroundColor(); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.TimeLocation(); err != nil {
		errs = append(errs, err)
	}

	if len(c.Camera.Position) != 3 || len(c.Camera.Target) != 3 {
		bad("camera position and target need 3 components")
	}
	if c.Camera.FOV <= 0 || c.Camera.FOV >= 180 {
		bad("camera fov %g must be in (0, 180)", c.Camera.FOV)
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		bad("camera near %g / far %g", c.Camera.Near, c.Camera.Far)
	}

	if len(c.Faces) == 0 {
		bad("at least one face is required")
	}
	seen := make(map[string]bool, len(c.Faces))
	for i, f := range c.Faces {
		if f.Name == "" {
			bad("faces[%d] has no name", i)
			continue
		}
		if seen[f.Name] {
			bad("duplicate face %q", f.Name)
		}
		seen[f.Name] = true
	}

	if c.Timelapse.Frames <= 0 {
		bad("timelapse.frames %d must be positive", c.Timelapse.Frames)
	}
	if c.Timelapse.Step == 0 {
		bad("timelapse.step must be non-zero")
	}
	if c.Timelapse.Workers <= 0 {
		bad("timelapse.workers %d must be positive", c.Timelapse.Workers)
	}
	if c.Timelapse.FrameMS <= 0 {
		bad("timelapse.frame_ms %d must be positive", c.Timelapse.FrameMS)
	}
	if _, err := c.TimelapseStart(time.Time{}); err != nil {
		errs = append(errs, err)
	}

	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		bad("log.level %q", c.Log.Level)
	}

	return errors.Join(errs...)
}
