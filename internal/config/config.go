// Package config loads clock3d settings from an optional JSON or YAML file,
// CLOCK3D_* environment variables, and command-line flags.
package config

import (
	"fmt"
	"image/color"
	"runtime"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata" // default location must load on hosts without zoneinfo

	"gopkg.in/yaml.v3"
)

const (
	// DefaultLocation is where the default "hamburg" face shows local time.
	DefaultLocation = "Europe/Berlin"
	// DefaultWatchFPS is the watch tick rate when fps is unset.
	DefaultWatchFPS = 30
)

// Config holds all render, scene and output settings.
type Config struct {
	// Render settings
	Width       int    `mapstructure:"width" yaml:"width"`
	Height      int    `mapstructure:"height" yaml:"height"`
	Supersample int    `mapstructure:"supersample" yaml:"supersample"`
	FPS         int    `mapstructure:"fps" yaml:"fps"`
	Layout      string `mapstructure:"layout" yaml:"layout"`
	Background  string `mapstructure:"background" yaml:"background"`

	// Time
	Location      string `mapstructure:"location" yaml:"location"`
	SmoothSeconds bool   `mapstructure:"smooth_seconds" yaml:"smooth_seconds"`

	// Paths
	TextureDir string `mapstructure:"texture_dir" yaml:"texture_dir"`
	OutputDir  string `mapstructure:"output_dir" yaml:"output_dir"`

	Camera    CameraConfig    `mapstructure:"camera" yaml:"camera"`
	Faces     []FaceConfig    `mapstructure:"faces" yaml:"faces"`
	Timelapse TimelapseConfig `mapstructure:"timelapse" yaml:"timelapse"`
	Log       LogConfig       `mapstructure:"log" yaml:"log"`
}

// CameraConfig places the perspective camera.
type CameraConfig struct {
	Position []float64 `mapstructure:"position" yaml:"position,flow"`
	Target   []float64 `mapstructure:"target" yaml:"target,flow"`
	FOV      float64   `mapstructure:"fov" yaml:"fov"`
	Near     float64   `mapstructure:"near" yaml:"near"`
	Far      float64   `mapstructure:"far" yaml:"far"`
}

// FaceConfig describes one dial.
type FaceConfig struct {
	Name          string  `mapstructure:"name" yaml:"name"`
	TZOffsetHours float64 `mapstructure:"tz_offset_hours" yaml:"tz_offset_hours"`
	YawDegrees    float64 `mapstructure:"yaw_degrees" yaml:"yaw_degrees"`
	DialTexture   string  `mapstructure:"dial_texture" yaml:"dial_texture,omitempty"`
}

// TimelapseConfig controls batch rendering of a time range.
type TimelapseConfig struct {
	// Start is RFC 3339; empty means the current time.
	Start   string        `mapstructure:"start" yaml:"start"`
	Step    time.Duration `mapstructure:"step" yaml:"step"`
	Frames  int           `mapstructure:"frames" yaml:"frames"`
	Workers int           `mapstructure:"workers" yaml:"workers"`
	FrameMS int           `mapstructure:"frame_ms" yaml:"frame_ms"`
}

// LogConfig controls logging.
type LogConfig struct {
	Level      string `mapstructure:"level" yaml:"level"`
	File       string `mapstructure:"file" yaml:"file,omitempty"`
	MaxSizeMB  int    `mapstructure:"max_size_mb" yaml:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups" yaml:"max_backups"`
}

// Layouts
const (
	LayoutSingle = "single"
	LayoutSplit  = "split"
)

// Defaults reproduce the two-face Hamburg/Bogotá clock.
var defaultFaces = []FaceConfig{
	{Name: "hamburg", TZOffsetHours: 0, YawDegrees: 0},
	{Name: "bogota", TZOffsetHours: 6, YawDegrees: 180},
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	Width       int
	Height      int
	Supersample int
	FPS         int
	Workers     int
	Location    string
	Layout      string
	OutputDir   string
	TextureDir  string
	Smooth      bool
	LogLevel    string
}

// Resolve applies CLI flags and fills in anything still empty with defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.Width > 0 {
		c.Width = flags.Width
	}
	if flags.Height > 0 {
		c.Height = flags.Height
	}
	if flags.Supersample > 0 {
		c.Supersample = flags.Supersample
	}
	if flags.FPS > 0 {
		c.FPS = flags.FPS
	}
	if flags.Workers > 0 {
		c.Timelapse.Workers = flags.Workers
	}
	if flags.Location != "" {
		c.Location = flags.Location
	}
	if flags.Layout != "" {
		c.Layout = flags.Layout
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.TextureDir != "" {
		c.TextureDir = flags.TextureDir
	}
	if flags.Smooth {
		c.SmoothSeconds = true
	}
	if flags.LogLevel != "" {
		c.Log.Level = flags.LogLevel
	}

	// Defaults for render settings
	if c.Width <= 0 {
		c.Width = 800
	}
	if c.Height <= 0 {
		c.Height = 600
	}
	if c.Supersample <= 0 {
		c.Supersample = 2
	}
	if c.Layout == "" {
		c.Layout = LayoutSingle
	}
	if c.Background == "" {
		c.Background = "#fdffea"
	}
	if c.Location == "" {
		c.Location = DefaultLocation
	}
	if c.OutputDir == "" {
		c.OutputDir = "out"
	}

	if len(c.Camera.Position) == 0 {
		c.Camera.Position = []float64{1, 2, 7}
	}
	if len(c.Camera.Target) == 0 {
		c.Camera.Target = []float64{0, 0, 0}
	}
	if c.Camera.FOV <= 0 {
		c.Camera.FOV = 100
	}
	if c.Camera.Near <= 0 {
		c.Camera.Near = 0.1
	}
	if c.Camera.Far <= 0 {
		c.Camera.Far = 500
	}

	if len(c.Faces) == 0 {
		c.Faces = append([]FaceConfig(nil), defaultFaces...)
	}

	if c.Timelapse.Step == 0 {
		c.Timelapse.Step = time.Minute
	}
	if c.Timelapse.Frames <= 0 {
		c.Timelapse.Frames = 60
	}
	if c.Timelapse.Workers <= 0 {
		c.Timelapse.Workers = runtime.NumCPU()
	}
	if c.Timelapse.FrameMS <= 0 {
		c.Timelapse.FrameMS = 100
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.MaxSizeMB <= 0 {
		c.Log.MaxSizeMB = 10
	}
	if c.Log.MaxBackups <= 0 {
		c.Log.MaxBackups = 3
	}
}

// WatchFPS is the ticker rate for watch: FPS, or DefaultWatchFPS when unset.
// An unset FPS lets the window follow the display refresh.
func (c *Config) WatchFPS() int {
	if c.FPS > 0 {
		return c.FPS
	}
	return DefaultWatchFPS
}

// TimeLocation loads the configured zone. "Local" and "UTC" are accepted as
// well as IANA names.
func (c *Config) TimeLocation() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Location)
	if err != nil {
		return nil, fmt.Errorf("%w: location %q: %v", ErrInvalid, c.Location, err)
	}
	return loc, nil
}

// BackgroundColor parses Background as #rrggbb or #rrggbbaa.
func (c *Config) BackgroundColor() (color.NRGBA, error) {
	return parseHexColor(c.Background)
}

// TimelapseStart returns the first timelapse instant, or now when unset.
func (c *Config) TimelapseStart(now time.Time) (time.Time, error) {
	if c.Timelapse.Start == "" {
		return now, nil
	}
	t, err := time.Parse(time.RFC3339, c.Timelapse.Start)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: timelapse.start: %v", ErrInvalid, err)
	}
	return t, nil
}

// YAML renders the configuration as YAML.
func (c *Config) YAML() ([]byte, error) {
	out, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("config: marshal: %w", err)
	}
	return out, nil
}

func parseHexColor(s string) (color.NRGBA, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) != 6 && len(h) != 8 {
		return color.NRGBA{}, fmt.Errorf("%w: color %q", ErrInvalid, s)
	}
	if len(h) == 6 {
		h += "ff"
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("%w: color %q", ErrInvalid, s)
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}
