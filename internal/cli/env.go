package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"

	"clock3d/internal/animation"
	"clock3d/internal/camera"
	"clock3d/internal/clock"
	"clock3d/internal/clockface"
	"clock3d/internal/config"
	"clock3d/internal/logging"
	"clock3d/internal/mathutil"
	"clock3d/internal/raster"
	"clock3d/internal/texture"
)

// Env is the state every subcommand runs with: the resolved config, the
// logger, and shared texture cache. It is filled in by the root command's
// PersistentPreRunE.
type Env struct {
	Config config.Config
	Logger zerolog.Logger

	textures *texture.Cache
	closer   io.Closer
}

func newEnv(flags *GlobalFlags, stderr io.Writer) (*Env, error) {
	cfg, err := config.Load(flags.ConfigFile)
	if err != nil {
		return nil, err
	}
	cfg.Resolve(flags.Render)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger, closer := logging.New(logging.FromConfig(cfg.Log, flags.Verbose, flags.Quiet), stderr)

	idx, err := texture.BuildIndex(cfg.TextureDir)
	if err != nil {
		closer.Close()
		return nil, err
	}
	logger.Debug().
		Str("component", "cli").
		Str("config", flags.ConfigFile).
		Int("textures", idx.Len()).
		Msg("configuration loaded")

	return &Env{
		Config:   cfg,
		Logger:   logger,
		textures: texture.NewCache(idx),
		closer:   closer,
	}, nil
}

// Close releases the log file, if any.
func (e *Env) Close() error {
	if e == nil || e.closer == nil {
		return nil
	}
	return e.closer.Close()
}

// Location returns the configured time zone. It was validated on load.
func (e *Env) Location() *time.Location {
	loc, err := e.Config.TimeLocation()
	if err != nil {
		return time.Local
	}
	return loc
}

// NewStage builds a fresh scene, camera and renderer from the config. Every
// call returns an independent stage.
func (e *Env) NewStage() (*animation.Stage, error) {
	cfg := &e.Config
	bg, err := cfg.BackgroundColor()
	if err != nil {
		return nil, err
	}

	faces := make([]clockface.Options, len(cfg.Faces))
	for i, f := range cfg.Faces {
		faces[i] = clockface.Options{
			Name:          f.Name,
			TZOffsetHours: f.TZOffsetHours,
			Yaw:           mathutil.Deg2Rad(f.YawDegrees),
		}
		if f.DialTexture != "" {
			img, err := e.textures.Resolve(f.DialTexture)
			if err != nil {
				return nil, fmt.Errorf("face %q: %w", f.Name, err)
			}
			faces[i].DialTexture = img
		}
	}

	s, built, err := clockface.BuildScene(bg, clockface.DefaultDimensions(), faces)
	if err != nil {
		return nil, err
	}

	cc := cfg.Camera
	aspect := float64(cfg.Width) / float64(cfg.Height)
	cam := camera.NewPerspective(cc.FOV, aspect, cc.Near, cc.Far, vec3(cc.Position))
	cam.Target = vec3(cc.Target)

	stage := animation.NewStage(s, built, cam, raster.New(cfg.Width, cfg.Height, cfg.Supersample))
	stage.Split = cfg.Layout == config.LayoutSplit
	return stage, nil
}

// NewDriver builds a stage and a driver reading c.
func (e *Env) NewDriver(c clock.Clock, sink animation.Sink) (*animation.Driver, error) {
	stage, err := e.NewStage()
	if err != nil {
		return nil, err
	}
	return animation.NewDriver(stage, animation.Options{
		Clock:    c,
		Location: e.Location(),
		Smooth:   e.Config.SmoothSeconds,
		Logger:   e.Logger,
		Sink:     sink,
	}), nil
}

func vec3(v []float64) mathutil.Vec3 {
	var out mathutil.Vec3
	copy(out[:], v)
	return out
}

// ParseAt parses an RFC 3339 --at value into a fixed clock; empty means real time.
func ParseAt(at string) (clock.Clock, error) {
	if at == "" {
		return clock.Real{}, nil
	}
	t, err := time.Parse(time.RFC3339, at)
	if err != nil {
		return nil, fmt.Errorf("invalid time %q (want RFC 3339): %w", at, err)
	}
	return clock.Fixed{T: t}, nil
}
