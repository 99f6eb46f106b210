package animation

import (
	"context"
	"errors"
	"fmt"
	"image"
	"time"

	"github.com/rs/zerolog"

	"clock3d/internal/clock"
	"clock3d/internal/clockface"
)

// Frame is the result of one tick.
type Frame struct {
	Index  int
	Time   time.Time
	Angles []clockface.Angles
	Image  *image.NRGBA
}

// Sink receives each rendered frame. A returned error stops Run.
type Sink func(Frame) error

// ErrStop may be returned by a Sink to end Run cleanly after the current frame.
var ErrStop = errors.New("animation: stop")

// Options configures a Driver.
type Options struct {
	Clock    clock.Clock
	Location *time.Location
	// Smooth adds fractional seconds so the second hand sweeps instead of stepping.
	Smooth bool
	Logger zerolog.Logger
	Sink   Sink
}

// Driver advances a Stage one frame per tick. It is not safe for concurrent use.
type Driver struct {
	stage  *Stage
	clock  clock.Clock
	loc    *time.Location
	smooth bool
	sink   Sink
	log    zerolog.Logger

	frames int
	last   Frame
}

// NewDriver returns a Driver for stage. A nil clock means real time and a nil
// location means time.Local.
func NewDriver(stage *Stage, opts Options) *Driver {
	c := opts.Clock
	if c == nil {
		c = clock.Real{}
	}
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}
	return &Driver{
		stage:  stage,
		clock:  c,
		loc:    loc,
		smooth: opts.Smooth,
		sink:   opts.Sink,
		log:    opts.Logger.With().Str("component", "animation").Logger(),
	}
}

// Tick samples the clock once and renders a frame at that instant.
func (d *Driver) Tick() (Frame, error) {
	return d.TickAt(d.clock.Now())
}

// TickAt poses every face for t, renders, and hands the frame to the sink.
// All faces in a frame see the same instant, and posing finishes before
// rendering starts.
func (d *Driver) TickAt(t time.Time) (Frame, error) {
	local := t.In(d.loc)
	now := clockface.FromTime(local, d.smooth)

	frame := Frame{
		Index:  d.frames,
		Time:   local,
		Angles: d.stage.Pose(now),
	}
	frame.Image = d.stage.Draw()
	d.frames++
	d.last = frame

	d.log.Trace().
		Int("frame", frame.Index).
		Time("at", local).
		Msg("tick")

	if d.sink != nil {
		if err := d.sink(frame); err != nil {
			return frame, fmt.Errorf("animation: frame %d: %w", frame.Index, err)
		}
	}
	return frame, nil
}

// Run ticks once immediately and then once per value received on ticks,
// until ctx is done, ticks is closed, or the sink fails. A sink returning
// ErrStop ends Run with a nil error. Ticks buffered while a frame was
// rendering are not drawn once ctx is done.
func (d *Driver) Run(ctx context.Context, ticks <-chan time.Time) error {
	if err := d.runTick(); err != nil {
		return d.stopped(err)
	}
	for {
		if ctx.Err() != nil {
			return d.stopped(nil)
		}
		select {
		case <-ctx.Done():
			return d.stopped(nil)
		case _, ok := <-ticks:
			if !ok {
				return d.stopped(nil)
			}
			if ctx.Err() != nil {
				return d.stopped(nil)
			}
			if err := d.runTick(); err != nil {
				return d.stopped(err)
			}
		}
	}
}

func (d *Driver) runTick() error {
	_, err := d.Tick()
	return err
}

func (d *Driver) stopped(err error) error {
	if errors.Is(err, ErrStop) {
		err = nil
	}
	if err == nil {
		d.log.Debug().Int("frames", d.frames).Msg("stopped")
	}
	return err
}

// Frames returns how many frames have been rendered.
func (d *Driver) Frames() int { return d.frames }

// Last returns the most recent frame.
func (d *Driver) Last() Frame { return d.last }

// Stage returns the driven stage.
func (d *Driver) Stage() *Stage { return d.stage }
