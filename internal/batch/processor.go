// Package batch renders a range of instants in parallel and writes them out as
// numbered WebP frames, an animated WebP, and a JSON manifest.
package batch

import (
	"context"
	"fmt"
	"image"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"clock3d/internal/animation"
	"clock3d/internal/output"
)

// StageFactory builds an independent Stage. Each worker owns one, so scene
// graphs are never shared between goroutines.
type StageFactory func() (*animation.Stage, error)

// Config holds all shared settings for a timelapse run.
type Config struct {
	OutputDir string
	Start     time.Time
	Step      time.Duration
	Frames    int
	Workers   int
	// FrameDelay is the display time of each frame in the animated WebP.
	FrameDelay time.Duration
	Location   *time.Location
	Smooth     bool
	NewStage   StageFactory
	Logger     zerolog.Logger
}

// Result holds the outcome of rendering one frame.
type Result struct {
	Index   int
	Time    time.Time
	Path    string
	Faces   []FaceAngles
	Success bool
	Error   string
}

// Summary is the outcome of a whole run.
type Summary struct {
	RunID     string
	Results   []Result
	Failed    int
	Animation string
	Manifest  string
	Elapsed   time.Duration
}

// FrameTime returns the instant shown by frame i.
func (c Config) FrameTime(i int) time.Time {
	return c.Start.Add(time.Duration(i) * c.Step)
}

// Run renders all frames using a worker pool. Per-frame failures are recorded
// in the results; building a stage, writing the animation or the manifest, or
// cancellation abort the run.
func Run(ctx context.Context, cfg Config) (*Summary, error) {
	if cfg.Frames <= 0 {
		return nil, fmt.Errorf("batch: no frames to render")
	}
	if cfg.NewStage == nil {
		return nil, fmt.Errorf("batch: no stage factory")
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}
	if workers > cfg.Frames {
		workers = cfg.Frames
	}

	runID := uuid.NewString()
	log := cfg.Logger.With().Str("component", "batch").Str("run_id", runID).Logger()

	total := cfg.Frames
	results := make([]Result, total)
	images := make([]image.Image, total)
	var processed atomic.Int64

	start := time.Now()
	log.Info().Int("frames", total).Int("workers", workers).Msg("timelapse started")

	// Progress reporter
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p := processed.Load()
				if p > 0 {
					elapsed := time.Since(start).Seconds()
					log.Info().
						Int64("done", p).
						Int("total", total).
						Float64("frames_per_sec", float64(p)/elapsed).
						Msg("progress")
				}
			}
		}
	}()

	// Worker pool
	g, gctx := errgroup.WithContext(ctx)
	frameChan := make(chan int, workers*2)

	for w := 0; w < workers; w++ {
		g.Go(func() error {
			stage, err := cfg.NewStage()
			if err != nil {
				return fmt.Errorf("batch: build stage: %w", err)
			}
			driver := animation.NewDriver(stage, animation.Options{
				Location: cfg.Location,
				Smooth:   cfg.Smooth,
				Logger:   log,
			})
			for idx := range frameChan {
				results[idx], images[idx] = processFrame(cfg, driver, idx)
				processed.Add(1)
			}
			return nil
		})
	}

	// Send work
	g.Go(func() error {
		defer close(frameChan)
		for i := 0; i < total; i++ {
			select {
			case frameChan <- i:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})

	err := g.Wait()
	close(done)
	if err != nil {
		return nil, err
	}

	sum := &Summary{RunID: runID, Results: results}
	var frames []image.Image
	for i, r := range results {
		if !r.Success {
			sum.Failed++
			log.Warn().Int("frame", r.Index).Str("error", r.Error).Msg("frame failed")
			continue
		}
		frames = append(frames, images[i])
	}

	if len(frames) > 0 {
		sum.Animation = filepath.Join(cfg.OutputDir, "timelapse.webp")
		if err := output.WriteAnimation(sum.Animation, frames, cfg.FrameDelay); err != nil {
			return nil, err
		}
	}

	sum.Manifest = filepath.Join(cfg.OutputDir, "manifest.json")
	if err := WriteManifest(sum.Manifest, NewManifest(runID, cfg, results)); err != nil {
		return nil, err
	}

	sum.Elapsed = time.Since(start)
	log.Info().
		Int("rendered", total-sum.Failed).
		Int("failed", sum.Failed).
		Dur("elapsed", sum.Elapsed).
		Msg("timelapse finished")
	return sum, nil
}

func processFrame(cfg Config, driver *animation.Driver, idx int) (Result, image.Image) {
	rel := FramePath(idx)
	res := Result{Index: idx, Path: rel}

	frame, err := driver.TickAt(cfg.FrameTime(idx))
	res.Time = frame.Time
	if err != nil {
		res.Error = err.Error()
		return res, nil
	}
	res.Faces = faceAngles(driver.Stage(), frame)

	if err := output.WriteWebP(filepath.Join(cfg.OutputDir, rel), frame.Image); err != nil {
		res.Error = err.Error()
		return res, nil
	}

	res.Success = true
	return res, frame.Image
}

// FramePath is the output-relative path of frame i.
func FramePath(i int) string {
	return filepath.Join("frames", fmt.Sprintf("%04d.webp", i))
}
