package batch

import (
	"context"
	"errors"
	"image"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clock3d/internal/animation"
	"clock3d/internal/camera"
	"clock3d/internal/clockface"
	"clock3d/internal/mathutil"
	"clock3d/internal/scene"
)

type flatRenderer struct{}

func (flatRenderer) Render(s *scene.Scene, _ *camera.Perspective) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 6, 4))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = s.Background.R, s.Background.G, s.Background.B, 255
	}
	return img
}

func stageFactory() (*animation.Stage, error) {
	s, faces, err := clockface.BuildScene(color.NRGBA{10, 20, 30, 255}, clockface.DefaultDimensions(), []clockface.Options{
		{Name: "hamburg", TZOffsetHours: 0},
		{Name: "bogota", TZOffsetHours: 6, Yaw: math.Pi},
	})
	if err != nil {
		return nil, err
	}
	cam := camera.NewPerspective(100, 1.5, 0.1, 500, mathutil.Vec3{1, 2, 7})
	return animation.NewStage(s, faces, cam, flatRenderer{}), nil
}

func testConfig(t *testing.T) Config {
	t.Helper()
	return Config{
		OutputDir:  t.TempDir(),
		Start:      time.Date(2024, 6, 1, 11, 58, 0, 0, time.UTC),
		Step:       time.Minute,
		Frames:     5,
		Workers:    3,
		FrameDelay: 50 * time.Millisecond,
		Location:   time.UTC,
		NewStage:   stageFactory,
		Logger:     zerolog.Nop(),
	}
}

func TestRun_WritesFramesAnimationAndManifest(t *testing.T) {
	cfg := testConfig(t)

	sum, err := Run(context.Background(), cfg)
	require.NoError(t, err)
	require.Len(t, sum.Results, 5)
	assert.Zero(t, sum.Failed)
	_, err = uuid.Parse(sum.RunID)
	assert.NoError(t, err)

	for i, r := range sum.Results {
		assert.True(t, r.Success, r.Error)
		assert.Equal(t, i, r.Index)
		assert.True(t, cfg.FrameTime(i).Equal(r.Time))
		assert.FileExists(t, filepath.Join(cfg.OutputDir, FramePath(i)))
	}
	assert.FileExists(t, sum.Animation)

	m, err := ReadManifest(sum.Manifest)
	require.NoError(t, err)
	assert.Equal(t, sum.RunID, m.RunID)
	assert.Equal(t, "1m0s", m.Step)
	require.Len(t, m.Frames, 5)
	assert.Equal(t, "frames/0002.webp", m.Frames[2].Image)
	require.Len(t, m.Frames[2].Faces, 2)
	assert.Equal(t, "bogota", m.Frames[2].Faces[1].Face)

	// 12:00:00 UTC, Hamburg face: every hand straight up.
	noon := m.Frames[2].Faces[0].Angles
	assert.InDelta(t, 0, noon.Second, 1e-12)
	assert.InDelta(t, 0, noon.Minute, 1e-12)
	assert.InDelta(t, 0, math.Remainder(noon.Hour, 2*math.Pi), 1e-12)
}

func TestRun_MoreWorkersThanFrames(t *testing.T) {
	cfg := testConfig(t)
	cfg.Frames = 2
	cfg.Workers = 16

	sum, err := Run(context.Background(), cfg)
	require.NoError(t, err)
	assert.Len(t, sum.Results, 2)
}

func TestRun_StageFactoryError(t *testing.T) {
	cfg := testConfig(t)
	boom := errors.New("no gpu")
	cfg.NewStage = func() (*animation.Stage, error) { return nil, boom }

	_, err := Run(context.Background(), cfg)
	assert.ErrorIs(t, err, boom)
	_, statErr := os.Stat(filepath.Join(cfg.OutputDir, "manifest.json"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestRun_Cancelled(t *testing.T) {
	cfg := testConfig(t)
	cfg.Frames = 500
	cfg.Workers = 1
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, cfg)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRun_Validation(t *testing.T) {
	cfg := testConfig(t)
	cfg.Frames = 0
	_, err := Run(context.Background(), cfg)
	assert.Error(t, err)

	cfg = testConfig(t)
	cfg.NewStage = nil
	_, err = Run(context.Background(), cfg)
	assert.Error(t, err)
}

func TestNewManifest_FailedFrame(t *testing.T) {
	cfg := testConfig(t)
	results := []Result{
		{Index: 0, Time: cfg.Start, Path: FramePath(0), Success: true},
		{Index: 1, Time: cfg.FrameTime(1), Path: FramePath(1), Error: "encode failed"},
	}

	m := NewManifest("run", cfg, results)

	assert.Equal(t, "UTC", m.Location)
	assert.Equal(t, "frames/0000.webp", m.Frames[0].Image)
	assert.Empty(t, m.Frames[1].Image)
	assert.Equal(t, "encode failed", m.Frames[1].Error)
}

func TestFrameTime_NegativeStep(t *testing.T) {
	cfg := testConfig(t)
	cfg.Step = -time.Hour
	assert.Equal(t, cfg.Start.Add(-3*time.Hour), cfg.FrameTime(3))
}
