package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"clock3d/internal/batch"
)

// TimelapseFlags holds flags specific to the timelapse command.
type TimelapseFlags struct {
	Start  string
	Step   time.Duration
	Frames int
}

func newTimelapseCmd(env *Env) *cobra.Command {
	flags := &TimelapseFlags{}
	cmd := &cobra.Command{
		Use:   "timelapse",
		Short: "Render a range of instants in parallel",
		Long: `Render --frames frames starting at --start, --step apart, using a pool of workers.

Writes <out-dir>/frames/NNNN.webp, an animated <out-dir>/timelapse.webp and
<out-dir>/manifest.json listing each frame's time and hand angles.

Examples:
  clock3d timelapse --start 2024-06-01T00:00:00Z --step 15m --frames 96`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTimelapse(cmd.Context(), cmd, env, flags)
		},
	}
	cmd.Flags().StringVar(&flags.Start, "start", "", "first instant (RFC 3339); default from config, else now")
	cmd.Flags().DurationVar(&flags.Step, "step", 0, "time between frames, e.g. 1m or -1h")
	cmd.Flags().IntVar(&flags.Frames, "frames", 0, "number of frames")
	return cmd
}

func runTimelapse(ctx context.Context, cmd *cobra.Command, env *Env, flags *TimelapseFlags) error {
	tl := env.Config.Timelapse
	if flags.Start != "" {
		tl.Start = flags.Start
	}
	if flags.Step != 0 {
		tl.Step = flags.Step
	}
	if flags.Frames > 0 {
		tl.Frames = flags.Frames
	}
	env.Config.Timelapse = tl

	start, err := env.Config.TimelapseStart(time.Now())
	if err != nil {
		return err
	}

	sum, err := batch.Run(ctx, batch.Config{
		OutputDir:  env.Config.OutputDir,
		Start:      start,
		Step:       tl.Step,
		Frames:     tl.Frames,
		Workers:    tl.Workers,
		FrameDelay: time.Duration(tl.FrameMS) * time.Millisecond,
		Location:   env.Location(),
		Smooth:     env.Config.SmoothSeconds,
		NewStage:   env.NewStage,
		Logger:     env.Logger,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "run %s: %d frames, %d failed, %s\n",
		sum.RunID, len(sum.Results), sum.Failed, sum.Elapsed.Round(time.Millisecond))
	fmt.Fprintf(cmd.OutOrStdout(), "manifest: %s\n", sum.Manifest)
	if sum.Failed > 0 {
		return fmt.Errorf("timelapse: %d of %d frames failed", sum.Failed, len(sum.Results))
	}
	return nil
}
