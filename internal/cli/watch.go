package cli

import (
	"context"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"clock3d/internal/animation"
	"clock3d/internal/clock"
	"clock3d/internal/output"
)

// WatchFlags holds flags specific to the watch command.
type WatchFlags struct {
	Out    string
	Start  string
	Frames int
}

func newWatchCmd(env *Env) *cobra.Command {
	flags := &WatchFlags{}
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Keep rewriting a WebP file with the live clock",
		Long: `Render continuously at --fps (default 30) and replace the output file after every frame.
Runs until interrupted, or until --frames frames have been written.

With --start the clock begins at that instant and then advances in real time.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWatch(cmd.Context(), env, flags)
		},
	}
	cmd.Flags().StringVarP(&flags.Out, "out", "o", "", "output file; default <out-dir>/live.webp")
	cmd.Flags().StringVar(&flags.Start, "start", "", "instant the clock starts at (RFC 3339)")
	cmd.Flags().IntVar(&flags.Frames, "frames", 0, "stop after this many frames; 0 runs until interrupted")
	return cmd
}

func runWatch(ctx context.Context, env *Env, flags *WatchFlags) error {
	var c clock.Clock = clock.Real{}
	if flags.Start != "" {
		fixed, err := ParseAt(flags.Start)
		if err != nil {
			return err
		}
		c = clock.NewOffset(fixed.Now(), clock.Real{})
	}
	out := flags.Out
	if out == "" {
		out = filepath.Join(env.Config.OutputDir, "live.webp")
	}

	log := env.Logger.With().Str("component", "watch").Logger()
	sink := func(f animation.Frame) error {
		if err := output.WriteWebP(out, f.Image); err != nil {
			return err
		}
		if flags.Frames > 0 && f.Index+1 >= flags.Frames {
			return animation.ErrStop
		}
		return nil
	}

	driver, err := env.NewDriver(c, sink)
	if err != nil {
		return err
	}

	fps := env.Config.WatchFPS()
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	log.Info().Str("path", out).Int("fps", fps).Msg("watching")
	if err := driver.Run(ctx, ticker.C); err != nil {
		return err
	}
	log.Info().Int("frames", driver.Frames()).Msg("stopped")
	return nil
}
