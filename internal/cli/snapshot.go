package cli

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"clock3d/internal/output"
)

// SnapshotFlags holds flags specific to the snapshot command.
type SnapshotFlags struct {
	At  string
	Out string
}

func newSnapshotCmd(env *Env) *cobra.Command {
	flags := &SnapshotFlags{}
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Render one frame to a WebP file",
		Long: `Render the clock at a single instant and write it as a lossless WebP.

Examples:
  clock3d snapshot                                  # now, to <out-dir>/snapshot.webp
  clock3d snapshot --at 2024-06-01T09:30:00+02:00 --out nine-thirty.webp`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSnapshot(env, flags)
		},
	}
	cmd.Flags().StringVar(&flags.At, "at", "", "instant to render (RFC 3339); default now")
	cmd.Flags().StringVarP(&flags.Out, "out", "o", "", "output file; default <out-dir>/snapshot.webp")
	return cmd
}

func runSnapshot(env *Env, flags *SnapshotFlags) error {
	c, err := ParseAt(flags.At)
	if err != nil {
		return err
	}
	out := flags.Out
	if out == "" {
		out = filepath.Join(env.Config.OutputDir, "snapshot.webp")
	}

	driver, err := env.NewDriver(c, nil)
	if err != nil {
		return err
	}
	frame, err := driver.Tick()
	if err != nil {
		return err
	}
	if err := output.WriteWebP(out, frame.Image); err != nil {
		return err
	}

	env.Logger.Info().
		Str("component", "snapshot").
		Time("at", frame.Time).
		Str("path", out).
		Msg("snapshot written")
	return nil
}
