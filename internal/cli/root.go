package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// BuildInfo contains version information set at build time via ldflags.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// CommandFactory builds an extra subcommand. env is populated before the
// subcommand runs.
type CommandFactory func(env *Env) *cobra.Command

// newRootCmd creates and returns the root command for the clock3d CLI.
func newRootCmd(flags *GlobalFlags, info BuildInfo, extra ...CommandFactory) *cobra.Command {
	env := &Env{}

	cmd := &cobra.Command{
		Use:   "clock3d",
		Short: "Render a 3D dual-timezone analog clock",
		Long: `clock3d renders a 3D analog clock with one face per configured time zone.

The hands are posed from wall-clock time every frame and the scene is drawn with a
software rasterizer. Frames can be shown live, written as WebP snapshots, or
rendered in bulk as a timelapse.

Settings come from built-in defaults, an optional --config file, CLOCK3D_*
environment variables and flags, in increasing order of precedence.`,
		Version: formatVersion(info),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			loaded, err := newEnv(flags, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			*env = *loaded
			return nil
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return env.Close()
		},
		SilenceUsage: true,
	}

	AddGlobalFlags(cmd, flags)

	cmd.AddCommand(
		newSnapshotCmd(env),
		newWatchCmd(env),
		newTimelapseCmd(env),
		newPoseCmd(env),
		newConfigCmd(env),
	)
	for _, f := range extra {
		cmd.AddCommand(f(env))
	}

	return cmd
}

// formatVersion creates the version string from build info.
func formatVersion(info BuildInfo) string {
	if info.Version == "" {
		info.Version = "dev"
	}
	if info.Commit == "" {
		info.Commit = "none"
	}
	if info.Date == "" {
		info.Date = "unknown"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", info.Version, info.Commit, info.Date)
}

// Execute runs the root command with the provided context and build info.
func Execute(ctx context.Context, info BuildInfo, extra ...CommandFactory) error {
	flags := &GlobalFlags{}
	cmd := newRootCmd(flags, info, extra...)
	return cmd.ExecuteContext(ctx)
}
