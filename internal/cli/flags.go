// Package cli provides the command-line interface for clock3d.
package cli

import (
	"github.com/spf13/cobra"

	"clock3d/internal/config"
)

// GlobalFlags holds flags available to all commands.
type GlobalFlags struct {
	// ConfigFile is an optional JSON or YAML config path.
	ConfigFile string
	// Verbose enables debug-level logging.
	Verbose bool
	// Quiet suppresses non-essential output (warn level only).
	Quiet bool
	// Render overrides config file and environment settings.
	Render config.Flags
}

// AddGlobalFlags adds global flags to a command.
// These flags are available to all subcommands via PersistentFlags.
func AddGlobalFlags(cmd *cobra.Command, flags *GlobalFlags) {
	pf := cmd.PersistentFlags()
	pf.StringVarP(&flags.ConfigFile, "config", "c", "", "config file (JSON or YAML)")
	pf.BoolVarP(&flags.Verbose, "verbose", "v", false, "enable verbose output")
	pf.BoolVarP(&flags.Quiet, "quiet", "q", false, "suppress non-essential output")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	r := &flags.Render
	pf.IntVar(&r.Width, "width", 0, "output width in pixels")
	pf.IntVar(&r.Height, "height", 0, "output height in pixels")
	pf.IntVar(&r.Supersample, "supersample", 0, "supersampling factor (1-4)")
	pf.IntVar(&r.FPS, "fps", 0, "frames per second for live modes; 0 syncs the window to the display and runs watch at 30")
	pf.IntVar(&r.Workers, "workers", 0, "parallel timelapse workers")
	pf.StringVar(&r.Location, "location", "", "time zone the local face follows (IANA name, Local or UTC)")
	pf.StringVar(&r.Layout, "layout", "", "single or split (front and back side by side)")
	pf.StringVar(&r.OutputDir, "out-dir", "", "output directory")
	pf.StringVar(&r.TextureDir, "texture-dir", "", "directory of dial textures")
	pf.BoolVar(&r.Smooth, "smooth", false, "sweep the second hand instead of stepping")
	pf.StringVar(&r.LogLevel, "log-level", "", "log level (trace, debug, info, warn, error)")
}
