package main

import (
	"github.com/spf13/cobra"

	"clock3d/internal/cli"
	"clock3d/internal/clock"
	"clock3d/internal/window"
)

func newWindowCmd(env *cli.Env) *cobra.Command {
	var start string
	cmd := &cobra.Command{
		Use:   "window",
		Short: "Show the live clock in a window",
		Long: `Open a window and redraw the clock every frame.

Left drag orbits the camera, right or middle drag pans, the wheel zooms.
Esc or Q closes the window.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var c clock.Clock = clock.Real{}
			if start != "" {
				fixed, err := cli.ParseAt(start)
				if err != nil {
					return err
				}
				c = clock.NewOffset(fixed.Now(), clock.Real{})
			}
			driver, err := env.NewDriver(c, nil)
			if err != nil {
				return err
			}
			return window.Run(driver, window.Options{
				Title:  "clock3d",
				Width:  env.Config.Width,
				Height: env.Config.Height,
				FPS:    env.Config.FPS,
				Logger: env.Logger,
			})
		},
	}
	cmd.Flags().StringVar(&start, "start", "", "instant the clock starts at (RFC 3339)")
	return cmd
}
