package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"clock3d/internal/clockface"
	"clock3d/internal/mathutil"
)

// PoseFlags holds flags specific to the pose command.
type PoseFlags struct {
	At   string
	JSON bool
}

// HandPose is one hand's angle and matrix.
type HandPose struct {
	Hand   string        `json:"hand"`
	Angle  float64       `json:"angle"`
	Matrix mathutil.Mat4 `json:"matrix"`
}

// FacePose is the pose of every hand on one face.
type FacePose struct {
	Face          string     `json:"face"`
	TZOffsetHours float64    `json:"tz_offset_hours"`
	Hands         []HandPose `json:"hands"`
}

// PoseReport is what the pose command prints.
type PoseReport struct {
	Time  time.Time  `json:"time"`
	Faces []FacePose `json:"faces"`
}

func newPoseCmd(env *Env) *cobra.Command {
	flags := &PoseFlags{}
	cmd := &cobra.Command{
		Use:   "pose",
		Short: "Print hand angles and transforms without rendering",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPose(cmd.OutOrStdout(), env, flags)
		},
	}
	cmd.Flags().StringVar(&flags.At, "at", "", "instant to pose (RFC 3339); default now")
	cmd.Flags().BoolVar(&flags.JSON, "json", false, "print JSON")
	return cmd
}

func runPose(w io.Writer, env *Env, flags *PoseFlags) error {
	c, err := ParseAt(flags.At)
	if err != nil {
		return err
	}
	stage, err := env.NewStage()
	if err != nil {
		return err
	}

	at := c.Now().In(env.Location())
	angles := stage.Pose(clockface.FromTime(at, env.Config.SmoothSeconds))

	report := PoseReport{Time: at}
	for i, f := range stage.Faces {
		a := angles[i]
		report.Faces = append(report.Faces, FacePose{
			Face:          f.Name,
			TZOffsetHours: f.TZOffsetHours,
			Hands: []HandPose{
				{Hand: clockface.NameSecond, Angle: a.Second, Matrix: f.Second.Node.Matrix},
				{Hand: clockface.NameMinute, Angle: a.Minute, Matrix: f.Minute.Node.Matrix},
				{Hand: clockface.NameHour, Angle: a.Hour, Matrix: f.Hour.Node.Matrix},
			},
		})
	}

	if flags.JSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}
	return writePoseText(w, report)
}

func writePoseText(w io.Writer, r PoseReport) error {
	if _, err := fmt.Fprintf(w, "time %s\n", r.Time.Format(time.RFC3339)); err != nil {
		return err
	}
	for _, f := range r.Faces {
		fmt.Fprintf(w, "\n%s (tz %+g h)\n", f.Face, f.TZOffsetHours)
		for _, h := range f.Hands {
			fmt.Fprintf(w, "  %-10s %9.4f rad %8.2f°\n", h.Hand, h.Angle, mathutil.Rad2Deg(h.Angle))
			m := h.Matrix
			for row := 0; row < 4; row++ {
				fmt.Fprintf(w, "    [% 8.4f % 8.4f % 8.4f % 8.4f]\n", m[row*4], m[row*4+1], m[row*4+2], m[row*4+3])
			}
		}
	}
	return nil
}
