// Package animation drives the clock: each tick samples the time once, poses
// every registered face, and renders the scene.
package animation

import (
	"image"
	"image/color"
	"math"

	"clock3d/internal/camera"
	"clock3d/internal/clockface"
	"clock3d/internal/postprocess"
	"clock3d/internal/scene"
)

// Renderer draws a scene from a camera.
type Renderer interface {
	Render(s *scene.Scene, cam *camera.Perspective) *image.NRGBA
}

// Stage holds everything one running clock needs. Each Stage owns its scene
// graph, so separate Stages can be driven from separate goroutines.
type Stage struct {
	Scene    *scene.Scene
	Camera   *camera.Perspective
	Renderer Renderer
	Faces    []*clockface.Face

	// Split renders a second view from the opposite side of the clock and
	// places it to the right of the main view.
	Split bool
}

// NewStage bundles a scene, its faces, a camera and a renderer.
func NewStage(s *scene.Scene, faces []*clockface.Face, cam *camera.Perspective, r Renderer) *Stage {
	return &Stage{Scene: s, Camera: cam, Renderer: r, Faces: faces}
}

// Pose applies now to every face, each with its own timezone offset.
func (st *Stage) Pose(now clockface.WallTime) []clockface.Angles {
	angles := make([]clockface.Angles, len(st.Faces))
	for i, f := range st.Faces {
		a := clockface.ComputeAngles(now, f.TZOffsetHours)
		clockface.Apply(f, a)
		angles[i] = a
	}
	return angles
}

// Draw renders the current pose.
func (st *Stage) Draw() *image.NRGBA {
	front := st.Renderer.Render(st.Scene, st.Camera)
	if !st.Split {
		return front
	}
	back := st.Renderer.Render(st.Scene, st.Camera.Orbited(math.Pi))
	return postprocess.SideBySide(st.background(), 0, front, back)
}

func (st *Stage) background() color.NRGBA {
	if st.Scene == nil {
		return color.NRGBA{A: 255}
	}
	return st.Scene.Background
}
